package processing

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
)

// Kind selects how values are interpolated between known samples.
type Kind int

const (
	// Zero holds the previous sample (zero-order hold).
	Zero Kind = iota
	// Nearest takes the closest sample; ties go to the earlier one.
	Nearest
	// Next takes the following sample.
	Next
	// Linear interpolates linearly between neighbours.
	Linear
	// NaturalCubic fits a natural cubic spline.
	NaturalCubic
	// Akima fits an Akima spline.
	Akima
	// FritschButland fits a monotone piecewise cubic.
	FritschButland
)

var kindNames = map[Kind]string{
	Zero:           "zero",
	Nearest:        "nearest",
	Next:           "next",
	Linear:         "linear",
	NaturalCubic:   "cubic",
	Akima:          "akima",
	FritschButland: "fritsch-butland",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind converts an interpolation name ("zero", "nearest", "next",
// "linear", "cubic", "akima", "fritsch-butland") to a Kind. "previous" is
// accepted as an alias of "zero".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "previous" {
		return Zero, nil
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.Errorf("processing: unknown interpolation kind %q", name)
}

// FillPolicy decides the value of queries outside the sampled range.
// The zero value fills with NaN.
type FillPolicy struct {
	extrapolate bool
	value       float64
	set         bool
}

// FillWith returns a policy filling out-of-range queries with v.
func FillWith(v float64) FillPolicy {
	return FillPolicy{value: v, set: true}
}

// Extrapolate returns the extrapolating policy. Linear kinds extend the
// end segments; every other kind holds the edge sample.
func Extrapolate() FillPolicy {
	return FillPolicy{extrapolate: true}
}

// Extrapolates reports whether the policy extends the interpolant past the
// sampled range.
func (f FillPolicy) Extrapolates() bool {
	return f.extrapolate
}

// Value is the fill value used when the policy does not extrapolate.
func (f FillPolicy) Value() float64 {
	if !f.set {
		return math.NaN()
	}
	return f.value
}

// Interpolator evaluates a fitted one-dimensional interpolant.
type Interpolator struct {
	xs, ys    []float64
	kind      Kind
	fill      FillPolicy
	predictor interp.Predictor
}

// NewInterpolator fits an interpolant through (xs, ys). The inputs are
// copied; unsorted xs are sorted together with ys.
func NewInterpolator(xs, ys []float64, kind Kind, fill FillPolicy) (*Interpolator, error) {
	if len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d sample times, %d values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, errors.Wrapf(ErrTooFewSamples, "got %d", len(xs))
	}

	sx, sy := sortedCopy(xs, ys)
	for i := range sx {
		if math.IsNaN(sx[i]) || math.IsInf(sx[i], 0) {
			return nil, errors.Wrapf(ErrNonFinite, "sample time %v", sx[i])
		}
		if i > 0 && sx[i] == sx[i-1] {
			return nil, errors.Wrapf(ErrNotMonotonic, "duplicated sample time %v", sx[i])
		}
	}

	ip := &Interpolator{xs: sx, ys: sy, kind: kind, fill: fill}

	var fp interp.FittablePredictor
	switch kind {
	case Zero, Nearest:
		// evaluated directly by stepAt
	case Next:
		fp = &interp.PiecewiseConstant{}
	case Linear:
		fp = &interp.PiecewiseLinear{}
	case NaturalCubic:
		fp = &interp.NaturalCubic{}
	case Akima:
		fp = &interp.AkimaSpline{}
	case FritschButland:
		fp = &interp.FritschButland{}
	default:
		return nil, errors.Errorf("processing: unknown interpolation kind %d", int(kind))
	}
	if fp != nil {
		if err := fp.Fit(sx, sy); err != nil {
			return nil, errors.Wrapf(ErrInterpolation, "%s: %v", kind, err)
		}
		ip.predictor = fp
	}
	return ip, nil
}

// Predict returns the interpolated value at x.
func (ip *Interpolator) Predict(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	n := len(ip.xs)
	first, last := ip.xs[0], ip.xs[n-1]

	if x < first || x > last {
		if !ip.fill.Extrapolates() {
			return ip.fill.Value()
		}
		if ip.kind == Linear {
			if x < first {
				return ip.ys[0] + (x-first)*(ip.ys[1]-ip.ys[0])/(ip.xs[1]-first)
			}
			return ip.ys[n-1] + (x-last)*(ip.ys[n-1]-ip.ys[n-2])/(last-ip.xs[n-2])
		}
		if x < first {
			return ip.ys[0]
		}
		return ip.ys[n-1]
	}

	if ip.predictor != nil {
		return ip.predictor.Predict(x)
	}
	return ip.stepAt(x)
}

// PredictAll evaluates the interpolant at every query point.
func (ip *Interpolator) PredictAll(query []float64) []float64 {
	out := make([]float64, len(query))
	for i, x := range query {
		out[i] = ip.Predict(x)
	}
	return out
}

// stepAt evaluates the Zero and Nearest kinds for x inside the sampled range.
func (ip *Interpolator) stepAt(x float64) float64 {
	j := sort.SearchFloat64s(ip.xs, x)
	if j < len(ip.xs) && ip.xs[j] == x {
		return ip.ys[j]
	}
	// xs[j-1] < x < xs[j]
	if ip.kind == Nearest && ip.xs[j]-x < x-ip.xs[j-1] {
		return ip.ys[j]
	}
	return ip.ys[j-1]
}

// Interpolate fits (xs, ys) and evaluates the interpolant at query.
func Interpolate(xs, ys, query []float64, kind Kind, fill FillPolicy) ([]float64, error) {
	ip, err := NewInterpolator(xs, ys, kind, fill)
	if err != nil {
		return nil, err
	}
	return ip.PredictAll(query), nil
}

func sortedCopy(xs, ys []float64) ([]float64, []float64) {
	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	copy(sx, xs)
	copy(sy, ys)
	if sort.Float64sAreSorted(sx) {
		return sx, sy
	}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	for i, k := range idx {
		sx[i] = xs[k]
		sy[i] = ys[k]
	}
	return sx, sy
}
