package processing

import (
	"math"
	"slices"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Limits is an explicit [Lo, Hi] axis range.
type Limits struct {
	Lo, Hi float64
}

// OutsidePolicy decides what happens to values outside explicit limits on
// a regular axis.
type OutsidePolicy int

const (
	// OutsideDrop ignores the value.
	OutsideDrop OutsidePolicy = iota
	// OutsideClamp counts the value in the first or last bin.
	OutsideClamp
	// OutsideError fails with ErrOutOfRange.
	OutsideError
)

// BinOptions configures Bincount2D.
//
// A bin width of zero aggregates over the unique values of that axis; the
// limits then do not apply. On a regular axis, NaN and infinite values are
// treated as outside the limits.
type BinOptions struct {
	XBin, YBin float64
	XLim, YLim *Limits // default: [min, max] of the coordinate
	Weights    []float64
	Outside    OutsidePolicy
}

// Histogram2D is a 2D aggregation grid. Counts is Ny x Nx: rows follow
// YScale and columns follow XScale.
type Histogram2D struct {
	Counts *mat.Dense
	XScale []float64
	YScale []float64
}

// Total returns the sum of every cell.
func (h *Histogram2D) Total() float64 {
	return mat.Sum(h.Counts)
}

// Bincount2D aggregates the pairs (x[i], y[i]) into a 2D grid, counting
// them or summing opts.Weights when given.
//
// On a regular axis (bin > 0) the scale is lo, lo+bin, ... up to half a bin
// past hi, and value v falls in bin floor((v-lo)/bin). Every v in [lo, hi]
// lands in a valid bin, including hi itself.
func Bincount2D(x, y []float64, opts *BinOptions) (*Histogram2D, error) {
	if opts == nil {
		opts = &BinOptions{}
	}
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(y) != len(x) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d x values, %d y values", len(x), len(y))
	}
	if opts.Weights != nil && len(opts.Weights) != len(x) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d weights for %d values", len(opts.Weights), len(x))
	}

	xscale, xind, err := binAxis(x, opts.XBin, opts.XLim, opts.Outside)
	if err != nil {
		return nil, errors.Wrap(err, "x axis")
	}
	yscale, yind, err := binAxis(y, opts.YBin, opts.YLim, opts.Outside)
	if err != nil {
		return nil, errors.Wrap(err, "y axis")
	}

	nx, ny := len(xscale), len(yscale)
	acc := make([]float64, nx*ny)
	for i := range x {
		if xind[i] < 0 || yind[i] < 0 {
			continue
		}
		w := 1.0
		if opts.Weights != nil {
			w = opts.Weights[i]
		}
		acc[yind[i]*nx+xind[i]] += w
	}

	return &Histogram2D{
		Counts: mat.NewDense(ny, nx, acc),
		XScale: xscale,
		YScale: yscale,
	}, nil
}

// binAxis returns the scale of one axis and the bin index of every value,
// -1 for dropped values.
func binAxis(v []float64, bin float64, lim *Limits, outside OutsidePolicy) ([]float64, []int, error) {
	if bin < 0 || math.IsNaN(bin) || math.IsInf(bin, 0) {
		return nil, nil, errors.Wrapf(ErrInvalidBinWidth, "got %v", bin)
	}
	if bin == 0 {
		return uniqueAxis(v)
	}

	var lo, hi float64
	if lim != nil {
		if !isFinite(lim.Lo) || !isFinite(lim.Hi) || lim.Lo > lim.Hi {
			return nil, nil, errors.Wrapf(ErrInvalidLimits, "[%v, %v]", lim.Lo, lim.Hi)
		}
		lo, hi = lim.Lo, lim.Hi
	} else {
		var ok bool
		lo, hi, ok = finiteRange(v)
		if !ok {
			return nil, nil, errors.Wrap(ErrNonFinite, "no finite values to bin")
		}
	}

	scale := arange(lo, hi+bin/2, bin)
	if len(scale) == 0 {
		scale = []float64{lo}
	}
	last := len(scale) - 1

	ind := make([]int, len(v))
	for i, val := range v {
		if !(val >= lo && val <= hi) {
			switch {
			case outside == OutsideDrop:
				ind[i] = -1
			case outside == OutsideError:
				return nil, nil, errors.Wrapf(ErrOutOfRange, "value %v outside [%v, %v]", val, lo, hi)
			case math.IsNaN(val):
				return nil, nil, errors.Wrapf(ErrNonFinite, "cannot clamp %v", val)
			case val < lo:
				ind[i] = 0
			default:
				ind[i] = last
			}
			continue
		}
		k := int(math.Floor((val - lo) / bin))
		ind[i] = min(max(k, 0), last)
	}
	return scale, ind, nil
}

// uniqueAxis bins v by its sorted unique values.
func uniqueAxis(v []float64) ([]float64, []int, error) {
	for _, val := range v {
		if !isFinite(val) {
			return nil, nil, errors.Wrapf(ErrNonFinite, "cannot aggregate unique value %v", val)
		}
	}

	scale := slices.Clone(v)
	slices.Sort(scale)
	scale = slices.Compact(scale)

	ind := make([]int, len(v))
	for i, val := range v {
		ind[i] = sort.SearchFloat64s(scale, val)
	}
	return scale, ind, nil
}

func finiteRange(v []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, val := range v {
		if !isFinite(val) {
			continue
		}
		lo = math.Min(lo, val)
		hi = math.Max(hi, val)
		ok = true
	}
	return lo, hi, ok
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
