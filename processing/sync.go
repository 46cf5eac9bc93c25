package processing

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/brainbox/timeseries"
)

// DefaultEpsilon is the relative margin added to the extrapolated upper
// time bound so floating point drift never drops the last full step.
const DefaultEpsilon = 1e-4

// Pair is a raw (times, values) series.
type Pair struct {
	Times  []float64
	Values []float64
}

// SyncOptions configures Sync.
type SyncOptions struct {
	// Offsets are added to each series' timestamps before alignment:
	// first one per TimeSeries input, then one per Pair. Nil means no offset.
	Offsets []float64
	// Interp is the interpolation kind (default: Zero).
	Interp Kind
	// Fill is the out-of-range policy; the zero value fills with NaN.
	// With Extrapolate the grid is extended to a whole number of dt steps.
	Fill FillPolicy
	// Epsilon is the relative margin of the extrapolated upper bound
	// (default: DefaultEpsilon).
	Epsilon float64
}

// DefaultSyncOptions returns the defaults: zero-order hold, NaN fill.
func DefaultSyncOptions() *SyncOptions {
	return &SyncOptions{
		Interp:  Zero,
		Fill:    FillWith(math.NaN()),
		Epsilon: DefaultEpsilon,
	}
}

// Sync resamples one or more time series onto a single grid evenly
// spaced by dt.
//
// The grid starts at the smallest timestamp across all (offset) inputs and
// stops before the largest one. With an extrapolating fill policy the stop
// is pushed to the next whole multiple of dt past the data span. Each input
// is interpolated independently and the results are concatenated column
// wise, TimeSeries inputs first, then pairs. The output carries column
// labels only when every input has them.
func Sync(dt float64, series []*timeseries.TimeSeries, pairs []Pair, opts *SyncOptions) (*timeseries.TimeSeries, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, errors.Wrapf(ErrInvalidStep, "dt = %v", dt)
	}
	if opts == nil {
		opts = DefaultSyncOptions()
	}

	inputs, err := collectInputs(series, pairs)
	if err != nil {
		return nil, err
	}

	if opts.Offsets != nil {
		if len(opts.Offsets) != len(inputs) {
			return nil, errors.Wrapf(ErrShapeMismatch, "%d offsets for %d series", len(opts.Offsets), len(inputs))
		}
		for i, ts := range inputs {
			inputs[i] = ts.Offset(opts.Offsets[i])
		}
	}

	tmin, tmax := math.Inf(1), math.Inf(-1)
	var columns []string
	labelled := true
	width := 0
	for i, ts := range inputs {
		if err := ts.CheckFinite(); err != nil {
			return nil, errors.Wrapf(ErrNonFinite, "series %d: %v", i, err)
		}
		lo, hi := ts.Bounds()
		tmin = math.Min(tmin, lo)
		tmax = math.Max(tmax, hi)

		if ts.HasColumns() {
			columns = append(columns, ts.Columns...)
		} else {
			labelled = false
		}
		width += ts.NumColumns()
	}
	if !labelled {
		columns = nil
	}

	grid := syncGrid(tmin, tmax, dt, opts)
	if len(grid) == 0 {
		return nil, errors.Wrapf(ErrEmptyGrid, "span [%v, %v] with dt %v", tmin, tmax, dt)
	}

	out := mat.NewDense(len(grid), width, nil)
	col := 0
	for i, ts := range inputs {
		for j := 0; j < ts.NumColumns(); j++ {
			ip, err := NewInterpolator(ts.Times, ts.Col(j), opts.Interp, opts.Fill)
			if err != nil {
				return nil, errors.Wrapf(err, "series %d column %d", i, j)
			}
			for r, t := range grid {
				out.Set(r, col, ip.Predict(t))
			}
			col++
		}
	}

	return timeseries.New(grid, out, columns)
}

func collectInputs(series []*timeseries.TimeSeries, pairs []Pair) ([]*timeseries.TimeSeries, error) {
	inputs := make([]*timeseries.TimeSeries, 0, len(series)+len(pairs))
	for i, ts := range series {
		if ts == nil {
			return nil, errors.Wrapf(ErrNotTimeSeries, "series %d is nil", i)
		}
		if err := ts.Validate(); err != nil {
			return nil, errors.Wrapf(ErrShapeMismatch, "series %d: %v", i, err)
		}
		inputs = append(inputs, ts)
	}
	for i, p := range pairs {
		if len(p.Times) != len(p.Values) {
			return nil, errors.Wrapf(ErrShapeMismatch, "pair %d: %d times, %d values", i, len(p.Times), len(p.Values))
		}
		ts, err := timeseries.NewVector(p.Times, p.Values, "")
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d", i)
		}
		inputs = append(inputs, ts)
	}
	if len(inputs) == 0 {
		return nil, ErrNoSeries
	}
	return inputs, nil
}

func syncGrid(tmin, tmax, dt float64, opts *SyncOptions) []float64 {
	if !opts.Fill.Extrapolates() {
		return arange(tmin, tmax, dt)
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	stop := tmax + (1+eps)*(dt-math.Mod(tmax-tmin, dt))
	return arange(tmin, stop, dt)
}

// arange returns start, start+step, ... for every value below stop.
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
