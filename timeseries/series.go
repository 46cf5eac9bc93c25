// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned when a series would have no samples or no columns.
	ErrEmpty = errors.New("timeseries: series must have at least one sample and one column")

	// ErrLengthMismatch is returned when the number of timestamps differs
	// from the number of value rows.
	ErrLengthMismatch = errors.New("timeseries: times and values must have the same length")

	// ErrColumnMismatch is returned when column labels do not match the
	// number of value columns.
	ErrColumnMismatch = errors.New("timeseries: columns must match the number of value columns")

	// ErrIntervalMismatch is returned when interval labels do not line up
	// with the timestamps.
	ErrIntervalMismatch = errors.New("timeseries: intervals must match times")

	// ErrNonFinite is returned when a timestamp is NaN or infinite.
	ErrNonFinite = errors.New("timeseries: NaN or Inf encountered in times")
)

// TimeSeries is an ordered set of timestamps with a T x C matrix of
// observations, one row per timestamp.
type TimeSeries struct {
	Times     []float64
	Values    *mat.Dense
	Columns   []string   // optional, len C
	Intervals []Interval // optional, len T; Times[i] is Intervals[i].Start
}

// New creates a time series from timestamps and a value matrix.
// columns may be nil.
func New(times []float64, values *mat.Dense, columns []string) (*TimeSeries, error) {
	ts := &TimeSeries{
		Times:   times,
		Values:  values,
		Columns: columns,
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return ts, nil
}

// NewFromRows creates a time series from row-major observations.
func NewFromRows(times []float64, rows [][]float64, columns []string) (*TimeSeries, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	if len(times) != len(rows) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d times, %d rows", len(times), len(rows))
	}

	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, errors.Wrapf(ErrColumnMismatch, "row %d has %d values, want %d", i, len(row), c)
		}
		data = append(data, row...)
	}
	return New(times, mat.NewDense(len(rows), c, data), columns)
}

// NewVector creates a single-column time series. An empty column name
// leaves the series unlabelled.
func NewVector(times, values []float64, column string) (*TimeSeries, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	if len(times) != len(values) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d times, %d values", len(times), len(values))
	}

	data := make([]float64, len(values))
	copy(data, values)

	var columns []string
	if column != "" {
		columns = []string{column}
	}
	return New(times, mat.NewDense(len(data), 1, data), columns)
}

// Validate checks the shape invariants of the series.
func (ts *TimeSeries) Validate() error {
	if ts.Values == nil || len(ts.Times) == 0 {
		return ErrEmpty
	}
	r, c := ts.Values.Dims()
	if r != len(ts.Times) {
		return errors.Wrapf(ErrLengthMismatch, "%d times, %d rows", len(ts.Times), r)
	}
	if ts.Columns != nil && len(ts.Columns) != c {
		return errors.Wrapf(ErrColumnMismatch, "%d labels, %d columns", len(ts.Columns), c)
	}
	if ts.Intervals != nil {
		if len(ts.Intervals) != r {
			return errors.Wrapf(ErrIntervalMismatch, "%d intervals, %d rows", len(ts.Intervals), r)
		}
		for i, iv := range ts.Intervals {
			if iv.Start != ts.Times[i] {
				return errors.Wrapf(ErrIntervalMismatch, "interval %d starts at %v, time is %v", i, iv.Start, ts.Times[i])
			}
		}
	}
	return nil
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int {
	return len(ts.Times)
}

// NumColumns returns the number of value columns.
func (ts *TimeSeries) NumColumns() int {
	if ts.Values == nil {
		return 0
	}
	_, c := ts.Values.Dims()
	return c
}

// HasColumns reports whether the series carries column labels.
func (ts *TimeSeries) HasColumns() bool {
	return ts.Columns != nil
}

// ColumnIndex returns the index of the named column.
func (ts *TimeSeries) ColumnIndex(name string) (int, bool) {
	for i, c := range ts.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns a copy of the named column.
func (ts *TimeSeries) Column(name string) ([]float64, bool) {
	j, ok := ts.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	return ts.Col(j), true
}

// Col returns a copy of column j.
func (ts *TimeSeries) Col(j int) []float64 {
	return mat.Col(nil, j, ts.Values)
}

// Row returns a copy of row i.
func (ts *TimeSeries) Row(i int) []float64 {
	return mat.Row(nil, i, ts.Values)
}

// At returns the observation at row i, column j.
func (ts *TimeSeries) At(i, j int) float64 {
	return ts.Values.At(i, j)
}

// ColumnName returns the label of column j, or its index as a string when
// the series is unlabelled.
func (ts *TimeSeries) ColumnName(j int) string {
	if ts.Columns != nil {
		return ts.Columns[j]
	}
	return strconv.Itoa(j)
}

// Bounds returns the minimum and maximum timestamp.
func (ts *TimeSeries) Bounds() (tmin, tmax float64) {
	if len(ts.Times) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(ts.Times), floats.Max(ts.Times)
}

// CheckFinite returns ErrNonFinite if any timestamp is NaN or infinite.
func (ts *TimeSeries) CheckFinite() error {
	for i, t := range ts.Times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return errors.Wrapf(ErrNonFinite, "times[%d] = %v", i, t)
		}
	}
	return nil
}

// Offset returns a copy of the series with every timestamp shifted by dt.
func (ts *TimeSeries) Offset(dt float64) *TimeSeries {
	out := ts.Copy()
	floats.AddConst(dt, out.Times)
	for i := range out.Intervals {
		out.Intervals[i].Start += dt
		out.Intervals[i].End += dt
	}
	return out
}

// Slice returns the samples from start to end (exclusive).
func (ts *TimeSeries) Slice(start, end int) (*TimeSeries, error) {
	if start < 0 {
		start = 0
	}
	if end > ts.Len() {
		end = ts.Len()
	}
	if start >= end {
		return nil, ErrEmpty
	}

	times := make([]float64, end-start)
	copy(times, ts.Times[start:end])

	_, c := ts.Values.Dims()
	values := mat.DenseCopyOf(ts.Values.Slice(start, end, 0, c))

	out := &TimeSeries{
		Times:   times,
		Values:  values,
		Columns: copyStrings(ts.Columns),
	}
	if ts.Intervals != nil {
		out.Intervals = make([]Interval, end-start)
		copy(out.Intervals, ts.Intervals[start:end])
	}
	return out, nil
}

// Copy creates a deep copy of the series.
func (ts *TimeSeries) Copy() *TimeSeries {
	times := make([]float64, len(ts.Times))
	copy(times, ts.Times)

	out := &TimeSeries{
		Times:   times,
		Columns: copyStrings(ts.Columns),
	}
	if ts.Values != nil {
		out.Values = mat.DenseCopyOf(ts.Values)
	}
	if ts.Intervals != nil {
		out.Intervals = make([]Interval, len(ts.Intervals))
		copy(out.Intervals, ts.Intervals)
	}
	return out
}

// Mean calculates the arithmetic mean of column j.
func (ts *TimeSeries) Mean(j int) float64 {
	return stat.Mean(ts.Col(j), nil)
}

// Std calculates the sample standard deviation of column j.
func (ts *TimeSeries) Std(j int) float64 {
	if ts.Len() < 2 {
		return 0
	}
	return stat.StdDev(ts.Col(j), nil)
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
