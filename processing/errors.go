package processing

import "github.com/pkg/errors"

// Errors returned by the processing functions. Callers should match them
// with errors.Is; returned errors usually wrap one of these with context.
var (
	// ErrNoSeries indicates Sync was called without any input series.
	ErrNoSeries = errors.New("processing: at least one time series is required")

	// ErrNotTimeSeries indicates a nil entry where a time series is expected.
	ErrNotTimeSeries = errors.New("processing: input is not a time series")

	// ErrShapeMismatch indicates parallel arrays of different lengths.
	ErrShapeMismatch = errors.New("processing: shape mismatch")

	// ErrNonFinite indicates a NaN or infinite timestamp or coordinate.
	ErrNonFinite = errors.New("processing: NaN or Inf encountered, drop or fill these values")

	// ErrInvalidStep indicates a non-positive or non-finite resampling interval.
	ErrInvalidStep = errors.New("processing: dt must be a positive finite number")

	// ErrTooFewSamples indicates a series with fewer than two samples.
	ErrTooFewSamples = errors.New("processing: interpolation needs at least two samples")

	// ErrNotMonotonic indicates duplicated timestamps in an interpolated series.
	ErrNotMonotonic = errors.New("processing: sample times must be distinct")

	// ErrEmptyGrid indicates the resampling grid would contain no points.
	ErrEmptyGrid = errors.New("processing: resampling grid is empty")

	// ErrEmptyInput indicates empty coordinate or spike arrays.
	ErrEmptyInput = errors.New("processing: input arrays are empty")

	// ErrInvalidBinWidth indicates a negative or non-finite bin width.
	ErrInvalidBinWidth = errors.New("processing: bin width must be a finite number >= 0")

	// ErrInvalidLimits indicates an axis range with lo > hi or non-finite bounds.
	ErrInvalidLimits = errors.New("processing: invalid axis limits")

	// ErrOutOfRange indicates a value outside explicit axis limits under OutsideError.
	ErrOutOfRange = errors.New("processing: value outside axis limits")

	// ErrMissingClusters indicates spikes without a cluster association.
	ErrMissingClusters = errors.New("processing: spikes need a clusters field")

	// ErrInvalidCluster indicates a negative, fractional, non-finite or too large cluster id.
	ErrInvalidCluster = errors.New("processing: cluster ids must be non-negative integers")

	// ErrUnknownFeature indicates a requested feature absent from the spikes.
	ErrUnknownFeature = errors.New("processing: unknown spike feature")

	// ErrTooFewBins indicates interval labelling with fewer than two bins.
	ErrTooFewBins = errors.New("processing: interval labels need at least two bins")

	// ErrInterpolation wraps failures reported by the interpolation backend.
	ErrInterpolation = errors.New("processing: interpolation failed")
)
