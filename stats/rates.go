package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/brainbox/timeseries"
)

var (
	// ErrNilSeries is returned when no series is given.
	ErrNilSeries = errors.New("stats: series is nil")

	// ErrUnknownColumn is returned when a named column does not exist.
	ErrUnknownColumn = errors.New("stats: unknown column")

	// ErrConstant is returned when a signal has zero variance.
	ErrConstant = errors.New("stats: signal is constant")

	// ErrInvalidBinSize is returned for a non-positive bin size.
	ErrInvalidBinSize = errors.New("stats: bin size must be a positive finite number")
)

// FiringRates returns the mean firing rate in spikes/s of every column of
// a binned spike count series.
func FiringRates(binned *timeseries.TimeSeries, binSize float64) ([]float64, error) {
	if binned == nil {
		return nil, ErrNilSeries
	}
	if !(binSize > 0) || math.IsInf(binSize, 0) {
		return nil, errors.Wrapf(ErrInvalidBinSize, "got %v", binSize)
	}

	rates := make([]float64, binned.NumColumns())
	for j := range rates {
		rates[j] = binned.Mean(j) / binSize
	}
	return rates, nil
}

// FanoFactors returns the variance-to-mean ratio of the spike counts of
// every column. Silent units get NaN.
func FanoFactors(binned *timeseries.TimeSeries) ([]float64, error) {
	if binned == nil {
		return nil, ErrNilSeries
	}

	out := make([]float64, binned.NumColumns())
	for j := range out {
		mean, variance := stat.MeanVariance(binned.Col(j), nil)
		if mean == 0 || binned.Len() < 2 {
			out[j] = math.NaN()
			continue
		}
		out[j] = variance / mean
	}
	return out, nil
}

// UnitSummary describes the firing of one unit.
type UnitSummary struct {
	Unit     string
	Rate     float64 // spikes/s
	Fano     float64
	LjungBox *PortmanteauResult // nil for short or silent trains
}

// Summarize computes a UnitSummary for every column of a binned spike
// count series. lags is the Ljung-Box horizon in bins.
func Summarize(binned *timeseries.TimeSeries, binSize float64, lags int) ([]UnitSummary, error) {
	rates, err := FiringRates(binned, binSize)
	if err != nil {
		return nil, err
	}
	fano, err := FanoFactors(binned)
	if err != nil {
		return nil, err
	}

	out := make([]UnitSummary, len(rates))
	for j := range out {
		out[j] = UnitSummary{
			Unit:     binned.ColumnName(j),
			Rate:     rates[j],
			Fano:     fano[j],
			LjungBox: LjungBox(binned.Col(j), lags, 0),
		}
	}
	return out, nil
}
