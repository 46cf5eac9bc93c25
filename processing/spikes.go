package processing

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/brainbox/timeseries"
)

// ClustersColumn names the per-spike cluster id field.
const ClustersColumn = "clusters"

// BinSpikes counts spikes per cluster in consecutive bins of width binSize.
//
// spikes must carry a "clusters" column next to its timestamps. The result
// has one row per time bin and one column per cluster id present in the
// input, labelled with the id. Rows are stamped with the left edge of each
// bin; with intervals set they also carry [start, end) labels and the last
// bin, whose right edge would fall past the binned range, is dropped.
func BinSpikes(spikes *timeseries.TimeSeries, binSize float64, intervals bool) (*timeseries.TimeSeries, error) {
	if spikes == nil {
		return nil, errors.Wrap(ErrNotTimeSeries, "spikes")
	}
	clusters, ok := spikes.Column(ClustersColumn)
	if !ok {
		return nil, errors.Wrap(ErrMissingClusters, "set a \"clusters\" column when building spikes")
	}
	if !(binSize > 0) || math.IsInf(binSize, 0) {
		return nil, errors.Wrapf(ErrInvalidBinWidth, "bin size %v", binSize)
	}
	if err := spikes.CheckFinite(); err != nil {
		return nil, errors.Wrap(ErrNonFinite, err.Error())
	}

	h, err := Bincount2D(spikes.Times, clusters, &BinOptions{XBin: binSize})
	if err != nil {
		return nil, err
	}

	// Counts is clusters x bins; the series is bins x clusters.
	rates := mat.DenseCopyOf(h.Counts.T())
	columns := make([]string, len(h.YScale))
	for i, c := range h.YScale {
		columns[i] = strconv.FormatFloat(c, 'f', -1, 64)
	}

	if !intervals {
		return timeseries.New(h.XScale, rates, columns)
	}

	n := len(h.XScale)
	if n < 2 {
		return nil, errors.Wrapf(ErrTooFewBins, "got %d", n)
	}
	times := make([]float64, n-1)
	labels := make([]timeseries.Interval, n-1)
	for i := range labels {
		times[i] = h.XScale[i]
		labels[i] = timeseries.Interval{Start: h.XScale[i], End: h.XScale[i+1]}
	}

	ts, err := timeseries.New(times, mat.DenseCopyOf(rates.Slice(0, n-1, 0, len(columns))), columns)
	if err != nil {
		return nil, err
	}
	ts.Intervals = labels
	return ts, nil
}
