// Package processing turns raw event and observation streams into regular
// time series: resampling onto a shared grid, 2D histogram aggregation,
// spike binning and per-unit demultiplexing.
//
// # Resampling
//
// Align several independently sampled signals onto one grid:
//
//	opts := processing.DefaultSyncOptions()
//	opts.Interp = processing.Linear
//	opts.Fill = processing.Extrapolate()
//	synced, err := processing.Sync(0.01, []*timeseries.TimeSeries{wheel, licks}, nil, opts)
//
// Raw arrays can be mixed in as pairs; offsets apply to the TimeSeries
// inputs first, then to the pairs:
//
//	synced, err := processing.Sync(0.01, nil, []processing.Pair{{Times: t, Values: v}}, nil)
//
// With an extrapolating fill the grid always covers a whole number of dt
// steps past the data span. The margin guarding that bound against
// floating point drift is SyncOptions.Epsilon.
//
// # 2D Aggregation
//
// Count or sum pairs of coordinates on regular or categorical axes:
//
//	h, err := processing.Bincount2D(times, depths, &processing.BinOptions{
//	    XBin: 0.05,             // regular 50 ms bins
//	    YBin: 20,               // regular 20 um bins
//	    YLim: &processing.Limits{Lo: 0, Hi: 3840},
//	    Weights: amps,
//	    Outside: processing.OutsideClamp,
//	})
//	// h.Counts is len(h.YScale) x len(h.XScale)
//
// A zero bin width aggregates over the unique values of that axis.
//
// # Spikes
//
// Bin spikes per cluster, then split raw spike features per unit:
//
//	rates, err := processing.BinSpikes(spikes, 0.05, false)
//
//	units, err := processing.GetUnitsBunch(processing.Bunch{
//	    "clusters": clusters,
//	    "amps":     amps,
//	}, "amps")
//	amps4 := units["amps"].Unit(4)
//
// # Errors
//
// Every failure wraps one of the package's sentinel errors, e.g.
// ErrShapeMismatch, ErrNonFinite, ErrNotTimeSeries or ErrMissingClusters.
// Nothing is retried.
package processing
