// Package brainbox provides the time-series core of electrophysiology
// analysis: resampling signals onto a shared clock, binning irregular
// event streams and splitting spike features per unit.
//
// # Features
//
//   - Multi-source resampling onto one regular grid (zero-order hold,
//     nearest, linear and spline interpolation, fill or extrapolate)
//   - 2D histogram aggregation over regular or unique-value bins
//   - Per-cluster spike binning with optional interval labels
//   - Per-unit demultiplexing of flat spike features
//   - Synchronisation of multi-probe spike times onto the session clock
//   - Firing-rate, Fano factor and autocorrelation summaries
//
// # Quick Start
//
// Resample two signals onto a 10 ms grid:
//
//	wheel, _ := timeseries.NewVector(wheelTimes, wheelPos, "wheel")
//	licks, _ := timeseries.NewVector(lickTimes, lickRate, "licks")
//	synced, err := processing.Sync(0.01, []*timeseries.TimeSeries{wheel, licks}, nil, nil)
//
// Bin spikes in 50 ms bins:
//
//	spikes, _ := timeseries.NewVector(times, clusters, processing.ClustersColumn)
//	rates, err := processing.BinSpikes(spikes, 0.05, true)
//
// # Packages
//
//   - timeseries: the TimeSeries container and CSV I/O
//   - processing: Sync, Bincount2D, BinSpikes, GetUnitsBunch and interpolation
//   - stats: autocorrelation, Ljung-Box and firing-rate summaries
//   - ephys: spike-time synchronisation of multi-probe sessions
//   - batch: bounded parallel map over sessions and probes
//   - config, logger: configuration and structured logging for cmd/brainbox
package brainbox
