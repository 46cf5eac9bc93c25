// Package stats provides summary statistics for binned spike trains and
// other regular time series.
//
// # Autocorrelation Functions
//
// Analyze autocorrelation patterns of a binned signal:
//
//	// Autocorrelation Function
//	acf := stats.ACF(counts, 20)
//
//	// Partial Autocorrelation Function
//	pacf := stats.PACF(counts, 20)
//
//	// ACF with confidence bounds
//	res := stats.ACFWithConfidence(counts, 20)
//	significant := stats.SignificantLags(res.Values, res.ConfBounds)
//
//	// ACF of one unit of a BinSpikes output
//	acf, err := stats.ColumnACF(binned, "12", 20)
//
// # Temporal Structure
//
// Test a spike train for autocorrelation up to a horizon:
//
//	lb := stats.LjungBox(counts, 10, 0)
//	if lb.PValue < 0.05 {
//	    // bursting, rhythmic or drifting
//	}
//
//	bp := stats.BoxPierce(counts, 10, 0)
//
// # Firing Rates
//
// Per-unit rates and Fano factors of a binned series:
//
//	rates, err := stats.FiringRates(binned, 0.05) // spikes/s
//	fano, err := stats.FanoFactors(binned)
//
//	summary, err := stats.Summarize(binned, 0.05, 10)
package stats
