// Package timeseries provides the TimeSeries container shared by the
// processing, stats and ephys packages.
//
// A TimeSeries pairs a slice of timestamps with a gonum dense matrix of
// observations, one row per timestamp, and optional column labels.
//
// # Creating a Series
//
// From a single channel:
//
//	ts, err := timeseries.NewVector(times, values, "wheel")
//
// From row-major observations:
//
//	ts, err := timeseries.NewFromRows(times, [][]float64{
//	    {0.1, 3},
//	    {0.2, 4},
//	}, []string{"x", "y"})
//
// From an existing matrix:
//
//	ts, err := timeseries.New(times, mat.NewDense(2, 2, data), nil)
//
// # Accessing Columns
//
//	clusters, ok := ts.Column("clusters")
//	first := ts.Col(0)
//	mean := ts.Mean(0)
//
// # Interval Labels
//
// Binned series may carry half-open interval labels. When present,
// Times[i] is always Intervals[i].Start:
//
//	for i, iv := range ts.Intervals {
//	    fmt.Println(iv, ts.Row(i))
//	}
//
// # CSV
//
// Load and save series with a leading time column:
//
//	ts, err := timeseries.LoadCSV("wheel.csv", nil)
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.TimeColumn = "t"
//	opts.Columns = []string{"position"}
//	ts, err = timeseries.LoadCSVFromReader(r, opts)
//
//	err = timeseries.SaveCSV(ts, "out.csv")
package timeseries
