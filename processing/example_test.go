package processing_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/brainbox/processing"
	"github.com/sartorproj/brainbox/timeseries"
)

func ExampleBincount2D() {
	x := []float64{0, 0, 1, 1, 2}
	y := []float64{0, 1, 0, 1, 0}

	h, err := processing.Bincount2D(x, y, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("x:", h.XScale)
	fmt.Println("y:", h.YScale)
	for j := range h.YScale {
		fmt.Println(mat.Row(nil, j, h.Counts))
	}
	// Output:
	// x: [0 1 2]
	// y: [0 1]
	// [1 1 1]
	// [1 1 0]
}

func ExampleSync() {
	wheel, _ := timeseries.NewVector([]float64{0, 1, 2, 3}, []float64{0, 10, 20, 30}, "wheel")

	opts := processing.DefaultSyncOptions()
	opts.Interp = processing.Linear

	synced, err := processing.Sync(0.5, []*timeseries.TimeSeries{wheel}, nil, opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(synced.Columns)
	fmt.Println(synced.Times)
	fmt.Println(synced.Col(0))
	// Output:
	// [wheel]
	// [0 0.5 1 1.5 2 2.5]
	// [0 5 10 15 20 25]
}

func ExampleBinSpikes() {
	spikes, _ := timeseries.NewVector(
		[]float64{0.1, 0.2, 0.3, 0.4},
		[]float64{0, 2, 0, 1},
		processing.ClustersColumn,
	)

	binned, err := processing.BinSpikes(spikes, 1, false)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(binned.Columns)
	fmt.Println(binned.Row(0))
	// Output:
	// [0 1 2]
	// [2 1 1]
}

func ExampleGetUnitsBunch() {
	spikes := processing.Bunch{
		"clusters": {0, 2, 0, 3},
		"amps":     {1, 2, 3, 4},
	}

	units, err := processing.GetUnitsBunch(spikes, "amps")
	if err != nil {
		fmt.Println(err)
		return
	}
	for u := 0; u < 4; u++ {
		fmt.Println(u, units["amps"].Unit(u))
	}
	// Output:
	// 0 [1 3]
	// 1 []
	// 2 [2]
	// 3 [4]
}
