package processing_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/brainbox/processing"
)

// TestBincount2D_UniqueValues aggregates over unique values on both axes.
func TestBincount2D_UniqueValues(t *testing.T) {
	x := []float64{0, 0, 1, 1, 2}
	y := []float64{0, 1, 0, 1, 0}

	h, err := processing.Bincount2D(x, y, nil)
	require.NoError(t, err)

	r, c := h.Counts.Dims()
	assert.Equal(t, 2, r, "two unique y values")
	assert.Equal(t, 3, c, "three unique x values")
	assert.Equal(t, []float64{0, 1, 2}, h.XScale)
	assert.Equal(t, []float64{0, 1}, h.YScale)
	assert.Equal(t, []float64{1, 1, 1}, mat.Row(nil, 0, h.Counts))
	assert.Equal(t, []float64{1, 1, 0}, mat.Row(nil, 1, h.Counts))
	assert.Equal(t, 5.0, h.Total())
}

// TestBincount2D_Weights sums weights instead of counting.
func TestBincount2D_Weights(t *testing.T) {
	x := []float64{0, 0, 1, 1, 2}
	y := []float64{0, 1, 0, 1, 0}
	w := []float64{1, 2, 3, 4, 5}

	h, err := processing.Bincount2D(x, y, &processing.BinOptions{Weights: w})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5}, mat.Row(nil, 0, h.Counts))
	assert.Equal(t, []float64{2, 4, 0}, mat.Row(nil, 1, h.Counts))
	assert.Equal(t, floats.Sum(w), h.Total())
}

// TestBincount2D_RegularBins checks scale construction and indexing.
func TestBincount2D_RegularBins(t *testing.T) {
	x := []float64{0, 0.5, 1, 1.5, 2}
	y := []float64{7, 7, 7, 7, 7}

	h, err := processing.Bincount2D(x, y, &processing.BinOptions{XBin: 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, h.XScale)
	assert.Equal(t, []float64{7}, h.YScale)
	assert.Equal(t, []float64{2, 2, 1}, mat.Row(nil, 0, h.Counts))
}

// TestBincount2D_UpperEdgeInRange sweeps bin widths and ranges and checks
// every value in [lo, hi], including hi itself, lands in a valid bin.
func TestBincount2D_UpperEdgeInRange(t *testing.T) {
	cases := []struct{ lo, hi, bin float64 }{
		{0, 1, 0.1},
		{0, 1, 0.3},
		{-2.5, 7.3, 0.7},
		{0.1, 0.4, 1},
		{100, 100.05, 0.01},
		{3, 3, 0.5},
	}

	for _, tc := range cases {
		x := floats.Span(make([]float64, 101), tc.lo, tc.hi)
		for i := range x {
			x[i] = math.Min(math.Max(x[i], tc.lo), tc.hi)
		}
		x[len(x)-1] = tc.hi
		y := make([]float64, len(x))

		h, err := processing.Bincount2D(x, y, &processing.BinOptions{
			XBin:    tc.bin,
			XLim:    &processing.Limits{Lo: tc.lo, Hi: tc.hi},
			Outside: processing.OutsideError,
		})
		require.NoError(t, err, "lo=%v hi=%v bin=%v", tc.lo, tc.hi, tc.bin)
		assert.Equal(t, float64(len(x)), h.Total(), "no value may be lost")

		// The last bin must still start at or below hi.
		assert.LessOrEqual(t, h.XScale[len(h.XScale)-1], tc.hi+1e-9)
	}
}

// TestBincount2D_OutsidePolicies covers values beyond explicit limits.
func TestBincount2D_OutsidePolicies(t *testing.T) {
	x := []float64{-1, 0, 5, 10, 11}
	y := make([]float64, len(x))
	lim := &processing.Limits{Lo: 0, Hi: 10}

	h, err := processing.Bincount2D(x, y, &processing.BinOptions{XBin: 5, XLim: lim})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5, 10}, h.XScale)
	assert.Equal(t, []float64{1, 1, 1}, mat.Row(nil, 0, h.Counts), "drop by default")

	h, err = processing.Bincount2D(x, y, &processing.BinOptions{XBin: 5, XLim: lim, Outside: processing.OutsideClamp})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 2}, mat.Row(nil, 0, h.Counts))

	_, err = processing.Bincount2D(x, y, &processing.BinOptions{XBin: 5, XLim: lim, Outside: processing.OutsideError})
	assert.ErrorIs(t, err, processing.ErrOutOfRange)
}

// TestBincount2D_NonFinite covers NaN coordinates.
func TestBincount2D_NonFinite(t *testing.T) {
	x := []float64{0, math.NaN(), 1}
	y := []float64{0, 0, 0}

	_, err := processing.Bincount2D(x, y, nil)
	assert.ErrorIs(t, err, processing.ErrNonFinite, "unique axis rejects NaN")

	h, err := processing.Bincount2D(x, y, &processing.BinOptions{XBin: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, h.Total(), "regular axis drops NaN")

	_, err = processing.Bincount2D(x, y, &processing.BinOptions{XBin: 1, Outside: processing.OutsideClamp})
	assert.ErrorIs(t, err, processing.ErrNonFinite)
}

// TestBincount2D_Errors covers invalid arguments.
func TestBincount2D_Errors(t *testing.T) {
	_, err := processing.Bincount2D(nil, nil, nil)
	assert.ErrorIs(t, err, processing.ErrEmptyInput)

	_, err = processing.Bincount2D([]float64{1, 2}, []float64{1}, nil)
	assert.ErrorIs(t, err, processing.ErrShapeMismatch)

	_, err = processing.Bincount2D([]float64{1, 2}, []float64{1, 2}, &processing.BinOptions{Weights: []float64{1}})
	assert.ErrorIs(t, err, processing.ErrShapeMismatch)

	_, err = processing.Bincount2D([]float64{1, 2}, []float64{1, 2}, &processing.BinOptions{YBin: -1})
	assert.ErrorIs(t, err, processing.ErrInvalidBinWidth)

	_, err = processing.Bincount2D([]float64{1, 2}, []float64{1, 2}, &processing.BinOptions{
		XBin: 1,
		XLim: &processing.Limits{Lo: 3, Hi: 1},
	})
	assert.ErrorIs(t, err, processing.ErrInvalidLimits)
}

// TestBincount2D_GroupBySum compares unique-value aggregation with a
// straightforward group-by on random integer coordinates.
func TestBincount2D_GroupBySum(t *testing.T) {
	rng := rand.New(rand.NewSource(1<<32 | 2))
	n := 500
	x := make([]float64, n)
	y := make([]float64, n)
	w := make([]float64, n)
	want := map[[2]float64]float64{}
	for i := range x {
		x[i] = float64(rng.Intn(12))
		y[i] = float64(rng.Intn(5) * 3)
		w[i] = rng.Float64()
		want[[2]float64{x[i], y[i]}] += w[i]
	}

	h, err := processing.Bincount2D(x, y, &processing.BinOptions{Weights: w})
	require.NoError(t, err)
	assert.InDelta(t, floats.Sum(w), h.Total(), 1e-9)

	for j, yv := range h.YScale {
		for i, xv := range h.XScale {
			assert.InDelta(t, want[[2]float64{xv, yv}], h.Counts.At(j, i), 1e-12)
		}
	}

	counts, err := processing.Bincount2D(x, y, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(n), counts.Total())
}
