package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/brainbox/timeseries"
)

func ar1(n int, phi float64) []float64 {
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + (float64(i%10)-5)/10
	}
	return values
}

func TestACF(t *testing.T) {
	acf := ACF([]float64{1, 2, 3, 4}, 2)
	require.NotNil(t, acf)
	assert.InDeltaSlice(t, []float64{1, 0.25, -0.3}, acf, 1e-12)

	acf = ACF(ar1(100, 0.8), 10)
	require.Len(t, acf, 11)
	assert.InDelta(t, 1.0, acf[0], 1e-10, "ACF at lag 0 should be 1")
	assert.Greater(t, acf[1], 0.5, "AR(1) with phi=0.8 is strongly correlated at lag 1")

	assert.Len(t, ACF([]float64{1, 2, 3}, 10), 3, "maxLag is capped at n-1")
	assert.Nil(t, ACF([]float64{2, 2, 2}, 2), "constant signal")
	assert.Nil(t, ACF(nil, 2))
}

func TestPACF(t *testing.T) {
	pacf := PACF(ar1(100, 0.7), 10)
	require.Len(t, pacf, 11)
	assert.InDelta(t, 1.0, pacf[0], 1e-10, "PACF at lag 0 should be 1")

	acf := ACF(ar1(100, 0.7), 1)
	assert.InDelta(t, acf[1], pacf[1], 1e-12, "PACF and ACF agree at lag 1")

	assert.Nil(t, PACF([]float64{1}, 3))
}

func TestCorrelogramConfidence(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i) + math.Sin(float64(i)/10)
	}

	result := ACFWithConfidence(values, 20)
	require.NotNil(t, result)
	assert.InDelta(t, 1.96/math.Sqrt(100), result.ConfBounds, 1e-12)
	assert.Equal(t, 20, result.Lags[20])

	presult := PACFWithConfidence(values, 5)
	require.NotNil(t, presult)
	assert.Len(t, presult.Values, 6)

	assert.Nil(t, ACFWithConfidence([]float64{1, 1, 1}, 2))
}

func TestSignificantLags(t *testing.T) {
	values := []float64{1.0, 0.5, 0.3, 0.1, 0.05, -0.2, -0.5}
	assert.Equal(t, []int{1, 2, 5, 6}, SignificantLags(values, 0.15))
}

func TestColumnACF(t *testing.T) {
	ts, err := timeseries.NewFromRows(
		[]float64{0, 1, 2, 3},
		[][]float64{{1, 5}, {2, 5}, {3, 5}, {4, 5}},
		[]string{"a", "b"},
	)
	require.NoError(t, err)

	acf, err := ColumnACF(ts, "a", 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.25, -0.3}, acf, 1e-12)

	_, err = ColumnACF(ts, "b", 2)
	assert.ErrorIs(t, err, ErrConstant)

	_, err = ColumnACF(ts, "c", 2)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = ColumnACF(nil, "a", 2)
	assert.ErrorIs(t, err, ErrNilSeries)
}

func TestLjungBox(t *testing.T) {
	autocorrelated := ar1(100, 0.9)

	result := LjungBox(autocorrelated, 10, 0)
	require.NotNil(t, result)
	assert.Equal(t, 10, result.DOF)
	assert.Greater(t, result.Statistic, 0.0)
	assert.Less(t, result.PValue, 0.01)

	result = LjungBox(autocorrelated, 10, 12)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.DOF, "degrees of freedom never drop below one")

	assert.Nil(t, LjungBox(autocorrelated[:5], 3, 0), "too short")
	assert.Nil(t, LjungBox(autocorrelated, 0, 0))
}

func TestBoxPierce(t *testing.T) {
	values := ar1(100, 0.9)

	bp := BoxPierce(values, 10, 0)
	require.NotNil(t, bp)
	lb := LjungBox(values, 10, 0)
	assert.Less(t, bp.Statistic, lb.Statistic, "Ljung-Box weights later lags more")
	assert.GreaterOrEqual(t, bp.PValue, 0.0)
	assert.LessOrEqual(t, bp.PValue, 1.0)
}

func binnedCounts(t *testing.T) *timeseries.TimeSeries {
	t.Helper()
	ts, err := timeseries.NewFromRows(
		[]float64{0, 0.5, 1, 1.5},
		[][]float64{{2, 0}, {0, 0}, {2, 0}, {0, 0}},
		[]string{"3", "7"},
	)
	require.NoError(t, err)
	return ts
}

func TestFiringRates(t *testing.T) {
	rates, err := FiringRates(binnedCounts(t), 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, rates)

	_, err = FiringRates(binnedCounts(t), 0)
	assert.ErrorIs(t, err, ErrInvalidBinSize)

	_, err = FiringRates(nil, 1)
	assert.ErrorIs(t, err, ErrNilSeries)
}

func TestFanoFactors(t *testing.T) {
	fano, err := FanoFactors(binnedCounts(t))
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, fano[0], 1e-12)
	assert.True(t, math.IsNaN(fano[1]), "silent unit")
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize(binnedCounts(t), 0.5, 3)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "3", summary[0].Unit)
	assert.Equal(t, 2.0, summary[0].Rate)
	assert.Nil(t, summary[0].LjungBox, "four bins are too few for the test")
	assert.Equal(t, "7", summary[1].Unit)
}
