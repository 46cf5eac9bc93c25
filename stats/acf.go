package stats

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/brainbox/timeseries"
)

// z95 is the two-sided 95% normal quantile.
const z95 = 1.96

// ACF returns the sample autocorrelation of values for lags 0 to maxLag.
// maxLag is capped at len(values)-1. A constant or empty signal has no
// autocorrelation and yields nil.
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	maxLag = min(maxLag, n-1)
	if maxLag < 0 {
		return nil
	}

	centered := make([]float64, n)
	copy(centered, values)
	floats.AddConst(-stat.Mean(values, nil), centered)

	energy := floats.Dot(centered, centered)
	if energy == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := range acf {
		acf[k] = floats.Dot(centered[k:], centered[:n-k]) / energy
	}
	return acf
}

// PACF returns the partial autocorrelation of values for lags 0 to maxLag,
// solved lag by lag with the Durbin-Levinson recursion. Lag 0 is 1 by
// definition. A lag whose recursion degenerates is reported as 0.
func PACF(values []float64, maxLag int) []float64 {
	maxLag = min(maxLag, len(values)-1)
	if maxLag < 1 {
		return nil
	}
	r := ACF(values, maxLag)
	if r == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1

	// coef[j] is the lag-j coefficient of the order k-1 autoregression.
	coef := []float64{0, r[1]}
	pacf[1] = r[1]
	for k := 2; k <= maxLag; k++ {
		num, den := r[k], 1.0
		for j := 1; j < k; j++ {
			num -= coef[j] * r[k-j]
			den -= coef[j] * r[j]
		}
		if den == 0 {
			coef = append(coef, 0)
			continue
		}

		phi := num / den
		next := make([]float64, k+1)
		for j := 1; j < k; j++ {
			next[j] = coef[j] - phi*coef[k-j]
		}
		next[k] = phi
		coef = next
		pacf[k] = phi
	}
	return pacf
}

// CorrelogramResult is an ACF or PACF with its white-noise band: values
// outside ±ConfBounds are significant at 95%.
type CorrelogramResult struct {
	Lags       []int
	Values     []float64
	ConfBounds float64
}

// ACFWithConfidence is ACF with the 95% band of a series of len(values).
func ACFWithConfidence(values []float64, maxLag int) *CorrelogramResult {
	return correlogram(ACF(values, maxLag), len(values))
}

// PACFWithConfidence is PACF with the 95% band of a series of len(values).
func PACFWithConfidence(values []float64, maxLag int) *CorrelogramResult {
	return correlogram(PACF(values, maxLag), len(values))
}

func correlogram(values []float64, n int) *CorrelogramResult {
	if values == nil {
		return nil
	}
	lags := make([]int, len(values))
	for i := range lags {
		lags[i] = i
	}
	return &CorrelogramResult{
		Lags:       lags,
		Values:     values,
		ConfBounds: z95 / math.Sqrt(float64(n)),
	}
}

// SignificantLags lists the lags above 0 whose magnitude exceeds bound.
func SignificantLags(values []float64, bound float64) []int {
	var lags []int
	for k, v := range values {
		if k > 0 && math.Abs(v) > bound {
			lags = append(lags, k)
		}
	}
	return lags
}

// ColumnACF is ACF over a named column of ts.
func ColumnACF(ts *timeseries.TimeSeries, column string, maxLag int) ([]float64, error) {
	if ts == nil {
		return nil, ErrNilSeries
	}
	values, ok := ts.Column(column)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownColumn, "%q", column)
	}
	acf := ACF(values, maxLag)
	if acf == nil {
		return nil, errors.Wrapf(ErrConstant, "column %q", column)
	}
	return acf, nil
}
