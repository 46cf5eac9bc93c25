package stats

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// minPortmanteauSamples is the shortest series the portmanteau tests accept.
const minPortmanteauSamples = 10

// PortmanteauResult is the outcome of a Ljung-Box or Box-Pierce test.
type PortmanteauResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBox tests the null hypothesis that values have no autocorrelation
// up to lag lags. For a binned spike train a p-value below 0.05 points at
// temporal structure such as bursting or slow rate drift. fitdf is
// subtracted from the degrees of freedom, which never drop below one.
// It returns nil for fewer than 10 samples, lags < 1 or a constant signal.
func LjungBox(values []float64, lags, fitdf int) *PortmanteauResult {
	n := float64(len(values))
	return portmanteau(values, lags, fitdf, func(k int) float64 {
		return n * (n + 2) / (n - float64(k))
	})
}

// BoxPierce is the unweighted variant of LjungBox. It has a smaller
// statistic on short series.
func BoxPierce(values []float64, lags, fitdf int) *PortmanteauResult {
	n := float64(len(values))
	return portmanteau(values, lags, fitdf, func(int) float64 { return n })
}

// portmanteau sums weight(k)*acf[k]^2 over lags 1..lags and reads the
// p-value off a chi-square distribution.
func portmanteau(values []float64, lags, fitdf int, weight func(k int) float64) *PortmanteauResult {
	n := len(values)
	if n < minPortmanteauSamples || lags < 1 {
		return nil
	}
	lags = min(lags, n-1)

	acf := ACF(values, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += weight(k) * acf[k] * acf[k]
	}

	dof := max(lags-fitdf, 1)
	return &PortmanteauResult{
		Statistic: q,
		PValue:    distuv.ChiSquared{K: float64(dof)}.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}
}
