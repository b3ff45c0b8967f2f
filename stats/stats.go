// Package stats holds the small numeric helpers shared by the pricing
// engines: the standard normal density and distribution, and Welford's
// online accumulator for Monte Carlo means and standard errors.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var unitNormal = distuv.UnitNormal

// NormPDF is the standard normal density.
func NormPDF(x float64) float64 {
	return unitNormal.Prob(x)
}

// NormCDF is the standard normal cumulative distribution.
func NormCDF(x float64) float64 {
	return unitNormal.CDF(x)
}

// Welford accumulates a running mean and sum of squared deviations (M2)
// in one pass. Every Monte Carlo estimator in the engines reuses it.
type Welford struct {
	N    int
	Mean float64
	M2   float64
}

// Add folds one observation into the accumulator.
func (w *Welford) Add(x float64) {
	w.N++
	delta := x - w.Mean
	w.Mean += delta / float64(w.N)
	w.M2 += delta * (x - w.Mean)
}

// Variance is the unbiased sample variance, 0 until two observations.
func (w *Welford) Variance() float64 {
	if w.N < 2 {
		return 0
	}
	return w.M2 / float64(w.N-1)
}

// StdError is the standard error of the mean, sqrt(M2/((n-1)n)).
func (w *Welford) StdError() float64 {
	if w.N < 2 {
		return 0
	}
	return math.Sqrt(w.M2 / (float64(w.N-1) * float64(w.N)))
}
