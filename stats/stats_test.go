package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestNormCDFReferencePoints(t *testing.T) {
	require.InDelta(t, 0.5, NormCDF(0), 1e-12)
	require.InDelta(t, 0.8413447460685429, NormCDF(1), 1e-12)
	require.InDelta(t, 0.15865525393145707, NormCDF(-1), 1e-12)
	require.InDelta(t, 0.9986501019683699, NormCDF(3), 1e-12)
}

func TestNormPDFReferencePoints(t *testing.T) {
	require.InDelta(t, 1.0/math.Sqrt(2*math.Pi), NormPDF(0), 1e-15)
	require.InDelta(t, 0.24197072451914337, NormPDF(1), 1e-15)
	require.Equal(t, NormPDF(2.5), NormPDF(-2.5))
}

func TestWelfordMatchesGonum(t *testing.T) {
	xs := []float64{1.5, -0.25, 3.75, 2.0, -1.0, 0.5, 4.25, 1.25}

	var w Welford
	for _, x := range xs {
		w.Add(x)
	}

	mean, variance := stat.MeanVariance(xs, nil)
	require.InDelta(t, mean, w.Mean, 1e-12)
	require.InDelta(t, variance, w.Variance(), 1e-12)
	require.InDelta(t, math.Sqrt(variance/float64(len(xs))), w.StdError(), 1e-12)
}

func TestWelfordDegenerate(t *testing.T) {
	var w Welford
	require.Equal(t, 0.0, w.StdError())

	w.Add(2.0)
	require.Equal(t, 2.0, w.Mean)
	require.Equal(t, 0.0, w.Variance())
	require.Equal(t, 0.0, w.StdError())
}
