package market

import (
	"math"
	"testing"

	"github.com/banachtech/quantmodeling/pricing"
	"github.com/stretchr/testify/require"
)

func TestFlatCurve(t *testing.T) {
	c := NewFlatCurve(0.03)
	require.InDelta(t, math.Exp(-0.03*2.0), c.Discount(2.0), 1e-15)
	require.Equal(t, 1.0, c.Discount(0))
	require.Equal(t, 1.0, c.Discount(-1))
}

func TestCurveSingleKnotRoundTrip(t *testing.T) {
	c, err := NewCurve([]float64{1.0}, []float64{0.96})
	require.NoError(t, err)
	require.InDelta(t, 0.96, c.Discount(1.0), 1e-10)
}

func TestCurveLogLinearInterior(t *testing.T) {
	c, err := NewCurve([]float64{1.0, 2.0}, []float64{0.95, 0.90})
	require.NoError(t, err)

	want := math.Exp(0.5*math.Log(0.95) + 0.5*math.Log(0.90))
	require.InDelta(t, want, c.Discount(1.5), 1e-12)

	// Knots reproduce exactly
	require.InDelta(t, 0.95, c.Discount(1.0), 1e-12)
	require.InDelta(t, 0.90, c.Discount(2.0), 1e-12)
}

func TestCurveFlatExtrapolation(t *testing.T) {
	c, err := NewCurve([]float64{1.0, 2.0}, []float64{0.95, 0.90})
	require.NoError(t, err)

	require.Equal(t, 0.95, c.Discount(0.5))
	require.Equal(t, 0.90, c.Discount(10.0))
	require.Equal(t, 1.0, c.Discount(0.0))
}

func TestCurveValidation(t *testing.T) {
	tests := []struct {
		name  string
		times []float64
		dfs   []float64
	}{
		{"empty", nil, nil},
		{"mismatched lengths", []float64{1, 2}, []float64{0.9}},
		{"non-increasing times", []float64{1, 1}, []float64{0.95, 0.9}},
		{"non-positive time", []float64{0, 1}, []float64{0.95, 0.9}},
		{"non-positive df", []float64{1, 2}, []float64{0.95, -0.9}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewCurve(test.times, test.dfs)
			var invalid *pricing.InvalidInputError
			require.ErrorAs(t, err, &invalid)
		})
	}
}
