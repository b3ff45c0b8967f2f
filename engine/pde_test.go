package engine

import (
	"testing"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
	"github.com/stretchr/testify/require"
)

func TestPDEAgreesWithAnalytic(t *testing.T) {
	settings := Settings{PDESpaceSteps: 100, PDETimeSteps: 100}
	analytic := NewAnalyticVanilla(refContext(Settings{}))

	for _, optType := range []instrument.OptionType{instrument.Call, instrument.Put} {
		opt := euroVanilla(optType, refK, refT)

		exact, err := analytic.PriceVanilla(opt)
		require.NoError(t, err)
		res, err := NewPDE(refContext(settings)).PriceVanilla(opt)
		require.NoError(t, err)

		require.InDelta(t, exact.NPV, res.NPV, 0.05)
		require.InDelta(t, greek(t, exact.Greeks.Delta), greek(t, res.Greeks.Delta), 0.01)
		require.InDelta(t, greek(t, exact.Greeks.Gamma), greek(t, res.Greeks.Gamma), 0.005)
	}
}

func TestPDEConvergesWithGridRefinement(t *testing.T) {
	opt := euroVanilla(instrument.Call, refK, refT)
	exact, err := NewAnalyticVanilla(refContext(Settings{})).PriceVanilla(opt)
	require.NoError(t, err)

	coarse, err := NewPDE(refContext(Settings{PDESpaceSteps: 50, PDETimeSteps: 50})).PriceVanilla(opt)
	require.NoError(t, err)
	fine, err := NewPDE(refContext(Settings{PDESpaceSteps: 200, PDETimeSteps: 200})).PriceVanilla(opt)
	require.NoError(t, err)

	errCoarse := abs(coarse.NPV - exact.NPV)
	errFine := abs(fine.NPV - exact.NPV)
	require.Less(t, errFine, 0.02)
	require.LessOrEqual(t, errFine, errCoarse+1e-3)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestPDERejectsAmericanExercise(t *testing.T) {
	settings := Settings{PDESpaceSteps: 100, PDETimeSteps: 100}
	_, err := NewPDE(refContext(settings)).PriceVanilla(americanVanilla(instrument.Put, refK, refT))
	var unsupported *pricing.UnsupportedInstrumentError
	require.ErrorAs(t, err, &unsupported)
}

func TestPDEValidatesGrid(t *testing.T) {
	var invalid *pricing.InvalidInputError

	_, err := NewPDE(refContext(Settings{PDESpaceSteps: 1, PDETimeSteps: 100})).PriceVanilla(euroVanilla(instrument.Call, refK, refT))
	require.ErrorAs(t, err, &invalid)

	_, err = NewPDE(refContext(Settings{PDESpaceSteps: 100})).PriceVanilla(euroVanilla(instrument.Call, refK, refT))
	require.ErrorAs(t, err, &invalid)
}
