package engine

import (
	"math"
	"testing"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
	"github.com/banachtech/quantmodeling/util"
	"github.com/stretchr/testify/require"
)

func asianOption(optType instrument.OptionType, avg instrument.AverageType, strike, maturity float64) *instrument.AsianOption {
	var payoff instrument.Payoff
	if avg == instrument.Arithmetic {
		payoff = instrument.NewArithmeticAsian(optType, strike)
	} else {
		payoff = instrument.NewGeometricAsian(optType, strike)
	}
	return &instrument.AsianOption{
		Payoff:   payoff,
		Exercise: instrument.NewEuropean(maturity),
		Average:  avg,
		Notional: 1.0,
	}
}

func TestGeometricBelowArithmetic(t *testing.T) {
	eng := NewAnalyticAsian(refContext(Settings{}))

	arith, err := eng.PriceAsian(asianOption(instrument.Call, instrument.Arithmetic, refK, refT))
	require.NoError(t, err)
	geo, err := eng.PriceAsian(asianOption(instrument.Call, instrument.Geometric, refK, refT))
	require.NoError(t, err)

	require.Greater(t, arith.NPV-geo.NPV, 0.01)
}

func TestGeometricBelowArithmeticAcrossScenarios(t *testing.T) {
	src := util.NewSource(17)
	for i := 0; i < 30; i++ {
		s := util.RandomScenario(src)
		eng := NewAnalyticAsian(bsContext(s.Spot, s.Rate, s.Dividend, s.Vol, Settings{}))

		arith, err := eng.PriceAsian(asianOption(instrument.Call, instrument.Arithmetic, s.Strike, s.Maturity))
		require.NoError(t, err)
		geo, err := eng.PriceAsian(asianOption(instrument.Call, instrument.Geometric, s.Strike, s.Maturity))
		require.NoError(t, err)

		require.GreaterOrEqual(t, arith.NPV, geo.NPV-1e-9)
	}
}

func TestArithmeticAsianZeroVolIsDiscountedIntrinsic(t *testing.T) {
	eng := NewAnalyticAsian(bsContext(refS0, refR, refQ, 0.0, Settings{}))
	res, err := eng.PriceAsian(asianOption(instrument.Call, instrument.Arithmetic, 95, refT))
	require.NoError(t, err)

	mu := refR - refQ
	forwardAvg := refS0 * (math.Exp(mu*refT) - 1.0) / (mu * refT)
	want := math.Exp(-refR*refT) * math.Max(forwardAvg-95, 0)
	require.InDelta(t, want, res.NPV, 1e-12)
	require.False(t, math.IsNaN(res.NPV))
}

func TestAsianExpiredIsIntrinsic(t *testing.T) {
	eng := NewAnalyticAsian(refContext(Settings{}))

	for _, avg := range []instrument.AverageType{instrument.Arithmetic, instrument.Geometric} {
		res, err := eng.PriceAsian(asianOption(instrument.Put, avg, 110, 0))
		require.NoError(t, err)
		require.InDelta(t, 10.0, res.NPV, 1e-12)
		require.False(t, math.IsNaN(res.NPV))
	}
}

func TestArithmeticAsianGreeksFinite(t *testing.T) {
	eng := NewAnalyticAsian(refContext(Settings{}))
	res, err := eng.PriceAsian(asianOption(instrument.Call, instrument.Arithmetic, refK, refT))
	require.NoError(t, err)

	require.Greater(t, greek(t, res.Greeks.Delta), 0.0)
	require.Greater(t, greek(t, res.Greeks.Gamma), 0.0)
	require.Greater(t, greek(t, res.Greeks.Vega), 0.0)
	require.Less(t, greek(t, res.Greeks.Theta), 0.0)
	for _, g := range []*pricing.Greek{res.Greeks.Delta, res.Greeks.Gamma, res.Greeks.Vega, res.Greeks.Theta, res.Greeks.Rho} {
		require.False(t, math.IsNaN(g.Value))
	}
}

func TestGeometricAsianVegaClosedForm(t *testing.T) {
	eng := NewAnalyticAsian(refContext(Settings{}))
	res, err := eng.PriceAsian(asianOption(instrument.Call, instrument.Geometric, refK, refT))
	require.NoError(t, err)

	// vega = notional * S0 * e^{-qT} * n(d1) * T / 3
	sigmaG := refSigma / math.Sqrt(3.0)
	bG := (refR-refQ-0.5*refSigma*refSigma)/2.0 + 0.5*sigmaG*sigmaG
	f := refS0 * math.Exp(bG*refT)
	stddev := sigmaG * math.Sqrt(refT)
	d1 := (math.Log(f/refK) + 0.5*stddev*stddev) / stddev
	want := refS0 * math.Exp(-refQ*refT) * math.Exp(-0.5*d1*d1) / math.Sqrt(2*math.Pi) * refT / 3.0
	require.InDelta(t, want, greek(t, res.Greeks.Vega), 1e-10)
}

func TestAsianRejectsAmericanExercise(t *testing.T) {
	eng := NewAnalyticAsian(refContext(Settings{}))
	opt := asianOption(instrument.Call, instrument.Arithmetic, refK, refT)
	opt.Exercise = instrument.NewAmerican(refT)

	_, err := eng.PriceAsian(opt)
	var unsupported *pricing.UnsupportedInstrumentError
	require.ErrorAs(t, err, &unsupported)
}
