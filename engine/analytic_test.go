package engine

import (
	"math"
	"testing"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/model"
	"github.com/banachtech/quantmodeling/pricing"
	"github.com/banachtech/quantmodeling/util"
	"github.com/stretchr/testify/require"
)

const (
	refS0    = 100.0
	refK     = 100.0
	refT     = 1.0
	refR     = 0.05
	refQ     = 0.02
	refSigma = 0.20
)

func bsContext(s0, r, q, sigma float64, settings Settings) Context {
	return Context{Settings: settings, Model: model.NewBlackScholes(s0, r, q, sigma)}
}

func refContext(settings Settings) Context {
	return bsContext(refS0, refR, refQ, refSigma, settings)
}

func euroVanilla(optType instrument.OptionType, strike, maturity float64) *instrument.VanillaOption {
	return &instrument.VanillaOption{
		Payoff:   instrument.NewPlainVanilla(optType, strike),
		Exercise: instrument.NewEuropean(maturity),
		Notional: 1.0,
	}
}

func greek(t *testing.T, g *pricing.Greek) float64 {
	t.Helper()
	require.NotNil(t, g)
	return g.Value
}

func TestAnalyticCallReferenceValues(t *testing.T) {
	eng := NewAnalyticVanilla(refContext(Settings{}))
	res, err := eng.PriceVanilla(euroVanilla(instrument.Call, refK, refT))
	require.NoError(t, err)

	require.InDelta(t, 9.22701, res.NPV, 1e-4)
	require.InDelta(t, 0.586851, greek(t, res.Greeks.Delta), 1e-4)
	require.InDelta(t, 0.0189506, greek(t, res.Greeks.Gamma), 1e-4)
	require.InDelta(t, 37.9012, greek(t, res.Greeks.Vega), 1e-4)
	require.InDelta(t, -5.08932, greek(t, res.Greeks.Theta), 1e-4)
	require.InDelta(t, 49.4581, greek(t, res.Greeks.Rho), 1e-4)
	require.Equal(t, 0.0, res.MCStdError)
}

func TestAnalyticPutReferenceValues(t *testing.T) {
	eng := NewAnalyticVanilla(refContext(Settings{}))
	res, err := eng.PriceVanilla(euroVanilla(instrument.Put, refK, refT))
	require.NoError(t, err)

	require.InDelta(t, 6.33008, res.NPV, 1e-4)
	require.InDelta(t, -0.393348, greek(t, res.Greeks.Delta), 1e-4)
}

func TestCallPutParity(t *testing.T) {
	src := util.NewSource(11)
	for i := 0; i < 50; i++ {
		s := util.RandomScenario(src)
		ctx := bsContext(s.Spot, s.Rate, s.Dividend, s.Vol, Settings{})
		eng := NewAnalyticVanilla(ctx)

		call, err := eng.PriceVanilla(euroVanilla(instrument.Call, s.Strike, s.Maturity))
		require.NoError(t, err)
		put, err := eng.PriceVanilla(euroVanilla(instrument.Put, s.Strike, s.Maturity))
		require.NoError(t, err)

		want := s.Spot*math.Exp(-s.Dividend*s.Maturity) - s.Strike*math.Exp(-s.Rate*s.Maturity)
		require.InDelta(t, want, call.NPV-put.NPV, 1e-10)

		// Delta parity, rho parity, and shared gamma/vega
		require.InDelta(t, math.Exp(-s.Dividend*s.Maturity),
			greek(t, call.Greeks.Delta)-greek(t, put.Greeks.Delta), 1e-10)
		require.InDelta(t, s.Maturity*s.Strike*math.Exp(-s.Rate*s.Maturity),
			greek(t, call.Greeks.Rho)-greek(t, put.Greeks.Rho), 1e-9)
		require.InDelta(t, greek(t, call.Greeks.Gamma), greek(t, put.Greeks.Gamma), 1e-12)
		require.InDelta(t, greek(t, call.Greeks.Vega), greek(t, put.Greeks.Vega), 1e-12)
	}
}

func TestPriceBounds(t *testing.T) {
	src := util.NewSource(13)
	for i := 0; i < 50; i++ {
		s := util.RandomScenario(src)
		eng := NewAnalyticVanilla(bsContext(s.Spot, s.Rate, s.Dividend, s.Vol, Settings{}))

		call, err := eng.PriceVanilla(euroVanilla(instrument.Call, s.Strike, s.Maturity))
		require.NoError(t, err)
		put, err := eng.PriceVanilla(euroVanilla(instrument.Put, s.Strike, s.Maturity))
		require.NoError(t, err)

		require.GreaterOrEqual(t, call.NPV, 0.0)
		require.LessOrEqual(t, call.NPV, s.Spot*math.Exp(-s.Dividend*s.Maturity)+1e-12)
		require.GreaterOrEqual(t, put.NPV, 0.0)
		require.LessOrEqual(t, put.NPV, s.Strike*math.Exp(-s.Rate*s.Maturity)+1e-12)
	}
}

func TestCallMonotoneInSpot(t *testing.T) {
	prev := -math.MaxFloat64
	for spot := 60.0; spot <= 140.0; spot += 5.0 {
		eng := NewAnalyticVanilla(bsContext(spot, refR, refQ, refSigma, Settings{}))
		res, err := eng.PriceVanilla(euroVanilla(instrument.Call, refK, refT))
		require.NoError(t, err)
		require.Greater(t, res.NPV, prev)
		prev = res.NPV
	}
}

func TestReportedDeltaMatchesFiniteDifference(t *testing.T) {
	price := func(spot float64) float64 {
		eng := NewAnalyticVanilla(bsContext(spot, refR, refQ, refSigma, Settings{}))
		res, err := eng.PriceVanilla(euroVanilla(instrument.Call, refK, refT))
		require.NoError(t, err)
		return res.NPV
	}

	eng := NewAnalyticVanilla(refContext(Settings{}))
	res, err := eng.PriceVanilla(euroVanilla(instrument.Call, refK, refT))
	require.NoError(t, err)

	h := 0.01
	fd := (price(refS0+h) - price(refS0-h)) / (2.0 * h)
	require.InDelta(t, fd, greek(t, res.Greeks.Delta), 1e-6)
}

func TestAnalyticVanillaValidation(t *testing.T) {
	eng := NewAnalyticVanilla(refContext(Settings{}))

	tests := []struct {
		name        string
		opt         *instrument.VanillaOption
		wantInvalid bool
	}{
		{"nil payoff", &instrument.VanillaOption{Exercise: instrument.NewEuropean(1), Notional: 1}, true},
		{"nil exercise", &instrument.VanillaOption{Payoff: instrument.NewPlainVanilla(instrument.Call, 100), Notional: 1}, true},
		{"non-positive maturity", euroVanilla(instrument.Call, 100, 0), true},
		{"non-positive strike", euroVanilla(instrument.Call, -1, 1), true},
		{"zero notional", &instrument.VanillaOption{
			Payoff:   instrument.NewPlainVanilla(instrument.Call, 100),
			Exercise: instrument.NewEuropean(1),
		}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := eng.PriceVanilla(test.opt)
			var invalid *pricing.InvalidInputError
			require.ErrorAs(t, err, &invalid)
		})
	}

	t.Run("american exercise rejected", func(t *testing.T) {
		opt := &instrument.VanillaOption{
			Payoff:   instrument.NewPlainVanilla(instrument.Put, 100),
			Exercise: instrument.NewAmerican(1),
			Notional: 1,
		}
		_, err := eng.PriceVanilla(opt)
		var unsupported *pricing.UnsupportedInstrumentError
		require.ErrorAs(t, err, &unsupported)
	})
}

func TestAnalyticVanillaRequiresLocalVol(t *testing.T) {
	eng := NewAnalyticVanilla(Context{Model: model.NewFlatRate(0.05)})
	_, err := eng.PriceVanilla(euroVanilla(instrument.Call, refK, refT))
	var invalid *pricing.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestUnsupportedVariantsAtDispatch(t *testing.T) {
	eng := NewAnalyticVanilla(refContext(Settings{}))

	var unsupported *pricing.UnsupportedInstrumentError
	_, err := instrument.Price(&instrument.EquityFuture{Strike: 100, Maturity: 1, Notional: 1}, eng)
	require.ErrorAs(t, err, &unsupported)
	_, err = instrument.Price(&instrument.ZeroCouponBond{Maturity: 1, Notional: 1}, eng)
	require.ErrorAs(t, err, &unsupported)
}
