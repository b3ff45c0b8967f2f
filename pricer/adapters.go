package pricer

import (
	"github.com/banachtech/quantmodeling/engine"
	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/market"
	"github.com/banachtech/quantmodeling/model"
	"github.com/banachtech/quantmodeling/pricing"
)

func optionType(isCall bool) instrument.OptionType {
	if isCall {
		return instrument.Call
	}
	return instrument.Put
}

func priceEquityVanillaBS(in VanillaBSInput, eng EngineKind) (pricing.Result, error) {
	in = in.withDefaults()

	opt := &instrument.VanillaOption{
		Payoff:   instrument.NewPlainVanilla(optionType(in.IsCall), in.Strike),
		Exercise: instrument.NewEuropean(in.Maturity),
		Notional: 1.0,
	}
	ctx := engine.Context{
		Settings: engine.Settings{
			MCPaths:       in.NPaths,
			MCSeed:        in.Seed,
			MCAntithetic:  in.MCAntithetic,
			TreeSteps:     in.TreeSteps,
			PDESpaceSteps: in.PDESpaceSteps,
			PDETimeSteps:  in.PDETimeSteps,
		},
		Model: model.NewBlackScholes(in.Spot, in.Rate, in.Dividend, in.Vol),
	}

	switch eng {
	case MonteCarlo:
		return instrument.Price(opt, engine.NewMCVanilla(ctx))
	case PDEFiniteDifference:
		return instrument.Price(opt, engine.NewPDE(ctx))
	case BinomialTree:
		return instrument.Price(opt, engine.NewBinomial(ctx))
	case TrinomialTree:
		return instrument.Price(opt, engine.NewTrinomial(ctx))
	default:
		return instrument.Price(opt, engine.NewAnalyticVanilla(ctx))
	}
}

func priceEquityVanillaAmericanBS(in AmericanVanillaBSInput, eng EngineKind) (pricing.Result, error) {
	in = in.withDefaults()

	opt := &instrument.VanillaOption{
		Payoff:   instrument.NewPlainVanilla(optionType(in.IsCall), in.Strike),
		Exercise: instrument.NewAmerican(in.Maturity),
		Notional: 1.0,
	}
	ctx := engine.Context{
		Settings: engine.Settings{
			TreeSteps:     in.TreeSteps,
			PDESpaceSteps: in.PDESpaceSteps,
			PDETimeSteps:  in.PDETimeSteps,
		},
		Model: model.NewBlackScholes(in.Spot, in.Rate, in.Dividend, in.Vol),
	}

	switch eng {
	case BinomialTree:
		return instrument.Price(opt, engine.NewBinomial(ctx))
	case TrinomialTree:
		return instrument.Price(opt, engine.NewTrinomial(ctx))
	case PDEFiniteDifference:
		return pricing.Result{}, pricing.Unsupported("PDE finite difference is only supported for European vanilla options")
	default:
		return pricing.Result{}, pricing.InvalidInputf("unsupported engine %q for American vanilla options", eng)
	}
}

func priceEquityAsianBS(in AsianBSInput, eng EngineKind) (pricing.Result, error) {
	in = in.withDefaults()

	var avg instrument.AverageType
	var payoff instrument.Payoff
	switch in.AverageType {
	case "arithmetic":
		avg = instrument.Arithmetic
		payoff = instrument.NewArithmeticAsian(optionType(in.IsCall), in.Strike)
	case "geometric":
		avg = instrument.Geometric
		payoff = instrument.NewGeometricAsian(optionType(in.IsCall), in.Strike)
	default:
		return pricing.Result{}, pricing.InvalidInputf("unknown average type %q", in.AverageType)
	}

	opt := &instrument.AsianOption{
		Payoff:   payoff,
		Exercise: instrument.NewEuropean(in.Maturity),
		Average:  avg,
		Notional: 1.0,
	}
	ctx := engine.Context{
		Settings: engine.Settings{
			MCPaths:      in.NPaths,
			MCSeed:       in.Seed,
			MCAntithetic: in.MCAntithetic,
		},
		Model: model.NewBlackScholes(in.Spot, in.Rate, in.Dividend, in.Vol),
	}

	if eng == MonteCarlo {
		return instrument.Price(opt, engine.NewMCAsian(ctx))
	}
	return instrument.Price(opt, engine.NewAnalyticAsian(ctx))
}

func priceEquityFutureBS(in EquityFutureInput) (pricing.Result, error) {
	notional := in.Notional
	if notional == 0 {
		notional = 1.0
	}
	fut := &instrument.EquityFuture{Strike: in.Strike, Maturity: in.Maturity, Notional: notional}
	ctx := engine.Context{Model: model.NewBlackScholes(in.Spot, in.Rate, in.Dividend, 0)}
	return instrument.Price(fut, engine.NewAnalyticFuture(ctx))
}

func bondMarket(times, dfs []float64, rate float64) (engine.MarketView, error) {
	if len(times) > 0 || len(dfs) > 0 {
		curve, err := market.NewCurve(times, dfs)
		if err != nil {
			return engine.MarketView{}, err
		}
		return engine.MarketView{Discount: curve}, nil
	}
	return engine.MarketView{Discount: market.NewFlatCurve(rate)}, nil
}

func priceZeroCouponBondFlat(in ZeroCouponBondInput) (pricing.Result, error) {
	notional := in.Notional
	if notional == 0 {
		notional = 1.0
	}
	mkt, err := bondMarket(in.DiscountTimes, in.DiscountFactors, in.Rate)
	if err != nil {
		return pricing.Result{}, err
	}
	bond := &instrument.ZeroCouponBond{Maturity: in.Maturity, Notional: notional}
	ctx := engine.Context{Market: mkt, Model: model.NewFlatRate(in.Rate)}
	return instrument.Price(bond, engine.NewFlatRateBond(ctx))
}

func priceFixedRateBondFlat(in FixedRateBondInput) (pricing.Result, error) {
	notional := in.Notional
	if notional == 0 {
		notional = 1.0
	}
	freq := in.CouponFrequency
	if freq == 0 {
		freq = 1
	}
	mkt, err := bondMarket(in.DiscountTimes, in.DiscountFactors, in.Rate)
	if err != nil {
		return pricing.Result{}, err
	}
	bond := &instrument.FixedRateBond{
		Maturity:   in.Maturity,
		CouponRate: in.CouponRate,
		Frequency:  freq,
		Notional:   notional,
	}
	ctx := engine.Context{Market: mkt, Model: model.NewFlatRate(in.Rate)}
	return instrument.Price(bond, engine.NewFlatRateBond(ctx))
}
