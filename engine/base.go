// Package engine implements the pricing engines: analytic Black-Scholes
// and Asian approximations, flat-rate bond and future pricers, binomial
// and trinomial trees, a Crank-Nicolson PDE solver, and Monte Carlo
// simulators. A pricing call is single-threaded, does no I/O, and never
// mutates its inputs.
package engine

import (
	"math"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/market"
	"github.com/banachtech/quantmodeling/model"
	"github.com/banachtech/quantmodeling/pricing"
)

// Settings carries the numerical knobs. Each field is validated by the
// engine that consumes it.
type Settings struct {
	MCPaths       int
	MCSeed        int
	MCAntithetic  bool
	TreeSteps     int
	PDESpaceSteps int
	PDETimeSteps  int
}

// MarketView is the market data an engine may consult beyond its model.
type MarketView struct {
	Discount *market.DiscountCurve
}

// Context bundles everything an engine borrows for one pricing call.
type Context struct {
	Market   MarketView
	Settings Settings
	Model    model.Model
}

// Bump sizes for finite-difference Greeks.
const (
	spotBump  = 0.01        // relative
	volBump   = 0.01        // absolute, tree engines
	thetaBump = 1.0 / 365.0 // one day
)

func requireLocalVol(ctx Context, engineName string) (model.LocalVol, error) {
	if ctx.Model == nil {
		return nil, pricing.InvalidInputf("%s: context model is nil", engineName)
	}
	m, ok := ctx.Model.(model.LocalVol)
	if !ok {
		return nil, pricing.InvalidInputf("%s requires model capability LocalVol, got %s", engineName, ctx.Model.Name())
	}
	return m, nil
}

func requireFlatRate(ctx Context, engineName string) (model.FlatRate, error) {
	if ctx.Model == nil {
		return nil, pricing.InvalidInputf("%s: context model is nil", engineName)
	}
	m, ok := ctx.Model.(model.FlatRate)
	if !ok {
		return nil, pricing.InvalidInputf("%s requires model capability FlatRate, got %s", engineName, ctx.Model.Name())
	}
	return m, nil
}

// Unsupported is the embeddable visitor base: every operation rejects
// its instrument. Concrete engines embed it and override what they
// support, so unsupported combinations fail at the dispatch boundary.
type Unsupported struct {
	EngineName string
}

func (u Unsupported) PriceVanilla(*instrument.VanillaOption) (pricing.Result, error) {
	return pricing.Result{}, pricing.Unsupportedf("%s does not support vanilla options", u.EngineName)
}

func (u Unsupported) PriceAsian(*instrument.AsianOption) (pricing.Result, error) {
	return pricing.Result{}, pricing.Unsupportedf("%s does not support Asian options", u.EngineName)
}

func (u Unsupported) PriceFuture(*instrument.EquityFuture) (pricing.Result, error) {
	return pricing.Result{}, pricing.Unsupportedf("%s does not support equity futures", u.EngineName)
}

func (u Unsupported) PriceZeroCouponBond(*instrument.ZeroCouponBond) (pricing.Result, error) {
	return pricing.Result{}, pricing.Unsupportedf("%s does not support bonds", u.EngineName)
}

func (u Unsupported) PriceFixedRateBond(*instrument.FixedRateBond) (pricing.Result, error) {
	return pricing.Result{}, pricing.Unsupportedf("%s does not support bonds", u.EngineName)
}

// validateVanilla checks the shared preconditions on a vanilla option.
// Engines restricted to European exercise pass europeanOnly=true.
func validateVanilla(opt *instrument.VanillaOption, europeanOnly bool) error {
	if opt == nil || opt.Payoff == nil {
		return pricing.InvalidInput("vanilla option payoff is nil")
	}
	if opt.Exercise == nil {
		return pricing.InvalidInput("vanilla option exercise is nil")
	}
	if europeanOnly && opt.Exercise.Style != instrument.European {
		return pricing.Unsupported("non-European exercise is not supported by this engine")
	}
	if opt.Exercise.Maturity <= 0 {
		return pricing.InvalidInput("maturity T must be > 0")
	}
	if opt.Notional <= 0 {
		return pricing.InvalidInput("notional must be > 0")
	}
	if opt.Payoff.Strike() <= 0 {
		return pricing.InvalidInput("strike must be > 0")
	}
	return nil
}

func validateAsian(opt *instrument.AsianOption) error {
	if opt == nil || opt.Payoff == nil {
		return pricing.InvalidInput("Asian option payoff is nil")
	}
	if opt.Exercise == nil {
		return pricing.InvalidInput("Asian option exercise is nil")
	}
	if opt.Exercise.Style != instrument.European {
		return pricing.Unsupported("non-European exercise is not supported by this engine")
	}
	if opt.Notional <= 0 {
		return pricing.InvalidInput("notional must be > 0")
	}
	return nil
}

func intrinsic(t instrument.OptionType, s, k float64) float64 {
	if t == instrument.Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}
