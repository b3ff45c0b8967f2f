package engine

import (
	"math"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
)

// AnalyticFuture prices equity futures off the cost-of-carry forward.
type AnalyticFuture struct {
	Unsupported
	ctx Context
}

func NewAnalyticFuture(ctx Context) *AnalyticFuture {
	return &AnalyticFuture{Unsupported: Unsupported{EngineName: "AnalyticFuture"}, ctx: ctx}
}

func (e *AnalyticFuture) PriceFuture(fut *instrument.EquityFuture) (pricing.Result, error) {
	if fut.Maturity <= 0 {
		return pricing.Result{}, pricing.InvalidInput("equity future maturity must be > 0")
	}
	if fut.Notional == 0 {
		return pricing.Result{}, pricing.InvalidInput("equity future notional must be non-zero")
	}
	if fut.Strike <= 0 {
		return pricing.Result{}, pricing.InvalidInput("equity future strike must be > 0")
	}
	m, err := requireLocalVol(e.ctx, e.EngineName)
	if err != nil {
		return pricing.Result{}, err
	}

	s0, r, q := m.Spot0(), m.RateR(), m.YieldQ()
	t := fut.Maturity
	f0 := s0 * math.Exp((r-q)*t)
	df := math.Exp(-r * t)

	return pricing.Result{
		NPV:         fut.Notional * (f0 - fut.Strike) * df,
		Diagnostics: "Equity future analytic (cost-of-carry)",
	}, nil
}
