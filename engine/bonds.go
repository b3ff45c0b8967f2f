package engine

import (
	"math"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
)

// FlatRateBond prices zero-coupon and fixed-rate bonds off the discount
// curve when one is supplied, otherwise off the model's flat rate.
type FlatRateBond struct {
	Unsupported
	ctx Context
}

func NewFlatRateBond(ctx Context) *FlatRateBond {
	return &FlatRateBond{Unsupported: Unsupported{EngineName: "FlatRateBond"}, ctx: ctx}
}

func (e *FlatRateBond) discount(r, t float64) float64 {
	if e.ctx.Market.Discount != nil {
		return e.ctx.Market.Discount.Discount(t)
	}
	return math.Exp(-r * t)
}

func (e *FlatRateBond) PriceZeroCouponBond(bond *instrument.ZeroCouponBond) (pricing.Result, error) {
	if bond.Maturity <= 0 {
		return pricing.Result{}, pricing.InvalidInput("zero-coupon bond maturity must be > 0")
	}
	if bond.Notional == 0 {
		return pricing.Result{}, pricing.InvalidInput("zero-coupon bond notional must be non-zero")
	}
	m, err := requireFlatRate(e.ctx, e.EngineName)
	if err != nil {
		return pricing.Result{}, err
	}
	return pricing.Result{
		NPV:         bond.Notional * e.discount(m.Rate(), bond.Maturity),
		Diagnostics: "Flat-rate analytic zero coupon bond",
	}, nil
}

func (e *FlatRateBond) PriceFixedRateBond(bond *instrument.FixedRateBond) (pricing.Result, error) {
	if bond.Maturity <= 0 {
		return pricing.Result{}, pricing.InvalidInput("fixed-rate bond maturity must be > 0")
	}
	if bond.Notional == 0 {
		return pricing.Result{}, pricing.InvalidInput("fixed-rate bond notional must be non-zero")
	}
	if bond.CouponRate < 0 {
		return pricing.Result{}, pricing.InvalidInput("fixed-rate bond coupon rate must be >= 0")
	}
	if bond.Frequency < 1 {
		return pricing.Result{}, pricing.InvalidInput("fixed-rate bond coupon frequency must be >= 1")
	}
	m, err := requireFlatRate(e.ctx, e.EngineName)
	if err != nil {
		return pricing.Result{}, err
	}

	r := m.Rate()
	t := bond.Maturity
	n := int(math.Max(1, math.Round(t*float64(bond.Frequency))))
	dt := t / float64(n)
	coupon := bond.Notional * bond.CouponRate * dt

	pv := 0.0
	for i := 1; i <= n; i++ {
		pv += coupon * e.discount(r, dt*float64(i))
	}
	pv += bond.Notional * e.discount(r, t)

	return pricing.Result{
		NPV:         pv,
		Diagnostics: "Flat-rate analytic fixed-rate bond",
	}, nil
}
