package engine

import (
	"math"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
	"github.com/banachtech/quantmodeling/stats"
)

// AnalyticVanilla prices European vanilla options with the closed-form
// Black-Scholes formula under continuous carry.
type AnalyticVanilla struct {
	Unsupported
	ctx Context
}

func NewAnalyticVanilla(ctx Context) *AnalyticVanilla {
	return &AnalyticVanilla{Unsupported: Unsupported{EngineName: "AnalyticVanilla"}, ctx: ctx}
}

func (e *AnalyticVanilla) PriceVanilla(opt *instrument.VanillaOption) (pricing.Result, error) {
	if err := validateVanilla(opt, true); err != nil {
		return pricing.Result{}, err
	}
	m, err := requireLocalVol(e.ctx, e.EngineName)
	if err != nil {
		return pricing.Result{}, err
	}

	s0, r, q, v := m.Spot0(), m.RateR(), m.YieldQ(), m.VolSigma()
	t := opt.Exercise.Maturity
	optType := opt.Payoff.Type()
	k := opt.Payoff.Strike()
	n := opt.Notional

	dfR := math.Exp(-r * t)
	dfQ := math.Exp(-q * t)
	f := s0 * dfQ / dfR // forward under continuous carry

	stddev := v * math.Sqrt(t)
	d1 := (math.Log(f/k) + 0.5*stddev*stddev) / stddev
	d2 := d1 - stddev

	out := pricing.Result{Diagnostics: "BS analytic European vanilla (flat r,q,sigma)"}
	nd1 := stats.NormPDF(d1)

	if optType == instrument.Call {
		cd1 := stats.NormCDF(d1)
		cd2 := stats.NormCDF(d2)
		out.NPV = n * dfR * (f*cd1 - k*cd2)
		out.Greeks.Delta = pricing.Exact(n * dfQ * cd1)
		out.Greeks.Gamma = pricing.Exact(n * dfQ * nd1 / (s0 * stddev))
		out.Greeks.Vega = pricing.Exact(n * s0 * dfQ * nd1 * math.Sqrt(t))
		out.Greeks.Rho = pricing.Exact(n * t * k * dfR * cd2)
		out.Greeks.Theta = pricing.Exact(n * (-(s0*dfQ*nd1*v)/(2.0*math.Sqrt(t)) - r*k*dfR*cd2 + q*s0*dfQ*cd1))
	} else {
		cmd1 := stats.NormCDF(-d1)
		cmd2 := stats.NormCDF(-d2)
		out.NPV = n * dfR * (k*cmd2 - f*cmd1)
		out.Greeks.Delta = pricing.Exact(n * dfQ * (stats.NormCDF(d1) - 1.0))
		out.Greeks.Gamma = pricing.Exact(n * dfQ * nd1 / (s0 * stddev))
		out.Greeks.Vega = pricing.Exact(n * s0 * dfQ * nd1 * math.Sqrt(t))
		out.Greeks.Rho = pricing.Exact(n * -t * k * dfR * cmd2)
		out.Greeks.Theta = pricing.Exact(n * (-(s0*dfQ*nd1*v)/(2.0*math.Sqrt(t)) + r*k*dfR*cmd2 - q*s0*dfQ*cmd1))
	}
	return out, nil
}
