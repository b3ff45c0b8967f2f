package engine

import (
	"math"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
	"github.com/banachtech/quantmodeling/stats"
)

// AnalyticAsian prices European Asian options in closed form: the
// Turnbull-Wakeman moment-matching approximation for arithmetic
// averaging and the exact lognormal formula for geometric averaging.
type AnalyticAsian struct {
	Unsupported
	ctx Context
}

func NewAnalyticAsian(ctx Context) *AnalyticAsian {
	return &AnalyticAsian{Unsupported: Unsupported{EngineName: "AnalyticAsian"}, ctx: ctx}
}

func (e *AnalyticAsian) PriceAsian(opt *instrument.AsianOption) (pricing.Result, error) {
	if err := validateAsian(opt); err != nil {
		return pricing.Result{}, err
	}
	m, err := requireLocalVol(e.ctx, e.EngineName)
	if err != nil {
		return pricing.Result{}, err
	}
	if opt.Average == instrument.Arithmetic {
		return e.arithmetic(opt, m.Spot0(), m.RateR(), m.YieldQ(), m.VolSigma()), nil
	}
	return e.geometric(opt, m.Spot0(), m.RateR(), m.YieldQ(), m.VolSigma()), nil
}

// averageForward is E[A] for the continuously monitored arithmetic
// average, with the mu->0 limit.
func averageForward(s0, mu, t float64) float64 {
	if math.Abs(mu) < 1e-12 {
		return s0
	}
	return s0 * (math.Exp(mu*t) - 1.0) / (mu * t)
}

// twStddev moment-matches the arithmetic average to a lognormal and
// returns the total stddev sqrt(ln M), clamped to 0 when ln M <= 0 or
// the moments degenerate.
func twStddev(s0, r, q, sigma, t, fA float64) float64 {
	alpha := r - q
	beta := sigma * sigma
	bb := 2.0*alpha + beta

	if math.Abs(alpha+beta) < 1e-16 {
		return 0
	}
	// (e^{B t}-1)/B and (e^{alpha t}-1)/alpha via expm1 against cancellation
	t1 := t
	if math.Abs(bb) >= 1e-16 {
		t1 = math.Expm1(bb*t) / bb
	}
	t2 := t
	if math.Abs(alpha) >= 1e-16 {
		t2 = math.Expm1(alpha*t) / alpha
	}
	ea2 := (2.0 * s0 * s0 / (t * t * (alpha + beta))) * (t1 - t2)
	if fA <= 0 || ea2 <= 0 {
		return 0
	}
	logM := math.Log(ea2 / (fA * fA))
	if logM <= 0 {
		return 0
	}
	return math.Sqrt(logM)
}

// blackOnForward prices with the Black formula given a forward, a total
// stddev and a discount factor.
func blackOnForward(t instrument.OptionType, f, k, stddev, df float64) float64 {
	d1 := (math.Log(f/k) + 0.5*stddev*stddev) / stddev
	d2 := d1 - stddev
	if t == instrument.Call {
		return df * (f*stats.NormCDF(d1) - k*stats.NormCDF(d2))
	}
	return df * (k*stats.NormCDF(-d2) - f*stats.NormCDF(-d1))
}

// arithmeticPrice reprices the Turnbull-Wakeman value for bumped
// (r, sigma, t). It uses the same moment formulation as the main path
// so that finite-difference vega/rho/theta stay consistent with NPV.
func arithmeticPrice(t instrument.OptionType, s0, k, n, r, q, sigma, mat float64) float64 {
	df := math.Exp(-r * mat)
	if s0 <= 0 || k <= 0 || mat <= 0 {
		return n * intrinsic(t, s0, k)
	}
	fA := averageForward(s0, r-q, mat)
	if sigma <= 0 {
		return n * df * intrinsic(t, fA, k)
	}
	stddev := twStddev(s0, r, q, sigma, mat, fA)
	if stddev <= 1e-14 {
		return n * df * intrinsic(t, fA, k)
	}
	return n * blackOnForward(t, fA, k, stddev, df)
}

func (e *AnalyticAsian) arithmetic(opt *instrument.AsianOption, s0, r, q, sigma float64) pricing.Result {
	t := opt.Exercise.Maturity
	optType := opt.Payoff.Type()
	k := opt.Payoff.Strike()
	n := opt.Notional

	out := pricing.Result{Diagnostics: "BS Turnbull-Wakeman approx for arithmetic Asian (flat r,q,sigma)"}

	if s0 <= 0 || k <= 0 || t <= 0 {
		// Degenerate: maturity now or invalid inputs
		out.NPV = n * intrinsic(optType, s0, k)
		return out
	}

	df := math.Exp(-r * t)
	fA := averageForward(s0, r-q, t)

	// Near-zero vol: the average is (almost) deterministic
	stddev := 0.0
	if sigma > 0 {
		stddev = twStddev(s0, r, q, sigma, t, fA)
	}
	if stddev <= 1e-14 {
		out.NPV = n * df * intrinsic(optType, fA, k)
		return out
	}

	out.NPV = n * blackOnForward(optType, fA, k, stddev, df)

	d1 := (math.Log(fA/k) + 0.5*stddev*stddev) / stddev
	nd1 := stats.NormPDF(d1)
	cd1 := stats.NormCDF(d1)
	dFdS := fA / s0 // F_A = S0 * g(mu,T)

	delta := n * df * cd1 * dFdS
	if optType == instrument.Put {
		delta = n * df * (cd1 - 1.0) * dFdS
	}
	out.Greeks.Delta = pricing.Exact(delta)
	out.Greeks.Gamma = pricing.Exact(n * df * nd1 * dFdS / (s0 * stddev))

	// Vega, rho, theta by central differences on the same formulation
	epsSigma := math.Max(1e-6, 1e-3*sigma)
	up := arithmeticPrice(optType, s0, k, n, r, q, sigma+epsSigma, t)
	dn := arithmeticPrice(optType, s0, k, n, r, q, sigma-epsSigma, t)
	out.Greeks.Vega = pricing.Exact((up - dn) / (2.0 * epsSigma))

	epsR := math.Max(1e-6, 1e-3*math.Abs(r))
	up = arithmeticPrice(optType, s0, k, n, r+epsR, q, sigma, t)
	dn = arithmeticPrice(optType, s0, k, n, r-epsR, q, sigma, t)
	out.Greeks.Rho = pricing.Exact((up - dn) / (2.0 * epsR))

	tDn := math.Max(1e-8, t-thetaBump)
	priceDn := arithmeticPrice(optType, s0, k, n, r, q, sigma, tDn)
	priceUp := arithmeticPrice(optType, s0, k, n, r, q, sigma, t+thetaBump)
	out.Greeks.Theta = pricing.Exact((priceDn - priceUp) / (2.0 * thetaBump))

	return out
}

func (e *AnalyticAsian) geometric(opt *instrument.AsianOption, s0, r, q, sigma float64) pricing.Result {
	t := opt.Exercise.Maturity
	optType := opt.Payoff.Type()
	k := opt.Payoff.Strike()
	n := opt.Notional

	out := pricing.Result{Diagnostics: "BS closed-form solution for geometric Asian (flat r,q,sigma)"}

	if s0 <= 0 || k <= 0 || t <= 0 {
		out.NPV = n * intrinsic(optType, s0, k)
		return out
	}

	// Effective vol and drift of the geometric average
	sigmaG := sigma / math.Sqrt(3.0)
	bG := (r-q-0.5*sigma*sigma)/2.0 + 0.5*sigmaG*sigmaG

	dfR := math.Exp(-r * t)
	dfQ := math.Exp(-q * t)
	f := s0 * math.Exp(bG*t)

	stddev := sigmaG * math.Sqrt(t)
	if stddev <= 1e-14 {
		out.NPV = n * dfR * intrinsic(optType, f, k)
		return out
	}

	d1 := (math.Log(f/k) + 0.5*stddev*stddev) / stddev
	d2 := d1 - stddev
	nd1 := stats.NormPDF(d1)

	if optType == instrument.Call {
		cd1 := stats.NormCDF(d1)
		cd2 := stats.NormCDF(d2)
		out.NPV = n * dfR * (f*cd1 - k*cd2)
		out.Greeks.Delta = pricing.Exact(n * dfQ * cd1)
		out.Greeks.Rho = pricing.Exact(n * t * k * dfR * cd2)
		out.Greeks.Theta = pricing.Exact(n * (-(s0*dfQ*nd1*sigmaG)/(2.0*math.Sqrt(t)) - r*k*dfR*cd2 + q*s0*dfQ*cd1))
	} else {
		cmd1 := stats.NormCDF(-d1)
		cmd2 := stats.NormCDF(-d2)
		out.NPV = n * dfR * (k*cmd2 - f*cmd1)
		out.Greeks.Delta = pricing.Exact(n * dfQ * (stats.NormCDF(d1) - 1.0))
		out.Greeks.Rho = pricing.Exact(n * -t * k * dfR * cmd2)
		out.Greeks.Theta = pricing.Exact(n * (-(s0*dfQ*nd1*sigmaG)/(2.0*math.Sqrt(t)) + r*k*dfR*cmd2 - q*s0*dfQ*cmd1))
	}
	out.Greeks.Gamma = pricing.Exact(n * dfQ * nd1 / (s0 * stddev))
	out.Greeks.Vega = pricing.Exact(n * s0 * dfQ * nd1 * t / 3.0)
	return out
}
