package engine

import (
	"math"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
)

// Binomial prices European and American vanilla options on a
// Cox-Ross-Rubinstein tree.
type Binomial struct {
	Unsupported
	ctx Context
}

func NewBinomial(ctx Context) *Binomial {
	return &Binomial{Unsupported: Unsupported{EngineName: "Binomial"}, ctx: ctx}
}

// crrRoot values the option on a CRR tree rooted at s0 with the given
// volatility, maturity and step count, applying the early-exercise rule
// at every node when american is set.
func crrRoot(opt *instrument.VanillaOption, s0, r, q, sigma, t float64, steps int, american bool) (float64, error) {
	dt := t / float64(steps)
	u := math.Exp(sigma * math.Sqrt(dt))
	d := 1.0 / u
	a := math.Exp((r - q) * dt)
	p := (a - d) / (u - d)
	df := math.Exp(-r * dt)

	if !(p >= 0.0 && p <= 1.0) {
		return 0, pricing.InvalidInput("risk-neutral probability out of bounds [0,1]; check model parameters")
	}

	values := make([]float64, steps+1)
	for j := 0; j <= steps; j++ {
		st := s0 * math.Pow(u, float64(j)) * math.Pow(d, float64(steps-j))
		values[j] = opt.Payoff.Value(st)
	}
	for i := steps - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			continuation := df * (p*values[j+1] + (1.0-p)*values[j])
			if american {
				s := s0 * math.Pow(u, float64(j)) * math.Pow(d, float64(i-j))
				values[j] = math.Max(continuation, opt.Payoff.Value(s))
			} else {
				values[j] = continuation
			}
		}
	}
	return values[0], nil
}

func (e *Binomial) PriceVanilla(opt *instrument.VanillaOption) (pricing.Result, error) {
	if err := validateVanilla(opt, false); err != nil {
		return pricing.Result{}, err
	}
	steps := e.ctx.Settings.TreeSteps
	if steps < 1 {
		return pricing.Result{}, pricing.InvalidInput("binomial tree requires steps >= 1")
	}
	m, err := requireLocalVol(e.ctx, e.EngineName)
	if err != nil {
		return pricing.Result{}, err
	}

	s0, r, q, sigma := m.Spot0(), m.RateR(), m.YieldQ(), m.VolSigma()
	t := opt.Exercise.Maturity
	n := opt.Notional
	american := opt.Exercise.Style == instrument.American
	dt := t / float64(steps)

	base, err := crrRoot(opt, s0, r, q, sigma, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}

	out := pricing.Result{NPV: n * base}
	label := "European"
	if american {
		label = "American"
	}
	out.Diagnostics = "Binomial tree (CRR) " + label + " vanilla"

	// Delta and gamma from parallel trees at S0 +/- 1%, same geometry
	ds := s0 * spotBump
	up, err := crrRoot(opt, s0+ds, r, q, sigma, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}
	dn, err := crrRoot(opt, s0-ds, r, q, sigma, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}
	out.Greeks.Delta = pricing.Exact(n * (up - dn) / (2.0 * ds))
	out.Greeks.Gamma = pricing.Exact(n * (up - 2.0*base + dn) / (ds * ds))

	// Vega from a tree rebuilt at sigma + 1%
	vegaVal, err := crrRoot(opt, s0, r, q, sigma+volBump, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}
	out.Greeks.Vega = pricing.Exact(n * (vegaVal - base) / volBump)

	// Theta from a tree with one fewer step
	if steps > 1 {
		thetaVal, err := crrRoot(opt, s0, r, q, sigma, t-dt, steps-1, american)
		if err != nil {
			return pricing.Result{}, err
		}
		out.Greeks.Theta = pricing.Exact(-n * (base - thetaVal) / dt)
	}
	return out, nil
}
