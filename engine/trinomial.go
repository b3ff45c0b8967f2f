package engine

import (
	"math"

	"github.com/banachtech/quantmodeling/instrument"
	"github.com/banachtech/quantmodeling/pricing"
)

// Trinomial prices European and American vanilla options on a Boyle
// trinomial tree.
type Trinomial struct {
	Unsupported
	ctx Context
}

func NewTrinomial(ctx Context) *Trinomial {
	return &Trinomial{Unsupported: Unsupported{EngineName: "Trinomial"}, ctx: ctx}
}

// boyleRoot values the option on a Boyle tree rooted at s0. Nodes at
// step i are indexed j in [-i, i] with spot s0 * u^j.
func boyleRoot(opt *instrument.VanillaOption, s0, r, q, sigma, t float64, steps int, american bool) (float64, error) {
	dt := t / float64(steps)
	nu := r - q - 0.5*sigma*sigma
	dx := sigma * math.Sqrt(3.0*dt)
	u := math.Exp(dx)

	pu := 0.5 * ((sigma*sigma*dt+nu*nu*dt*dt)/(dx*dx) + nu*dt/dx)
	pd := 0.5 * ((sigma*sigma*dt+nu*nu*dt*dt)/(dx*dx) - nu*dt/dx)
	pm := 1.0 - pu - pd
	df := math.Exp(-r * dt)

	if !(pu >= 0.0 && pu <= 1.0 && pd >= 0.0 && pd <= 1.0 && pm >= 0.0 && pm <= 1.0) {
		return 0, pricing.InvalidInput("risk-neutral probabilities out of bounds; check model parameters or reduce time step")
	}

	values := make([]float64, 2*steps+1)
	next := make([]float64, 2*steps+1)
	for j := -steps; j <= steps; j++ {
		st := s0 * math.Pow(u, float64(j))
		values[j+steps] = opt.Payoff.Value(st)
	}
	for i := steps - 1; i >= 0; i-- {
		for j := -i; j <= i; j++ {
			idx := j + steps
			continuation := df * (pu*values[idx+1] + pm*values[idx] + pd*values[idx-1])
			if american {
				s := s0 * math.Pow(u, float64(j))
				next[idx] = math.Max(continuation, opt.Payoff.Value(s))
			} else {
				next[idx] = continuation
			}
		}
		values, next = next, values
	}
	return values[steps], nil
}

func (e *Trinomial) PriceVanilla(opt *instrument.VanillaOption) (pricing.Result, error) {
	if err := validateVanilla(opt, false); err != nil {
		return pricing.Result{}, err
	}
	steps := e.ctx.Settings.TreeSteps
	if steps < 1 {
		return pricing.Result{}, pricing.InvalidInput("trinomial tree requires steps >= 1")
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

	base, err := boyleRoot(opt, s0, r, q, sigma, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}

	out := pricing.Result{NPV: n * base}
	label := "European"
	if american {
		label = "American"
	}
	out.Diagnostics = "Trinomial tree (Boyle) " + label + " vanilla"

	ds := s0 * spotBump
	up, err := boyleRoot(opt, s0+ds, r, q, sigma, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}
	dn, err := boyleRoot(opt, s0-ds, r, q, sigma, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}
	out.Greeks.Delta = pricing.Exact(n * (up - dn) / (2.0 * ds))
	out.Greeks.Gamma = pricing.Exact(n * (up - 2.0*base + dn) / (ds * ds))

	vegaVal, err := boyleRoot(opt, s0, r, q, sigma+volBump, t, steps, american)
	if err != nil {
		return pricing.Result{}, err
	}
	out.Greeks.Vega = pricing.Exact(n * (vegaVal - base) / volBump)

	if steps > 1 {
		thetaVal, err := boyleRoot(opt, s0, r, q, sigma, t-dt, steps-1, american)
		if err != nil {
			return pricing.Result{}, err
		}
		out.Greeks.Theta = pricing.Exact(-n * (base - thetaVal) / dt)
	}
	return out, nil
}
