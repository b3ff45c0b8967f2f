// Command quantpricer prices a showcase book across every engine and
// prints the results to the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/banachtech/quantmodeling/pricer"
	"github.com/banachtech/quantmodeling/pricing"
	"github.com/schollz/progressbar/v3"
)

type scenario struct {
	name string
	req  pricer.Request
}

func main() {
	vanilla := func(isCall bool, eng pricer.EngineKind, antithetic bool) pricer.Request {
		return pricer.Request{
			Instrument: pricer.EquityVanilla,
			Model:      pricer.BlackScholes,
			Engine:     eng,
			Input: pricer.VanillaBSInput{
				Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Dividend: 0.02, Vol: 0.20,
				IsCall: isCall, NPaths: 100000, Seed: 42, MCAntithetic: antithetic,
			},
		}
	}
	asian := func(avg string, eng pricer.EngineKind) pricer.Request {
		return pricer.Request{
			Instrument: pricer.EquityAsian,
			Model:      pricer.BlackScholes,
			Engine:     eng,
			Input: pricer.AsianBSInput{
				Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Dividend: 0.02, Vol: 0.20,
				IsCall: true, AverageType: avg, NPaths: 100000, Seed: 42,
			},
		}
	}

	scenarios := []scenario{
		{"Vanilla call, analytic", vanilla(true, pricer.Analytic, false)},
		{"Vanilla call, MC", vanilla(true, pricer.MonteCarlo, false)},
		{"Vanilla call, MC antithetic", vanilla(true, pricer.MonteCarlo, true)},
		{"Vanilla call, binomial", vanilla(true, pricer.BinomialTree, false)},
		{"Vanilla call, trinomial", vanilla(true, pricer.TrinomialTree, false)},
		{"Vanilla call, PDE", vanilla(true, pricer.PDEFiniteDifference, false)},
		{"Vanilla put, analytic", vanilla(false, pricer.Analytic, false)},
		{"Vanilla put, MC", vanilla(false, pricer.MonteCarlo, false)},
		{"Arithmetic Asian call, Turnbull-Wakeman", asian("arithmetic", pricer.Analytic)},
		{"Arithmetic Asian call, MC", asian("arithmetic", pricer.MonteCarlo)},
		{"Geometric Asian call, closed form", asian("geometric", pricer.Analytic)},
		{"Geometric Asian call, MC", asian("geometric", pricer.MonteCarlo)},
		{"American put, binomial", pricer.Request{
			Instrument: pricer.EquityAmericanVanilla, Model: pricer.BlackScholes, Engine: pricer.BinomialTree,
			Input: pricer.AmericanVanillaBSInput{Spot: 90, Strike: 100, Maturity: 1, Rate: 0.05, Dividend: 0.02, Vol: 0.20},
		}},
		{"American put, trinomial", pricer.Request{
			Instrument: pricer.EquityAmericanVanilla, Model: pricer.BlackScholes, Engine: pricer.TrinomialTree,
			Input: pricer.AmericanVanillaBSInput{Spot: 90, Strike: 100, Maturity: 1, Rate: 0.05, Dividend: 0.02, Vol: 0.20},
		}},
		{"Equity future", pricer.Request{
			Instrument: pricer.EquityFuture, Model: pricer.BlackScholes, Engine: pricer.Analytic,
			Input: pricer.EquityFutureInput{Spot: 100, Strike: 98, Maturity: 1, Rate: 0.05, Dividend: 0.02, Notional: 10},
		}},
		{"Zero-coupon bond", pricer.Request{
			Instrument: pricer.ZeroCouponBond, Model: pricer.FlatRate, Engine: pricer.Analytic,
			Input: pricer.ZeroCouponBondInput{Maturity: 2, Rate: 0.03, Notional: 1000},
		}},
		{"Fixed-rate bond", pricer.Request{
			Instrument: pricer.FixedRateBond, Model: pricer.FlatRate, Engine: pricer.Analytic,
			Input: pricer.FixedRateBondInput{Maturity: 1, Rate: 0.02, CouponRate: 0.05, CouponFrequency: 1, Notional: 100},
		}},
	}

	registry := pricer.Default()
	results := make([]pricing.Result, len(scenarios))
	errs := make([]error, len(scenarios))

	bar := progressbar.Default(int64(len(scenarios)), "pricing")
	for i, s := range scenarios {
		results[i], errs[i] = registry.Price(s.req)
		_ = bar.Add(1)
	}
	fmt.Println()

	failed := false
	for i, s := range scenarios {
		if errs[i] != nil {
			failed = true
			fmt.Printf("%-42s | error: %v\n", s.name, errs[i])
			continue
		}
		res := results[i]
		fmt.Printf("%-42s | NPV: %10.4f", s.name, res.NPV)
		if res.MCStdError != 0 {
			fmt.Printf(" (±%.4f)", res.MCStdError)
		}
		fmt.Println()
		fmt.Printf("    greeks: delta=%s gamma=%s vega=%s theta=%s rho=%s\n",
			fmtGreek(res.Greeks.Delta), fmtGreek(res.Greeks.Gamma), fmtGreek(res.Greeks.Vega),
			fmtGreek(res.Greeks.Theta), fmtGreek(res.Greeks.Rho))
		fmt.Printf("    diag: %s\n", res.Diagnostics)
	}

	if failed {
		os.Exit(1)
	}
}

func fmtGreek(g *pricing.Greek) string {
	if g == nil {
		return "n/a"
	}
	if g.StdError != nil && *g.StdError != 0 {
		return fmt.Sprintf("%.4f(±%.4f)", g.Value, *g.StdError)
	}
	return fmt.Sprintf("%.4f", g.Value)
}
