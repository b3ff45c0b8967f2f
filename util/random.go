// Package util provides random market scenarios for tests.
package util

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Scenario is one random but sane set of market and contract terms.
type Scenario struct {
	Spot     float64
	Strike   float64
	Maturity float64
	Rate     float64
	Dividend float64
	Vol      float64
}

// NewSource returns a seeded source for reproducible test runs.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// RandomSpot generates a spot level around 100.
func RandomSpot(src rand.Source) float64 {
	d := distuv.LogNormal{Mu: 4.6, Sigma: 0.25, Src: src}
	return d.Rand()
}

// RandomStrike generates a strike within +/-30% of the given spot.
func RandomStrike(src rand.Source, spot float64) float64 {
	d := distuv.Uniform{Min: 0.7 * spot, Max: 1.3 * spot, Src: src}
	return d.Rand()
}

// RandomMaturity generates a maturity between one month and five years.
func RandomMaturity(src rand.Source) float64 {
	d := distuv.Uniform{Min: 1.0 / 12.0, Max: 5.0, Src: src}
	return d.Rand()
}

// RandomRate generates a risk-free rate between 0 and 10%.
func RandomRate(src rand.Source) float64 {
	d := distuv.Uniform{Min: 0.0, Max: 0.10, Src: src}
	return d.Rand()
}

// RandomVol generates a volatility between 5% and 60%.
func RandomVol(src rand.Source) float64 {
	d := distuv.Uniform{Min: 0.05, Max: 0.60, Src: src}
	return d.Rand()
}

// RandomScenario draws a full scenario from one source.
func RandomScenario(src rand.Source) Scenario {
	spot := RandomSpot(src)
	return Scenario{
		Spot:     spot,
		Strike:   RandomStrike(src, spot),
		Maturity: RandomMaturity(src),
		Rate:     RandomRate(src),
		Dividend: RandomRate(src) / 2.0,
		Vol:      RandomVol(src),
	}
}
