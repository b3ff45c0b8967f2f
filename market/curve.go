// Package market holds the market view consumed by pricing engines.
package market

import (
	"math"
	"sort"

	"github.com/banachtech/quantmodeling/pricing"
)

// DiscountCurve produces discount factors either from a flat
// continuously-compounded rate or from a table of (time, discount
// factor) knots interpolated log-linearly. Outside the table the curve
// extrapolates flat.
type DiscountCurve struct {
	times    []float64
	dfs      []float64
	flatRate float64
	useFlat  bool
}

// NewFlatCurve builds a curve from a single flat rate.
func NewFlatCurve(rate float64) *DiscountCurve {
	return &DiscountCurve{flatRate: rate, useFlat: true}
}

// NewCurve builds a curve from tabulated knots. Times must be strictly
// increasing and positive, discount factors positive, and both slices
// the same non-zero length.
func NewCurve(times, dfs []float64) (*DiscountCurve, error) {
	if len(times) == 0 || len(dfs) == 0 || len(times) != len(dfs) {
		return nil, pricing.InvalidInput("discount curve requires matching non-empty times and discount factors")
	}
	prev := times[0]
	if prev <= 0 {
		return nil, pricing.InvalidInput("discount curve times must be > 0")
	}
	if dfs[0] <= 0 {
		return nil, pricing.InvalidInput("discount curve discount factors must be > 0")
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= prev {
			return nil, pricing.InvalidInput("discount curve times must be strictly increasing")
		}
		if dfs[i] <= 0 {
			return nil, pricing.InvalidInput("discount curve discount factors must be > 0")
		}
		prev = times[i]
	}
	c := &DiscountCurve{
		times: append([]float64(nil), times...),
		dfs:   append([]float64(nil), dfs...),
	}
	return c, nil
}

// Discount returns DF(t). DF is 1 for t <= 0.
func (c *DiscountCurve) Discount(t float64) float64 {
	if t <= 0 {
		return 1.0
	}
	if c.useFlat || len(c.times) == 0 {
		return math.Exp(-c.flatRate * t)
	}
	if t <= c.times[0] {
		return c.dfs[0]
	}
	last := len(c.times) - 1
	if t >= c.times[last] {
		return c.dfs[last]
	}
	// first knot at or after t
	idx := sort.SearchFloat64s(c.times, t)
	if c.times[idx] == t {
		return c.dfs[idx]
	}
	t1, t2 := c.times[idx-1], c.times[idx]
	df1, df2 := c.dfs[idx-1], c.dfs[idx]
	w := (t - t1) / (t2 - t1)
	return math.Exp((1.0-w)*math.Log(df1) + w*math.Log(df2))
}
