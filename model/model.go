// Package model defines the market models and the capability interfaces
// engines require from them.
package model

// Model is the common surface of every market model.
type Model interface {
	Name() string
}

// LocalVol is the capability set consumed by equity engines: spot,
// carry, and a deterministic volatility at spot and t=0.
type LocalVol interface {
	Model
	Spot0() float64
	RateR() float64
	YieldQ() float64
	VolSigma() float64
}

// FlatRate is the capability set consumed by flat-rate bond engines.
type FlatRate interface {
	Model
	Rate() float64
}

// BlackScholes is a Black-Scholes model with flat volatility. It works
// with the analytic, tree, PDE and Monte Carlo equity engines.
type BlackScholes struct {
	S0    float64
	R     float64
	Q     float64
	Sigma float64
}

func NewBlackScholes(s0, r, q, sigma float64) *BlackScholes {
	return &BlackScholes{S0: s0, R: r, Q: q, Sigma: sigma}
}

func (m *BlackScholes) Name() string      { return "BlackScholesModel" }
func (m *BlackScholes) Spot0() float64    { return m.S0 }
func (m *BlackScholes) RateR() float64    { return m.R }
func (m *BlackScholes) YieldQ() float64   { return m.Q }
func (m *BlackScholes) VolSigma() float64 { return m.Sigma }

// FlatRateModel carries a single continuously-compounded rate.
type FlatRateModel struct {
	R float64
}

func NewFlatRate(r float64) *FlatRateModel {
	return &FlatRateModel{R: r}
}

func (m *FlatRateModel) Name() string  { return "FlatRateModel" }
func (m *FlatRateModel) Rate() float64 { return m.R }
