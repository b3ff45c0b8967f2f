// Package pricer is the dispatch layer: a process-wide registry from
// (instrument, model, engine) triples to factories that assemble the
// matching engine and price the request.
package pricer

// InstrumentKind names the supported instrument variants.
type InstrumentKind string

const (
	EquityVanilla         InstrumentKind = "equity_vanilla"
	EquityAmericanVanilla InstrumentKind = "equity_american_vanilla"
	EquityAsian           InstrumentKind = "equity_asian"
	EquityFuture          InstrumentKind = "equity_future"
	ZeroCouponBond        InstrumentKind = "zero_coupon_bond"
	FixedRateBond         InstrumentKind = "fixed_rate_bond"
)

// ModelKind names the supported market models.
type ModelKind string

const (
	BlackScholes ModelKind = "black_scholes"
	FlatRate     ModelKind = "flat_rate"
)

// EngineKind names the pricing methods.
type EngineKind string

const (
	Analytic            EngineKind = "analytic"
	MonteCarlo          EngineKind = "mc"
	BinomialTree        EngineKind = "binomial"
	TrinomialTree       EngineKind = "trinomial"
	PDEFiniteDifference EngineKind = "pde"
)

// Key identifies one cell of the supported pricing matrix.
type Key struct {
	Instrument InstrumentKind
	Model      ModelKind
	Engine     EngineKind
}
