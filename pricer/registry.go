package pricer

import (
	"sync"

	"github.com/banachtech/quantmodeling/pricing"
)

// Request is the full description of one pricing call.
type Request struct {
	Instrument InstrumentKind
	Model      ModelKind
	Engine     EngineKind
	Input      any
}

// Func builds the right engine for a request, fuses it with the inputs
// and returns the result.
type Func func(Request) (pricing.Result, error)

// Registry maps (instrument, model, engine) triples to pricing
// factories. It is read-only after construction; concurrent readers
// need no synchronisation.
type Registry struct {
	pricers map[Key]Func
}

func NewRegistry() *Registry {
	return &Registry{pricers: make(map[Key]Func)}
}

// Register installs a factory for one cell of the matrix.
func (r *Registry) Register(key Key, fn Func) {
	r.pricers[key] = fn
}

// Keys lists the registered cells.
func (r *Registry) Keys() []Key {
	out := make([]Key, 0, len(r.pricers))
	for k := range r.pricers {
		out = append(out, k)
	}
	return out
}

// Price looks up the requested combination and runs it.
func (r *Registry) Price(req Request) (pricing.Result, error) {
	fn, ok := r.pricers[Key{req.Instrument, req.Model, req.Engine}]
	if !ok {
		return pricing.Result{}, pricing.Unsupportedf(
			"no pricer registered for (%s, %s, %s)", req.Instrument, req.Model, req.Engine)
	}
	return fn(req)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, built once on first use
// with every supported (instrument, model, engine) cell.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()

		for _, eng := range []EngineKind{Analytic, MonteCarlo, BinomialTree, TrinomialTree, PDEFiniteDifference} {
			eng := eng
			r.Register(Key{EquityVanilla, BlackScholes, eng}, func(req Request) (pricing.Result, error) {
				in, err := vanillaInput(req)
				if err != nil {
					return pricing.Result{}, err
				}
				return priceEquityVanillaBS(in, eng)
			})
		}

		for _, eng := range []EngineKind{BinomialTree, TrinomialTree, PDEFiniteDifference} {
			eng := eng
			r.Register(Key{EquityAmericanVanilla, BlackScholes, eng}, func(req Request) (pricing.Result, error) {
				in, err := americanInput(req)
				if err != nil {
					return pricing.Result{}, err
				}
				return priceEquityVanillaAmericanBS(in, eng)
			})
		}

		for _, eng := range []EngineKind{Analytic, MonteCarlo} {
			eng := eng
			r.Register(Key{EquityAsian, BlackScholes, eng}, func(req Request) (pricing.Result, error) {
				in, err := asianInput(req)
				if err != nil {
					return pricing.Result{}, err
				}
				return priceEquityAsianBS(in, eng)
			})
		}

		r.Register(Key{EquityFuture, BlackScholes, Analytic}, func(req Request) (pricing.Result, error) {
			in, ok := req.Input.(EquityFutureInput)
			if !ok {
				return pricing.Result{}, pricing.InvalidInput("equity future pricer expects EquityFutureInput")
			}
			return priceEquityFutureBS(in)
		})

		r.Register(Key{ZeroCouponBond, FlatRate, Analytic}, func(req Request) (pricing.Result, error) {
			in, ok := req.Input.(ZeroCouponBondInput)
			if !ok {
				return pricing.Result{}, pricing.InvalidInput("zero-coupon bond pricer expects ZeroCouponBondInput")
			}
			return priceZeroCouponBondFlat(in)
		})

		r.Register(Key{FixedRateBond, FlatRate, Analytic}, func(req Request) (pricing.Result, error) {
			in, ok := req.Input.(FixedRateBondInput)
			if !ok {
				return pricing.Result{}, pricing.InvalidInput("fixed-rate bond pricer expects FixedRateBondInput")
			}
			return priceFixedRateBondFlat(in)
		})

		defaultRegistry = r
	})
	return defaultRegistry
}

func vanillaInput(req Request) (VanillaBSInput, error) {
	in, ok := req.Input.(VanillaBSInput)
	if !ok {
		return VanillaBSInput{}, pricing.InvalidInput("vanilla pricer expects VanillaBSInput")
	}
	return in, nil
}

func americanInput(req Request) (AmericanVanillaBSInput, error) {
	in, ok := req.Input.(AmericanVanillaBSInput)
	if !ok {
		return AmericanVanillaBSInput{}, pricing.InvalidInput("American vanilla pricer expects AmericanVanillaBSInput")
	}
	return in, nil
}

func asianInput(req Request) (AsianBSInput, error) {
	in, ok := req.Input.(AsianBSInput)
	if !ok {
		return AsianBSInput{}, pricing.InvalidInput("Asian pricer expects AsianBSInput")
	}
	return in, nil
}
