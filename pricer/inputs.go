package pricer

// Default numerical knobs applied when an input leaves them zero.
const (
	DefaultPaths         = 200000
	DefaultSeed          = 1
	DefaultTreeSteps     = 100
	DefaultPDESpaceSteps = 100
	DefaultPDETimeSteps  = 100
)

// VanillaBSInput describes a European vanilla option under flat
// Black-Scholes, plus the engine knobs.
type VanillaBSInput struct {
	Spot     float64 `json:"spot" binding:"required"`
	Strike   float64 `json:"strike" binding:"required"`
	Maturity float64 `json:"maturity" binding:"required"`
	Rate     float64 `json:"rate"`
	Dividend float64 `json:"dividend"`
	Vol      float64 `json:"vol"`
	IsCall   bool    `json:"is_call"`

	NPaths        int  `json:"n_paths"`
	Seed          int  `json:"seed"`
	MCAntithetic  bool `json:"mc_antithetic"`
	TreeSteps     int  `json:"tree_steps"`
	PDESpaceSteps int  `json:"pde_space_steps"`
	PDETimeSteps  int  `json:"pde_time_steps"`
}

func (in VanillaBSInput) withDefaults() VanillaBSInput {
	if in.NPaths == 0 {
		in.NPaths = DefaultPaths
	}
	if in.Seed == 0 {
		in.Seed = DefaultSeed
	}
	if in.TreeSteps == 0 {
		in.TreeSteps = DefaultTreeSteps
	}
	if in.PDESpaceSteps == 0 {
		in.PDESpaceSteps = DefaultPDESpaceSteps
	}
	if in.PDETimeSteps == 0 {
		in.PDETimeSteps = DefaultPDETimeSteps
	}
	return in
}

// AmericanVanillaBSInput describes an American vanilla option; only the
// lattice knobs apply.
type AmericanVanillaBSInput struct {
	Spot     float64 `json:"spot" binding:"required"`
	Strike   float64 `json:"strike" binding:"required"`
	Maturity float64 `json:"maturity" binding:"required"`
	Rate     float64 `json:"rate"`
	Dividend float64 `json:"dividend"`
	Vol      float64 `json:"vol"`
	IsCall   bool    `json:"is_call"`

	TreeSteps     int `json:"tree_steps"`
	PDESpaceSteps int `json:"pde_space_steps"`
	PDETimeSteps  int `json:"pde_time_steps"`
}

func (in AmericanVanillaBSInput) withDefaults() AmericanVanillaBSInput {
	if in.TreeSteps == 0 {
		in.TreeSteps = DefaultTreeSteps
	}
	if in.PDESpaceSteps == 0 {
		in.PDESpaceSteps = DefaultPDESpaceSteps
	}
	if in.PDETimeSteps == 0 {
		in.PDETimeSteps = DefaultPDETimeSteps
	}
	return in
}

// AsianBSInput describes a European Asian option; average_type is
// "arithmetic" (default) or "geometric".
type AsianBSInput struct {
	Spot        float64 `json:"spot" binding:"required"`
	Strike      float64 `json:"strike" binding:"required"`
	Maturity    float64 `json:"maturity" binding:"required"`
	Rate        float64 `json:"rate"`
	Dividend    float64 `json:"dividend"`
	Vol         float64 `json:"vol"`
	IsCall      bool    `json:"is_call"`
	AverageType string  `json:"average_type"`

	NPaths       int  `json:"n_paths"`
	Seed         int  `json:"seed"`
	MCAntithetic bool `json:"mc_antithetic"`
}

func (in AsianBSInput) withDefaults() AsianBSInput {
	if in.AverageType == "" {
		in.AverageType = "arithmetic"
	}
	if in.NPaths == 0 {
		in.NPaths = DefaultPaths
	}
	if in.Seed == 0 {
		in.Seed = DefaultSeed
	}
	return in
}

// EquityFutureInput describes an equity future under flat carry.
type EquityFutureInput struct {
	Spot     float64 `json:"spot" binding:"required"`
	Strike   float64 `json:"strike" binding:"required"`
	Maturity float64 `json:"maturity" binding:"required"`
	Rate     float64 `json:"rate"`
	Dividend float64 `json:"dividend"`
	Notional float64 `json:"notional"`
}

// ZeroCouponBondInput describes a zero-coupon bond; an optional
// (times, discount factors) table overrides flat discounting.
type ZeroCouponBondInput struct {
	Maturity        float64   `json:"maturity" binding:"required"`
	Rate            float64   `json:"rate"`
	Notional        float64   `json:"notional"`
	DiscountTimes   []float64 `json:"discount_times"`
	DiscountFactors []float64 `json:"discount_factors"`
}

// FixedRateBondInput describes a fixed-rate coupon bond.
type FixedRateBondInput struct {
	Maturity        float64   `json:"maturity" binding:"required"`
	Rate            float64   `json:"rate"`
	CouponRate      float64   `json:"coupon_rate"`
	CouponFrequency int       `json:"coupon_frequency"`
	Notional        float64   `json:"notional"`
	DiscountTimes   []float64 `json:"discount_times"`
	DiscountFactors []float64 `json:"discount_factors"`
}
