package scoring

// Scoring Constants - thresholds and weights for the fundamental strength score.
// All sub-scores are on a 0-100 scale.

// =============================================================================
// Metric Names (fixed evaluation order)
// =============================================================================

const (
	MetricPE            = "pe_ratio"
	MetricPB            = "pb_ratio"
	MetricROE           = "roe"
	MetricProfitMargin  = "profit_margin"
	MetricRevenueGrowth = "revenue_growth"
	MetricDebtToEquity  = "debt_to_equity"
	MetricCurrentRatio  = "current_ratio"
	MetricBeta          = "beta"
	MetricDividendYield = "dividend_yield"
)

// MetricOrder is the order metrics are evaluated and reported in.
// Strengths and watch-outs follow this order.
var MetricOrder = []string{
	MetricPE,
	MetricPB,
	MetricROE,
	MetricProfitMargin,
	MetricRevenueGrowth,
	MetricDebtToEquity,
	MetricCurrentRatio,
	MetricBeta,
	MetricDividendYield,
}

// =============================================================================
// Aggregate Weights (must sum to 1.0)
// =============================================================================

const (
	WeightPE            = 0.20
	WeightPB            = 0.10
	WeightROE           = 0.15
	WeightProfitMargin  = 0.10
	WeightRevenueGrowth = 0.20
	WeightDebtToEquity  = 0.08
	WeightCurrentRatio  = 0.07
	WeightBeta          = 0.05
	WeightDividendYield = 0.05
)

// Weights maps each metric to its importance weight
var Weights = map[string]float64{
	MetricPE:            WeightPE,
	MetricPB:            WeightPB,
	MetricROE:           WeightROE,
	MetricProfitMargin:  WeightProfitMargin,
	MetricRevenueGrowth: WeightRevenueGrowth,
	MetricDebtToEquity:  WeightDebtToEquity,
	MetricCurrentRatio:  WeightCurrentRatio,
	MetricBeta:          WeightBeta,
	MetricDividendYield: WeightDividendYield,
}

// =============================================================================
// Valuation Curves (lower is better)
// =============================================================================

const (
	// looseHigh = max(target * multiplier, floor)
	PELooseHighMultiplier = 2.5
	PELooseHighFloor      = 10.0
	PBLooseHighMultiplier = 3.0
	PBLooseHighFloor      = 5.0

	DebtToEquityTarget    = 0.5
	DebtToEquityLooseHigh = 3.0
)

// =============================================================================
// Profitability Curves (higher is better)
// =============================================================================

const (
	ROELooseLow    = 0.0
	MarginLooseLow = 0.0
)

// =============================================================================
// Band Curves (inside the band is best)
// =============================================================================

const (
	CurrentRatioLow      = 1.5
	CurrentRatioHigh     = 3.0
	CurrentRatioHardLow  = 0.8
	CurrentRatioHardHigh = 5.0

	BetaLow      = 0.8
	BetaHigh     = 1.2
	BetaHardLow  = 0.4
	BetaHardHigh = 1.8
)

// =============================================================================
// Dividend Yield and Revenue Growth (percent)
// =============================================================================

const (
	DividendYieldFullScore = 3.0 // 100 * y / 3, clamped

	GrowthExcellent = 20.0  // >= 20% -> 100
	GrowthGood      = 10.0  // 10-20% -> 70..100
	GrowthFlat      = 0.0   // 0-10% -> 40..70
	GrowthFloor     = -20.0 // <= -20% -> 0
)

// =============================================================================
// Labels and Rationale
// =============================================================================

const (
	BuyThreshold  = 80.0
	HoldThreshold = 60.0

	StrengthThreshold = 75.0 // sub-score >= 75
	WatchoutThreshold = 35.0 // sub-score <= 35

	MaxScore = 100.0
	MinScore = 0.0
)
