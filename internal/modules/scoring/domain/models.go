// Package domain holds the value types of the fundamental scoring model.
package domain

// RawMetrics is one company's metrics as the market-data provider reports them.
// A nil field is unavailable and must never be read as zero.
type RawMetrics struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Sector string `json:"sector,omitempty"` // Provider sector label, empty when unknown

	PERatio         *float64 `json:"pe_ratio"`
	PriceToBook     *float64 `json:"price_to_book"`
	ROE             *float64 `json:"roe"`              // Fraction, 0.15 = 15%
	DebtToEquity    *float64 `json:"debt_to_equity"`   // Provider scale, 150 = 1.5x
	ProfitMargin    *float64 `json:"profit_margin"`    // Fraction
	OperatingMargin *float64 `json:"operating_margin"` // Fraction
	DividendYield   *float64 `json:"dividend_yield"`   // Fraction
	Beta            *float64 `json:"beta"`
	CurrentRatio    *float64 `json:"current_ratio"`
	RevenueGrowth   *float64 `json:"revenue_growth"` // Percent YoY, derived from annual revenue
	MarketCap       *float64 `json:"market_cap"`
	CurrentPrice    *float64 `json:"current_price"`

	// Display only, never scored
	ForwardPE *float64 `json:"forward_pe,omitempty"`
	PEGRatio  *float64 `json:"peg_ratio,omitempty"`
}

// NormalizedMetrics is RawMetrics converted to canonical units:
// ROE, margins and dividend yield in percent, debt-to-equity as a plain ratio.
type NormalizedMetrics struct {
	Sector          string   `json:"sector,omitempty"`
	PERatio         *float64 `json:"pe_ratio"`
	PriceToBook     *float64 `json:"price_to_book"`
	ROE             *float64 `json:"roe_pct"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	ProfitMargin    *float64 `json:"profit_margin_pct"`
	OperatingMargin *float64 `json:"operating_margin_pct"`
	DividendYield   *float64 `json:"dividend_yield_pct"`
	Beta            *float64 `json:"beta"`
	CurrentRatio    *float64 `json:"current_ratio"`
	RevenueGrowth   *float64 `json:"revenue_growth_pct"`
	MarketCap       *float64 `json:"market_cap"`
	CurrentPrice    *float64 `json:"current_price"`
	ForwardPE       *float64 `json:"forward_pe,omitempty"`
	PEGRatio        *float64 `json:"peg_ratio,omitempty"`
}

// Benchmark holds a sector's target values
type Benchmark struct {
	Sector             string  `json:"sector"`
	TargetPE           float64 `json:"target_pe"`
	TargetPB           float64 `json:"target_pb"`
	TargetROE          float64 `json:"target_roe"`           // Percent
	TargetProfitMargin float64 `json:"target_profit_margin"` // Percent
}

// Label is the discrete verdict derived from the overall score
type Label string

const (
	LabelBuy  Label = "BUY"
	LabelHold Label = "HOLD"
	LabelSell Label = "SELL"
)

// SubScore is one metric's score, or unavailable when Score is nil.
// Weight is the fixed weight the metric carries when available.
type SubScore struct {
	Metric string   `json:"metric"`
	Score  *float64 `json:"score"`
	Weight float64  `json:"weight"`
}

// Available reports whether the metric produced a score
func (s SubScore) Available() bool {
	return s.Score != nil
}

// AggregateResult is the outcome of one evaluation
type AggregateResult struct {
	OverallScore     float64             `json:"overall_score"`
	Label            Label               `json:"label"`
	Scores           map[string]SubScore `json:"scores"`
	Breakdown        []SubScore          `json:"breakdown"` // Same sub-scores in evaluation order
	Strengths        []string            `json:"strengths"`
	Watchouts        []string            `json:"watchouts"`
	AvailableWeight  float64             `json:"available_weight"` // Sum of weights before renormalization
	InsufficientData bool                `json:"insufficient_data"`
	Reason           string              `json:"reason,omitempty"`
}

// Comparison places one company metric next to its sector target
type Comparison struct {
	Metric string   `json:"metric"`
	Value  *float64 `json:"value"`
	Target float64  `json:"target"`
	Delta  *float64 `json:"delta"`  // Value - Target
	Better *bool    `json:"better"` // Whether the value beats the target in the metric's direction
}
