// Package analysis turns a company's market data into a scored fundamentals report.
package analysis

import (
	"time"

	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// Overview is the headline block of a report, preformatted for display.
// Unavailable values read "N/A".
type Overview struct {
	MarketCap    string `json:"market_cap"`
	TrailingPE   string `json:"trailing_pe"`
	ForwardPE    string `json:"forward_pe"`
	PEGRatio     string `json:"peg_ratio"`
	CurrentPrice string `json:"current_price"`
}

// KeyRatio is one labelled, preformatted ratio
type KeyRatio struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is the full result of analysing one company
type Report struct {
	ID              string                   `json:"id"`
	Symbol          string                   `json:"symbol"`
	Name            string                   `json:"name,omitempty"`
	Sector          string                   `json:"sector,omitempty"`
	BenchmarkSector string                   `json:"benchmark_sector"`
	Provider        string                   `json:"provider"`
	RevenueProvider string                   `json:"revenue_provider,omitempty"`
	Overview        Overview                 `json:"overview"`
	KeyRatios       []KeyRatio               `json:"key_ratios"`
	Metrics         domain.NormalizedMetrics `json:"metrics"`
	Benchmark       domain.Benchmark         `json:"benchmark"`
	Result          domain.AggregateResult   `json:"result"`
	Comparison      []domain.Comparison      `json:"comparison"`
	Verdict         string                   `json:"verdict"`
	Warnings        []string                 `json:"warnings,omitempty"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// EvaluateRequest scores a record supplied by the caller instead of a provider.
// Fields may use any naming the adapter understands; Revenues are annual,
// most recent first, and only used when Fields carry no revenue growth.
type EvaluateRequest struct {
	Symbol   string                 `json:"symbol"`
	Sector   string                 `json:"sector,omitempty"`
	Fields   map[string]interface{} `json:"fields"`
	Revenues []float64              `json:"revenues,omitempty"`
}
