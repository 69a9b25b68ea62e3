package marketdata

import (
	"context"
	"errors"
)

// Provider names
const (
	ProviderYahoo        = "yahoo"
	ProviderAlphaVantage = "alphavantage"
)

var (
	// ErrSymbolRequired is returned when no symbol was given
	ErrSymbolRequired = errors.New("symbol is required")
	// ErrNoProvider is returned when no provider is configured for an operation
	ErrNoProvider = errors.New("no market data provider configured")
	// ErrSymbolNotFound is returned when no provider knows the symbol
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrQuotaExceeded is returned when a provider's request budget is spent
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	// ErrProviderUnavailable is returned when providers fail for other reasons
	ErrProviderUnavailable = errors.New("market data provider unavailable")
)

// Record is one provider's view of a company.
// Fields keep the provider's own naming; the Adapter resolves them.
type Record struct {
	Symbol   string
	Provider string
	Fields   map[string]interface{}
}

// Provider returns a snapshot of company ratios
type Provider interface {
	Name() string
	Snapshot(ctx context.Context, symbol string) (*Record, error)
}

// RevenueSource returns annual revenues, most recent first
type RevenueSource interface {
	Name() string
	AnnualRevenues(ctx context.Context, symbol string) ([]float64, error)
}

// SearchResult is one symbol search hit
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
	Region   string `json:"region,omitempty"`
	Currency string `json:"currency,omitempty"`
	Provider string `json:"provider"`
}

// Searcher finds symbols by free text
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
