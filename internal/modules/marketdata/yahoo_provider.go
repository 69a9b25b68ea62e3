package marketdata

import (
	"context"
	"fmt"

	"github.com/aristath/fundamentals/internal/clients/yahoo"
)

// YahooProvider serves snapshots, annual revenues and symbol lookups
// from Yahoo Finance
type YahooProvider struct {
	client yahoo.ClientInterface
}

// NewYahooProvider wraps a Yahoo client
func NewYahooProvider(client yahoo.ClientInterface) *YahooProvider {
	return &YahooProvider{client: client}
}

// Name implements Provider
func (p *YahooProvider) Name() string {
	return ProviderYahoo
}

// Snapshot implements Provider
func (p *YahooProvider) Snapshot(ctx context.Context, symbol string) (*Record, error) {
	f, err := p.client.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo: %w", ErrProviderUnavailable, err)
	}
	if f.Name == "" && f.QuoteType == "" && f.CurrentPrice == nil {
		return nil, fmt.Errorf("%w: yahoo has no data for %s", ErrSymbolNotFound, symbol)
	}

	return &Record{
		Symbol:   f.Symbol,
		Provider: ProviderYahoo,
		Fields: map[string]interface{}{
			"longName":         f.Name,
			"sector":           f.Sector,
			"trailingPE":       f.TrailingPE,
			"forwardPE":        f.ForwardPE,
			"pegRatio":         f.PEGRatio,
			"priceToBook":      f.PriceToBook,
			"returnOnEquity":   f.ReturnOnEquity,
			"debtToEquity":     f.DebtToEquity,
			"profitMargins":    f.ProfitMargins,
			"operatingMargins": f.OperatingMargin,
			"dividendYield":    f.DividendYield,
			"beta":             f.Beta,
			"currentRatio":     f.CurrentRatio,
			"marketCap":        f.MarketCap,
			"currentPrice":     f.CurrentPrice,
		},
	}, nil
}

// AnnualRevenues implements RevenueSource
func (p *YahooProvider) AnnualRevenues(ctx context.Context, symbol string) ([]float64, error) {
	revenues, err := p.client.GetAnnualRevenues(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo income statement: %w", ErrProviderUnavailable, err)
	}
	return revenues, nil
}

// Search implements Searcher
func (p *YahooProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	symbols, err := p.client.LookupSymbols(ctx, query, 10)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo lookup: %w", ErrProviderUnavailable, err)
	}

	results := make([]SearchResult, 0, len(symbols))
	for _, s := range symbols {
		results = append(results, SearchResult{Symbol: s, Provider: ProviderYahoo})
	}
	return results, nil
}
