package marketdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/fundamentals/internal/clients/alphavantage"
)

// AlphaVantageProvider serves snapshots, revenue history and symbol search
// from Alpha Vantage. A snapshot costs up to three requests (OVERVIEW,
// BALANCE_SHEET, GLOBAL_QUOTE); only OVERVIEW is required.
type AlphaVantageProvider struct {
	client alphavantage.ClientInterface
	log    zerolog.Logger
}

// NewAlphaVantageProvider wraps an Alpha Vantage client
func NewAlphaVantageProvider(client alphavantage.ClientInterface, log zerolog.Logger) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		client: client,
		log:    log.With().Str("provider", ProviderAlphaVantage).Logger(),
	}
}

// Name implements Provider
func (p *AlphaVantageProvider) Name() string {
	return ProviderAlphaVantage
}

// Snapshot implements Provider
func (p *AlphaVantageProvider) Snapshot(ctx context.Context, symbol string) (*Record, error) {
	overview, err := p.client.GetCompanyOverview(ctx, symbol)
	if err != nil {
		return nil, mapAlphaVantageError(err)
	}
	if overview == nil {
		return nil, fmt.Errorf("%w: alpha vantage has no overview for %s", ErrSymbolNotFound, symbol)
	}

	fields := map[string]interface{}{
		"Name":                 overview.Name,
		"Sector":               overview.Sector,
		"PERatio":              overview.PERatio,
		"ForwardPE":            overview.ForwardPE,
		"PEGRatio":             overview.PEGRatio,
		"PriceToBookRatio":     overview.PriceToBookRatio,
		"ReturnOnEquityTTM":    overview.ReturnOnEquity,
		"ProfitMargin":         overview.ProfitMargin,
		"OperatingMarginTTM":   overview.OperatingMargin,
		"DividendYield":        overview.DividendYield,
		"Beta":                 overview.Beta,
		"MarketCapitalization": positiveInt(overview.MarketCapitalization),
	}

	// Leverage and liquidity come from the latest annual balance sheet
	if sheet, err := p.client.GetBalanceSheet(ctx, symbol); err != nil {
		p.log.Warn().Err(err).Str("symbol", symbol).Msg("Balance sheet unavailable")
	} else if sheet != nil && len(sheet.AnnualReports) > 0 {
		latest := sheet.AnnualReports[0]
		fields["DebtToEquity"] = debtToEquity(latest)
		fields["CurrentRatio"] = ratio(latest.TotalCurrentAssets, latest.TotalCurrentLiabilities)
	}

	if quote, err := p.client.GetGlobalQuote(ctx, symbol); err != nil {
		p.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote unavailable")
	} else if quote != nil && quote.Price > 0 {
		fields["price"] = quote.Price
	}

	return &Record{
		Symbol:   overview.Symbol,
		Provider: ProviderAlphaVantage,
		Fields:   fields,
	}, nil
}

// AnnualRevenues implements RevenueSource.
// The list stops at the first period that does not report revenue.
func (p *AlphaVantageProvider) AnnualRevenues(ctx context.Context, symbol string) ([]float64, error) {
	stmt, err := p.client.GetIncomeStatement(ctx, symbol)
	if err != nil {
		return nil, mapAlphaVantageError(err)
	}

	revenues := make([]float64, 0, len(stmt.AnnualReports))
	for _, r := range stmt.AnnualReports {
		if r.TotalRevenue == nil {
			break
		}
		revenues = append(revenues, float64(*r.TotalRevenue))
	}
	return revenues, nil
}

// Search implements Searcher
func (p *AlphaVantageProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	matches, err := p.client.SearchSymbol(ctx, query)
	if err != nil {
		return nil, mapAlphaVantageError(err)
	}

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, SearchResult{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Type:     m.Type,
			Region:   m.Region,
			Currency: m.Currency,
			Provider: ProviderAlphaVantage,
		})
	}
	return results, nil
}

// RemainingRequests reports the client's daily budget
func (p *AlphaVantageProvider) RemainingRequests() int {
	return p.client.GetRemainingRequests()
}

// debtToEquity returns total debt over equity on the provider's x100 scale,
// matching what Yahoo reports
func debtToEquity(r alphavantage.BalanceReport) *float64 {
	de := ratio(r.TotalDebt(), r.TotalShareholderEquity)
	if de == nil {
		return nil
	}
	scaled := *de * 100
	return &scaled
}

// ratio is nil when the denominator is not positive
func ratio(numerator, denominator int64) *float64 {
	if denominator <= 0 {
		return nil
	}
	v := float64(numerator) / float64(denominator)
	return &v
}

func positiveInt(v int64) *float64 {
	if v <= 0 {
		return nil
	}
	f := float64(v)
	return &f
}

func mapAlphaVantageError(err error) error {
	var notFound alphavantage.ErrSymbolNotFound
	var rateLimited alphavantage.ErrRateLimitExceeded
	var invalidKey alphavantage.ErrInvalidAPIKey

	switch {
	case errors.As(err, &notFound):
		return fmt.Errorf("%w: %w", ErrSymbolNotFound, err)
	case errors.As(err, &rateLimited):
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	case errors.As(err, &invalidKey):
		return fmt.Errorf("%w: %w", ErrNoProvider, err)
	default:
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
}
