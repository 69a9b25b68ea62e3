// Package yahoo provides a Yahoo Finance client built on go-yfinance.
package yahoo

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/lookup"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// revenueField is the income statement row holding total revenue
const revenueField = "TotalRevenue"

// Fundamentals is the snapshot of ratios Yahoo reports for one ticker.
// Ratios keep Yahoo's units: ROE, margins and yield as fractions,
// debt-to-equity scaled by 100.
type Fundamentals struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
	Country   string `json:"country"`
	QuoteType string `json:"quote_type"`

	TrailingPE      *float64 `json:"trailing_pe"`
	ForwardPE       *float64 `json:"forward_pe"`
	PEGRatio        *float64 `json:"peg_ratio"`
	PriceToBook     *float64 `json:"price_to_book"`
	ReturnOnEquity  *float64 `json:"return_on_equity"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	ProfitMargins   *float64 `json:"profit_margins"`
	OperatingMargin *float64 `json:"operating_margins"`
	DividendYield   *float64 `json:"dividend_yield"`
	Beta            *float64 `json:"beta"`
	CurrentRatio    *float64 `json:"current_ratio"`
	MarketCap       *float64 `json:"market_cap"`
	CurrentPrice    *float64 `json:"current_price"`
}

// ClientInterface is the subset of Yahoo Finance the service depends on
type ClientInterface interface {
	GetFundamentals(ctx context.Context, symbol string) (*Fundamentals, error)
	GetAnnualRevenues(ctx context.Context, symbol string) ([]float64, error)
	LookupSymbols(ctx context.Context, query string, limit int) ([]string, error)
}

// Client implements ClientInterface using go-yfinance
type Client struct {
	log zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		log: log.With().Str("client", "yahoo").Logger(),
	}
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetFundamentals fetches the ratio snapshot for a symbol
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (*Fundamentals, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}
	return withContext(ctx, func() (*Fundamentals, error) {
		return c.fetchFundamentals(symbol)
	})
}

// GetAnnualRevenues returns total revenue per fiscal year, most recent first
func (c *Client) GetAnnualRevenues(ctx context.Context, symbol string) ([]float64, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}
	return withContext(ctx, func() ([]float64, error) {
		return c.fetchAnnualRevenues(symbol)
	})
}

// withContext runs a blocking go-yfinance call in its own goroutine.
// go-yfinance is not context aware, so the call is abandoned when ctx is done.
func withContext[T any](ctx context.Context, fetch func() (T, error)) (T, error) {
	type result struct {
		data T
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := fetch()
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.data, r.err
	}
}

func (c *Client) fetchFundamentals(symbol string) (*Fundamentals, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	info, err := t.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get info: %w", err)
	}
	if info == nil {
		return nil, fmt.Errorf("no info returned for %s", symbol)
	}

	name := info.LongName
	if name == "" {
		name = info.ShortName
	}

	// Info cannot tell an absent ratio from a reported zero, so zero reads
	// as unavailable. Values are copied before taking their address.
	f := &Fundamentals{
		Symbol:          symbol,
		Name:            name,
		Sector:          info.Sector,
		Industry:        info.Industry,
		Country:         info.Country,
		QuoteType:       info.QuoteType,
		TrailingPE:      nonZero(info.TrailingPE),
		ForwardPE:       nonZero(info.ForwardPE),
		PEGRatio:        nonZero(info.PegRatio),
		PriceToBook:     nonZero(info.PriceToBook),
		ReturnOnEquity:  nonZero(info.ReturnOnEquity),
		DebtToEquity:    nonZero(info.DebtToEquity),
		ProfitMargins:   nonZero(info.ProfitMargins),
		OperatingMargin: nonZero(info.OperatingMargins),
		DividendYield:   nonZero(info.DividendYield),
		Beta:            nonZero(info.Beta),
		CurrentRatio:    nonZero(info.CurrentRatio),
		MarketCap:       nonZero(float64(info.MarketCap)),
		CurrentPrice:    nonZero(info.CurrentPrice),
	}
	if f.CurrentPrice == nil {
		f.CurrentPrice = nonZero(info.RegularMarketPreviousClose)
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("sector", f.Sector).
		Msg("Fetched Yahoo fundamentals")

	return f, nil
}

func (c *Client) fetchAnnualRevenues(symbol string) ([]float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	stmt, err := t.IncomeStatement(string(models.FrequencyAnnual))
	if err != nil {
		return nil, fmt.Errorf("failed to get income statement: %w", err)
	}

	revenues := annualRevenues(stmt)
	if len(revenues) == 0 {
		return nil, fmt.Errorf("no annual revenue reported for %s", symbol)
	}

	c.log.Debug().
		Str("symbol", symbol).
		Int("years", len(revenues)).
		Msg("Fetched Yahoo annual revenues")

	return revenues, nil
}

// annualRevenues reverses the statement's ascending revenue series
func annualRevenues(stmt *models.FinancialStatement) []float64 {
	if stmt == nil {
		return nil
	}
	items := stmt.Data[revenueField]
	revenues := make([]float64, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		revenues = append(revenues, items[i].Value)
	}
	return revenues
}

// LookupSymbols searches Yahoo for equity tickers matching query
func (c *Client) LookupSymbols(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if limit <= 0 {
		limit = 10
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lookupClient, err := lookup.New(query)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup client: %w", err)
	}
	defer lookupClient.Close()

	results, err := lookupClient.Stock(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup %q: %w", query, err)
	}

	symbols := make([]string, 0, len(results))
	for _, r := range results {
		if r.Symbol != "" {
			symbols = append(symbols, r.Symbol)
		}
	}
	return symbols, nil
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
