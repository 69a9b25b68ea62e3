// Package marketdata fetches company snapshots from market-data providers and
// adapts their loosely named fields into one canonical metrics record.
package marketdata

import (
	"sort"
	"strings"

	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// Canonical field names. Aliases cover Yahoo (camelCase), Alpha Vantage
// (PascalCase) and snake_case request bodies.
const (
	FieldName            = "name"
	FieldSector          = "sector"
	FieldPERatio         = "pe_ratio"
	FieldPriceToBook     = "price_to_book"
	FieldROE             = "roe"
	FieldDebtToEquity    = "debt_to_equity"
	FieldProfitMargin    = "profit_margin"
	FieldOperatingMargin = "operating_margin"
	FieldDividendYield   = "dividend_yield"
	FieldBeta            = "beta"
	FieldCurrentRatio    = "current_ratio"
	FieldRevenueGrowth   = "revenue_growth"
	FieldMarketCap       = "market_cap"
	FieldCurrentPrice    = "current_price"
	FieldForwardPE       = "forward_pe"
	FieldPEGRatio        = "peg_ratio"
)

// DefaultAliases lists, per canonical field, the source names tried in order
var DefaultAliases = map[string][]string{
	FieldName:            {"name", "longName", "shortName", "Name", "company_name"},
	FieldSector:          {"sector", "Sector"},
	FieldPERatio:         {"pe_ratio", "trailingPE", "PERatio", "TrailingPE", "trailing_pe", "peRatio"},
	FieldPriceToBook:     {"price_to_book", "priceToBook", "PriceToBookRatio", "pb_ratio", "pb"},
	FieldROE:             {"roe", "returnOnEquity", "ReturnOnEquityTTM", "return_on_equity"},
	FieldDebtToEquity:    {"debt_to_equity", "debtToEquity", "DebtToEquity", "de_ratio"},
	FieldProfitMargin:    {"profit_margin", "profitMargins", "ProfitMargin", "profitMargin"},
	FieldOperatingMargin: {"operating_margin", "operatingMargins", "OperatingMarginTTM", "operatingMargin"},
	FieldDividendYield:   {"dividend_yield", "dividendYield", "DividendYield"},
	FieldBeta:            {"beta", "Beta"},
	FieldCurrentRatio:    {"current_ratio", "currentRatio", "CurrentRatio"},
	FieldRevenueGrowth:   {"revenue_growth", "revenue_growth_pct", "revenueGrowthYoY"},
	FieldMarketCap:       {"market_cap", "marketCap", "MarketCapitalization"},
	FieldCurrentPrice:    {"current_price", "currentPrice", "regularMarketPrice", "price", "05. price"},
	FieldForwardPE:       {"forward_pe", "forwardPE", "ForwardPE"},
	FieldPEGRatio:        {"peg_ratio", "pegRatio", "PEGRatio", "trailingPegRatio"},
}

// Adapter turns a provider record with arbitrary field naming into RawMetrics
type Adapter struct {
	aliases map[string][]string
}

// NewAdapter creates an adapter using DefaultAliases
func NewAdapter() *Adapter {
	return &Adapter{aliases: DefaultAliases}
}

// Adapt resolves every canonical field from fields. For each field the first
// alias holding a usable value wins; exact names are tried before names that
// only match ignoring case and separators.
func (a *Adapter) Adapt(symbol string, fields map[string]interface{}) domain.RawMetrics {
	folded := foldKeys(fields)
	num := func(field string) *float64 {
		return a.number(field, fields, folded)
	}

	return domain.RawMetrics{
		Symbol:          strings.ToUpper(strings.TrimSpace(symbol)),
		Name:            a.text(FieldName, fields, folded),
		Sector:          CanonicalSector(a.text(FieldSector, fields, folded)),
		PERatio:         num(FieldPERatio),
		PriceToBook:     num(FieldPriceToBook),
		ROE:             num(FieldROE),
		DebtToEquity:    num(FieldDebtToEquity),
		ProfitMargin:    num(FieldProfitMargin),
		OperatingMargin: num(FieldOperatingMargin),
		DividendYield:   num(FieldDividendYield),
		Beta:            num(FieldBeta),
		CurrentRatio:    num(FieldCurrentRatio),
		RevenueGrowth:   num(FieldRevenueGrowth),
		MarketCap:       num(FieldMarketCap),
		CurrentPrice:    num(FieldCurrentPrice),
		ForwardPE:       num(FieldForwardPE),
		PEGRatio:        num(FieldPEGRatio),
	}
}

func (a *Adapter) number(field string, fields, folded map[string]interface{}) *float64 {
	aliases := a.aliases[field]
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok {
			if f := scoring.ParseRaw(v); f != nil {
				return f
			}
		}
	}
	for _, alias := range aliases {
		if v, ok := folded[foldKey(alias)]; ok {
			if f := scoring.ParseRaw(v); f != nil {
				return f
			}
		}
	}
	return nil
}

func (a *Adapter) text(field string, fields, folded map[string]interface{}) string {
	aliases := a.aliases[field]
	for _, alias := range aliases {
		if s := asText(fields[alias]); s != "" {
			return s
		}
	}
	for _, alias := range aliases {
		if s := asText(folded[foldKey(alias)]); s != "" {
			return s
		}
	}
	return ""
}

func asText(v interface{}) string {
	switch s := v.(type) {
	case string:
		s = strings.TrimSpace(s)
		if s == "None" || s == "N/A" || s == "-" {
			return ""
		}
		return s
	case *string:
		if s == nil {
			return ""
		}
		return asText(*s)
	default:
		return ""
	}
}

// foldKeys indexes fields by folded key. Keys are visited in sorted order
// so collisions resolve the same way every time.
func foldKeys(fields map[string]interface{}) map[string]interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]interface{}, len(fields))
	for _, k := range keys {
		fk := foldKey(k)
		if _, exists := folded[fk]; !exists {
			folded[fk] = fields[k]
		}
	}
	return folded
}

// foldKey lower-cases a name and drops separators: "Trailing_PE" -> "trailingpe"
func foldKey(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case '_', '-', ' ', '.':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
