package alphavantage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// parseFloat64 parses an Alpha Vantage numeric string, 0 when missing
func parseFloat64(s string) float64 {
	if v := parseFloat64Ptr(s); v != nil {
		return *v
	}
	return 0
}

// parseFloat64Ptr parses an Alpha Vantage numeric string, nil when missing.
// Percent signs are stripped: "0.65%" reads as 0.65.
func parseFloat64Ptr(s string) *float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "", "None", "null", "-", ".":
		return nil
	}
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseInt64 parses integers that may arrive in float or exponent notation, 0 when missing
func parseInt64(s string) int64 {
	if v := parseInt64Ptr(s); v != nil {
		return *v
	}
	return 0
}

// parseInt64Ptr is parseInt64 with nil for missing values
func parseInt64Ptr(s string) *int64 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}
	f := parseFloat64Ptr(s)
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}

func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// stringField reads a top-level value as a string whatever its JSON type
func stringField(raw map[string]interface{}, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func parseCompanyOverview(body []byte) (*CompanyOverview, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode overview: %w", err)
	}

	get := func(key string) string { return stringField(raw, key) }
	num := func(key string) *float64 { return parseFloat64Ptr(get(key)) }

	return &CompanyOverview{
		Symbol:               get("Symbol"),
		AssetType:            get("AssetType"),
		Name:                 get("Name"),
		Exchange:             get("Exchange"),
		Currency:             get("Currency"),
		Country:              get("Country"),
		Sector:               get("Sector"),
		Industry:             get("Industry"),
		MarketCapitalization: parseInt64(get("MarketCapitalization")),
		PERatio:              num("PERatio"),
		ForwardPE:            num("ForwardPE"),
		PEGRatio:             num("PEGRatio"),
		PriceToBookRatio:     num("PriceToBookRatio"),
		EPS:                  num("EPS"),
		ProfitMargin:         num("ProfitMargin"),
		OperatingMargin:      num("OperatingMarginTTM"),
		ReturnOnEquity:       num("ReturnOnEquityTTM"),
		DividendYield:        num("DividendYield"),
		Beta:                 num("Beta"),
		FiftyTwoWeekHigh:     num("52WeekHigh"),
		FiftyTwoWeekLow:      num("52WeekLow"),
	}, nil
}

func parseIncomeStatement(body []byte) (*IncomeStatement, error) {
	var raw struct {
		Symbol        string `json:"symbol"`
		AnnualReports []struct {
			FiscalDateEnding string `json:"fiscalDateEnding"`
			ReportedCurrency string `json:"reportedCurrency"`
			TotalRevenue     string `json:"totalRevenue"`
			GrossProfit      string `json:"grossProfit"`
			OperatingIncome  string `json:"operatingIncome"`
			NetIncome        string `json:"netIncome"`
		} `json:"annualReports"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode income statement: %w", err)
	}

	stmt := &IncomeStatement{
		Symbol:        raw.Symbol,
		AnnualReports: make([]IncomeReport, 0, len(raw.AnnualReports)),
	}
	for _, r := range raw.AnnualReports {
		stmt.AnnualReports = append(stmt.AnnualReports, IncomeReport{
			FiscalDateEnding: r.FiscalDateEnding,
			ReportedCurrency: r.ReportedCurrency,
			TotalRevenue:     parseInt64Ptr(r.TotalRevenue),
			GrossProfit:      parseInt64(r.GrossProfit),
			OperatingIncome:  parseInt64(r.OperatingIncome),
			NetIncome:        parseInt64(r.NetIncome),
		})
	}

	sort.SliceStable(stmt.AnnualReports, func(i, j int) bool {
		return stmt.AnnualReports[i].FiscalDateEnding > stmt.AnnualReports[j].FiscalDateEnding
	})
	return stmt, nil
}

func parseBalanceSheet(body []byte) (*BalanceSheet, error) {
	var raw struct {
		Symbol        string `json:"symbol"`
		AnnualReports []struct {
			FiscalDateEnding        string `json:"fiscalDateEnding"`
			ReportedCurrency        string `json:"reportedCurrency"`
			TotalCurrentAssets      string `json:"totalCurrentAssets"`
			TotalCurrentLiabilities string `json:"totalCurrentLiabilities"`
			TotalShareholderEquity  string `json:"totalShareholderEquity"`
			ShortTermDebt           string `json:"shortTermDebt"`
			LongTermDebt            string `json:"longTermDebt"`
			ShortLongTermDebtTotal  string `json:"shortLongTermDebtTotal"`
		} `json:"annualReports"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode balance sheet: %w", err)
	}

	sheet := &BalanceSheet{
		Symbol:        raw.Symbol,
		AnnualReports: make([]BalanceReport, 0, len(raw.AnnualReports)),
	}
	for _, r := range raw.AnnualReports {
		sheet.AnnualReports = append(sheet.AnnualReports, BalanceReport{
			FiscalDateEnding:        r.FiscalDateEnding,
			ReportedCurrency:        r.ReportedCurrency,
			TotalCurrentAssets:      parseInt64(r.TotalCurrentAssets),
			TotalCurrentLiabilities: parseInt64(r.TotalCurrentLiabilities),
			TotalShareholderEquity:  parseInt64(r.TotalShareholderEquity),
			ShortTermDebt:           parseInt64(r.ShortTermDebt),
			LongTermDebt:            parseInt64(r.LongTermDebt),
			ShortLongTermDebtTotal:  parseInt64(r.ShortLongTermDebtTotal),
		})
	}

	sort.SliceStable(sheet.AnnualReports, func(i, j int) bool {
		return sheet.AnnualReports[i].FiscalDateEnding > sheet.AnnualReports[j].FiscalDateEnding
	})
	return sheet, nil
}

func parseGlobalQuote(body []byte) (*GlobalQuote, error) {
	var raw struct {
		Quote map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode global quote: %w", err)
	}
	if len(raw.Quote) == 0 {
		return nil, fmt.Errorf("empty global quote")
	}

	q := raw.Quote
	return &GlobalQuote{
		Symbol:           q["01. symbol"],
		Open:             parseFloat64(q["02. open"]),
		High:             parseFloat64(q["03. high"]),
		Low:              parseFloat64(q["04. low"]),
		Price:            parseFloat64(q["05. price"]),
		Volume:           parseInt64(q["06. volume"]),
		LatestTradingDay: parseDate(q["07. latest trading day"]),
		PreviousClose:    parseFloat64(q["08. previous close"]),
		Change:           parseFloat64(q["09. change"]),
		ChangePercent:    parseFloat64(q["10. change percent"]),
	}, nil
}

func parseSymbolSearch(body []byte) ([]SymbolMatch, error) {
	var raw struct {
		BestMatches []map[string]string `json:"bestMatches"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode symbol search: %w", err)
	}

	matches := make([]SymbolMatch, 0, len(raw.BestMatches))
	for _, m := range raw.BestMatches {
		matches = append(matches, SymbolMatch{
			Symbol:     m["1. symbol"],
			Name:       m["2. name"],
			Type:       m["3. type"],
			Region:     m["4. region"],
			Currency:   m["8. currency"],
			MatchScore: parseFloat64(m["9. matchScore"]),
		})
	}
	return matches, nil
}
