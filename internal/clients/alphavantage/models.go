package alphavantage

import "time"

// CompanyOverview is the OVERVIEW function response.
// Ratio fields are nil when Alpha Vantage reports "None" or "-".
type CompanyOverview struct {
	Symbol               string
	AssetType            string
	Name                 string
	Exchange             string
	Currency             string
	Country              string
	Sector               string // Upper-case vocabulary, e.g. "TECHNOLOGY"
	Industry             string
	MarketCapitalization int64

	PERatio          *float64
	ForwardPE        *float64
	PEGRatio         *float64
	PriceToBookRatio *float64
	EPS              *float64
	ProfitMargin     *float64 // Fraction
	OperatingMargin  *float64 // Fraction, TTM
	ReturnOnEquity   *float64 // Fraction, TTM
	DividendYield    *float64 // Fraction
	Beta             *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
}

// IncomeStatement is the INCOME_STATEMENT function response
type IncomeStatement struct {
	Symbol        string
	AnnualReports []IncomeReport // Most recent first
}

// IncomeReport is one fiscal period of an income statement
type IncomeReport struct {
	FiscalDateEnding string
	ReportedCurrency string
	TotalRevenue     *int64 // nil when not reported
	GrossProfit      int64
	OperatingIncome  int64
	NetIncome        int64
}

// BalanceSheet is the BALANCE_SHEET function response
type BalanceSheet struct {
	Symbol        string
	AnnualReports []BalanceReport // Most recent first
}

// BalanceReport is one fiscal period of a balance sheet
type BalanceReport struct {
	FiscalDateEnding        string
	ReportedCurrency        string
	TotalCurrentAssets      int64
	TotalCurrentLiabilities int64
	TotalShareholderEquity  int64
	ShortTermDebt           int64
	LongTermDebt            int64
	ShortLongTermDebtTotal  int64
}

// TotalDebt is the reported combined debt, or short plus long term debt
func (r BalanceReport) TotalDebt() int64 {
	if r.ShortLongTermDebtTotal > 0 {
		return r.ShortLongTermDebtTotal
	}
	return r.ShortTermDebt + r.LongTermDebt
}

// GlobalQuote is the GLOBAL_QUOTE function response
type GlobalQuote struct {
	Symbol           string
	Open             float64
	High             float64
	Low              float64
	Price            float64
	Volume           int64
	LatestTradingDay time.Time
	PreviousClose    float64
	Change           float64
	ChangePercent    float64
}

// SymbolMatch is one SYMBOL_SEARCH result
type SymbolMatch struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Region     string  `json:"region"`
	Currency   string  `json:"currency"`
	MatchScore float64 `json:"match_score"`
}

// CacheTTL configures how long each kind of response is cached
type CacheTTL struct {
	Fundamentals time.Duration
	PriceData    time.Duration
	Search       time.Duration
}

// DefaultCacheTTL returns the default cache lifetimes
func DefaultCacheTTL() CacheTTL {
	return CacheTTL{
		Fundamentals: 24 * time.Hour,
		PriceData:    15 * time.Minute,
		Search:       24 * time.Hour,
	}
}
