package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overviewJSON = `{
	"Symbol": "IBM",
	"AssetType": "Common Stock",
	"Name": "International Business Machines",
	"Description": "IBM is a technology company.",
	"Exchange": "NYSE",
	"Currency": "USD",
	"Country": "USA",
	"Sector": "TECHNOLOGY",
	"Industry": "COMPUTER & OFFICE EQUIPMENT",
	"MarketCapitalization": "125000000000",
	"PERatio": "20.5",
	"PEGRatio": "None",
	"ForwardPE": "18.2",
	"PriceToBookRatio": "7.4",
	"EPS": "9.05",
	"ProfitMargin": "0.12",
	"OperatingMarginTTM": "0.15",
	"ReturnOnEquityTTM": "0.33",
	"DividendYield": "0.0485",
	"52WeekHigh": "200.00",
	"52WeekLow": "120.00",
	"Beta": "0.95"
}`

// newTestClient points a client at a test server
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key", zerolog.Nop())
	client.baseURL = server.URL
	return client, &calls
}

// TestNewClient tests client creation.
func TestNewClient(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	assert.NotNil(t, client)
	assert.Equal(t, "test-key", client.apiKey)
	assert.Equal(t, 25, client.GetRemainingRequests())
}

// TestRateLimiting tests the rate limiting functionality.
func TestRateLimiting(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	// Simulate using all requests
	for i := 0; i < 25; i++ {
		remaining := client.GetRemainingRequests()
		assert.Equal(t, 25-i, remaining)
		err := client.checkRateLimit()
		require.NoError(t, err)
	}

	// 26th request should fail
	err := client.checkRateLimit()
	assert.Error(t, err)
	assert.IsType(t, ErrRateLimitExceeded{}, err)
	assert.Equal(t, 0, client.GetRemainingRequests())
}

func TestSetDailyLimit(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	client.SetDailyLimit(3)
	assert.Equal(t, 3, client.GetRemainingRequests())

	client.SetDailyLimit(0)
	assert.Equal(t, 3, client.GetRemainingRequests())
}

// TestResetDailyCounter tests counter reset.
func TestResetDailyCounter(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	// Use some requests
	for i := 0; i < 10; i++ {
		_ = client.checkRateLimit()
	}
	assert.Equal(t, 15, client.GetRemainingRequests())

	// Reset
	client.ResetDailyCounter()
	assert.Equal(t, 25, client.GetRemainingRequests())
}

func TestCounterRollsOverAtMidnight(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())
	for i := 0; i < 5; i++ {
		_ = client.checkRateLimit()
	}

	client.mu.Lock()
	client.resetAt = time.Now().UTC().Add(-time.Second)
	client.mu.Unlock()

	assert.Equal(t, 25, client.GetRemainingRequests())
}

// TestCaching tests the cache functionality.
func TestCaching(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	// Set a cache entry
	testData := "test data"
	client.setCache("test-key", testData, time.Hour)

	// Retrieve it
	cached, ok := client.getFromCache("test-key")
	assert.True(t, ok)
	assert.Equal(t, testData, cached)

	// Non-existent key
	_, ok = client.getFromCache("non-existent")
	assert.False(t, ok)
}

// TestCacheExpiration tests cache expiration.
func TestCacheExpiration(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	// Set with very short TTL
	client.setCache("test-key", "test data", time.Millisecond)

	// Wait for expiration
	time.Sleep(5 * time.Millisecond)

	// Should be expired
	_, ok := client.getFromCache("test-key")
	assert.False(t, ok)
}

// TestClearCache tests cache clearing.
func TestClearCache(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	client.setCache("key1", "data1", time.Hour)
	client.setCache("key2", "data2", time.Hour)

	client.ClearCache()

	_, ok1 := client.getFromCache("key1")
	_, ok2 := client.getFromCache("key2")
	assert.False(t, ok1)
	assert.False(t, ok2)
}

func TestPurgeExpired(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	client.setCache("stale1", "a", -time.Second)
	client.setCache("stale2", "b", -time.Second)
	client.setCache("fresh", "c", time.Hour)

	assert.Equal(t, 2, client.PurgeExpired())
	assert.Equal(t, 0, client.PurgeExpired())

	_, ok := client.getFromCache("fresh")
	assert.True(t, ok)
}

// TestBuildCacheKey tests cache key generation.
func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		function string
		params   map[string]string
	}{
		{
			name:     "Simple function",
			function: "OVERVIEW",
			params:   map[string]string{"symbol": "IBM"},
		},
		{
			name:     "Multiple params",
			function: "SYMBOL_SEARCH",
			params: map[string]string{
				"keywords": "tesco",
				"datatype": "json",
			},
		},
		{
			name:     "With apikey excluded",
			function: "BALANCE_SHEET",
			params: map[string]string{
				"symbol": "MSFT",
				"apikey": "secret", // Should be excluded
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := buildCacheKey(tt.function, tt.params)
			assert.Contains(t, key, tt.function)
			assert.NotContains(t, key, "apikey=")
			assert.NotContains(t, key, "secret")
			assert.Equal(t, key, buildCacheKey(tt.function, tt.params))
		})
	}
}

// TestParseFloat64 tests float parsing.
func TestParseFloat64(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"123.45", 123.45},
		{"0", 0},
		{"None", 0},
		{"", 0},
		{"null", 0},
		{"-", 0},
		{"50.5%", 50.5},
		{"invalid", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseFloat64(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestParseFloat64Ptr tests nullable float parsing.
func TestParseFloat64Ptr(t *testing.T) {
	tests := []struct {
		input    string
		isNil    bool
		expected float64
	}{
		{"123.45", false, 123.45},
		{"-0.05", false, -0.05},
		{"None", true, 0},
		{"", true, 0},
		{"null", true, 0},
		{"-", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseFloat64Ptr(tt.input)
			if tt.isNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, tt.expected, *result)
			}
		})
	}
}

// TestParseInt64 tests integer parsing.
func TestParseInt64(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"12345", 12345},
		{"0", 0},
		{"None", 0},
		{"", 0},
		{"1.5E10", 15000000000},
		{"123.45", 123},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseInt64(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseInt64Ptr(t *testing.T) {
	for _, missing := range []string{"", "None", "null", "-"} {
		assert.Nil(t, parseInt64Ptr(missing), "input %q", missing)
	}

	zero := parseInt64Ptr("0")
	require.NotNil(t, zero)
	assert.Equal(t, int64(0), *zero)

	big := parseInt64Ptr("1.5E10")
	require.NotNil(t, big)
	assert.Equal(t, int64(15000000000), *big)
}

// TestParseDate tests date parsing.
func TestParseDate(t *testing.T) {
	result := parseDate("2024-01-15")
	assert.Equal(t, 2024, result.Year())
	assert.Equal(t, time.January, result.Month())
	assert.Equal(t, 15, result.Day())

	assert.True(t, parseDate("not a date").IsZero())
}

// TestParseGlobalQuote tests global quote parsing.
func TestParseGlobalQuote(t *testing.T) {
	jsonData := `{
		"Global Quote": {
			"01. symbol": "IBM",
			"02. open": "185.00",
			"03. high": "186.50",
			"04. low": "184.50",
			"05. price": "186.20",
			"06. volume": "3456789",
			"07. latest trading day": "2024-01-15",
			"08. previous close": "185.00",
			"09. change": "1.20",
			"10. change percent": "0.65%"
		}
	}`

	quote, err := parseGlobalQuote([]byte(jsonData))
	require.NoError(t, err)

	assert.Equal(t, "IBM", quote.Symbol)
	assert.Equal(t, 185.0, quote.Open)
	assert.Equal(t, 186.5, quote.High)
	assert.Equal(t, 184.5, quote.Low)
	assert.Equal(t, 186.2, quote.Price)
	assert.Equal(t, int64(3456789), quote.Volume)
	assert.Equal(t, 185.0, quote.PreviousClose)
	assert.Equal(t, 1.2, quote.Change)
	assert.Equal(t, 0.65, quote.ChangePercent)
	assert.Equal(t, 15, quote.LatestTradingDay.Day())
}

func TestParseGlobalQuote_Empty(t *testing.T) {
	_, err := parseGlobalQuote([]byte(`{"Global Quote": {}}`))
	assert.Error(t, err)
}

// TestParseSymbolSearch tests symbol search parsing.
func TestParseSymbolSearch(t *testing.T) {
	jsonData := `{
		"bestMatches": [
			{
				"1. symbol": "IBM",
				"2. name": "International Business Machines Corp",
				"3. type": "Equity",
				"4. region": "United States",
				"5. marketOpen": "09:30",
				"6. marketClose": "16:00",
				"7. timezone": "UTC-05",
				"8. currency": "USD",
				"9. matchScore": "1.0000"
			}
		]
	}`

	matches, err := parseSymbolSearch([]byte(jsonData))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, "IBM", matches[0].Symbol)
	assert.Equal(t, "International Business Machines Corp", matches[0].Name)
	assert.Equal(t, "Equity", matches[0].Type)
	assert.Equal(t, "United States", matches[0].Region)
	assert.Equal(t, "USD", matches[0].Currency)
	assert.Equal(t, 1.0, matches[0].MatchScore)
}

// TestParseCompanyOverview tests company overview parsing.
func TestParseCompanyOverview(t *testing.T) {
	overview, err := parseCompanyOverview([]byte(overviewJSON))
	require.NoError(t, err)

	assert.Equal(t, "IBM", overview.Symbol)
	assert.Equal(t, "Common Stock", overview.AssetType)
	assert.Equal(t, "International Business Machines", overview.Name)
	assert.Equal(t, "NYSE", overview.Exchange)
	assert.Equal(t, "USD", overview.Currency)
	assert.Equal(t, "TECHNOLOGY", overview.Sector)
	assert.Equal(t, int64(125000000000), overview.MarketCapitalization)
	require.NotNil(t, overview.PERatio)
	assert.Equal(t, 20.5, *overview.PERatio)
	assert.Nil(t, overview.PEGRatio)
	require.NotNil(t, overview.EPS)
	assert.Equal(t, 9.05, *overview.EPS)
	require.NotNil(t, overview.ReturnOnEquity)
	assert.Equal(t, 0.33, *overview.ReturnOnEquity)
	require.NotNil(t, overview.OperatingMargin)
	assert.Equal(t, 0.15, *overview.OperatingMargin)
	require.NotNil(t, overview.FiftyTwoWeekHigh)
	assert.Equal(t, 200.0, *overview.FiftyTwoWeekHigh)
}

// TestParseIncomeStatement tests income statement parsing.
func TestParseIncomeStatement(t *testing.T) {
	jsonData := `{
		"symbol": "IBM",
		"annualReports": [
			{
				"fiscalDateEnding": "2022-12-31",
				"reportedCurrency": "USD",
				"totalRevenue": "55000000000",
				"netIncome": "1600000000"
			},
			{
				"fiscalDateEnding": "2023-12-31",
				"reportedCurrency": "USD",
				"totalRevenue": "60000000000",
				"grossProfit": "30000000000",
				"operatingIncome": "9000000000",
				"netIncome": "7200000000"
			}
		],
		"quarterlyReports": []
	}`

	stmt, err := parseIncomeStatement([]byte(jsonData))
	require.NoError(t, err)

	assert.Equal(t, "IBM", stmt.Symbol)
	require.Len(t, stmt.AnnualReports, 2)

	// Most recent first
	assert.Equal(t, "2023-12-31", stmt.AnnualReports[0].FiscalDateEnding)
	require.NotNil(t, stmt.AnnualReports[0].TotalRevenue)
	assert.Equal(t, int64(60000000000), *stmt.AnnualReports[0].TotalRevenue)
	assert.Equal(t, int64(7200000000), stmt.AnnualReports[0].NetIncome)
	require.NotNil(t, stmt.AnnualReports[1].TotalRevenue)
	assert.Equal(t, int64(55000000000), *stmt.AnnualReports[1].TotalRevenue)
}

func TestParseIncomeStatement_MissingAndZeroRevenue(t *testing.T) {
	jsonData := `{
		"symbol": "ZERO",
		"annualReports": [
			{"fiscalDateEnding": "2024-12-31", "totalRevenue": "0"},
			{"fiscalDateEnding": "2023-12-31", "totalRevenue": "None"}
		]
	}`

	stmt, err := parseIncomeStatement([]byte(jsonData))
	require.NoError(t, err)
	require.Len(t, stmt.AnnualReports, 2)

	require.NotNil(t, stmt.AnnualReports[0].TotalRevenue)
	assert.Equal(t, int64(0), *stmt.AnnualReports[0].TotalRevenue)
	assert.Nil(t, stmt.AnnualReports[1].TotalRevenue)
}

func TestParseBalanceSheet(t *testing.T) {
	jsonData := `{
		"symbol": "IBM",
		"annualReports": [
			{
				"fiscalDateEnding": "2023-12-31",
				"reportedCurrency": "USD",
				"totalCurrentAssets": "32000000000",
				"totalCurrentLiabilities": "34000000000",
				"totalShareholderEquity": "22000000000",
				"shortTermDebt": "6000000000",
				"longTermDebt": "50000000000",
				"shortLongTermDebtTotal": "None"
			}
		]
	}`

	sheet, err := parseBalanceSheet([]byte(jsonData))
	require.NoError(t, err)
	require.Len(t, sheet.AnnualReports, 1)

	r := sheet.AnnualReports[0]
	assert.Equal(t, int64(32000000000), r.TotalCurrentAssets)
	assert.Equal(t, int64(34000000000), r.TotalCurrentLiabilities)
	assert.Equal(t, int64(22000000000), r.TotalShareholderEquity)
	assert.Equal(t, int64(56000000000), r.TotalDebt())
}

func TestBalanceReport_TotalDebtPrefersReportedTotal(t *testing.T) {
	r := BalanceReport{ShortTermDebt: 1, LongTermDebt: 2, ShortLongTermDebtTotal: 10}
	assert.Equal(t, int64(10), r.TotalDebt())
}

// TestErrorTypes tests error type implementations.
func TestErrorTypes(t *testing.T) {
	t.Run("ErrRateLimitExceeded", func(t *testing.T) {
		err := ErrRateLimitExceeded{}
		assert.Contains(t, err.Error(), "rate limit")

		withReset := ErrRateLimitExceeded{ResetAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
		assert.Contains(t, withReset.Error(), "2024-01-02")
	})

	t.Run("ErrInvalidAPIKey", func(t *testing.T) {
		err := ErrInvalidAPIKey{}
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("ErrSymbolNotFound", func(t *testing.T) {
		err := ErrSymbolNotFound{Symbol: "XYZ"}
		assert.Contains(t, err.Error(), "XYZ")
	})

	t.Run("ErrAPI", func(t *testing.T) {
		err := ErrAPI{Message: "Invalid API call"}
		assert.Contains(t, err.Error(), "Invalid API call")
	})
}

// TestSetCacheTTL tests custom cache TTL configuration.
func TestSetCacheTTL(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	customTTL := CacheTTL{
		Fundamentals: 48 * time.Hour,
		PriceData:    30 * time.Minute,
		Search:       2 * time.Hour,
	}

	client.SetCacheTTL(customTTL)

	assert.Equal(t, 48*time.Hour, client.cacheTTL.Fundamentals)
	assert.Equal(t, 30*time.Minute, client.cacheTTL.PriceData)
	assert.Equal(t, 2*time.Hour, client.cacheTTL.Search)
}

// TestDefaultCacheTTL tests default TTL values.
func TestDefaultCacheTTL(t *testing.T) {
	ttl := DefaultCacheTTL()

	assert.Equal(t, 24*time.Hour, ttl.Fundamentals)
	assert.Equal(t, 15*time.Minute, ttl.PriceData)
	assert.Equal(t, 24*time.Hour, ttl.Search)
}

// TestAPIErrorDetection tests detection of API error responses.
func TestAPIErrorDetection(t *testing.T) {
	client := NewClient("test-key", zerolog.Nop())

	tests := []struct {
		name        string
		body        string
		expectError bool
		errorType   error
	}{
		{
			name:        "Rate limit message",
			body:        `{"Note": "API call frequency is limited"}`,
			expectError: true,
			errorType:   ErrRateLimitExceeded{},
		},
		{
			name:        "Information message",
			body:        `{"Information": "Our standard API rate limit is 25 requests per day."}`,
			expectError: true,
			errorType:   ErrRateLimitExceeded{},
		},
		{
			name:        "Invalid key",
			body:        `{"Error Message": "the parameter apikey is invalid or missing."}`,
			expectError: true,
			errorType:   ErrInvalidAPIKey{},
		},
		{
			name:        "Error message",
			body:        `{"Error Message": "Invalid API call."}`,
			expectError: true,
			errorType:   ErrAPI{},
		},
		{
			name:        "Thank you message",
			body:        `Thank you for using Alpha Vantage!`,
			expectError: true,
			errorType:   ErrRateLimitExceeded{},
		},
		{
			name:        "Valid response",
			body:        `{"data": "valid"}`,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.checkAPIError([]byte(tt.body))
			if tt.expectError {
				require.Error(t, err)
				assert.IsType(t, tt.errorType, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestNextMidnightUTC tests the midnight calculation.
func TestNextMidnightUTC(t *testing.T) {
	midnight := nextMidnightUTC()

	now := time.Now().UTC()
	assert.True(t, midnight.After(now))
	assert.Equal(t, 0, midnight.Hour())
	assert.Equal(t, 0, midnight.Minute())
	assert.Equal(t, 0, midnight.Second())
}

func TestGetCompanyOverview_CachesResponse(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OVERVIEW", r.URL.Query().Get("function"))
		assert.Equal(t, "IBM", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(overviewJSON))
	})

	first, err := client.GetCompanyOverview(context.Background(), "ibm")
	require.NoError(t, err)
	assert.Equal(t, "International Business Machines", first.Name)

	second, err := client.GetCompanyOverview(context.Background(), "IBM")
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, 24, client.GetRemainingRequests())
}

func TestGetCompanyOverview_UnknownSymbol(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{ }`))
	})

	_, err := client.GetCompanyOverview(context.Background(), "NOPE")
	var notFound ErrSymbolNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "NOPE", notFound.Symbol)
}

func TestGetCompanyOverview_RateLimitedByServer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`))
	})

	_, err := client.GetCompanyOverview(context.Background(), "IBM")
	assert.IsType(t, ErrRateLimitExceeded{}, err)
}

func TestGetCompanyOverview_BudgetExhausted(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(overviewJSON))
	})
	client.SetDailyLimit(1)

	_, err := client.GetIncomeStatement(context.Background(), "IBM")
	require.NoError(t, err)

	_, err = client.GetCompanyOverview(context.Background(), "IBM")
	assert.IsType(t, ErrRateLimitExceeded{}, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestDoRequest_MissingAPIKey(t *testing.T) {
	client := NewClient("", zerolog.Nop())

	_, err := client.GetBalanceSheet(context.Background(), "IBM")
	assert.IsType(t, ErrInvalidAPIKey{}, err)
	assert.Equal(t, 25, client.GetRemainingRequests())
}

func TestDoRequest_HTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetGlobalQuote(context.Background(), "IBM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSearchSymbol(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SYMBOL_SEARCH", r.URL.Query().Get("function"))
		assert.Equal(t, "tesco", r.URL.Query().Get("keywords"))
		_, _ = w.Write([]byte(`{"bestMatches": [{"1. symbol": "TSCO.LON", "2. name": "Tesco PLC", "8. currency": "GBX"}]}`))
	})

	matches, err := client.SearchSymbol(context.Background(), " tesco ")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "TSCO.LON", matches[0].Symbol)

	_, err = client.SearchSymbol(context.Background(), "tesco")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	_, err = client.SearchSymbol(context.Background(), "  ")
	assert.Error(t, err)
}

// BenchmarkParseFloat64 benchmarks float parsing.
func BenchmarkParseFloat64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		parseFloat64("123.456789")
	}
}

// TestInterfaceImplementation verifies Client implements ClientInterface.
func TestInterfaceImplementation(t *testing.T) {
	var _ ClientInterface = (*Client)(nil)
}
