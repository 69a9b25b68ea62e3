package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundamentals/internal/modules/scoring"
)

func ptr(v float64) *float64 {
	return &v
}

// ============================================================================
// Adapter Tests
// ============================================================================

func TestAdapter_Adapt_YahooNames(t *testing.T) {
	adapter := NewAdapter()

	raw := adapter.Adapt(" aapl ", map[string]interface{}{
		"longName":       "Apple Inc.",
		"sector":         "Technology",
		"trailingPE":     28.5,
		"priceToBook":    ptr(45.1),
		"returnOnEquity": 1.47,
		"debtToEquity":   "145.0",
		"profitMargins":  0.25,
		"dividendYield":  0.005,
		"beta":           1.2,
		"currentRatio":   0.9,
		"marketCap":      int64(3_000_000_000_000),
		"currentPrice":   190.0,
	})

	assert.Equal(t, "AAPL", raw.Symbol)
	assert.Equal(t, "Apple Inc.", raw.Name)
	assert.Equal(t, "Technology", raw.Sector)
	require.NotNil(t, raw.PERatio)
	assert.Equal(t, 28.5, *raw.PERatio)
	require.NotNil(t, raw.PriceToBook)
	assert.Equal(t, 45.1, *raw.PriceToBook)
	require.NotNil(t, raw.DebtToEquity)
	assert.Equal(t, 145.0, *raw.DebtToEquity)
	require.NotNil(t, raw.MarketCap)
	assert.Equal(t, 3e12, *raw.MarketCap)
	assert.Nil(t, raw.OperatingMargin)
	assert.Nil(t, raw.RevenueGrowth)
}

func TestAdapter_Adapt_AlphaVantageNames(t *testing.T) {
	adapter := NewAdapter()

	raw := adapter.Adapt("IBM", map[string]interface{}{
		"Name":               "International Business Machines",
		"Sector":             "TECHNOLOGY",
		"PERatio":            "22.1",
		"PriceToBookRatio":   "7.4",
		"ReturnOnEquityTTM":  "0.33",
		"ProfitMargin":       "None",
		"OperatingMarginTTM": "0.15",
		"DividendYield":      "-",
		"05. price":          "170.50",
	})

	assert.Equal(t, "International Business Machines", raw.Name)
	assert.Equal(t, scoring.SectorTechnology, raw.Sector)
	require.NotNil(t, raw.PERatio)
	assert.Equal(t, 22.1, *raw.PERatio)
	require.NotNil(t, raw.ROE)
	assert.Equal(t, 0.33, *raw.ROE)
	assert.Nil(t, raw.ProfitMargin, "None is unavailable")
	assert.Nil(t, raw.DividendYield, "- is unavailable")
	require.NotNil(t, raw.OperatingMargin)
	assert.Equal(t, 0.15, *raw.OperatingMargin)
	require.NotNil(t, raw.CurrentPrice)
	assert.Equal(t, 170.5, *raw.CurrentPrice)
}

func TestAdapter_Adapt_FoldedNames(t *testing.T) {
	adapter := NewAdapter()

	raw := adapter.Adapt("X", map[string]interface{}{
		"Trailing-PE":      15.0,
		"PRICE_TO_BOOK":    2.0,
		"Return On Equity": 0.1,
	})

	require.NotNil(t, raw.PERatio)
	assert.Equal(t, 15.0, *raw.PERatio)
	require.NotNil(t, raw.PriceToBook)
	assert.Equal(t, 2.0, *raw.PriceToBook)
	require.NotNil(t, raw.ROE)
	assert.Equal(t, 0.1, *raw.ROE)
}

func TestAdapter_Adapt_ExactNameBeatsFolded(t *testing.T) {
	adapter := NewAdapter()

	raw := adapter.Adapt("X", map[string]interface{}{
		"PE_RATIO": 99.0,
		"pe_ratio": 12.0,
	})

	require.NotNil(t, raw.PERatio)
	assert.Equal(t, 12.0, *raw.PERatio)
}

func TestAdapter_Adapt_FirstUsableAliasWins(t *testing.T) {
	adapter := NewAdapter()

	raw := adapter.Adapt("X", map[string]interface{}{
		"pe_ratio":   "N/A",
		"trailingPE": 18.0,
		"longName":   "None",
		"shortName":  "Short Co",
	})

	require.NotNil(t, raw.PERatio)
	assert.Equal(t, 18.0, *raw.PERatio)
	assert.Equal(t, "Short Co", raw.Name)
}

func TestAdapter_Adapt_EmptyFields(t *testing.T) {
	raw := NewAdapter().Adapt("msft", nil)

	assert.Equal(t, "MSFT", raw.Symbol)
	assert.Empty(t, raw.Sector)
	assert.Nil(t, raw.PERatio)
	assert.Nil(t, raw.CurrentRatio)
}

func TestFoldKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Trailing_PE", "trailingpe"},
		{"05. price", "05price"},
		{"debt-to-equity", "debttoequity"},
		{"Return On Equity", "returnonequity"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, foldKey(tt.in))
		})
	}
}

// ============================================================================
// CanonicalSector Tests
// ============================================================================

func TestCanonicalSector(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"benchmark name unchanged", "Technology", scoring.SectorTechnology},
		{"alpha vantage technology", "TECHNOLOGY", scoring.SectorTechnology},
		{"life sciences", "LIFE SCIENCES", scoring.SectorHealthcare},
		{"finance", "FINANCE", scoring.SectorFinancialServices},
		{"manufacturing", "MANUFACTURING", scoring.SectorIndustrials},
		{"energy and transportation", "ENERGY & TRANSPORTATION", scoring.SectorEnergy},
		{"mixed case", "health care", scoring.SectorHealthcare},
		{"unknown passes through trimmed", "  Utilities ", "Utilities"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalSector(tt.label))
		})
	}
}

func TestCanonicalSector_UnknownFallsBackToDefaultBenchmark(t *testing.T) {
	b := scoring.BenchmarkFor(CanonicalSector("Utilities"))
	assert.Equal(t, scoring.DefaultSector, b.Sector)
}
