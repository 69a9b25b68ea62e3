package analysis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundamentals/internal/modules/marketdata"
	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

func ptr(v float64) *float64 {
	return &v
}

// fakeMarket implements MarketData
type fakeMarket struct {
	snapshot *marketdata.Snapshot
	results  []marketdata.SearchResult
	err      error
}

func (f *fakeMarket) Fetch(ctx context.Context, symbol string) (*marketdata.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func (f *fakeMarket) Search(ctx context.Context, query string) ([]marketdata.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func techSnapshot() *marketdata.Snapshot {
	return &marketdata.Snapshot{
		Provider: marketdata.ProviderYahoo,
		Metrics: domain.RawMetrics{
			Symbol:    "TEST",
			Name:      "Test Corp",
			Sector:    "Technology",
			PERatio:   ptr(20),
			ROE:       ptr(0.12),
			MarketCap: ptr(3_000_000_000),
		},
	}
}

func newTestService(market MarketData) *Service {
	s := NewService(market, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return s
}

// ============================================================================
// Service.Analyze Tests
// ============================================================================

func TestService_Analyze(t *testing.T) {
	svc := newTestService(&fakeMarket{snapshot: techSnapshot()})

	report, err := svc.Analyze(context.Background(), "TEST")
	require.NoError(t, err)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
	assert.Equal(t, "TEST", report.Symbol)
	assert.Equal(t, "Test Corp", report.Name)
	assert.Equal(t, scoring.SectorTechnology, report.BenchmarkSector)
	assert.Equal(t, marketdata.ProviderYahoo, report.Provider)
	assert.Equal(t, 85.7, report.Result.OverallScore)
	assert.Equal(t, domain.LabelBuy, report.Result.Label)
	assert.Equal(t, VerdictBuy, report.Verdict)
	assert.Equal(t, "$3,000,000,000", report.Overview.MarketCap)
	assert.Equal(t, "20.00", report.Overview.TrailingPE)
	assert.Equal(t, NotAvailable, report.Overview.ForwardPE)
	assert.Len(t, report.Comparison, 4)
	require.NotNil(t, report.Metrics.ROE)
	assert.InDelta(t, 12.0, *report.Metrics.ROE, 1e-9)
	assert.Equal(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
}

func TestService_Analyze_UnknownSectorUsesDefaultBenchmark(t *testing.T) {
	snap := techSnapshot()
	snap.Metrics.Sector = "Utilities"
	svc := newTestService(&fakeMarket{snapshot: snap})

	report, err := svc.Analyze(context.Background(), "TEST")
	require.NoError(t, err)

	assert.Equal(t, "Utilities", report.Sector)
	assert.Equal(t, scoring.DefaultSector, report.BenchmarkSector)
}

func TestService_Analyze_FetchError(t *testing.T) {
	svc := newTestService(&fakeMarket{err: fmt.Errorf("%w: ZZZZ", marketdata.ErrSymbolNotFound)})

	_, err := svc.Analyze(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, marketdata.ErrSymbolNotFound)
}

// ============================================================================
// Service.Evaluate Tests
// ============================================================================

func TestService_Evaluate(t *testing.T) {
	svc := newTestService(&fakeMarket{})

	report, err := svc.Evaluate(EvaluateRequest{
		Symbol: "ibm",
		Sector: "TECHNOLOGY",
		Fields: map[string]interface{}{
			"PERatio":           "20",
			"ReturnOnEquityTTM": "0.12",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "IBM", report.Symbol)
	assert.Equal(t, scoring.SectorTechnology, report.Sector)
	assert.Equal(t, ProviderRequest, report.Provider)
	assert.Equal(t, 85.7, report.Result.OverallScore)
}

func TestService_Evaluate_RevenuesDeriveGrowth(t *testing.T) {
	svc := newTestService(&fakeMarket{})

	report, err := svc.Evaluate(EvaluateRequest{
		Symbol:   "X",
		Revenues: []float64{110, 100},
	})
	require.NoError(t, err)

	require.NotNil(t, report.Metrics.RevenueGrowth)
	assert.InDelta(t, 10.0, *report.Metrics.RevenueGrowth, 1e-9)
	assert.Equal(t, 70.0, report.Result.OverallScore)
	assert.Equal(t, domain.LabelHold, report.Result.Label)
	assert.Equal(t, ProviderRequest, report.RevenueProvider)
}

func TestService_Evaluate_NoMetrics(t *testing.T) {
	svc := newTestService(&fakeMarket{})

	report, err := svc.Evaluate(EvaluateRequest{Symbol: "EMPTY"})
	require.NoError(t, err)

	assert.True(t, report.Result.InsufficientData)
	assert.Equal(t, domain.LabelSell, report.Result.Label)
	assert.Equal(t, VerdictInsufficient, report.Verdict)
	assert.Equal(t, scoring.DefaultSector, report.BenchmarkSector)
}

func TestService_Evaluate_SymbolRequired(t *testing.T) {
	svc := newTestService(&fakeMarket{})

	_, err := svc.Evaluate(EvaluateRequest{Symbol: " "})
	assert.ErrorIs(t, err, marketdata.ErrSymbolRequired)
}

// ============================================================================
// Service.Search Tests
// ============================================================================

func TestService_Search(t *testing.T) {
	svc := newTestService(&fakeMarket{results: []marketdata.SearchResult{{Symbol: "AAPL", Provider: "yahoo"}}})

	results, err := svc.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "AAPL", results[0].Symbol)
}

func TestService_Search_Error(t *testing.T) {
	svc := newTestService(&fakeMarket{err: marketdata.ErrNoProvider})

	_, err := svc.Search(context.Background(), "apple")
	assert.ErrorIs(t, err, marketdata.ErrNoProvider)
}
