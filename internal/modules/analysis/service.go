package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/fundamentals/internal/modules/marketdata"
	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/scorers"
)

// ProviderRequest names the provider of a caller-supplied record
const ProviderRequest = "request"

// MarketData is the market data the service depends on
type MarketData interface {
	Fetch(ctx context.Context, symbol string) (*marketdata.Snapshot, error)
	Search(ctx context.Context, query string) ([]marketdata.SearchResult, error)
}

// Service builds fundamentals reports
type Service struct {
	market  MarketData
	adapter *marketdata.Adapter
	scorer  *scorers.FundamentalsScorer
	now     func() time.Time
	log     zerolog.Logger
}

// NewService creates an analysis service
func NewService(market MarketData, log zerolog.Logger) *Service {
	return &Service{
		market:  market,
		adapter: marketdata.NewAdapter(),
		scorer:  scorers.NewFundamentalsScorer(),
		now:     time.Now,
		log:     log.With().Str("service", "analysis").Logger(),
	}
}

// Analyze fetches symbol from the market data providers and scores it
func (s *Service) Analyze(ctx context.Context, symbol string) (*Report, error) {
	snap, err := s.market.Fetch(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fundamentals: %w", err)
	}

	report := s.Build(snap)

	s.log.Info().
		Str("symbol", report.Symbol).
		Str("provider", report.Provider).
		Float64("score", report.Result.OverallScore).
		Str("label", string(report.Result.Label)).
		Msg("Analysis complete")

	return report, nil
}

// Evaluate scores a caller-supplied record without contacting any provider
func (s *Service) Evaluate(req EvaluateRequest) (*Report, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, marketdata.ErrSymbolRequired
	}

	raw := s.adapter.Adapt(symbol, req.Fields)
	if req.Sector != "" {
		raw.Sector = marketdata.CanonicalSector(req.Sector)
	}

	snap := &marketdata.Snapshot{
		Metrics:  raw,
		Provider: ProviderRequest,
	}
	if raw.RevenueGrowth == nil && len(req.Revenues) > 0 {
		snap.Revenues = req.Revenues
		snap.RevenueProvider = ProviderRequest
		snap.Metrics.RevenueGrowth = scoring.RevenueGrowth(req.Revenues)
	}

	return s.Build(snap), nil
}

// Search looks up symbols by free text
func (s *Service) Search(ctx context.Context, query string) ([]marketdata.SearchResult, error) {
	results, err := s.market.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search symbols: %w", err)
	}
	return results, nil
}

// Build scores a snapshot and assembles its report
func (s *Service) Build(snap *marketdata.Snapshot) *Report {
	raw := snap.Metrics
	metrics := scoring.Normalize(raw)
	benchmark := scoring.BenchmarkFor(metrics.Sector)
	result := s.scorer.EvaluateNormalized(metrics)

	return &Report{
		ID:              uuid.New().String(),
		Symbol:          raw.Symbol,
		Name:            raw.Name,
		Sector:          raw.Sector,
		BenchmarkSector: benchmark.Sector,
		Provider:        snap.Provider,
		RevenueProvider: snap.RevenueProvider,
		Overview:        buildOverview(metrics),
		KeyRatios:       buildKeyRatios(metrics),
		Metrics:         metrics,
		Benchmark:       benchmark,
		Result:          result,
		Comparison:      scorers.Compare(metrics, benchmark),
		Verdict:         Verdict(result),
		Warnings:        snap.Warnings,
		GeneratedAt:     s.now().UTC(),
	}
}
