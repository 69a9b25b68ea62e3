package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// Snapshot is a company's canonical metrics plus where they came from
type Snapshot struct {
	Metrics         domain.RawMetrics
	Provider        string
	Revenues        []float64 // Annual, most recent first
	RevenueProvider string
	Warnings        []string
}

// Service fetches snapshots from providers in priority order,
// falling back to the next provider when one fails
type Service struct {
	providers      []Provider
	revenueSources []RevenueSource
	searchers      []Searcher
	adapter        *Adapter
	timeout        time.Duration
	log            zerolog.Logger
}

// NewService creates a market data service. Providers, revenue sources and
// searchers are each tried in the order given.
func NewService(
	providers []Provider,
	revenueSources []RevenueSource,
	searchers []Searcher,
	timeout time.Duration,
	log zerolog.Logger,
) *Service {
	return &Service{
		providers:      providers,
		revenueSources: revenueSources,
		searchers:      searchers,
		adapter:        NewAdapter(),
		timeout:        timeout,
		log:            log.With().Str("service", "marketdata").Logger(),
	}
}

// Adapter returns the field adapter the service uses
func (s *Service) Adapter() *Adapter {
	return s.adapter
}

// Providers returns the configured provider names in priority order
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// RevenueSources returns the configured revenue source names in priority order
func (s *Service) RevenueSources() []string {
	names := make([]string, 0, len(s.revenueSources))
	for _, src := range s.revenueSources {
		names = append(names, src.Name())
	}
	return names
}

// Fetch returns the snapshot for symbol with revenue growth filled in when
// any revenue source has at least two annual periods.
func (s *Service) Fetch(ctx context.Context, symbol string) (*Snapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if len(s.providers) == 0 {
		return nil, ErrNoProvider
	}

	var (
		record *Record
		errs   []error
	)
	for _, p := range s.providers {
		rec, err := s.snapshot(ctx, p, symbol)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("provider", p.Name()).
				Str("symbol", symbol).
				Msg("Provider failed, trying next")
			errs = append(errs, err)
			continue
		}
		record = rec
		break
	}
	if record == nil {
		return nil, combineErrors(symbol, errs)
	}

	snap := &Snapshot{
		Metrics:  s.adapter.Adapt(symbol, record.Fields),
		Provider: record.Provider,
	}
	for _, err := range errs {
		snap.Warnings = append(snap.Warnings, err.Error())
	}

	// Growth already supplied by the provider is kept as is
	if snap.Metrics.RevenueGrowth == nil {
		s.fillRevenueGrowth(ctx, symbol, snap)
	}

	s.log.Debug().
		Str("symbol", symbol).
		Str("provider", snap.Provider).
		Str("sector", snap.Metrics.Sector).
		Bool("revenue_growth", snap.Metrics.RevenueGrowth != nil).
		Msg("Snapshot fetched")

	return snap, nil
}

// fillRevenueGrowth takes the first source whose history yields a growth
// figure. A shorter history is kept only when no source does better.
func (s *Service) fillRevenueGrowth(ctx context.Context, symbol string, snap *Snapshot) {
	for _, src := range s.revenueSources {
		revenues, err := s.revenues(ctx, src, symbol)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("source", src.Name()).
				Str("symbol", symbol).
				Msg("Revenue history unavailable")
			snap.Warnings = append(snap.Warnings, "revenue history: "+err.Error())
			continue
		}
		growth := scoring.RevenueGrowth(revenues)
		if growth == nil && snap.RevenueProvider != "" {
			continue
		}
		snap.Revenues = revenues
		snap.RevenueProvider = src.Name()
		snap.Metrics.RevenueGrowth = growth
		if growth != nil {
			return
		}
	}
}

// Search returns matches from the first searcher that succeeds
func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrSymbolRequired)
	}
	if len(s.searchers) == 0 {
		return nil, ErrNoProvider
	}

	var errs []error
	for _, searcher := range s.searchers {
		ctx, cancel := s.withTimeout(ctx)
		results, err := searcher.Search(ctx, query)
		cancel()
		if err != nil {
			s.log.Warn().Err(err).Str("searcher", searcher.Name()).Msg("Search failed, trying next")
			errs = append(errs, err)
			continue
		}
		return results, nil
	}
	return nil, combineErrors(query, errs)
}

func (s *Service) snapshot(ctx context.Context, p Provider, symbol string) (*Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return p.Snapshot(ctx, symbol)
}

func (s *Service) revenues(ctx context.Context, src RevenueSource, symbol string) ([]float64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return src.AnnualRevenues(ctx, symbol)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// combineErrors classifies a set of provider failures. The result wraps the
// most specific sentinel every failure agrees on, or ErrProviderUnavailable.
func combineErrors(subject string, errs []error) error {
	joined := errors.Join(errs...)
	for _, sentinel := range []error{ErrSymbolNotFound, ErrQuotaExceeded, ErrNoProvider} {
		if allAre(errs, sentinel) {
			return fmt.Errorf("%w: %s: %v", sentinel, subject, joined)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, subject, joined)
}

func allAre(errs []error, target error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		if !errors.Is(err, target) {
			return false
		}
	}
	return true
}
