package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/fundamentals/internal/clients/alphavantage"
	"github.com/aristath/fundamentals/internal/clients/yahoo"
	"github.com/aristath/fundamentals/internal/config"
	"github.com/aristath/fundamentals/internal/modules/analysis"
	"github.com/aristath/fundamentals/internal/modules/marketdata"
)

// InitializeServices creates the clients and services.
// Yahoo is always available for snapshots, revenue history and search.
// Alpha Vantage joins when an API key is set, either first or as the
// fallback depending on the primary provider.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.Config = cfg

	container.YahooClient = yahoo.NewClient(log)
	yahooProvider := marketdata.NewYahooProvider(container.YahooClient)

	providers := []marketdata.Provider{yahooProvider}
	revenueSources := []marketdata.RevenueSource{yahooProvider}
	searchers := []marketdata.Searcher{yahooProvider}

	if cfg.AlphaVantageEnabled() {
		av := alphavantage.NewClient(cfg.AlphaVantageAPIKey, log)
		av.SetDailyLimit(cfg.AlphaVantageDailyLimit)
		av.SetHTTPTimeout(cfg.ProviderTimeout)
		container.AlphaVantageClient = av

		avProvider := marketdata.NewAlphaVantageProvider(av, log)
		if cfg.PrimaryProvider == config.ProviderAlphaVantage {
			providers = []marketdata.Provider{avProvider, yahooProvider}
			revenueSources = []marketdata.RevenueSource{avProvider, yahooProvider}
		} else {
			providers = append(providers, avProvider)
			revenueSources = append(revenueSources, avProvider)
		}
		searchers = []marketdata.Searcher{avProvider, yahooProvider}
	}

	container.MarketDataService = marketdata.NewService(providers, revenueSources, searchers, cfg.ProviderTimeout, log)
	container.AnalysisService = analysis.NewService(container.MarketDataService, log)

	log.Info().
		Strs("providers", container.MarketDataService.Providers()).
		Strs("revenue_sources", container.MarketDataService.RevenueSources()).
		Msg("Services initialized")

	return nil
}
