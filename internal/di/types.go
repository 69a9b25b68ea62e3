// Package di provides dependency injection type definitions.
//
// The Container holds every long-lived service instance and is passed to
// the server so handlers share a single set of clients and caches.
package di

import (
	"github.com/aristath/fundamentals/internal/clients/alphavantage"
	"github.com/aristath/fundamentals/internal/clients/yahoo"
	"github.com/aristath/fundamentals/internal/config"
	"github.com/aristath/fundamentals/internal/modules/analysis"
	"github.com/aristath/fundamentals/internal/modules/marketdata"
	"github.com/aristath/fundamentals/internal/scheduler"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Clients
	YahooClient        *yahoo.Client
	AlphaVantageClient *alphavantage.Client // nil without an API key

	// Services
	MarketDataService *marketdata.Service
	AnalysisService   *analysis.Service

	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered background jobs.
// Both are nil when Alpha Vantage is not configured.
type JobInstances struct {
	QuotaReset scheduler.Job
	CachePurge scheduler.Job
}
