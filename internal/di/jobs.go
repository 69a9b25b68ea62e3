package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/fundamentals/internal/config"
	"github.com/aristath/fundamentals/internal/scheduler"
)

// CachePurgeSchedule is how often expired provider responses are dropped
const CachePurgeSchedule = "@hourly"

// RegisterJobs creates the scheduler and registers provider housekeeping jobs
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	sched := scheduler.New(log)
	container.Scheduler = sched

	instances := &JobInstances{}
	if container.AlphaVantageClient == nil {
		return instances, nil
	}

	quotaReset := scheduler.NewQuotaResetJob(container.AlphaVantageClient, log)
	if err := sched.AddJob(cfg.CacheResetSchedule, quotaReset); err != nil {
		return nil, fmt.Errorf("failed to register quota reset job: %w", err)
	}
	instances.QuotaReset = quotaReset

	cachePurge := scheduler.NewCachePurgeJob(container.AlphaVantageClient, log)
	if err := sched.AddJob(CachePurgeSchedule, cachePurge); err != nil {
		return nil, fmt.Errorf("failed to register cache purge job: %w", err)
	}
	instances.CachePurge = cachePurge

	return instances, nil
}
