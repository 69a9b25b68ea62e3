package scheduler

import (
	"github.com/rs/zerolog"
)

// QuotaClient is the part of a rate-limited, caching client the jobs maintain
type QuotaClient interface {
	ResetDailyCounter()
	PurgeExpired() int
	GetRemainingRequests() int
}

// QuotaResetJob restores a client's daily request budget
type QuotaResetJob struct {
	client QuotaClient
	log    zerolog.Logger
}

// NewQuotaResetJob creates a quota reset job
func NewQuotaResetJob(client QuotaClient, log zerolog.Logger) *QuotaResetJob {
	return &QuotaResetJob{
		client: client,
		log:    log.With().Str("job", "quota_reset").Logger(),
	}
}

// Name returns the job name
func (j *QuotaResetJob) Name() string {
	return "quota_reset"
}

// Run resets the counter
func (j *QuotaResetJob) Run() error {
	j.client.ResetDailyCounter()
	j.log.Info().Int("remaining", j.client.GetRemainingRequests()).Msg("Daily request quota reset")
	return nil
}

// CachePurgeJob drops expired responses from a client's cache
type CachePurgeJob struct {
	client QuotaClient
	log    zerolog.Logger
}

// NewCachePurgeJob creates a cache purge job
func NewCachePurgeJob(client QuotaClient, log zerolog.Logger) *CachePurgeJob {
	return &CachePurgeJob{
		client: client,
		log:    log.With().Str("job", "cache_purge").Logger(),
	}
}

// Name returns the job name
func (j *CachePurgeJob) Name() string {
	return "cache_purge"
}

// Run purges expired entries
func (j *CachePurgeJob) Run() error {
	if n := j.client.PurgeExpired(); n > 0 {
		j.log.Debug().Int("purged", n).Msg("Expired cache entries purged")
	}
	return nil
}
