package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// QuotaReporter reports a rate-limited provider's remaining daily budget
type QuotaReporter interface {
	GetRemainingRequests() int
}

// SystemHandlers serves process and provider status
type SystemHandlers struct {
	providers []string
	quota     QuotaReporter // nil when no rate-limited provider is configured
	startedAt time.Time
	log       zerolog.Logger
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(log zerolog.Logger, providers []string, quota QuotaReporter) *SystemHandlers {
	return &SystemHandlers{
		providers: providers,
		quota:     quota,
		startedAt: time.Now(),
		log:       log.With().Str("component", "system_handlers").Logger(),
	}
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status        string          `json:"status"`
	StartedAt     time.Time       `json:"started_at"`
	Uptime        string          `json:"uptime"`
	CPUPercent    float64         `json:"cpu_percent"`
	MemoryPercent float64         `json:"memory_percent"`
	MemoryUsed    string          `json:"memory_used"`
	Goroutines    int             `json:"goroutines"`
	Providers     []string        `json:"providers"`
	AlphaVantage  AlphaVantageUse `json:"alphavantage"`
}

// AlphaVantageUse describes the Alpha Vantage request budget
type AlphaVantageUse struct {
	Enabled           bool `json:"enabled"`
	RemainingRequests int  `json:"remaining_requests"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, memPercent, memUsed := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "ok",
		StartedAt:     h.startedAt.UTC(),
		Uptime:        humanize.RelTime(h.startedAt, time.Now(), "", ""),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		MemoryUsed:    humanize.IBytes(memUsed),
		Goroutines:    runtime.NumGoroutine(),
		Providers:     h.providers,
	}
	if h.quota != nil {
		response.AlphaVantage = AlphaVantageUse{
			Enabled:           true,
			RemainingRequests: h.quota.GetRemainingRequests(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode system status")
	}
}

// getSystemStats returns CPU percent, RAM percent and RAM bytes in use.
// CPU is sampled over 100ms to keep the call fast.
func (h *SystemHandlers) getSystemStats() (float64, float64, uint64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return cpuAvg, 0, 0
	}

	return cpuAvg, memStat.UsedPercent, memStat.Used
}
