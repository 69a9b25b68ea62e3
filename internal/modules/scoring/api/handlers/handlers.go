// Package handlers provides HTTP handlers for scoring API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
	"github.com/aristath/fundamentals/internal/modules/scoring/scorers"
)

// Handlers provides HTTP handlers for scoring module
type Handlers struct {
	scorer *scorers.FundamentalsScorer
	log    zerolog.Logger
}

// NewHandlers creates a new scoring handlers instance
func NewHandlers(log zerolog.Logger) *Handlers {
	return &Handlers{
		scorer: scorers.NewFundamentalsScorer(),
		log:    log.With().Str("module", "scoring_handlers").Logger(),
	}
}

// ScoreResponse represents the response from scoring
type ScoreResponse struct {
	Result     *domain.AggregateResult   `json:"result,omitempty"`
	Metrics    *domain.NormalizedMetrics `json:"metrics,omitempty"`
	Benchmark  *domain.Benchmark         `json:"benchmark,omitempty"`
	Comparison []domain.Comparison       `json:"comparison,omitempty"`
	Weights    map[string]float64        `json:"weights,omitempty"` // Renormalized over available metrics
	Error      *string                   `json:"error,omitempty"`
}

// WeightEntry is one metric's fixed weight
type WeightEntry struct {
	Metric string  `json:"metric"`
	Weight float64 `json:"weight"`
}

// HandleScore handles POST /api/scoring/score
// Scores a record already in canonical field names and provider units
func (h *Handlers) HandleScore(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawMetrics
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode score request")
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	metrics := scoring.Normalize(raw)
	benchmark := scoring.BenchmarkFor(metrics.Sector)
	subScores := h.scorer.SubScores(metrics)
	result := scorers.Aggregate(subScores)

	h.log.Debug().
		Str("symbol", raw.Symbol).
		Float64("score", result.OverallScore).
		Str("label", string(result.Label)).
		Msg("Scored metrics")

	h.writeJSON(w, http.StatusOK, ScoreResponse{
		Result:     &result,
		Metrics:    &metrics,
		Benchmark:  &benchmark,
		Comparison: scorers.Compare(metrics, benchmark),
		Weights:    scorers.RenormalizedWeights(subScores),
	})
}

// HandleGetWeights handles GET /api/scoring/weights
func (h *Handlers) HandleGetWeights(w http.ResponseWriter, r *http.Request) {
	weights := make([]WeightEntry, 0, len(scoring.MetricOrder))
	for _, metric := range scoring.MetricOrder {
		weights = append(weights, WeightEntry{Metric: metric, Weight: scoring.Weights[metric]})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": weights,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetBenchmarks handles GET /api/scoring/benchmarks
func (h *Handlers) HandleGetBenchmarks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": scoring.Sectors(),
		"metadata": map[string]interface{}{
			"default_sector": scoring.DefaultSector,
			"timestamp":      time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response with status code
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, ScoreResponse{Error: &message})
}
