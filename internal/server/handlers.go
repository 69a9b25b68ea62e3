package server

import (
	"encoding/json"
	"net/http"
)

// HealthResponse reports liveness and which market data sources are wired
type HealthResponse struct {
	Status         string   `json:"status"`
	Service        string   `json:"service"`
	Providers      []string `json:"providers"`
	RevenueSources []string `json:"revenue_sources"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	market := s.container.MarketDataService
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "healthy",
		Service:        "fundamentals",
		Providers:      market.Providers(),
		RevenueSources: market.RevenueSources(),
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
