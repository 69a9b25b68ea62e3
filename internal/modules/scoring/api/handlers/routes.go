package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all scoring routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/scoring", func(r chi.Router) {
		r.Post("/score", h.HandleScore)             // Score canonical metrics
		r.Get("/weights", h.HandleGetWeights)       // Fixed metric weights
		r.Get("/benchmarks", h.HandleGetBenchmarks) // Sector targets incl. default
	})
}
