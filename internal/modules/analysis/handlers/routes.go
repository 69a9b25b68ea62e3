package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the fundamentals API routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/fundamentals", func(r chi.Router) {
		r.Get("/search", h.HandleSearch)      // Symbol search
		r.Post("/evaluate", h.HandleEvaluate) // Score a posted record
		r.Get("/{symbol}", h.HandleAnalyze)   // Fetch and score
	})
}

// RegisterReportRoutes registers the HTML report page
func (h *Handlers) RegisterReportRoutes(r chi.Router) {
	r.Get("/report", h.HandleReportPage)
	r.Get("/report/{symbol}", h.HandleReportPage)
}
