// Package handlers provides HTTP handlers for the fundamentals analysis API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/fundamentals/internal/modules/analysis"
	"github.com/aristath/fundamentals/internal/modules/marketdata"
)

// ContentTypeMsgpack is served when the client's Accept header asks for it
const ContentTypeMsgpack = "application/msgpack"

// Handlers provides HTTP handlers for analysis module
type Handlers struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewHandlers creates a new analysis handlers instance
func NewHandlers(service *analysis.Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "analysis_handlers").Logger(),
	}
}

// HandleAnalyze handles GET /api/fundamentals/{symbol}
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	report, err := h.service.Analyze(r.Context(), symbol)
	if err != nil {
		h.handleError(w, r, err, "Failed to analyze symbol")
		return
	}

	h.writeResponse(w, r, http.StatusOK, report)
}

// HandleEvaluate handles POST /api/fundamentals/evaluate
func (h *Handlers) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req analysis.EvaluateRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode evaluate request")
		h.writeError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.service.Evaluate(req)
	if err != nil {
		h.handleError(w, r, err, "Failed to evaluate record")
		return
	}

	h.writeResponse(w, r, http.StatusOK, report)
}

// HandleSearch handles GET /api/fundamentals/search?q=
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err, "Failed to search symbols")
		return
	}

	h.writeResponse(w, r, http.StatusOK, map[string]interface{}{
		"data": results,
		"metadata": map[string]interface{}{
			"query":     query,
			"count":     len(results),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleReportPage handles GET /report and GET /report/{symbol}
func (h *Handlers) HandleReportPage(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		symbol = r.URL.Query().Get("symbol")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if symbol == "" {
		h.writeHTML(w, http.StatusOK, analysis.ErrorHTML("", "Enter a stock ticker symbol, e.g. AAPL, MSFT or TSLA."))
		return
	}

	report, err := h.service.Analyze(r.Context(), symbol)
	if err != nil {
		status := statusFor(err)
		h.log.Warn().Err(err).Str("symbol", symbol).Int("status", status).Msg("Report page failed")
		h.writeHTML(w, status, analysis.ErrorHTML(symbol, "Failed to retrieve data. Try another ticker."))
		return
	}

	page, err := analysis.HTML(report)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to render report")
		h.writeHTML(w, http.StatusInternalServerError, analysis.ErrorHTML(symbol, "Failed to render report."))
		return
	}

	h.writeHTML(w, http.StatusOK, page)
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, marketdata.ErrSymbolRequired):
		return http.StatusBadRequest
	case errors.Is(err, marketdata.ErrSymbolNotFound):
		return http.StatusNotFound
	case errors.Is(err, marketdata.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, marketdata.ErrNoProvider):
		return http.StatusServiceUnavailable
	case errors.Is(err, marketdata.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Int("status", status).Msg(msg)
	} else {
		h.log.Warn().Err(err).Int("status", status).Msg(msg)
	}
	h.writeError(w, r, err.Error(), status)
}

// writeResponse writes msgpack when the client accepts it, JSON otherwise
func (h *Handlers) writeResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if !strings.Contains(r.Header.Get("Accept"), ContentTypeMsgpack) {
		h.writeJSON(w, status, data)
		return
	}

	w.Header().Set("Content-Type", ContentTypeMsgpack)
	w.WriteHeader(status)
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode msgpack response")
	}
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
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, message string, status int) {
	h.writeResponse(w, r, status, map[string]string{"error": message})
}

func (h *Handlers) writeHTML(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(page); err != nil {
		h.log.Error().Err(err).Msg("Failed to write HTML response")
	}
}
