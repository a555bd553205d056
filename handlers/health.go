// ABOUTME: HTTP handlers for health and market presets
// ABOUTME: Reports history store reachability and serves the market registry

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

// healthPingTimeout bounds the store ping so a stuck database cannot hang health checks.
const healthPingTimeout = 2 * time.Second

// Health returns API status. A store that fails to answer makes the service
// degraded and the response a 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:    "ok",
		Store:     h.store.Name(),
		Markets:   h.markets.Len(),
		Timestamp: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		slog.Warn("History store unreachable", "store", h.store.Name(), "error", err)
		resp.Status = "degraded"
		h.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ListMarkets returns every market preset ordered by code.
func (h *Handler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.markets.List())
}

// GetMarket returns one market preset.
func (h *Handler) GetMarket(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := services.ValidateMarketCode(code); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, ok := h.markets.Get(code)
	if !ok {
		h.writeError(w, "Market not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, m)
}
