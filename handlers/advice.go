// ABOUTME: HTTP handlers for the advisor and profit-lever ranking
// ABOUTME: Market-aware warnings and one-factor improvement estimates

package handlers

import (
	"net/http"
	"strings"
)

// Advice returns warnings and advice for an input. The ?market= code both
// fills defaults and selects market-specific advice; without it only the
// market-neutral rules apply.
func (h *Handler) Advice(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeSimulationInput(w, r)
	if !ok {
		return
	}

	market := strings.ToUpper(r.URL.Query().Get("market"))

	report := h.advisor.Advise(input, market)
	h.metrics.ObserveCalculation("advice")
	h.writeJSON(w, http.StatusOK, report)
}

// Levers ranks single-factor improvements by profit gained.
func (h *Handler) Levers(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeSimulationInput(w, r)
	if !ok {
		return
	}

	levers := h.advisor.RankLevers(input)
	h.metrics.ObserveCalculation("levers")
	h.writeJSON(w, http.StatusOK, levers)
}
