// ABOUTME: HTTP handlers for saved simulation runs
// ABOUTME: Save, list, delete and clear runs plus trend insights across them

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
	"github.com/markalston/cod-profit-simulator/store"
)

// ListHistory returns saved runs, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("History list failed", "store", h.store.Name(), "error", err)
		h.writeError(w, "Failed to retrieve history", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// SaveHistory computes the run's metrics and stores it.
func (h *Handler) SaveHistory(w http.ResponseWriter, r *http.Request) {
	var req models.SaveHistoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	if req.Inputs.AdCurrency == "" {
		req.Inputs.AdCurrency = models.CurrencyLocal
	}
	if err := services.ValidateSimulationInput(req.Inputs); err != nil {
		h.writeValidationError(w, err)
		return
	}

	result := h.calc.Calculate(req.Inputs)
	item := store.NewItem(req.Name, req.Note, req.Inputs, models.NewHistoryMetrics(req.Inputs, result))

	if err := h.store.Save(r.Context(), item); err != nil {
		slog.Error("History save failed", "store", h.store.Name(), "error", err)
		h.writeError(w, "Failed to save run", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveHistorySaved()
	slog.Info("Simulation run saved", "id", item.ID, "store", h.store.Name())

	h.writeJSON(w, http.StatusCreated, item)
}

// GetHistory returns one saved run by ID.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := services.ValidateHistoryID(id); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, "History item not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("History get failed", "id", id, "error", err)
		h.writeError(w, "Failed to retrieve run", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// DeleteHistory removes one run by ID.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := services.ValidateHistoryID(id); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.store.Delete(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, "History item not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("History delete failed", "id", id, "error", err)
		h.writeError(w, "Failed to delete run", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory removes every saved run.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		slog.Error("History clear failed", "store", h.store.Name(), "error", err)
		h.writeError(w, "Failed to clear history", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HistoryInsights reports margin and profit trends across saved runs.
func (h *Handler) HistoryInsights(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("History list failed", "store", h.store.Name(), "error", err)
		h.writeError(w, "Failed to retrieve history", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, services.HistoryInsights(items))
}
