// ABOUTME: HTTP handlers for the simulation engine
// ABOUTME: Metrics, break-even, generated scenarios and scenario comparison

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

// compareRequest is the body of a scenario comparison.
type compareRequest struct {
	Scenarios []models.Scenario `json:"scenarios"`
}

// Simulate computes metrics and break-even for one input.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeSimulationInput(w, r)
	if !ok {
		return
	}

	resp, err := h.cached(w, "simulate", input, func() (interface{}, error) {
		m := h.calc.Calculate(input)
		h.metrics.ObserveCalculation("simulate")
		return models.SimulationResponse{
			Input:     input,
			Metrics:   m,
			BreakEven: h.calc.BreakEven(input, &m),
		}, nil
	})
	if err != nil {
		slog.Error("Simulation failed", "error", err)
		h.writeError(w, "Simulation failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// BreakEven returns only the break-even analysis for one input.
func (h *Handler) BreakEven(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeSimulationInput(w, r)
	if !ok {
		return
	}

	result := h.calc.BreakEven(input, nil)
	h.metrics.ObserveCalculation("breakeven")
	h.writeJSON(w, http.StatusOK, result)
}

// GenerateScenarios returns conservative, realistic and aggressive variants.
func (h *Handler) GenerateScenarios(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeSimulationInput(w, r)
	if !ok {
		return
	}

	resp, err := h.cached(w, "scenarios", input, func() (interface{}, error) {
		h.metrics.ObserveCalculation("scenarios")
		return h.scenarios.Generate(input), nil
	})
	if err != nil {
		slog.Error("Scenario generation failed", "error", err)
		h.writeError(w, "Scenario generation failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// CompareScenarios computes user-defined scenarios and reports deltas
// against the baseline.
func (h *Handler) CompareScenarios(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	for i := range req.Scenarios {
		if req.Scenarios[i].Inputs.AdCurrency == "" {
			req.Scenarios[i].Inputs.AdCurrency = models.CurrencyLocal
		}
		if err := services.ValidateSimulationInput(req.Scenarios[i].Inputs); err != nil {
			h.writeValidationError(w, err)
			return
		}
	}

	comparison, err := h.scenarios.Compare(r.Context(), req.Scenarios)
	switch {
	case errors.Is(err, services.ErrNoScenarios):
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, context.Canceled):
		slog.Info("Scenario comparison canceled by client")
		return
	case err != nil:
		slog.Error("Scenario comparison failed", "error", err)
		h.writeError(w, "Scenario comparison failed", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveCalculation("compare")

	h.writeJSON(w, http.StatusOK, comparison)
}
