// ABOUTME: HTTP handlers for the budget-first planner
// ABOUTME: Plans a COD ad budget and proposes conservative to aggressive strategies

package handlers

import (
	"net/http"

	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

// PlanBudget returns the plan, its best/expected/worst range and unit break-even.
func (h *Handler) PlanBudget(w http.ResponseWriter, r *http.Request) {
	var input models.BudgetPlanInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	if err := services.ValidateBudgetPlanInput(input); err != nil {
		h.writeValidationError(w, err)
		return
	}

	resp := h.budget.Analyze(input)
	h.metrics.ObserveCalculation("budget_plan")
	h.writeJSON(w, http.StatusOK, resp)
}

// BudgetStrategies returns three spend strategies around a market CPL.
func (h *Handler) BudgetStrategies(w http.ResponseWriter, r *http.Request) {
	var input models.StrategyInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	if err := services.ValidateStrategyInput(input); err != nil {
		h.writeValidationError(w, err)
		return
	}

	resp := h.budget.Strategies(input)
	h.metrics.ObserveCalculation("budget_strategies")
	h.writeJSON(w, http.StatusOK, resp)
}
