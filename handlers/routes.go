// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import (
	"net/http"

	"github.com/markalston/cod-profit-simulator/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL pattern (e.g., "/api/v1/history/{id}")
	Handler http.HandlerFunc // Handler function
	Write   bool             // mutates stored state; gets the stricter rate limit
	Model   bool             // may call the language model; gets the model rate limit
}

// Tier is the rate-limit budget the route draws from.
func (rt Route) Tier() middleware.Tier {
	switch {
	case rt.Write:
		return middleware.TierWrite
	case rt.Model:
		return middleware.TierModel
	}
	return middleware.TierDefault
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & presets
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/markets", Handler: h.ListMarkets},
		{Method: http.MethodGet, Path: "/api/v1/markets/{code}", Handler: h.GetMarket},

		// Simulation
		{Method: http.MethodPost, Path: "/api/v1/simulate", Handler: h.Simulate},
		{Method: http.MethodPost, Path: "/api/v1/breakeven", Handler: h.BreakEven},
		{Method: http.MethodPost, Path: "/api/v1/scenarios/generate", Handler: h.GenerateScenarios},
		{Method: http.MethodPost, Path: "/api/v1/scenarios/compare", Handler: h.CompareScenarios},

		// Advisory
		{Method: http.MethodPost, Path: "/api/v1/advice", Handler: h.Advice},
		{Method: http.MethodPost, Path: "/api/v1/levers", Handler: h.Levers},

		// Budget
		{Method: http.MethodPost, Path: "/api/v1/budget/plan", Handler: h.PlanBudget},
		{Method: http.MethodPost, Path: "/api/v1/budget/strategies", Handler: h.BudgetStrategies},

		// Funnel leakage
		{Method: http.MethodGet, Path: "/api/v1/funnel", Handler: h.SampleFunnel},
		{Method: http.MethodPost, Path: "/api/v1/funnel", Handler: h.Funnel},
		{Method: http.MethodPost, Path: "/api/v1/funnel/analyze", Handler: h.AnalyzeFunnel, Model: true},
		{Method: http.MethodPost, Path: "/api/v1/funnel/stages/{key}/analyze", Handler: h.AnalyzeStage, Model: true},

		// History
		{Method: http.MethodGet, Path: "/api/v1/history", Handler: h.ListHistory},
		{Method: http.MethodPost, Path: "/api/v1/history", Handler: h.SaveHistory, Write: true},
		{Method: http.MethodDelete, Path: "/api/v1/history", Handler: h.ClearHistory, Write: true},
		{Method: http.MethodGet, Path: "/api/v1/history/{id}", Handler: h.GetHistory},
		{Method: http.MethodDelete, Path: "/api/v1/history/{id}", Handler: h.DeleteHistory, Write: true},
		{Method: http.MethodGet, Path: "/api/v1/history/insights", Handler: h.HistoryInsights},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
