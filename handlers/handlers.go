// ABOUTME: HTTP handlers for the COD profit simulator API
// ABOUTME: Holds shared dependencies and the JSON request/response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/markalston/cod-profit-simulator/cache"
	"github.com/markalston/cod-profit-simulator/config"
	"github.com/markalston/cod-profit-simulator/metrics"
	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
	"github.com/markalston/cod-profit-simulator/store"
)

// maxRequestBodySize limits JSON request bodies to 1MB to prevent DOS attacks
const maxRequestBodySize = 1 << 20 // 1MB

// defaultHistoryLimit bounds the in-memory history when no store is supplied.
const defaultHistoryLimit = 200

type Handler struct {
	cache     *cache.Cache
	calc      *services.MetricsCalculator
	scenarios *services.ScenarioCalculator
	advisor   *services.Advisor
	budget    *services.BudgetPlanner
	markets   *models.MarketRegistry
	store     store.HistoryStore
	metrics   *metrics.Metrics
	analyst   *services.FunnelAnalyst
}

// Option customizes a Handler.
type Option func(*Handler)

// WithStore sets the history store. Defaults to an in-memory store.
func WithStore(s store.HistoryStore) Option {
	return func(h *Handler) { h.store = s }
}

// WithMarkets sets the market registry. Defaults to the built-in presets.
func WithMarkets(r *models.MarketRegistry) Option {
	return func(h *Handler) { h.markets = r }
}

// WithMetrics enables calculation and history counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithFunnelAnalyst sets the funnel analyst. Defaults to one without a
// model, which serves fallback diagnoses.
func WithFunnelAnalyst(a *services.FunnelAnalyst) Option {
	return func(h *Handler) { h.analyst = a }
}

// NewHandler wires the engine services. cfg and c may be nil (for testing):
// a nil cfg uses the default cost policy, a nil cache computes every request.
func NewHandler(cfg *config.Config, c *cache.Cache, opts ...Option) *Handler {
	policy := models.DefaultCostPolicy()
	if cfg != nil {
		policy.IncludeReturnFees = cfg.IncludeReturnFees
	}
	calc := services.NewMetricsCalculator(policy)

	h := &Handler{
		cache:     c,
		calc:      calc,
		scenarios: services.NewScenarioCalculator(calc),
		advisor:   services.NewAdvisor(calc),
		budget:    services.NewBudgetPlanner(),
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.markets == nil {
		h.markets = models.NewMarketRegistry(models.DefaultMarkets())
	}
	if h.store == nil {
		h.store = store.NewMemoryStore(defaultHistoryLimit)
	}
	if h.analyst == nil {
		h.analyst = services.NewFunnelAnalyst(nil, 0)
	}
	return h
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeValidationError reports every rejected field in Details.
func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Error:   "Invalid input",
		Details: err.Error(),
		Code:    http.StatusBadRequest,
	})
}

// errEmptyBody is returned by decodeJSON when the request has no body.
var errEmptyBody = errors.New("empty request body")

// decodeJSON reads a size-limited JSON body into dst. Fields absent from the
// body keep whatever dst already holds.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// writeDecodeError maps a decodeJSON failure onto a 400 response.
func (h *Handler) writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		h.writeError(w, "Request body too large", http.StatusBadRequest)
	case errors.Is(err, errEmptyBody):
		h.writeError(w, "Request body is required", http.StatusBadRequest)
	default:
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
	}
}

// decodeSimulationInput reads a SimulationInput, starting from the preset of
// the ?market= query parameter when one is given. With a market preset an
// empty body is accepted and the preset is used as-is.
func (h *Handler) decodeSimulationInput(w http.ResponseWriter, r *http.Request) (models.SimulationInput, bool) {
	var input models.SimulationInput
	market := r.URL.Query().Get("market")
	if market != "" {
		defaults, err := services.ApplyMarketDefaults(h.markets, market)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return input, false
		}
		input = defaults
	}

	if err := decodeJSON(w, r, &input); err != nil {
		if !(market != "" && errors.Is(err, errEmptyBody)) {
			h.writeDecodeError(w, err)
			return input, false
		}
	}
	if input.AdCurrency == "" {
		input.AdCurrency = models.CurrencyLocal
	}

	if err := services.ValidateSimulationInput(input); err != nil {
		h.writeValidationError(w, err)
		return input, false
	}
	return input, true
}

// cached runs compute through the result cache when one is configured and
// sets X-Cache to HIT or MISS.
func (h *Handler) cached(w http.ResponseWriter, prefix string, key interface{}, compute func() (interface{}, error)) (interface{}, error) {
	if h.cache == nil {
		return compute()
	}
	k, err := cache.Key(prefix, key)
	if err != nil {
		slog.Warn("Cache key hashing failed, computing directly", "prefix", prefix, "error", err)
		return compute()
	}
	v, hit, err := h.cache.GetOrCompute(k, compute)
	if err != nil {
		return nil, err
	}
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	return v, nil
}
