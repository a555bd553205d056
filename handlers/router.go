// ABOUTME: Builds the chi router from the route table
// ABOUTME: Applies logging, recovery, CORS, metrics and tiered rate limiting to every route

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/markalston/cod-profit-simulator/config"
	"github.com/markalston/cod-profit-simulator/metrics"
	"github.com/markalston/cod-profit-simulator/middleware"
)

// NewRouter registers h.Routes() behind the shared middleware stack. Each
// route is charged to its tier's budget, and each path answers CORS
// preflights for exactly the methods registered on it. cfg and m may be nil,
// which disables CORS, rate limiting and /metrics.
func NewRouter(h *Handler, cfg *config.Config, m *metrics.Metrics) http.Handler {
	var origins []string
	var limiter *middleware.RateLimiter
	if cfg != nil {
		origins = cfg.CORSAllowedOrigins
		if cfg.RateLimitEnabled {
			limiter = middleware.NewRateLimiter(time.Minute, map[middleware.Tier]int{
				middleware.TierDefault: cfg.RateLimitDefault,
				middleware.TierWrite:   cfg.RateLimitWrite,
				middleware.TierModel:   cfg.RateLimitModel,
			})
		}
	}
	cors := middleware.NewCORSPolicy(origins)

	routes := h.Routes()
	methods := make(map[string][]string)
	var paths []string
	for _, route := range routes {
		if _, ok := methods[route.Path]; !ok {
			paths = append(paths, route.Path)
		}
		methods[route.Path] = append(methods[route.Path], route.Method)
	}

	r := chi.NewRouter()
	for _, route := range routes {
		r.Method(route.Method, route.Path, middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Recover,
			cors.ForPath(methods[route.Path]...),
			middleware.Instrument(m, route.Path),
			middleware.RateLimit(limiter, route.Tier(), m),
		))
	}
	for _, path := range paths {
		r.Options(path, middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, middleware.LogRequest, cors.ForPath(methods[path]...)))
	}

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}
