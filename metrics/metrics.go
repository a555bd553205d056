// ABOUTME: Prometheus collectors for the simulator service
// ABOUTME: HTTP traffic, calculations, cache lookups and funnel diagnoses on a private registry

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "codsim"

// Metrics groups every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Calculations    *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	HistorySaved    prometheus.Counter
	RateLimited     *prometheus.CounterVec
	FunnelAnalyses  *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, so tests can build as many
// instances as they like without duplicate-registration panics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Engine calculations by operation.",
		}, []string{"operation"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome (hit or miss).",
		}, []string{"result"}),
		HistorySaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_saved_total",
			Help:      "Simulation runs saved to history.",
		}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected with 429 by rate-limit tier.",
		}, []string{"tier"}),
		FunnelAnalyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "funnel_analyses_total",
			Help:      "Funnel diagnoses by scope (funnel or stage) and source (model or fallback).",
		}, []string{"scope", "source"}),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.Calculations,
		m.CacheLookups,
		m.HistorySaved,
		m.RateLimited,
		m.FunnelAnalyses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCalculation counts one engine run. Safe on a nil receiver.
func (m *Metrics) ObserveCalculation(operation string) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(operation).Inc()
}

// ObserveCacheLookup counts a cache hit or miss. Safe on a nil receiver.
func (m *Metrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveHistorySaved counts one saved run. Safe on a nil receiver.
func (m *Metrics) ObserveHistorySaved() {
	if m == nil {
		return
	}
	m.HistorySaved.Inc()
}

// ObserveRateLimited counts one rejected request. Safe on a nil receiver.
func (m *Metrics) ObserveRateLimited(tier string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(tier).Inc()
}

// ObserveFunnelAnalysis counts one diagnosis served. Safe on a nil receiver.
func (m *Metrics) ObserveFunnelAnalysis(scope string, fallback bool) {
	if m == nil {
		return
	}
	source := "model"
	if fallback {
		source = "fallback"
	}
	m.FunnelAnalyses.WithLabelValues(scope, source).Inc()
}
