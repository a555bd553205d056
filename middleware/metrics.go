// ABOUTME: Prometheus instrumentation middleware
// ABOUTME: Records request counts and latency labelled by route pattern, not raw path

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/markalston/cod-profit-simulator/metrics"
)

// Instrument records one request against route. Using the route pattern
// keeps label cardinality bounded. A nil m disables instrumentation.
func Instrument(m *metrics.Metrics, route string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if m == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next(wrapped, r)

			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		}
	}
}
