// ABOUTME: Tiered rate limiting keyed by route tier and client IP
// ABOUTME: Calculations and reads share the default budget; history writes and model calls draw from their own

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/markalston/cod-profit-simulator/metrics"
	"github.com/markalston/cod-profit-simulator/models"
)

// Tier names a request budget. Routes pick their tier from the route table.
type Tier string

const (
	// TierDefault covers calculations, presets and history reads.
	TierDefault Tier = "default"
	// TierWrite covers requests that change saved history.
	TierWrite Tier = "write"
	// TierModel covers funnel analyses that may call the language model.
	TierModel Tier = "model"
)

// sweepThreshold is the number of tracked windows above which opening a new
// window first drops every expired one.
const sweepThreshold = 1024

type bucketKey struct {
	tier   Tier
	client string
}

type bucket struct {
	used    int
	resetAt time.Time
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter counts requests per (tier, client) in fixed windows. A tier
// without a positive limit is unlimited.
type RateLimiter struct {
	mu      sync.Mutex
	limits  map[Tier]int
	window  time.Duration
	buckets map[bucketKey]*bucket
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing limits[tier] requests per client
// in every window.
func NewRateLimiter(window time.Duration, limits map[Tier]int) *RateLimiter {
	l := make(map[Tier]int, len(limits))
	for tier, n := range limits {
		l[tier] = n
	}
	return &RateLimiter{
		limits:  l,
		window:  window,
		buckets: make(map[bucketKey]*bucket),
		now:     time.Now,
	}
}

// Allow spends one request of client's budget in tier.
func (rl *RateLimiter) Allow(tier Tier, client string) Decision {
	limit := rl.limits[tier]
	if limit <= 0 {
		return Decision{Allowed: true}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	key := bucketKey{tier: tier, client: client}
	b, ok := rl.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		if !ok && len(rl.buckets) >= sweepThreshold {
			rl.dropExpired(now)
		}
		b = &bucket{resetAt: now.Add(rl.window)}
		rl.buckets[key] = b
	}

	if b.used >= limit {
		return Decision{Limit: limit, RetryAfter: b.resetAt.Sub(now)}
	}
	b.used++
	return Decision{Allowed: true, Limit: limit, Remaining: limit - b.used}
}

// Tracked reports how many (tier, client) windows are held.
func (rl *RateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// dropExpired must be called with rl.mu held.
func (rl *RateLimiter) dropExpired(now time.Time) {
	for k, b := range rl.buckets {
		if !now.Before(b.resetAt) {
			delete(rl.buckets, k)
		}
	}
}

// ClientIP identifies the caller by the leftmost X-Forwarded-For address, or
// by RemoteAddr without its port. X-Forwarded-For is only trustworthy behind a
// proxy that overwrites it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit charges every request to the caller's budget in tier and answers
// 429 with Retry-After once it is spent. A nil limiter disables the check.
// Rejections are counted on m when it is non-nil.
func RateLimit(limiter *RateLimiter, tier Tier, m *metrics.Metrics) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			client := ClientIP(r)
			d := limiter.Allow(tier, client)
			if d.Limit > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			}
			if d.Allowed {
				next(w, r)
				return
			}

			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			m.ObserveRateLimited(string(tier))
			slog.Warn("Rate limit exceeded",
				"tier", tier,
				"client", client,
				"path", sanitizePath(r.URL.Path),
				"retry_after", retry,
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error:   "Rate limit exceeded",
				Details: fmt.Sprintf("%s budget of %d requests spent, retry in %ds", tier, d.Limit, retry),
				Code:    http.StatusTooManyRequests,
			})
		}
	}
}
