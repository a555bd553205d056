// ABOUTME: CORS for browser front ends calling the simulator API
// ABOUTME: Whitelisted origins, per-path allowed methods and exposed cache/limit headers

package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// exposedHeaders are the response headers a browser client may read.
var exposedHeaders = strings.Join([]string{
	"X-Cache",
	"X-Request-ID",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"Retry-After",
}, ", ")

// CORSPolicy holds the origins allowed to call the API from a browser.
type CORSPolicy struct {
	origins map[string]struct{}
}

// NewCORSPolicy builds a policy for allowedOrigins. With none, every
// cross-origin request is refused by omission of the CORS headers.
func NewCORSPolicy(allowedOrigins []string) *CORSPolicy {
	p := &CORSPolicy{origins: make(map[string]struct{}, len(allowedOrigins))}
	for _, o := range allowedOrigins {
		if o != "" {
			p.origins[o] = struct{}{}
		}
	}
	return p
}

// Allows reports whether origin is whitelisted.
func (p *CORSPolicy) Allows(origin string) bool {
	_, ok := p.origins[origin]
	return ok
}

// ForPath returns middleware for one API path served with methods. Requests
// without an Origin header (same-origin, curl, the CLI) pass through. A
// preflight is answered with 204 here and only advertises methods when the
// requested one is registered for the path.
func (p *CORSPolicy) ForPath(methods ...string) func(http.HandlerFunc) http.HandlerFunc {
	registered := slices.Clone(methods)
	slices.Sort(registered)
	allowMethods := strings.Join(append(registered, http.MethodOptions), ", ")

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && p.Allows(origin)
			if allowed {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				h.Add("Vary", "Origin")
			}

			if r.Method != http.MethodOptions {
				next(w, r)
				return
			}

			requested := r.Header.Get("Access-Control-Request-Method")
			if allowed && (requested == "" || slices.Contains(registered, requested)) {
				h := w.Header()
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "600")
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}
}
