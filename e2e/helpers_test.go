// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds a full server from environment config and wraps HTTP calls against it

package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/markalston/cod-profit-simulator/cache"
	"github.com/markalston/cod-profit-simulator/config"
	"github.com/markalston/cod-profit-simulator/handlers"
	"github.com/markalston/cod-profit-simulator/metrics"
	"github.com/markalston/cod-profit-simulator/store"
)

// withTestEnv sets vars (and unsets DATABASE_URL so history stays in memory),
// returning a cleanup function that restores all original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, vars map[string]string) func() {
	t.Helper()

	type saved struct {
		value string
		set   bool
	}
	originals := map[string]saved{}
	remember := func(key string) {
		v, ok := os.LookupEnv(key)
		originals[key] = saved{v, ok}
	}

	remember("DATABASE_URL")
	os.Unsetenv("DATABASE_URL")
	for key, value := range vars {
		remember(key)
		os.Setenv(key, value)
	}

	return func() {
		for key, o := range originals {
			if o.set {
				os.Setenv(key, o.value)
			} else {
				os.Unsetenv(key)
			}
		}
	}
}

// startServer wires the service the way main does and serves it over a real
// listener.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Failed to build market registry: %v", err)
	}

	m := metrics.New()
	c := cache.New(time.Duration(cfg.CacheTTL) * time.Second)
	c.OnLookup = m.ObserveCacheLookup
	t.Cleanup(c.Close)

	h := handlers.NewHandler(cfg, c,
		handlers.WithStore(store.NewMemoryStore(50)),
		handlers.WithMarkets(registry),
		handlers.WithMetrics(m),
	)
	server := httptest.NewServer(handlers.NewRouter(h, cfg, m))
	t.Cleanup(server.Close)
	return server
}

// call issues a request and decodes a JSON response into out when non-nil.
func call(t *testing.T, server *httptest.Server, method, path, body string, out interface{}) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, r)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp
}

// writeMarkets writes a markets YAML file at path.
func writeMarkets(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
