package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.ObserveCalculation("simulate")

	if got := testutil.ToFloat64(a.Calculations.WithLabelValues("simulate")); got != 1 {
		t.Errorf("Expected 1 calculation on a, got %v", got)
	}
	if got := testutil.ToFloat64(b.Calculations.WithLabelValues("simulate")); got != 0 {
		t.Errorf("Expected 0 calculations on b, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveCalculation("simulate")
	m.ObserveCacheLookup("hit")
	m.ObserveHistorySaved()
	m.ObserveRateLimited("write")
	m.ObserveFunnelAnalysis("stage", true)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveCacheLookup("hit")
	m.ObserveHistorySaved()
	m.ObserveRateLimited("write")
	m.ObserveFunnelAnalysis("funnel", false)
	m.ObserveFunnelAnalysis("stage", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`codsim_cache_lookups_total{result="hit"} 1`,
		"codsim_history_saved_total 1",
		`codsim_rate_limited_total{tier="write"} 1`,
		`codsim_funnel_analyses_total{scope="funnel",source="model"} 1`,
		`codsim_funnel_analyses_total{scope="stage",source="fallback"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected exposition to contain %q", want)
		}
	}
}
