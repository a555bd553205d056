// ABOUTME: Shared helpers for CLI command tests
// ABOUTME: Resets global flags, writes input files and starts an in-process backend

package cmd

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markalston/cod-profit-simulator/cache"
	"github.com/markalston/cod-profit-simulator/config"
	"github.com/markalston/cod-profit-simulator/handlers"
)

// referenceYAML overrides the Morocco preset down to a hand-checkable case:
// 120 leads, 60 confirmed, 30 delivered, cost 2580, profit 420.
const referenceYAML = `leads: 120
confirmationRate: 50
deliveryRate: 50
costPerLead: 10
productPrice: 100
productCost: 14
shippingCost: 32
returnFee: 0
exchangeRate: 1
`

// resetFlags restores every global flag to its default after the test.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		apiURL = ""
		jsonOutput = false
		inputFile = ""
		marketCode = defaultMarket
		excludeReturns = false
		minMargin = 20
		minROI = 0
		minSafetyMargin = 0
		strategyBudget = 0
		strategyGoal = 0
		strategyCPL = 0
		runName = ""
		runNote = ""
		funnelStage = ""
	}
	reset()
	t.Setenv("MARKETS_FILE", "")
	t.Setenv("CODSIM_API_URL", "")
	t.Cleanup(reset)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// startBackend serves the real API router with an in-memory history store
// and points the CLI at it.
func startBackend(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		CacheTTL:          60,
		DefaultMarket:     "MA",
		IncludeReturnFees: true,
	}
	c := cache.New(time.Minute)
	t.Cleanup(c.Close)

	server := httptest.NewServer(handlers.NewRouter(handlers.NewHandler(cfg, c), cfg, nil))
	t.Cleanup(server.Close)
	apiURL = server.URL
	return server
}
