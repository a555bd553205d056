// ABOUTME: Tests for the terminal renderers
// ABOUTME: Checks number formatting and the key lines each report must show

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/markalston/cod-profit-simulator/models"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{420, "420"},
		{2580, "2,580"},
		{1234.567, "1,234.57"},
		{-1500.5, "-1,500.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(16.279); got != "16.3%" {
		t.Errorf("Expected 16.3%%, got %s", got)
	}
}

func TestBreakEven_Unreachable(t *testing.T) {
	out := BreakEven(models.BreakEvenResult{
		Outcome:            models.Unreachable(),
		BreakEvenOrders:    models.UnreachableSentinel,
		BreakEvenLeads:     3999996,
		BreakEvenConfirmed: 1999998,
		ContributionMargin: -12,
	})
	if !strings.Contains(out, "unreachable") {
		t.Errorf("Expected unreachable notice, got %q", out)
	}
	for _, hidden := range []string{"999,999", "3,999,996", "1,999,998"} {
		if strings.Contains(out, hidden) {
			t.Errorf("Expected sentinel-derived volume %s to be hidden", hidden)
		}
	}
}

func TestBreakEven_ImpossibleThreshold(t *testing.T) {
	out := BreakEven(models.BreakEvenResult{
		Outcome:         models.Reachable(23),
		BreakEvenOrders: 23,
		MinDeliveryRate: 140,
	})
	if !strings.Contains(out, "impossible") {
		t.Errorf("Expected impossible marker for rate above 100, got %q", out)
	}
}

func TestSimulation_ShowsExcludedReturns(t *testing.T) {
	resp := models.SimulationResponse{
		Input: models.SimulationInput{AdCurrency: models.CurrencyLocal},
		Metrics: models.MetricsResult{
			Profit: 420,
			Breakdown: models.Breakdown{
				ReturnCostIncluded: false,
				TiersReconciled:    true,
			},
		},
		BreakEven: models.BreakEvenResult{Outcome: models.Reachable(23), BreakEvenOrders: 23},
	}
	out := Simulation(resp)
	if !strings.Contains(out, "(excluded)") {
		t.Error("Expected excluded return cost marker")
	}
	if strings.Contains(out, "Ads (USD)") {
		t.Error("Expected no USD line for local ad currency")
	}
}

func TestAdvice_NoIssues(t *testing.T) {
	out := Advice(models.AdviceReport{})
	if !strings.Contains(out, "No issues found") {
		t.Errorf("Expected no-issues line, got %q", out)
	}
}

func TestAdvice_CriticalWarning(t *testing.T) {
	out := Advice(models.AdviceReport{
		Warnings: []models.Warning{{Severity: models.SeverityCritical, Message: "Losing money on ads", Metric: models.MetricAds}},
	})
	if !strings.Contains(out, "✗") || !strings.Contains(out, "Losing money on ads") {
		t.Errorf("Expected critical warning line, got %q", out)
	}
}

func TestLevers_Ordered(t *testing.T) {
	out := Levers([]models.ProfitLever{
		{Name: "Improve delivery +10pt", ProfitIncrease: 900, ImpactLabel: models.ImpactHigh},
		{Name: "Lower CPL -10%", ProfitIncrease: 150, ImpactLabel: models.ImpactLow},
	})
	first := strings.Index(out, "1. Improve delivery")
	second := strings.Index(out, "2. Lower CPL")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected numbered levers in order, got %q", out)
	}
}

func TestHistory_Empty(t *testing.T) {
	if out := History(nil); !strings.Contains(out, "No saved runs") {
		t.Errorf("Expected empty history notice, got %q", out)
	}
}

func TestHistory_ListsRuns(t *testing.T) {
	out := History([]models.HistoryItem{{
		ID:        "run-1",
		Name:      "Week 1",
		Timestamp: time.Now().Add(-2 * time.Hour),
		Metrics:   models.HistoryMetrics{Profit: 3950, Margin: 31.7},
	}})
	for _, want := range []string{"run-1", "Week 1", "3,950", "31.7%", "ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in history output, got %q", want, out)
		}
	}
}

func TestStrategies_MarksRecommended(t *testing.T) {
	out := Strategies(models.BudgetStrategies{
		Conservative: models.BudgetStrategy{Title: "Conservative"},
		Balanced:     models.BudgetStrategy{Title: "Balanced", IsRecommended: true},
		Aggressive:   models.BudgetStrategy{Title: "Aggressive"},
	})
	if strings.Count(out, "(recommended)") != 1 {
		t.Errorf("Expected exactly one recommended strategy, got %q", out)
	}
}
