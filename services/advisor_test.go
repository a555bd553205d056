package services

import (
	"strings"
	"testing"

	"github.com/markalston/cod-profit-simulator/models"
)

func countWarnings(report models.AdviceReport, metric, severity string) int {
	n := 0
	for _, w := range report.Warnings {
		if w.Metric == metric && w.Severity == severity {
			n++
		}
	}
	return n
}

func TestGetAdvice_ReferenceCase(t *testing.T) {
	report := GetAdvice(referenceInput(), "MA")

	if !approxEqual(report.BreakEvenCPL, 13.5) {
		t.Errorf("Expected BreakEvenCPL 13.5, got %v", report.BreakEvenCPL)
	}
	if !approxEqual(report.CurrentCPL, 10) {
		t.Errorf("Expected CurrentCPL 10, got %v", report.CurrentCPL)
	}
	if countWarnings(report, models.MetricDelivery, models.SeverityWarning) != 1 {
		t.Errorf("Expected one delivery warning, got %+v", report.Warnings)
	}
	if countWarnings(report, models.MetricAds, models.SeverityWarning)+countWarnings(report, models.MetricAds, models.SeverityCritical) != 0 {
		t.Errorf("Expected no ads warning at CPL 10, got %+v", report.Warnings)
	}
	if len(report.Advice) != 1 || !strings.Contains(report.Advice[0], "upsell") {
		t.Errorf("Expected upsell advice only, got %v", report.Advice)
	}
	want := "💡 Add upsell tiers (Buy 2, Buy 3) to increase AOV and offset ad costs."
	if len(report.Advice) == 1 && report.Advice[0] != want {
		t.Errorf("Expected advice %q, got %q", want, report.Advice[0])
	}
}

func TestGetAdvice_LosingMoneyMessageUsesThousandsSeparators(t *testing.T) {
	in := referenceInput()
	in.ProductPrice = 10000
	in.CostPerLead = 5000

	report := GetAdvice(in, "SA")

	var msg string
	for _, w := range report.Warnings {
		if w.Metric == models.MetricAds {
			msg = w.Message
		}
	}
	// (30*10000 - 30*14 - 30*32) / 120 = 2488.50
	want := "You are losing money on every lead (Est. Break-even CPL: 2,488.50)."
	if msg != want {
		t.Errorf("Expected %q, got %q", want, msg)
	}
}

func TestGetAdvice_CriticalDeliveryInMorocco(t *testing.T) {
	in := referenceInput()
	in.DeliveryRate = 30

	ma := GetAdvice(in, "MA")
	sa := GetAdvice(in, "SA")

	if countWarnings(ma, models.MetricDelivery, models.SeverityCritical) != 1 {
		t.Errorf("Expected critical delivery warning, got %+v", ma.Warnings)
	}
	if len(ma.Advice) != len(sa.Advice)+1 {
		t.Errorf("Expected Morocco-specific advice, got MA=%v SA=%v", ma.Advice, sa.Advice)
	}
}

func TestGetAdvice_LowConfirmation(t *testing.T) {
	in := referenceInput()
	in.ConfirmationRate = 40
	in.DeliveryRate = 80

	report := GetAdvice(in, "SA")

	if countWarnings(report, models.MetricConfirmation, models.SeverityWarning) != 1 {
		t.Errorf("Expected confirmation warning, got %+v", report.Warnings)
	}
	if countWarnings(report, models.MetricDelivery, models.SeverityWarning) != 0 {
		t.Errorf("Expected no delivery warning at 80%%, got %+v", report.Warnings)
	}
}

func TestGetAdvice_LosingMoneyOnLeads(t *testing.T) {
	in := referenceInput()
	in.CostPerLead = 20

	report := GetAdvice(in, "SA")

	if countWarnings(report, models.MetricAds, models.SeverityCritical) != 1 {
		t.Errorf("Expected critical ads warning, got %+v", report.Warnings)
	}
}

func TestGetAdvice_CPLCloseToBreakEven(t *testing.T) {
	in := referenceInput()
	in.CostPerLead = 12

	report := GetAdvice(in, "SA")

	if countWarnings(report, models.MetricAds, models.SeverityWarning) != 1 {
		t.Errorf("Expected ads caution warning, got %+v", report.Warnings)
	}
}

func TestGetAdvice_EnoughUpsellsSkipsAdvice(t *testing.T) {
	in := referenceInput()
	in.DeliveryRate = 80
	in.UpsellTiers = []models.UpsellTier{
		{Name: "Buy 2", Qty: 2, Price: 180, Percent: 20},
		{Name: "Buy 3", Qty: 3, Price: 250, Percent: 10},
	}

	report := GetAdvice(in, "SA")

	if len(report.Advice) != 0 {
		t.Errorf("Expected no advice, got %v", report.Advice)
	}
}

func TestRankProfitLevers_ReferenceCase(t *testing.T) {
	levers := RankProfitLevers(referenceInput())

	if len(levers) != 3 {
		t.Fatalf("Expected 3 levers, got %d", len(levers))
	}

	wantIDs := []models.LeverID{models.LeverDelivery, models.LeverConfirmation, models.LeverAds}
	wantIncrease := []float64{324, 162, 120}
	wantImpact := []string{models.ImpactHigh, models.ImpactMedium, models.ImpactMedium}

	for i, l := range levers {
		if l.ID != wantIDs[i] {
			t.Errorf("Lever %d: expected %s, got %s", i, wantIDs[i], l.ID)
		}
		if !approxEqual(l.ProfitIncrease, wantIncrease[i]) {
			t.Errorf("Lever %d: expected increase %v, got %v", i, wantIncrease[i], l.ProfitIncrease)
		}
		if l.ImpactLabel != wantImpact[i] {
			t.Errorf("Lever %d: expected impact %s, got %s", i, wantImpact[i], l.ImpactLabel)
		}
	}
}

func TestRankProfitLevers_NoGainsAreLow(t *testing.T) {
	in := referenceInput()
	in.Leads = 0

	levers := RankProfitLevers(in)

	for _, l := range levers {
		if l.ProfitIncrease != 0 {
			t.Errorf("Expected zero increase with no leads, got %v for %s", l.ProfitIncrease, l.ID)
		}
		if l.ImpactLabel != models.ImpactLow {
			t.Errorf("Expected Low impact, got %s for %s", l.ImpactLabel, l.ID)
		}
	}
	if levers[0].ID != models.LeverDelivery {
		t.Errorf("Expected stable order on ties, got %s first", levers[0].ID)
	}
}
