// ABOUTME: Rule-based advisor and profit-lever ranking
// ABOUTME: Threshold checks over inputs and metrics; levers ranked by simulated profit delta

package services

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/markalston/cod-profit-simulator/models"
)

const (
	criticalDeliveryRate = 40
	warningDeliveryRate  = 60
	warningConfirmation  = 45
	minUpsellTiers       = 2
	cplCautionRatio      = 0.8
	highImpactRatio      = 0.7
	mediumImpactRatio    = 0.3
)

// Advisor turns simulation inputs into warnings, advice and ranked levers.
type Advisor struct {
	calc *MetricsCalculator
}

// NewAdvisor creates an advisor backed by the given calculator.
func NewAdvisor(calc *MetricsCalculator) *Advisor {
	if calc == nil {
		calc = NewMetricsCalculator(models.DefaultCostPolicy())
	}
	return &Advisor{calc: calc}
}

// GetAdvice runs the default advisor.
func GetAdvice(input models.SimulationInput, market string) models.AdviceReport {
	return NewAdvisor(nil).Advise(input, market)
}

// RankProfitLevers runs the default advisor's lever ranking.
func RankProfitLevers(input models.SimulationInput) []models.ProfitLever {
	return NewAdvisor(nil).RankLevers(input)
}

// Advise checks delivery, confirmation, upsell and CPL thresholds.
func (a *Advisor) Advise(input models.SimulationInput, market string) models.AdviceReport {
	report := models.AdviceReport{
		Advice:   []string{},
		Warnings: []models.Warning{},
	}

	// Delivery rules
	if input.DeliveryRate < criticalDeliveryRate {
		report.Warnings = append(report.Warnings, models.Warning{
			Severity: models.SeverityCritical,
			Message:  "Delivery rate is very low (< 40%). Returns are destroying profit.",
			Metric:   models.MetricDelivery,
		})
		if market == "MA" {
			report.Advice = append(report.Advice, "Focus on filtering fake orders and verifying addresses before shipping.")
		}
	} else if input.DeliveryRate < warningDeliveryRate {
		report.Warnings = append(report.Warnings, models.Warning{
			Severity: models.SeverityWarning,
			Message:  "Delivery rate needs improvement (40-60%).",
			Metric:   models.MetricDelivery,
		})
	}

	// Confirmation rules
	if input.ConfirmationRate < warningConfirmation {
		report.Warnings = append(report.Warnings, models.Warning{
			Severity: models.SeverityWarning,
			Message:  "Confirmation rate is low (< 45%).",
			Metric:   models.MetricConfirmation,
		})
		report.Advice = append(report.Advice, "Improve your call script or use WhatsApp for quick confirmation.")
	}

	if len(input.UpsellTiers) < minUpsellTiers {
		report.Advice = append(report.Advice, "💡 Add upsell tiers (Buy 2, Buy 3) to increase AOV and offset ad costs.")
	}

	m := a.calc.Calculate(input)

	// Break-even CPL: the lead price at which revenue covers every non-ad cost.
	var breakEvenCPL, currentCPL float64
	if input.Leads > 0 {
		nonAd := m.TotalProductCost + m.TotalShippingCost + input.OtherCosts
		if m.Breakdown.ReturnCostIncluded {
			nonAd += m.TotalReturnCost
		}
		breakEvenCPL = (m.Revenue - nonAd) / float64(input.Leads)
		currentCPL = m.AdCost / float64(input.Leads)
	}
	report.BreakEvenCPL = breakEvenCPL
	report.CurrentCPL = currentCPL

	if currentCPL > breakEvenCPL {
		report.Warnings = append(report.Warnings, models.Warning{
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("You are losing money on every lead (Est. Break-even CPL: %s).", localeAmount(breakEvenCPL)),
			Metric:   models.MetricAds,
		})
	} else if currentCPL > breakEvenCPL*cplCautionRatio {
		report.Warnings = append(report.Warnings, models.Warning{
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("CPL is close to break-even (%s). Scale carefully.", localeAmount(breakEvenCPL)),
			Metric:   models.MetricAds,
		})
	}

	return report
}

// RankLevers simulates three one-factor improvements and ranks them by the
// profit they add over the baseline.
func (a *Advisor) RankLevers(input models.SimulationInput) []models.ProfitLever {
	baseProfit := a.calc.Calculate(input).Profit

	delivery := input.Clone()
	delivery.DeliveryRate = addRate(input.DeliveryRate, RealisticDeliveryGain)

	confirmation := input.Clone()
	confirmation.ConfirmationRate = addRate(input.ConfirmationRate, RealisticConfirmationGain)

	ads := input.Clone()
	ads.CostPerLead = input.CostPerLead * AggressiveCPLFactor

	levers := []models.ProfitLever{
		{
			ID:             models.LeverDelivery,
			Name:           "Improve Delivery (+10%)",
			ProfitIncrease: a.calc.Calculate(delivery).Profit - baseProfit,
		},
		{
			ID:             models.LeverConfirmation,
			Name:           "Improve Confirmation (+5%)",
			ProfitIncrease: a.calc.Calculate(confirmation).Profit - baseProfit,
		},
		{
			ID:             models.LeverAds,
			Name:           "Optimize Ads (-10% Cost)",
			ProfitIncrease: a.calc.Calculate(ads).Profit - baseProfit,
		},
	}

	sort.SliceStable(levers, func(i, j int) bool {
		return levers[i].ProfitIncrease > levers[j].ProfitIncrease
	})

	top := levers[0].ProfitIncrease
	if top == 0 {
		top = 1
	}
	for i := range levers {
		ratio := levers[i].ProfitIncrease / top
		switch {
		case ratio > highImpactRatio:
			levers[i].ImpactLabel = models.ImpactHigh
		case ratio > mediumImpactRatio:
			levers[i].ImpactLabel = models.ImpactMedium
		default:
			levers[i].ImpactLabel = models.ImpactLow
		}
	}

	return levers
}

// localeAmount formats v with thousands separators and two decimals, the way
// advice messages have always printed money.
func localeAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
