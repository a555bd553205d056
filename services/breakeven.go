// ABOUTME: Break-even solver over a computed simulation
// ABOUTME: Splits fixed and variable cost and reverse-solves CPL and rate thresholds

package services

import (
	"math"

	"github.com/markalston/cod-profit-simulator/models"
)

// CalculateBreakEven runs the solver with the default cost policy.
// Pass precomputed metrics to avoid recalculating them; nil computes them.
func CalculateBreakEven(input models.SimulationInput, metrics *models.MetricsResult) models.BreakEvenResult {
	return NewMetricsCalculator(models.DefaultCostPolicy()).BreakEven(input, metrics)
}

// BreakEven treats ad spend plus other costs as fixed and everything billed per
// delivered order as variable, then solves for the volumes and thresholds at
// which profit reaches zero.
func (c *MetricsCalculator) BreakEven(input models.SimulationInput, metrics *models.MetricsResult) models.BreakEvenResult {
	var m models.MetricsResult
	if metrics != nil {
		m = *metrics
	} else {
		m = c.Calculate(input)
	}

	leads := input.Leads
	if leads <= 0 {
		leads = 1
	}
	delivered := m.DeliveredOrders

	totalFixed := m.Breakdown.AdCost + input.OtherCosts
	totalVariable := m.TotalProductCost + m.TotalShippingCost + m.TotalConfirmationCost
	if m.Breakdown.ReturnCostIncluded {
		totalVariable += m.TotalReturnCost
	}

	var avgRevenue, avgVariable float64
	if delivered > 0 {
		avgRevenue = m.Revenue / float64(delivered)
		avgVariable = totalVariable / float64(delivered)
	}
	contribution := avgRevenue - avgVariable

	outcome := models.Unreachable()
	breakEvenOrders := models.UnreachableSentinel
	if contribution > 0 {
		breakEvenOrders = ceilToInt(totalFixed / contribution)
		outcome = models.Reachable(breakEvenOrders)
	}

	// The reverse funnel runs on the sentinel too, so unreachable results
	// keep the legacy lead and confirmed figures.
	breakEvenLeads := models.UnreachableSentinel
	if conversion := float64(delivered) / float64(leads); conversion > 0 {
		breakEvenLeads = ceilToInt(float64(breakEvenOrders) / conversion)
	}

	deliveryFraction := input.DeliveryRate / 100
	breakEvenConfirmed := models.UnreachableSentinel
	if deliveryFraction > 0 {
		breakEvenConfirmed = ceilToInt(float64(breakEvenOrders) / deliveryFraction)
	}

	safetyMargin := -100.0
	if delivered > 0 {
		safetyMargin = float64(delivered-breakEvenOrders) / float64(delivered) * 100
	}

	maxCPL := (m.Revenue - totalVariable - input.OtherCosts) / float64(leads)

	var minDelivery float64
	if m.ConfirmedOrders > 0 {
		minDelivery = float64(breakEvenOrders) / float64(m.ConfirmedOrders) * 100
	}

	requiredConfirmed := float64(models.UnreachableSentinel)
	if deliveryFraction > 0 {
		requiredConfirmed = float64(breakEvenOrders) / deliveryFraction
	}
	minConfirmation := requiredConfirmed / float64(leads) * 100

	return models.BreakEvenResult{
		Outcome:                 outcome,
		BreakEvenOrders:         breakEvenOrders,
		BreakEvenLeads:          breakEvenLeads,
		BreakEvenConfirmed:      breakEvenConfirmed,
		TotalFixedCosts:         totalFixed,
		TotalVariableCosts:      totalVariable,
		ContributionMargin:      contribution,
		AvgRevenuePerOrder:      avgRevenue,
		AvgVariableCostPerOrder: avgVariable,
		SafetyMargin:            safetyMargin,
		IsProfitable:            m.Profit >= 0,
		MaxCPL:                  math.Max(0, maxCPL),
		MinDeliveryRate:         math.Max(0, minDelivery),
		MinConfirmationRate:     math.Max(0, minConfirmation),
		CurrentMarginPerOrder:   contribution,
	}
}

// ceilToInt rounds x up, saturating at math.MaxInt instead of wrapping.
func ceilToInt(x float64) int {
	c := math.Ceil(x)
	if c >= math.MaxInt || math.IsNaN(c) {
		return math.MaxInt
	}
	return int(c)
}
