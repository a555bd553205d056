// ABOUTME: Metrics calculator orchestrating funnel, revenue and cost composition
// ABOUTME: Pure and deterministic: the same input always yields the same result

package services

import "github.com/markalston/cod-profit-simulator/models"

// MetricsCalculator computes the full financial outcome of a simulation.
type MetricsCalculator struct {
	policy models.CostPolicy
}

// NewMetricsCalculator creates a calculator using the given cost policy.
func NewMetricsCalculator(policy models.CostPolicy) *MetricsCalculator {
	return &MetricsCalculator{policy: policy}
}

// Policy returns the cost policy in effect.
func (c *MetricsCalculator) Policy() models.CostPolicy {
	return c.policy
}

// CalculateMetrics runs the default calculator (return fees included).
func CalculateMetrics(input models.SimulationInput) models.MetricsResult {
	return NewMetricsCalculator(models.DefaultCostPolicy()).Calculate(input)
}

// AdSpend returns leads × CPL in local currency, converting from USD when needed.
func AdSpend(input models.SimulationInput) float64 {
	raw := float64(input.Leads) * input.CostPerLead
	if input.AdCurrency == models.CurrencyUSD {
		return raw * input.ExchangeRate
	}
	return raw
}

// adSpendUSD returns ad spend expressed in USD.
func adSpendUSD(input models.SimulationInput) float64 {
	raw := float64(input.Leads) * input.CostPerLead
	if input.AdCurrency == models.CurrencyUSD {
		return raw
	}
	rate := input.ExchangeRate
	if rate == 0 {
		rate = 1
	}
	return raw / rate
}

// Calculate runs funnel → revenue → costs and derives profit, margin and ROI.
func (c *MetricsCalculator) Calculate(input models.SimulationInput) models.MetricsResult {
	adSpend := AdSpend(input)

	funnel := ConvertFunnel(input.Leads, input.ConfirmationRate, input.DeliveryRate)
	returned := ReturnedOrders(funnel)

	tiers := BuildOfferTiers(input.ProductPrice, input.UpsellTiers)
	dist := DistributeRevenue(funnel.DeliveredOrders, tiers)

	costs := ComposeCosts(CostInputs{
		AdSpend:                      adSpend,
		TotalUnits:                   dist.TotalUnits,
		ProductCostPerUnit:           input.ProductCost,
		DeliveredOrders:              funnel.DeliveredOrders,
		ShippingCostPerOrder:         input.ShippingCost,
		ConfirmationCostPerDelivered: input.ConfirmationCost,
		ReturnedOrders:               returned,
		ReturnFeePerReturn:           input.ReturnFee,
		OtherCosts:                   input.OtherCosts,
	}, c.policy)

	profit := dist.TotalRevenue - costs.TotalCost

	var margin float64
	if dist.TotalRevenue > 0 {
		margin = profit / dist.TotalRevenue * 100
	}
	var roi float64
	if adSpend > 0 {
		roi = profit / adSpend * 100
	}
	var avgRevenue float64
	if funnel.DeliveredOrders > 0 {
		avgRevenue = dist.TotalRevenue / float64(funnel.DeliveredOrders)
	}
	realCost := RealCostPerDeliveredOrder(adSpend, funnel.DeliveredOrders)

	var localCPL float64
	if input.Leads > 0 {
		localCPL = adSpend / float64(input.Leads)
	}

	return models.MetricsResult{
		Leads:           input.Leads,
		ConfirmedOrders: funnel.ConfirmedOrders,
		DeliveredOrders: funnel.DeliveredOrders,
		ReturnedOrders:  returned,

		Revenue:   dist.TotalRevenue,
		AdCost:    adSpend,
		AdCostUSD: adSpendUSD(input),

		TotalProductCost:      costs.TotalProductCost,
		TotalShippingCost:     costs.TotalShippingCost,
		TotalReturnCost:       costs.TotalReturnCost,
		TotalConfirmationCost: costs.TotalConfirmationCost,
		TotalCost:             costs.TotalCost,

		Profit: profit,
		ROI:    roi,
		Margin: margin,

		AvgRevenuePerOrder:        avgRevenue,
		RealCostPerDeliveredOrder: realCost,
		EffectiveCPL:              EffectiveCPL(localCPL, input.ConfirmationRate, input.DeliveryRate),
		TotalUnits:                dist.TotalUnits,

		Breakdown: models.Breakdown{
			Leads:                        input.Leads,
			ConfirmationRate:             input.ConfirmationRate,
			DeliveryRate:                 input.DeliveryRate,
			ConfirmedOrders:              funnel.ConfirmedOrders,
			DeliveredOrders:              funnel.DeliveredOrders,
			ReturnedOrders:               returned,
			Tiers:                        dist.Tiers,
			TotalUnits:                   dist.TotalUnits,
			ProductCostPerUnit:           input.ProductCost,
			TotalProductCost:             costs.TotalProductCost,
			ShippingCostPerOrder:         input.ShippingCost,
			TotalShippingCost:            costs.TotalShippingCost,
			ConfirmationCostPerDelivered: input.ConfirmationCost,
			TotalConfirmationCost:        costs.TotalConfirmationCost,
			ReturnFee:                    input.ReturnFee,
			TotalReturnCost:              costs.TotalReturnCost,
			ReturnCostIncluded:           costs.ReturnCostIncluded,
			OtherCosts:                   input.OtherCosts,
			AdCost:                       adSpend,
			RealCostPerDeliveredOrder:    realCost,
			TotalCost:                    costs.TotalCost,
			Revenue:                      dist.TotalRevenue,
			Profit:                       profit,
			TiersReconciled:              dist.Reconciled,
		},
	}
}
