// ABOUTME: Cost composition for a simulated COD campaign
// ABOUTME: Itemizes ad, product, shipping, confirmation, return and fixed costs

package services

import "github.com/markalston/cod-profit-simulator/models"

// CostInputs are the volumes and unit costs the composer multiplies out.
type CostInputs struct {
	AdSpend                      float64
	TotalUnits                   int
	ProductCostPerUnit           float64
	DeliveredOrders              int
	ShippingCostPerOrder         float64
	ConfirmationCostPerDelivered float64
	ReturnedOrders               int
	ReturnFeePerReturn           float64
	OtherCosts                   float64
}

// CostBreakdown is the itemized result.
type CostBreakdown struct {
	AdCost                float64
	TotalProductCost      float64
	TotalShippingCost     float64
	TotalConfirmationCost float64
	TotalReturnCost       float64
	OtherCosts            float64
	TotalCost             float64
	ReturnCostIncluded    bool
}

// ComposeCosts multiplies out unit costs. Product cost is billed per unit
// sold; shipping and confirmation only per delivered order; return fees per
// returned order. Return cost always appears in the breakdown but only
// counts toward TotalCost when the policy includes it.
func ComposeCosts(in CostInputs, policy models.CostPolicy) CostBreakdown {
	c := CostBreakdown{
		AdCost:             in.AdSpend,
		TotalProductCost:   float64(in.TotalUnits) * in.ProductCostPerUnit,
		TotalShippingCost:  float64(in.DeliveredOrders) * in.ShippingCostPerOrder,
		TotalReturnCost:    float64(in.ReturnedOrders) * in.ReturnFeePerReturn,
		OtherCosts:         in.OtherCosts,
		ReturnCostIncluded: policy.IncludeReturnFees,
	}
	if in.DeliveredOrders > 0 && in.ConfirmationCostPerDelivered != 0 {
		c.TotalConfirmationCost = float64(in.DeliveredOrders) * in.ConfirmationCostPerDelivered
	}

	c.TotalCost = c.AdCost + c.TotalProductCost + c.TotalShippingCost + c.TotalConfirmationCost + c.OtherCosts
	if policy.IncludeReturnFees {
		c.TotalCost += c.TotalReturnCost
	}
	return c
}

// VariableCosts is the part of the cost that scales with delivered orders.
func (c CostBreakdown) VariableCosts() float64 {
	v := c.TotalProductCost + c.TotalShippingCost + c.TotalConfirmationCost
	if c.ReturnCostIncluded {
		v += c.TotalReturnCost
	}
	return v
}
