// ABOUTME: Funnel conversion from leads to confirmed, delivered and returned orders
// ABOUTME: Rounds once per stage with round-half-up semantics

package services

import "math"

// FunnelCounts are the whole-order counts produced by the funnel.
type FunnelCounts struct {
	ConfirmedOrders int
	DeliveredOrders int
}

// RoundHalfUp rounds to the nearest integer, ties toward +Inf.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ConvertFunnel turns leads into confirmed and delivered orders.
// Rates are percentages and are not validated: out-of-range rates
// produce out-of-range counts.
func ConvertFunnel(leads int, confirmationRatePct, deliveryRatePct float64) FunnelCounts {
	confirmed := RoundHalfUp(float64(leads) * (confirmationRatePct / 100))
	delivered := RoundHalfUp(float64(confirmed) * (deliveryRatePct / 100))
	return FunnelCounts{
		ConfirmedOrders: confirmed,
		DeliveredOrders: delivered,
	}
}

// ReturnedOrders is confirmed minus delivered, never negative.
func ReturnedOrders(f FunnelCounts) int {
	if f.ConfirmedOrders > f.DeliveredOrders {
		return f.ConfirmedOrders - f.DeliveredOrders
	}
	return 0
}

// EffectiveCPL is the lead cost scaled up by funnel losses: what one
// delivered order really costs in ads. Zero when nothing converts.
func EffectiveCPL(cpl, confirmationRatePct, deliveryRatePct float64) float64 {
	rate := (confirmationRatePct / 100) * (deliveryRatePct / 100)
	if rate <= 0 {
		return 0
	}
	return cpl / rate
}

// RealCostPerDeliveredOrder spreads ad spend over delivered orders.
func RealCostPerDeliveredOrder(adSpend float64, deliveredOrders int) float64 {
	if deliveredOrders <= 0 {
		return 0
	}
	return adSpend / float64(deliveredOrders)
}
