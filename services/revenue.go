// ABOUTME: Revenue distribution of delivered orders across offer tiers
// ABOUTME: First tier absorbs the rounding remainder so counts tie out to delivered orders

package services

import (
	"fmt"

	"github.com/markalston/cod-profit-simulator/models"
)

// RevenueDistribution is the result of spreading delivered orders over tiers.
type RevenueDistribution struct {
	TotalRevenue float64
	TotalUnits   int
	Tiers        []models.OfferTier
	// Reconciled is false only when the first tier had to be clamped at
	// zero, in which case the tier counts sum to more than delivered orders.
	Reconciled bool
}

// DistributeRevenue allocates delivered orders to tiers by percentage.
// Each tier gets round(delivered × percent/100); the difference to
// deliveredOrders is added to tiers[0], clamped at zero.
func DistributeRevenue(deliveredOrders int, tiers []models.OfferTier) RevenueDistribution {
	counts := make([]int, len(tiers))
	sum := 0
	for i, tier := range tiers {
		if tier.Percent > 0 {
			counts[i] = RoundHalfUp(float64(deliveredOrders) * (tier.Percent / 100))
		}
		sum += counts[i]
	}

	reconciled := true
	if len(counts) > 0 {
		counts[0] += deliveredOrders - sum
		if counts[0] < 0 {
			// Over-allocation by the other tiers is left as is.
			counts[0] = 0
			reconciled = false
		}
	}

	dist := RevenueDistribution{
		Tiers:      make([]models.OfferTier, 0, len(tiers)),
		Reconciled: reconciled,
	}
	for i, tier := range tiers {
		tier.OrderCount = counts[i]
		tier.Revenue = float64(counts[i]) * tier.Price
		tier.Units = counts[i] * tier.Qty
		dist.TotalRevenue += tier.Revenue
		dist.TotalUnits += tier.Units
		dist.Tiers = append(dist.Tiers, tier)
	}
	return dist
}

// NormalizeUpsellTiers scales upsell percentages down so they sum to exactly
// 100 when they exceed it. It returns the normalized copy and the original sum.
func NormalizeUpsellTiers(tiers []models.UpsellTier) ([]models.UpsellTier, float64) {
	out := make([]models.UpsellTier, len(tiers))
	copy(out, tiers)

	var total float64
	for _, t := range out {
		total += t.Percent
	}
	if total > 100 {
		ratio := 100 / total
		for i := range out {
			out[i].Percent *= ratio
		}
	}
	return out, total
}

// BuildOfferTiers prepends the standard single-unit offer to the upsell
// tiers. The standard tier takes whatever share the upsells leave, which is
// zero once upsells reach 100%.
func BuildOfferTiers(productPrice float64, upsells []models.UpsellTier) []models.OfferTier {
	normalized, upsellPercent := NormalizeUpsellTiers(upsells)

	basePercent := 100 - upsellPercent
	if basePercent < 0 {
		basePercent = 0
	}

	tiers := make([]models.OfferTier, 0, len(normalized)+1)
	tiers = append(tiers, models.OfferTier{
		Name:    models.StandardOfferName,
		Qty:     1,
		Price:   productPrice,
		Percent: basePercent,
	})
	for _, u := range normalized {
		name := u.Name
		if name == "" {
			name = fmt.Sprintf("Bundle %dx", u.Qty)
		}
		tiers = append(tiers, models.OfferTier{
			Name:    name,
			Qty:     u.Qty,
			Price:   u.Price,
			Percent: u.Percent,
		})
	}
	return tiers
}
