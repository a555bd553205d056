// ABOUTME: Data models for break-even analysis and reverse-solved thresholds
// ABOUTME: Keeps a numeric sentinel for old clients alongside an explicit outcome

package models

// UnreachableSentinel stands in for "never breaks even" in numeric fields.
// Logic should branch on BreakEvenOutcome.Reachable, not on this value.
const UnreachableSentinel = 999999

// BreakEvenOutcome tells whether break-even can be reached at current unit economics.
type BreakEvenOutcome struct {
	Reachable bool `json:"reachable"`
	Orders    int  `json:"orders"` // zero when unreachable
}

// Reachable returns an outcome for a break-even volume that can be reached.
func Reachable(orders int) BreakEvenOutcome {
	return BreakEvenOutcome{Reachable: true, Orders: orders}
}

// Unreachable returns the outcome for a non-positive contribution margin.
func Unreachable() BreakEvenOutcome {
	return BreakEvenOutcome{}
}

// BreakEvenResult holds break-even volumes and the thresholds that zero out profit.
type BreakEvenResult struct {
	Outcome BreakEvenOutcome `json:"outcome"`

	BreakEvenOrders    int     `json:"breakEvenOrders"`
	BreakEvenLeads     int     `json:"breakEvenLeads"`
	BreakEvenConfirmed int     `json:"breakEvenConfirmed"`
	TotalFixedCosts    float64 `json:"totalFixedCosts"`
	TotalVariableCosts float64 `json:"totalVariableCosts"`

	ContributionMargin      float64 `json:"contributionMargin"`
	AvgRevenuePerOrder      float64 `json:"avgRevenuePerOrder"`
	AvgVariableCostPerOrder float64 `json:"avgVariableCostPerOrder"`
	SafetyMargin            float64 `json:"safetyMargin"`
	IsProfitable            bool    `json:"isProfitable"`

	MaxCPL              float64 `json:"maxCPL"`
	MinDeliveryRate     float64 `json:"minDeliveryRate"`     // >100 means impossible without other changes
	MinConfirmationRate float64 `json:"minConfirmationRate"` // >100 means impossible without other changes

	CurrentMarginPerOrder float64 `json:"currentMarginPerOrder"`
}
