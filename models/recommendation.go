// ABOUTME: Advisory warnings and profit-lever recommendations
// ABOUTME: Rule-based output consumed by the advisor and profit helper views

package models

// Severity levels for advisory warnings.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Metric areas a warning can refer to.
const (
	MetricDelivery     = "delivery"
	MetricConfirmation = "confirmation"
	MetricAds          = "ads"
)

// Warning is a rule-based alert about a simulation input or outcome.
type Warning struct {
	Severity string `json:"type"` // "warning" or "critical"
	Message  string `json:"message"`
	Metric   string `json:"metric"`
}

// AdviceReport is the output of the advisory rules.
type AdviceReport struct {
	Advice       []string  `json:"advice"`
	Warnings     []Warning `json:"warnings"`
	BreakEvenCPL float64   `json:"breakEvenCPL"`
	CurrentCPL   float64   `json:"currentCPL"`
}

// LeverID identifies a one-factor improvement.
type LeverID string

const (
	LeverDelivery     LeverID = "delivery"
	LeverConfirmation LeverID = "confirmation"
	LeverAds          LeverID = "ads"
)

// Impact labels for ranked levers.
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// ProfitLever is a candidate improvement ranked by simulated profit delta.
type ProfitLever struct {
	ID             LeverID `json:"id"`
	Name           string  `json:"name"`
	ProfitIncrease float64 `json:"profitIncrease"`
	ImpactLabel    string  `json:"impactLabel"`
}
