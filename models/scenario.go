// ABOUTME: Data models for what-if scenario generation and comparison
// ABOUTME: Supports conservative/realistic/aggressive sets and user-defined scenarios

package models

// ScenarioKind names a generated scenario.
type ScenarioKind string

const (
	ScenarioConservative ScenarioKind = "conservative"
	ScenarioRealistic    ScenarioKind = "realistic"
	ScenarioAggressive   ScenarioKind = "aggressive"
)

// Scenario is a user-defined set of inputs. Identity and persistence belong to the caller.
type Scenario struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Inputs     SimulationInput `json:"inputs" yaml:"inputs"`
	IsBaseline bool            `json:"isBaseline" yaml:"isBaseline"`
}

// ScenarioResult is one scenario's inputs together with its computed metrics.
type ScenarioResult struct {
	Kind    ScenarioKind    `json:"kind,omitempty"`
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Inputs  SimulationInput `json:"inputs"`
	Metrics MetricsResult   `json:"metrics"`
}

// ScenarioSet holds the three generated what-if scenarios.
type ScenarioSet struct {
	Conservative ScenarioResult `json:"conservative"`
	Realistic    ScenarioResult `json:"realistic"`
	Aggressive   ScenarioResult `json:"aggressive"`
}

// ScenarioDelta represents changes of a scenario relative to the baseline
type ScenarioDelta struct {
	ScenarioID     string  `json:"scenarioId"`
	Name           string  `json:"name"`
	ProfitChange   float64 `json:"profitChange"`
	RevenueChange  float64 `json:"revenueChange"`
	CostChange     float64 `json:"costChange"`
	MarginChangePt float64 `json:"marginChangePt"`
	OrdersChange   int     `json:"ordersChange"`
}

// ScenarioComparison represents full comparison response
type ScenarioComparison struct {
	Baseline ScenarioResult   `json:"baseline"`
	Results  []ScenarioResult `json:"results"`
	Best     ScenarioResult   `json:"best"`
	Deltas   []ScenarioDelta  `json:"deltas"`
}
