// ABOUTME: Customer-journey funnel records for leakage analysis
// ABOUTME: Stage drop-off, benchmark gaps and whole-funnel or single-stage diagnoses

package models

// Stage health levels, by drop-off rate.
const (
	StageHealthy  = "healthy"
	StageWarning  = "warning"
	StageCritical = "critical"
)

// FunnelStageInput is one step of a customer journey as measured.
type FunnelStageInput struct {
	Name      string `json:"name" yaml:"name"`
	Key       string `json:"key" yaml:"key"`
	Users     int    `json:"users" yaml:"users"`
	TimeSpent string `json:"timeSpent,omitempty" yaml:"timeSpent"`
}

// FunnelInput is a measured journey, first stage first.
type FunnelInput struct {
	Stages    []FunnelStageInput `json:"stages" yaml:"stages"`
	TimeRange string             `json:"timeRange,omitempty" yaml:"timeRange"`
}

// FunnelStage is a stage with the users lost before the next one.
type FunnelStage struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Users       int    `json:"users"`
	DropOff     int    `json:"dropOff"`
	DropOffRate int    `json:"dropOffRate"` // percent of this stage's users lost
	TimeSpent   string `json:"timeSpent,omitempty"`
	Health      string `json:"health"`
}

// FunnelData is a journey with drop-off filled in.
type FunnelData struct {
	Stages                  []FunnelStage `json:"stages"`
	TotalConversionRate     float64       `json:"totalConversionRate"`
	BenchmarkConversionRate float64       `json:"benchmarkConversionRate"`
	TimeRange               string        `json:"timeRange"`
}

// StageBenchmark compares one stage-to-stage conversion with its industry norm.
type StageBenchmark struct {
	Transition string  `json:"transition"` // e.g. "landing_to_product"
	From       string  `json:"from"`
	To         string  `json:"to"`
	Conversion float64 `json:"conversion"`
	Benchmark  float64 `json:"benchmark"`
	Gap        float64 `json:"gap"` // conversion minus benchmark, in points
	Below      bool    `json:"below"`
}

// LeakageReport is a funnel with its benchmark comparison.
type LeakageReport struct {
	Funnel     FunnelData       `json:"funnel"`
	Benchmarks []StageBenchmark `json:"benchmarks"`
	// WorstStage is the key of the stage with the highest drop-off rate.
	WorstStage string `json:"worstStage"`
}

// CriticalIssue is one problem stage named by a funnel diagnosis.
type CriticalIssue struct {
	Stage    string `json:"stage"`
	Severity string `json:"severity"`
	Impact   string `json:"impact"`
}

// RevenueImpact estimates what fixing the funnel is worth.
type RevenueImpact struct {
	Potential string `json:"potential"`
	Uplift    string `json:"uplift"`
}

// FunnelAnalysis is a whole-funnel diagnosis. IsFallback marks the fixed
// diagnosis served when no model is configured or the model fails.
type FunnelAnalysis struct {
	Summary        string          `json:"summary"`
	CriticalIssues []CriticalIssue `json:"criticalIssues"`
	RevenueImpact  RevenueImpact   `json:"revenueImpact"`
	IsFallback     bool            `json:"isFallback"`
}

// StageRecommendation is one concrete fix for a leaking stage.
type StageRecommendation struct {
	Title  string `json:"title"`
	What   string `json:"what"`
	Why    string `json:"why"`
	Impact string `json:"impact"`
	Effort string `json:"effort"`
}

// StageAnalysis diagnoses a single stage's drop-off.
type StageAnalysis struct {
	Stage           string                `json:"stage"`
	RootCauses      []string              `json:"rootCauses"`
	Recommendations []StageRecommendation `json:"recommendations"`
	IsFallback      bool                  `json:"isFallback"`
}
