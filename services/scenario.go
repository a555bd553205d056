// ABOUTME: Scenario calculator for what-if profitability analysis
// ABOUTME: Generates perturbed scenarios and compares user-defined ones against a baseline

package services

import (
	"context"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/cod-profit-simulator/models"
)

const (
	// RealisticDeliveryGain is the delivery-rate uplift (pp) of the realistic scenario
	RealisticDeliveryGain = 10
	// RealisticConfirmationGain is the confirmation-rate uplift (pp) of the realistic scenario
	RealisticConfirmationGain = 5
	// AggressiveDeliveryGain is the delivery-rate uplift (pp) of the aggressive scenario
	AggressiveDeliveryGain = 20
	// AggressiveConfirmationGain is the confirmation-rate uplift (pp) of the aggressive scenario
	AggressiveConfirmationGain = 10
	// AggressiveCPLFactor scales cost per lead in the aggressive scenario
	AggressiveCPLFactor = 0.9
)

// ErrNoScenarios is returned when a comparison is requested with nothing to compare.
var ErrNoScenarios = errors.New("at least one scenario is required")

// ScenarioCalculator computes what-if scenarios on top of a metrics calculator
type ScenarioCalculator struct {
	calc *MetricsCalculator
}

// NewScenarioCalculator creates a new calculator
func NewScenarioCalculator(calc *MetricsCalculator) *ScenarioCalculator {
	if calc == nil {
		calc = NewMetricsCalculator(models.DefaultCostPolicy())
	}
	return &ScenarioCalculator{calc: calc}
}

// GenerateScenarios runs the default scenario calculator.
func GenerateScenarios(input models.SimulationInput) models.ScenarioSet {
	return NewScenarioCalculator(nil).Generate(input)
}

// addRate adds percentage points to a rate, capped at 100.
func addRate(rate, points float64) float64 {
	return math.Min(rate+points, 100)
}

// Generate produces conservative (baseline), realistic and aggressive
// scenarios from perturbed copies of the input.
func (s *ScenarioCalculator) Generate(input models.SimulationInput) models.ScenarioSet {
	conservative := input.Clone()

	realistic := input.Clone()
	realistic.DeliveryRate = addRate(input.DeliveryRate, RealisticDeliveryGain)
	realistic.ConfirmationRate = addRate(input.ConfirmationRate, RealisticConfirmationGain)

	aggressive := input.Clone()
	aggressive.DeliveryRate = addRate(input.DeliveryRate, AggressiveDeliveryGain)
	aggressive.ConfirmationRate = addRate(input.ConfirmationRate, AggressiveConfirmationGain)
	aggressive.CostPerLead = input.CostPerLead * AggressiveCPLFactor

	return models.ScenarioSet{
		Conservative: s.result(models.ScenarioConservative, "Conservative", conservative),
		Realistic:    s.result(models.ScenarioRealistic, "Realistic", realistic),
		Aggressive:   s.result(models.ScenarioAggressive, "Aggressive", aggressive),
	}
}

func (s *ScenarioCalculator) result(kind models.ScenarioKind, name string, in models.SimulationInput) models.ScenarioResult {
	return models.ScenarioResult{
		Kind:    kind,
		Name:    name,
		Inputs:  in,
		Metrics: s.calc.Calculate(in),
	}
}

// Compare computes every scenario, picks the most profitable one and reports
// each non-baseline scenario's change against the baseline. The baseline is the
// first scenario flagged IsBaseline, or the first scenario otherwise.
func (s *ScenarioCalculator) Compare(ctx context.Context, scenarios []models.Scenario) (models.ScenarioComparison, error) {
	if len(scenarios) == 0 {
		return models.ScenarioComparison{}, ErrNoScenarios
	}

	results := make([]models.ScenarioResult, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in := sc.Inputs.Clone()
			results[i] = models.ScenarioResult{
				ID:      sc.ID,
				Name:    sc.Name,
				Inputs:  in,
				Metrics: s.calc.Calculate(in),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ScenarioComparison{}, err
	}

	baselineIdx := 0
	for i, sc := range scenarios {
		if sc.IsBaseline {
			baselineIdx = i
			break
		}
	}
	baseline := results[baselineIdx]

	bestIdx := 0
	for i, r := range results {
		if r.Metrics.Profit > results[bestIdx].Metrics.Profit {
			bestIdx = i
		}
	}

	deltas := make([]models.ScenarioDelta, 0, len(results)-1)
	for i, r := range results {
		if i == baselineIdx {
			continue
		}
		deltas = append(deltas, models.ScenarioDelta{
			ScenarioID:     r.ID,
			Name:           r.Name,
			ProfitChange:   r.Metrics.Profit - baseline.Metrics.Profit,
			RevenueChange:  r.Metrics.Revenue - baseline.Metrics.Revenue,
			CostChange:     r.Metrics.TotalCost - baseline.Metrics.TotalCost,
			MarginChangePt: r.Metrics.Margin - baseline.Metrics.Margin,
			OrdersChange:   r.Metrics.DeliveredOrders - baseline.Metrics.DeliveredOrders,
		})
	}

	return models.ScenarioComparison{
		Baseline: baseline,
		Results:  results,
		Best:     results[bestIdx],
		Deltas:   deltas,
	}, nil
}
