// ABOUTME: Tests for the scenario commands
// ABOUTME: Verifies generated what-ifs and file-driven comparisons

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/markalston/cod-profit-simulator/models"
)

const compareYAML = `scenarios:
  - id: base
    name: Today
    isBaseline: true
    inputs:
      leads: 120
      confirmationRate: 50
      deliveryRate: 50
      costPerLead: 10
      productPrice: 100
      productCost: 14
      shippingCost: 32
      returnFee: 0
  - id: cheap
    name: Cheaper leads
    inputs:
      leads: 120
      confirmationRate: 50
      deliveryRate: 50
      costPerLead: 5
      productPrice: 100
      productCost: 14
      shippingCost: 32
      returnFee: 0
`

func TestRunScenarios_JSON(t *testing.T) {
	resetFlags(t)
	inputFile = writeFile(t, "input.yaml", referenceYAML)

	var buf bytes.Buffer
	if err := runScenarios(&buf, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var set models.ScenarioSet
	if err := json.Unmarshal(buf.Bytes(), &set); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if set.Conservative.Metrics.Profit != 420 {
		t.Errorf("Expected conservative profit 420, got %v", set.Conservative.Metrics.Profit)
	}
	if !(set.Conservative.Metrics.Profit < set.Realistic.Metrics.Profit &&
		set.Realistic.Metrics.Profit < set.Aggressive.Metrics.Profit) {
		t.Errorf("Expected ascending profit, got %v/%v/%v",
			set.Conservative.Metrics.Profit, set.Realistic.Metrics.Profit, set.Aggressive.Metrics.Profit)
	}
}

func TestRunScenarios_Human(t *testing.T) {
	resetFlags(t)

	var buf bytes.Buffer
	if err := runScenarios(&buf, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "What-if scenarios") {
		t.Errorf("Expected scenario table, got %q", buf.String())
	}
}

func TestRunScenarioCompare(t *testing.T) {
	resetFlags(t)
	path := writeFile(t, "compare.yaml", compareYAML)

	var buf bytes.Buffer
	if err := runScenarioCompare(context.Background(), &buf, path, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cmp models.ScenarioComparison
	if err := json.Unmarshal(buf.Bytes(), &cmp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if cmp.Baseline.ID != "base" {
		t.Errorf("Expected base as baseline, got %s", cmp.Baseline.ID)
	}
	if cmp.Best.ID != "cheap" {
		t.Errorf("Expected cheap to win, got %s", cmp.Best.ID)
	}
	if len(cmp.Deltas) != 1 || cmp.Deltas[0].ProfitChange != 600 {
		t.Errorf("Expected one delta of +600, got %+v", cmp.Deltas)
	}
}

func TestRunScenarioCompare_PartialInputsUsePreset(t *testing.T) {
	resetFlags(t)
	path := writeFile(t, "compare.yaml", `scenarios:
  - name: Preset
  - name: More leads
    inputs:
      leads: 200
`)

	var buf bytes.Buffer
	if err := runScenarioCompare(context.Background(), &buf, path, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var cmp models.ScenarioComparison
	if err := json.Unmarshal(buf.Bytes(), &cmp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if cmp.Baseline.Inputs.ProductPrice != 249 {
		t.Errorf("Expected Morocco price on the baseline, got %v", cmp.Baseline.Inputs.ProductPrice)
	}
	if cmp.Results[1].Inputs.Leads != 200 || cmp.Results[1].Inputs.ProductPrice != 249 {
		t.Errorf("Expected override layered on preset, got %+v", cmp.Results[1].Inputs)
	}
}

func TestRunScenarioCompare_Empty(t *testing.T) {
	resetFlags(t)
	path := writeFile(t, "compare.yaml", "scenarios: []\n")

	var buf bytes.Buffer
	if err := runScenarioCompare(context.Background(), &buf, path, false); err == nil {
		t.Error("Expected error for an empty comparison")
	}
}
