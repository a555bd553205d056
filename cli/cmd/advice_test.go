// ABOUTME: Tests for the advice, levers and markets commands
// ABOUTME: Runs them against presets and small overrides

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/markalston/cod-profit-simulator/models"
)

func TestRunAdvice_LowDelivery(t *testing.T) {
	resetFlags(t)
	inputFile = writeFile(t, "input.yaml", strings.Replace(referenceYAML, "deliveryRate: 50", "deliveryRate: 30", 1))
	jsonOutput = true

	var buf bytes.Buffer
	if code := runAdvice(&buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	var advice models.AdviceReport
	if err := json.Unmarshal(buf.Bytes(), &advice); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	critical := 0
	for _, w := range advice.Warnings {
		if w.Severity == models.SeverityCritical && w.Metric == models.MetricDelivery {
			critical++
		}
	}
	if critical != 1 {
		t.Errorf("Expected one critical delivery warning, got %d", critical)
	}
	if advice.CurrentCPL != 10 {
		t.Errorf("Expected current CPL 10, got %v", advice.CurrentCPL)
	}
}

func TestRunLevers_Sorted(t *testing.T) {
	resetFlags(t)
	inputFile = writeFile(t, "input.yaml", referenceYAML)
	jsonOutput = true

	var buf bytes.Buffer
	if code := runLevers(&buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	var levers []models.ProfitLever
	if err := json.Unmarshal(buf.Bytes(), &levers); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(levers) == 0 {
		t.Fatal("Expected ranked levers")
	}
	for i := 1; i < len(levers); i++ {
		if levers[i].ProfitIncrease > levers[i-1].ProfitIncrease {
			t.Errorf("Expected levers sorted by profit increase, got %v before %v",
				levers[i-1].ProfitIncrease, levers[i].ProfitIncrease)
		}
	}
}

func TestRunMarkets(t *testing.T) {
	resetFlags(t)

	var buf bytes.Buffer
	if code := runMarkets(&buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"MA", "Morocco", "SA", "Saudi Arabia"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %q in markets output", want)
		}
	}
}

func TestRunMarkets_BadFile(t *testing.T) {
	resetFlags(t)
	t.Setenv("MARKETS_FILE", writeFile(t, "markets.yaml", "markets: [[[\n"))

	var buf bytes.Buffer
	if code := runMarkets(&buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
