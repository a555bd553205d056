// ABOUTME: Check command for the codsim CLI
// ABOUTME: Validates campaign profitability thresholds for scripted pipelines

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

var (
	minMargin       float64
	minROI          float64
	minSafetyMargin float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check profitability thresholds",
	Long: `Simulate the campaign and exit non-zero if any profitability minimum is missed.

Exit codes:
  0 - All checks passed
  1 - One or more minimums missed
  2 - Error (unreadable or invalid input, bad thresholds)`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runCheck(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Float64Var(&minMargin, "min-margin", 20, "Minimum profit margin percentage")
	checkCmd.Flags().Float64Var(&minROI, "min-roi", 0, "Minimum ROI percentage")
	checkCmd.Flags().Float64Var(&minSafetyMargin, "min-safety-margin", 0, "Minimum percentage of delivered orders above break-even")
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	name      string
	value     float64
	threshold float64
	unit      string
	passed    bool
}

// runCheck executes the threshold checks and returns exit code
func runCheck(w io.Writer) int {
	if err := validateThresholds(minMargin, minSafetyMargin); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	input, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	calc := services.NewMetricsCalculator(costPolicy())
	metrics := calc.Calculate(input)
	be := calc.BreakEven(input, &metrics)

	results := performChecks(metrics, be)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateThresholds ensures percentage minimums are in range
func validateThresholds(margin, safety float64) error {
	if margin < -100 || margin > 100 {
		return fmt.Errorf("--min-margin must be between -100 and 100")
	}
	if safety < 0 || safety > 100 {
		return fmt.Errorf("--min-safety-margin must be between 0 and 100")
	}
	return nil
}

// performChecks compares the simulated outcome against the minimums
func performChecks(m models.MetricsResult, be models.BreakEvenResult) []checkResult {
	var results []checkResult

	results = append(results, checkResult{
		name:      "Profit margin",
		value:     m.Margin,
		threshold: minMargin,
		unit:      "%",
		passed:    m.Margin >= minMargin,
	})

	results = append(results, checkResult{
		name:      "ROI",
		value:     m.ROI,
		threshold: minROI,
		unit:      "%",
		passed:    m.ROI >= minROI,
	})

	// An unreachable break-even fails regardless of the reported margin.
	results = append(results, checkResult{
		name:      "Safety margin",
		value:     be.SafetyMargin,
		threshold: minSafetyMargin,
		unit:      "%",
		passed:    be.Outcome.Reachable && be.SafetyMargin >= minSafetyMargin,
	})

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %.1f%s (minimum: %.1f%s)\n",
			symbol, r.name, r.value, r.unit, r.threshold, r.unit)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) below minimum", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) met", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"unit":      r.unit,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
