// ABOUTME: Non-interactive what-if scenario commands
// ABOUTME: Generates conservative/realistic/aggressive sets and compares user scenarios

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/cod-profit-simulator/cli/internal/report"
	"github.com/markalston/cod-profit-simulator/services"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Generate conservative, realistic and aggressive what-ifs",
	Long: `Perturb the input rates and CPL to bracket the likely outcome.

Example:
  codsim scenarios --market SA --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenarios(os.Stdout, IsJSONOutput())
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare FILE",
	Short: "Compare user-defined scenarios against a baseline",
	Long: `Compare the scenarios listed in FILE. Each entry's inputs override the
--market preset; the entry marked isBaseline (or the first) is the baseline.

Example file:
  scenarios:
    - name: Today
      isBaseline: true
    - name: Better delivery
      inputs:
        deliveryRate: 60`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runScenarioCompare(ctx, os.Stdout, args[0], IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
	scenariosCmd.AddCommand(compareCmd)
}

func scenarioCalculator() *services.ScenarioCalculator {
	return services.NewScenarioCalculator(services.NewMetricsCalculator(costPolicy()))
}

func runScenarios(w io.Writer, jsonOut bool) error {
	input, err := loadInput()
	if err != nil {
		return err
	}

	set := scenarioCalculator().Generate(input)
	if jsonOut {
		return writeJSON(w, set)
	}
	_, err = io.WriteString(w, report.Scenarios(set))
	return err
}

func runScenarioCompare(ctx context.Context, w io.Writer, path string, jsonOut bool) error {
	scenarios, err := loadScenarios(path)
	if err != nil {
		return err
	}

	comparison, err := scenarioCalculator().Compare(ctx, scenarios)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(w, comparison)
	}
	_, err = io.WriteString(w, report.Comparison(comparison))
	return err
}
