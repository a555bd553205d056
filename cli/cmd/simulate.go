// ABOUTME: Simulate and break-even commands for the codsim CLI
// ABOUTME: Runs the profitability engine locally on preset plus file inputs

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/cod-profit-simulator/cli/internal/report"
	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a COD campaign",
	Long: `Simulate a cash-on-delivery campaign: funnel, costs, profit and break-even.

Inputs start from the --market preset; --file overrides any subset of them.`,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runSimulate(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "breakeven",
	Short: "Show break-even volumes and thresholds",
	Run: func(cmd *cobra.Command, args []string) {
		if code := runBreakEven(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(breakEvenCmd)
}

// runSimulate computes metrics and break-even and returns the exit code
func runSimulate(w io.Writer) int {
	input, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	calc := services.NewMetricsCalculator(costPolicy())
	metrics := calc.Calculate(input)
	resp := models.SimulationResponse{
		Input:     input,
		Metrics:   metrics,
		BreakEven: calc.BreakEven(input, &metrics),
	}
	return render(w, resp, func() string { return report.Simulation(resp) })
}

// runBreakEven computes break-even only and returns the exit code
func runBreakEven(w io.Writer) int {
	input, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	calc := services.NewMetricsCalculator(costPolicy())
	be := calc.BreakEven(input, nil)
	return render(w, be, func() string { return report.BreakEven(be) })
}
