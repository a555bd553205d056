// ABOUTME: Budget-first planning commands for the codsim CLI
// ABOUTME: Plans a fixed ad budget and proposes spend strategies

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/markalston/cod-profit-simulator/cli/internal/report"
	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

var (
	strategyBudget float64
	strategyGoal   float64
	strategyCPL    float64
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Plan a campaign from a fixed ad budget",
}

var budgetPlanCmd = &cobra.Command{
	Use:   "plan FILE",
	Short: "Estimate orders and profit for a budget plan file",
	Long: `Estimate leads, orders and profit for the budget plan in FILE, with a
best/expected/worst range and the unit break-even.

Example file:
  totalBudget: 3000
  duration: 10
  productPrice: 249
  productCost: 80
  shippingCost: 35
  confirmationRate: 60
  deliveryRate: 50
  selectedCPL: 30
  channelSplit:
    facebook: 70
    tiktok: 30`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if code := runBudgetPlan(os.Stdout, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

var budgetStrategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "Propose conservative, balanced and aggressive spend strategies",
	Run: func(cmd *cobra.Command, args []string) {
		if code := runBudgetStrategies(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(budgetCmd)
	budgetCmd.AddCommand(budgetPlanCmd)
	budgetCmd.AddCommand(budgetStrategiesCmd)
	budgetStrategiesCmd.Flags().Float64Var(&strategyBudget, "budget", 0, "Total ad budget")
	budgetStrategiesCmd.Flags().Float64Var(&strategyGoal, "goal", 0, "Profit goal")
	budgetStrategiesCmd.Flags().Float64Var(&strategyCPL, "cpl", 0, "Typical market cost per lead")
}

// loadBudgetPlan reads a plan file; JSON files decode the same way.
func loadBudgetPlan(path string) (models.BudgetPlanInput, error) {
	var in models.BudgetPlanInput
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("reading budget file: %w", err)
	}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parsing budget file: %w", err)
	}
	if err := services.ValidateBudgetPlanInput(in); err != nil {
		return in, err
	}
	return in, nil
}

func runBudgetPlan(w io.Writer, path string) int {
	in, err := loadBudgetPlan(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp := services.NewBudgetPlanner().Analyze(in)
	return render(w, resp, func() string { return report.Budget(resp) })
}

func runBudgetStrategies(w io.Writer) int {
	in := models.StrategyInput{
		TotalBudget: strategyBudget,
		ProfitGoal:  strategyGoal,
		MarketCPL:   strategyCPL,
	}
	if err := services.ValidateStrategyInput(in); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	strategies := services.NewBudgetPlanner().Strategies(in)
	return render(w, strategies, func() string { return report.Strategies(strategies) })
}
