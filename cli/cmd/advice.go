// ABOUTME: Advisor and profit-lever commands for the codsim CLI
// ABOUTME: Prints market-aware warnings and ranks one-factor improvements

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/cod-profit-simulator/cli/internal/report"
	"github.com/markalston/cod-profit-simulator/services"
)

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Warn about weak rates and unprofitable ad spend",
	Run: func(cmd *cobra.Command, args []string) {
		if code := runAdvice(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

var leversCmd = &cobra.Command{
	Use:   "levers",
	Short: "Rank single-factor improvements by profit gained",
	Run: func(cmd *cobra.Command, args []string) {
		if code := runLevers(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(adviceCmd)
	rootCmd.AddCommand(leversCmd)
}

func advisor() *services.Advisor {
	return services.NewAdvisor(services.NewMetricsCalculator(costPolicy()))
}

func runAdvice(w io.Writer) int {
	input, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	advice := advisor().Advise(input, selectedMarket())
	return render(w, advice, func() string { return report.Advice(advice) })
}

func runLevers(w io.Writer) int {
	input, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	levers := advisor().RankLevers(input)
	return render(w, levers, func() string { return report.Levers(levers) })
}
