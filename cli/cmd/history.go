// ABOUTME: Run history commands for the codsim CLI
// ABOUTME: Saves, lists, deletes and summarizes simulation runs on the backend

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/cod-profit-simulator/cli/internal/client"
	"github.com/markalston/cod-profit-simulator/cli/internal/report"
	"github.com/markalston/cod-profit-simulator/cli/internal/styles"
	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

var (
	runName string
	runNote string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved simulation runs on the backend",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int { return runHistoryList(ctx, os.Stdout) })
	},
}

var historySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current inputs as a run",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int { return runHistorySave(ctx, os.Stdout) })
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Re-run a saved run's inputs and show the full simulation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int { return runHistoryShow(ctx, os.Stdout, args[0]) })
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete one saved run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int { return runHistoryDelete(ctx, os.Stdout, args[0]) })
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved run",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int { return runHistoryClear(ctx, os.Stdout) })
	},
}

var historyInsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show margin and profit trends across saved runs",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int { return runHistoryInsights(ctx, os.Stdout) })
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historySaveCmd, historyShowCmd, historyDeleteCmd, historyClearCmd, historyInsightsCmd)
	historySaveCmd.Flags().StringVar(&runName, "name", "", "Run name (backend default when empty)")
	historySaveCmd.Flags().StringVar(&runNote, "note", "", "Free-form note")
}

// exitWith runs fn under a signal-aware context and exits on a non-zero code.
func exitWith(fn func(ctx context.Context) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := fn(ctx)
	cancel()
	if code != 0 {
		os.Exit(code)
	}
}

func runHistoryList(ctx context.Context, w io.Writer) int {
	items, err := client.New(GetAPIURL()).ListHistory(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return render(w, items, func() string { return report.History(items) })
}

func runHistorySave(ctx context.Context, w io.Writer) int {
	input, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	item, err := client.New(GetAPIURL()).SaveHistory(ctx, models.SaveHistoryRequest{
		Name:   runName,
		Note:   runNote,
		Inputs: input,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return render(w, item, func() string {
		return styles.StatusText(fmt.Sprintf("Saved %q as %s (profit %s)", item.Name, item.ID, report.Money(item.Metrics.Profit)), styles.LevelOK) + "\n"
	})
}

// runHistoryShow prints the stored run under --json, or recomputes its inputs
// with the current cost policy for the human report.
func runHistoryShow(ctx context.Context, w io.Writer, id string) int {
	item, err := client.New(GetAPIURL()).GetHistory(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return render(w, item, func() string {
		calc := services.NewMetricsCalculator(costPolicy())
		metrics := calc.Calculate(item.Inputs)
		resp := models.SimulationResponse{
			Input:     item.Inputs,
			Metrics:   metrics,
			BreakEven: calc.BreakEven(item.Inputs, &metrics),
		}
		return styles.Title.Render(item.Name) + "\n" + report.Simulation(resp)
	})
}

func runHistoryDelete(ctx context.Context, w io.Writer, id string) int {
	if err := client.New(GetAPIURL()).DeleteHistory(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !IsJSONOutput() {
		fmt.Fprintln(w, styles.StatusText("Deleted "+id, styles.LevelOK))
	}
	return 0
}

func runHistoryClear(ctx context.Context, w io.Writer) int {
	if err := client.New(GetAPIURL()).ClearHistory(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !IsJSONOutput() {
		fmt.Fprintln(w, styles.StatusText("History cleared", styles.LevelOK))
	}
	return 0
}

func runHistoryInsights(ctx context.Context, w io.Writer) int {
	insights, err := client.New(GetAPIURL()).HistoryInsights(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return render(w, insights, func() string { return report.Insights(insights) })
}
