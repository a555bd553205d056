// ABOUTME: Funnel leakage commands for the codsim CLI
// ABOUTME: Local drop-off and benchmark report, plus backend diagnoses of the funnel or one stage

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/markalston/cod-profit-simulator/cli/internal/client"
	"github.com/markalston/cod-profit-simulator/cli/internal/report"
	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

var funnelStage string

var funnelCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Show where the customer journey leaks",
	Long: `Show drop-off per journey stage and compare stage conversions with
industry benchmarks.

--file supplies measured stages (YAML or JSON with a "stages" list);
without it the sample 30-day journey is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runFunnel(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

var funnelAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ask the backend to diagnose the funnel or one stage",
	Long: `Ask the backend for a diagnosis of the journey, or of one stage with
--stage. The backend answers with generic guidance when no model is
configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int { return runFunnelAnalyze(ctx, os.Stdout) })
	},
}

func init() {
	rootCmd.AddCommand(funnelCmd)
	funnelCmd.AddCommand(funnelAnalyzeCmd)
	funnelAnalyzeCmd.Flags().StringVar(&funnelStage, "stage", "", "Stage key to diagnose (e.g. payment_info)")
}

// loadFunnelInput reads --file as measured stages. Without a file it returns
// nil, which means the sample journey.
func loadFunnelInput() (*models.FunnelInput, error) {
	if inputFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("reading stages file: %w", err)
	}
	var in models.FunnelInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing stages file: %w", err)
	}
	if err := services.ValidateFunnelInput(in); err != nil {
		return nil, err
	}
	return &in, nil
}

// runFunnel builds the leakage report locally and returns the exit code
func runFunnel(w io.Writer) int {
	in, err := loadFunnelInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if in == nil {
		sample := services.SampleFunnelInput()
		in = &sample
	}

	leakage := services.AnalyzeLeakage(*in)
	return render(w, leakage, func() string { return report.Funnel(leakage) })
}

func runFunnelAnalyze(ctx context.Context, w io.Writer) int {
	in, err := loadFunnelInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	if funnelStage != "" {
		analysis, err := c.AnalyzeStage(ctx, funnelStage, in)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return render(w, analysis, func() string { return report.StageAnalysis(*analysis) })
	}

	analysis, err := c.AnalyzeFunnel(ctx, in)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return render(w, analysis, func() string { return report.FunnelAnalysis(*analysis) })
}
