// ABOUTME: Root command for the codsim CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL         string
	jsonOutput     bool
	inputFile      string
	marketCode     string
	excludeReturns bool
)

const (
	defaultAPIURL = "http://localhost:8080"
	defaultMarket = "MA"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "codsim",
	Short: "CLI for the COD Profit Simulator",
	Long: `codsim simulates cash-on-delivery campaign profitability from the command line.

Simulation commands run locally against market presets, optionally overridden
by a YAML or JSON input file. History and health commands talk to the backend.

Environment Variables:
  CODSIM_API_URL  Backend API URL (default: http://localhost:8080)
  MARKETS_FILE    YAML file with extra or replacement market presets`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides CODSIM_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "YAML or JSON input file layered over the market defaults")
	rootCmd.PersistentFlags().StringVarP(&marketCode, "market", "m", defaultMarket, "Market preset supplying default inputs")
	rootCmd.PersistentFlags().BoolVar(&excludeReturns, "exclude-returns", false, "Leave return fees out of total cost")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("CODSIM_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
