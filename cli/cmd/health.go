// ABOUTME: Health command for the codsim CLI
// ABOUTME: Checks backend connectivity and history store status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/cod-profit-simulator/cli/internal/client"
	"github.com/markalston/cod-profit-simulator/models"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long: `Check connectivity to the COD Profit Simulator backend and verify its history store.

Exit codes:
  0 - Backend healthy
  1 - Backend reachable but degraded
  2 - Backend unreachable or returned an error`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	if resp.Status != "ok" {
		return 1
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *models.HealthResponse) string {
	return fmt.Sprintf(`Backend:  %s
Status:   %s
Store:    %s
Markets:  %d`, url, resp.Status, resp.Store, resp.Markets)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *models.HealthResponse) string {
	output := map[string]interface{}{
		"backend":   url,
		"status":    resp.Status,
		"store":     resp.Store,
		"markets":   resp.Markets,
		"timestamp": resp.Timestamp,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
