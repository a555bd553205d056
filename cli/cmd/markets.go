// ABOUTME: Markets command for the codsim CLI
// ABOUTME: Lists the built-in and MARKETS_FILE presets

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/cod-profit-simulator/cli/internal/report"
)

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List market presets",
	Run: func(cmd *cobra.Command, args []string) {
		if code := runMarkets(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(marketsCmd)
}

func runMarkets(w io.Writer) int {
	registry, err := loadRegistry()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	markets := registry.List()
	return render(w, markets, func() string { return report.Markets(markets) })
}
