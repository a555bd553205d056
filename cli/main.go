// ABOUTME: Entry point for the codsim CLI
// ABOUTME: Command-line tool for COD profitability simulation and run history

package main

import (
	"fmt"
	"os"

	"github.com/markalston/cod-profit-simulator/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
