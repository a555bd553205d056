// ABOUTME: Input loading shared by the local simulation commands
// ABOUTME: Layers a YAML or JSON file over market defaults and validates the result

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/markalston/cod-profit-simulator/config"
	"github.com/markalston/cod-profit-simulator/models"
	"github.com/markalston/cod-profit-simulator/services"
)

// loadRegistry returns the built-in presets merged with MARKETS_FILE.
func loadRegistry() (*models.MarketRegistry, error) {
	markets, err := config.LoadMarkets(os.Getenv("MARKETS_FILE"))
	if err != nil {
		return nil, err
	}
	return models.NewMarketRegistry(markets), nil
}

// selectedMarket returns the --market code in canonical form.
func selectedMarket() string {
	code := strings.ToUpper(strings.TrimSpace(marketCode))
	if code == "" {
		return defaultMarket
	}
	return code
}

// marketDefaults returns the selected market's preset inputs.
func marketDefaults() (models.SimulationInput, error) {
	registry, err := loadRegistry()
	if err != nil {
		return models.SimulationInput{}, err
	}
	return services.ApplyMarketDefaults(registry, selectedMarket())
}

// loadInput builds the simulation input from the market preset and the
// optional --file overrides.
func loadInput() (models.SimulationInput, error) {
	input, err := marketDefaults()
	if err != nil {
		return models.SimulationInput{}, err
	}

	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return models.SimulationInput{}, fmt.Errorf("reading input file: %w", err)
		}
		// JSON documents are valid YAML, so one decoder covers both.
		if err := yaml.Unmarshal(data, &input); err != nil {
			return models.SimulationInput{}, fmt.Errorf("parsing input file: %w", err)
		}
	}

	if input.AdCurrency == "" {
		input.AdCurrency = models.CurrencyLocal
	}
	if err := services.ValidateSimulationInput(input); err != nil {
		return models.SimulationInput{}, err
	}
	return input, nil
}

// loadScenarios reads a comparison file. Each scenario's inputs are layered
// over the selected market's defaults.
func loadScenarios(path string) ([]models.Scenario, error) {
	defaults, err := marketDefaults()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios file: %w", err)
	}

	var doc struct {
		Scenarios []yaml.Node `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scenarios file: %w", err)
	}

	scenarios := make([]models.Scenario, 0, len(doc.Scenarios))
	for i, node := range doc.Scenarios {
		sc := models.Scenario{Inputs: defaults.Clone()}
		if err := node.Decode(&sc); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("Scenario %d", i+1)
		}
		if sc.Inputs.AdCurrency == "" {
			sc.Inputs.AdCurrency = models.CurrencyLocal
		}
		if err := services.ValidateSimulationInput(sc.Inputs); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// costPolicy returns the policy selected by --exclude-returns.
func costPolicy() models.CostPolicy {
	return models.CostPolicy{IncludeReturnFees: !excludeReturns}
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// render prints v as JSON under --json, or the human form otherwise.
func render(w io.Writer, v any, human func() string) int {
	if IsJSONOutput() {
		if err := writeJSON(w, v); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	}
	fmt.Fprint(w, human())
	return 0
}
