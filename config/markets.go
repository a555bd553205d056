// ABOUTME: Market preset loading from an optional YAML file
// ABOUTME: File entries replace built-in presets with the same code and add new ones

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/markalston/cod-profit-simulator/models"
)

// marketsFile is the on-disk layout of MARKETS_FILE.
type marketsFile struct {
	Markets []models.Market `yaml:"markets"`
}

// LoadMarkets returns the built-in presets merged with the presets in path.
// An empty path yields the built-ins alone.
func LoadMarkets(path string) ([]models.Market, error) {
	markets := models.DefaultMarkets()
	if path == "" {
		return markets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markets file %s: %w", path, err)
	}

	var f marketsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing markets file: %w", err)
	}

	index := make(map[string]int, len(markets))
	for i, m := range markets {
		index[m.ID] = i
	}
	for i, m := range f.Markets {
		m.ID = strings.ToUpper(strings.TrimSpace(m.ID))
		if m.ID == "" {
			return nil, fmt.Errorf("market %d: id is required", i)
		}
		if m.Name == "" {
			m.Name = m.ID
		}
		if m.Defaults.AdCurrency == "" {
			m.Defaults.AdCurrency = models.CurrencyLocal
		}
		if pos, ok := index[m.ID]; ok {
			markets[pos] = m
			continue
		}
		index[m.ID] = len(markets)
		markets = append(markets, m)
	}
	return markets, nil
}

// Registry builds the market registry for cfg and checks that the default
// market exists in it.
func (c *Config) Registry() (*models.MarketRegistry, error) {
	markets, err := LoadMarkets(c.MarketsFile)
	if err != nil {
		return nil, err
	}
	registry := models.NewMarketRegistry(markets)
	if _, ok := registry.Get(c.DefaultMarket); !ok {
		return nil, fmt.Errorf("DEFAULT_MARKET %q is not a known market", c.DefaultMarket)
	}
	return registry, nil
}
