// ABOUTME: Market presets mapping a market code to default simulation inputs
// ABOUTME: Registry is built once and handed out as copies, never mutated in place

package models

import (
	"sort"
	"strings"
)

// Market describes a selling market and the default assumptions for it.
type Market struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Currency string          `json:"currency" yaml:"currency"`
	Flag     string          `json:"flag,omitempty" yaml:"flag,omitempty"`
	Defaults SimulationInput `json:"defaults" yaml:"defaults"`
}

// MarketRegistry is a read-only lookup of market presets by code.
type MarketRegistry struct {
	markets map[string]Market
}

// DefaultMarkets returns the built-in Morocco and Saudi Arabia presets.
func DefaultMarkets() []Market {
	return []Market{
		{
			ID:       "MA",
			Name:     "Morocco",
			Currency: "MAD",
			Flag:     "🇲🇦",
			Defaults: SimulationInput{
				Leads:            100,
				ConfirmationRate: 50,
				DeliveryRate:     50,
				ProductPrice:     249,
				CostPerLead:      25,
				ProductCost:      80,
				ShippingCost:     35,
				ConfirmationCost: 0,
				ReturnFee:        15,
				OtherCosts:       0,
				UpsellTiers:      []UpsellTier{},
				AdCurrency:       CurrencyLocal,
				ExchangeRate:     10,
			},
		},
		{
			ID:       "SA",
			Name:     "Saudi Arabia",
			Currency: "SAR",
			Flag:     "🇸🇦",
			Defaults: SimulationInput{
				Leads:            100,
				ConfirmationRate: 60,
				DeliveryRate:     70,
				ProductPrice:     199,
				CostPerLead:      30,
				ProductCost:      60,
				ShippingCost:     25,
				ConfirmationCost: 0,
				ReturnFee:        20,
				OtherCosts:       0,
				UpsellTiers:      []UpsellTier{},
				AdCurrency:       CurrencyLocal,
				ExchangeRate:     3.75,
			},
		},
	}
}

// NewMarketRegistry builds a registry from the given presets. Codes are
// case-insensitive; a later entry with the same code replaces an earlier one.
func NewMarketRegistry(markets []Market) *MarketRegistry {
	r := &MarketRegistry{markets: make(map[string]Market, len(markets))}
	for _, m := range markets {
		code := strings.ToUpper(strings.TrimSpace(m.ID))
		if code == "" {
			continue
		}
		m.ID = code
		m.Defaults = m.Defaults.Clone()
		r.markets[code] = m
	}
	return r
}

// Get returns a copy of the market preset for code.
func (r *MarketRegistry) Get(code string) (Market, bool) {
	if r == nil {
		return Market{}, false
	}
	m, ok := r.markets[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Market{}, false
	}
	m.Defaults = m.Defaults.Clone()
	return m, true
}

// List returns copies of all presets ordered by code.
func (r *MarketRegistry) List() []Market {
	if r == nil {
		return nil
	}
	out := make([]Market, 0, len(r.markets))
	for _, m := range r.markets {
		m.Defaults = m.Defaults.Clone()
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of presets.
func (r *MarketRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.markets)
}
