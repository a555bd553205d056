// ABOUTME: Input validation for simulation, budget, funnel and history requests
// ABOUTME: Rejects out-of-range values before they reach the calculation engine

package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/markalston/cod-profit-simulator/models"
)

// marketCodePattern matches market codes such as MA or SA.
var marketCodePattern = regexp.MustCompile(`^[A-Za-z]{2,8}$`)

// stageKeyPattern matches funnel stage keys such as add_to_cart.
var stageKeyPattern = regexp.MustCompile(`^[a-z0-9_]{1,40}$`)

const (
	minFunnelStages = 2
	maxFunnelStages = 20
)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidationError reports every invalid field of a request at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

type problems []string

func (p *problems) add(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p *problems) nonNegative(field string, v float64) {
	if v < 0 {
		p.add("%s must be non-negative", field)
	}
}

func (p *problems) percent(field string, v float64) {
	if v < 0 || v > 100 {
		p.add("%s must be between 0 and 100", field)
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Problems: p}
}

// ValidateSimulationInput checks ranges the engine itself does not enforce.
func ValidateSimulationInput(in models.SimulationInput) error {
	var p problems
	if in.Leads < 0 {
		p.add("leads must be non-negative")
	}
	p.percent("confirmationRate", in.ConfirmationRate)
	p.percent("deliveryRate", in.DeliveryRate)
	p.nonNegative("productPrice", in.ProductPrice)
	p.nonNegative("productCost", in.ProductCost)
	p.nonNegative("shippingCost", in.ShippingCost)
	p.nonNegative("confirmationCost", in.ConfirmationCost)
	p.nonNegative("returnFee", in.ReturnFee)
	p.nonNegative("otherCosts", in.OtherCosts)
	p.nonNegative("costPerLead", in.CostPerLead)

	switch in.AdCurrency {
	case "", models.CurrencyLocal, models.CurrencyUSD:
	default:
		p.add("adCurrency must be LOCAL or USD, got %q", sanitizeForLog(string(in.AdCurrency)))
	}
	if in.AdCurrency == models.CurrencyUSD && in.ExchangeRate <= 0 {
		p.add("exchangeRate must be positive when adCurrency is USD")
	}
	if in.ExchangeRate < 0 {
		p.add("exchangeRate must be non-negative")
	}

	for i, t := range in.UpsellTiers {
		if t.Qty < 1 {
			p.add("upsellTiers[%d].qty must be at least 1", i)
		}
		if t.Price < 0 {
			p.add("upsellTiers[%d].price must be non-negative", i)
		}
		if t.Percent < 0 {
			p.add("upsellTiers[%d].percent must be non-negative", i)
		}
	}
	return p.err()
}

// ValidateBudgetPlanInput checks a budget-first plan request.
func ValidateBudgetPlanInput(in models.BudgetPlanInput) error {
	var p problems
	p.nonNegative("totalBudget", in.TotalBudget)
	if in.DurationDays < 0 {
		p.add("duration must be non-negative")
	}
	p.nonNegative("productPrice", in.ProductPrice)
	p.nonNegative("productCost", in.ProductCost)
	p.nonNegative("shippingCost", in.ShippingCost)
	p.nonNegative("returnFee", in.ReturnFee)
	p.nonNegative("selectedCPL", in.SelectedCPL)
	p.percent("confirmationRate", in.ConfirmationRate)
	p.percent("deliveryRate", in.DeliveryRate)
	p.percent("channelSplit.facebook", in.ChannelSplit.Facebook)
	p.percent("channelSplit.tiktok", in.ChannelSplit.TikTok)
	if in.ChannelSplit.Facebook+in.ChannelSplit.TikTok > 100 {
		p.add("channelSplit must not exceed 100 in total")
	}
	return p.err()
}

// ValidateStrategyInput checks a strategy comparison request.
func ValidateStrategyInput(in models.StrategyInput) error {
	var p problems
	p.nonNegative("totalBudget", in.TotalBudget)
	p.nonNegative("profitGoal", in.ProfitGoal)
	p.nonNegative("marketCpl", in.MarketCPL)
	return p.err()
}

// ValidateFunnelInput checks a measured journey. Users may only shrink from
// one stage to the next.
func ValidateFunnelInput(in models.FunnelInput) error {
	var p problems
	if n := len(in.Stages); n < minFunnelStages || n > maxFunnelStages {
		p.add("stages must have between %d and %d entries, got %d", minFunnelStages, maxFunnelStages, n)
		return p.err()
	}

	seen := make(map[string]bool, len(in.Stages))
	for i, s := range in.Stages {
		if strings.TrimSpace(s.Name) == "" {
			p.add("stages[%d].name is required", i)
		}
		switch {
		case !stageKeyPattern.MatchString(s.Key):
			p.add("stages[%d].key must be lowercase letters, digits or underscores, got %q", i, sanitizeForLog(s.Key))
		case seen[s.Key]:
			p.add("stages[%d].key %q is repeated", i, s.Key)
		}
		seen[s.Key] = true

		if s.Users < 0 {
			p.add("stages[%d].users must be non-negative", i)
		}
		if i > 0 && s.Users > in.Stages[i-1].Users {
			p.add("stages[%d].users must not exceed the previous stage", i)
		}
	}
	if in.Stages[0].Users <= 0 {
		p.add("stages[0].users must be positive")
	}
	return p.err()
}

// ValidateStageKey validates the format of a funnel stage key.
func ValidateStageKey(key string) error {
	if !stageKeyPattern.MatchString(key) {
		return fmt.Errorf("invalid stage key: %s", sanitizeForLog(key))
	}
	return nil
}

// ValidateMarketCode validates that a market code has a safe format.
func ValidateMarketCode(code string) error {
	if !marketCodePattern.MatchString(code) {
		return fmt.Errorf("invalid market code format: %s", sanitizeForLog(code))
	}
	return nil
}

// ValidateHistoryID validates that a history ID is a UUID.
func ValidateHistoryID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid history id: %s", sanitizeForLog(id))
	}
	return nil
}

// ApplyMarketDefaults returns the market's default inputs. It exists so
// callers that accept a partial request start from a complete preset.
func ApplyMarketDefaults(registry *models.MarketRegistry, code string) (models.SimulationInput, error) {
	if err := ValidateMarketCode(code); err != nil {
		return models.SimulationInput{}, err
	}
	m, ok := registry.Get(code)
	if !ok {
		return models.SimulationInput{}, fmt.Errorf("unknown market: %s", sanitizeForLog(code))
	}
	return m.Defaults, nil
}
