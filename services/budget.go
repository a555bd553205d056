// ABOUTME: COD budget planner working backwards from a fixed ad budget
// ABOUTME: Computes leads, orders and profit per channel plus scenario ranges and strategies

package services

import (
	"math"

	"github.com/markalston/cod-profit-simulator/models"
)

const (
	// DefaultBudgetCPL is used when no positive CPL is selected
	DefaultBudgetCPL = 30

	budgetBestGain  = 10
	budgetWorstDrop = 15
)

// Fixed assumptions behind the budget strategies.
const (
	strategyConfirmRate           = 50
	strategyDeliveryRate          = 50
	strategyAggressiveConfirmRate = 55
	strategyProductPrice          = 249
	strategyProductCost           = 80
	strategyShippingCost          = 35
)

// BudgetPlanner computes budget-first plans
type BudgetPlanner struct{}

// NewBudgetPlanner creates a new budget planner
func NewBudgetPlanner() *BudgetPlanner {
	return &BudgetPlanner{}
}

// effectiveCPL falls back to the default when the selected CPL is not positive.
func effectiveCPL(cpl float64) float64 {
	if cpl > 0 {
		return cpl
	}
	return DefaultBudgetCPL
}

// Plan spreads the budget across channels and runs the funnel. Costs are the
// full budget plus product and shipping on delivered orders; return fees are
// added only when the input opts in.
func (p *BudgetPlanner) Plan(in models.BudgetPlanInput) models.BudgetPlan {
	cpl := effectiveCPL(in.SelectedCPL)

	facebookBudget := in.TotalBudget * (in.ChannelSplit.Facebook / 100)
	tiktokBudget := in.TotalBudget * (in.ChannelSplit.TikTok / 100)

	totalLeads := int(math.Floor(in.TotalBudget / cpl))
	funnel := ConvertFunnel(totalLeads, in.ConfirmationRate, in.DeliveryRate)
	returned := funnel.ConfirmedOrders - funnel.DeliveredOrders

	revenue := float64(funnel.DeliveredOrders) * in.ProductPrice
	unitCost := in.ProductCost + in.ShippingCost
	costs := in.TotalBudget + float64(funnel.DeliveredOrders)*unitCost

	var returnCost float64
	if in.IncludeReturnFees && returned > 0 {
		returnCost = float64(returned) * in.ReturnFee
		costs += returnCost
	}

	profit := revenue - costs
	var roi, margin float64
	if costs > 0 {
		roi = profit / costs * 100
	}
	if revenue > 0 {
		margin = profit / revenue * 100
	}

	var daily float64
	if in.DurationDays > 0 {
		daily = in.TotalBudget / float64(in.DurationDays)
	}

	return models.BudgetPlan{
		CPL:             cpl,
		DailyBudget:     daily,
		TotalLeads:      totalLeads,
		ConfirmedOrders: funnel.ConfirmedOrders,
		DeliveredOrders: funnel.DeliveredOrders,
		ReturnedOrders:  returned,
		Financials: models.BudgetFinancials{
			Revenue:    revenue,
			ReturnCost: returnCost,
			Costs:      costs,
			Profit:     profit,
			ROI:        roi,
			Margin:     margin,
		},
		Channels: map[string]models.ChannelEstimate{
			"facebook": channelEstimate(facebookBudget, cpl, in),
			"tiktok":   channelEstimate(tiktokBudget, cpl, in),
		},
	}
}

// channelEstimate applies the global CPL and rates to one channel's budget.
func channelEstimate(budget, cpl float64, in models.BudgetPlanInput) models.ChannelEstimate {
	leads := int(math.Floor(budget / cpl))
	funnel := ConvertFunnel(leads, in.ConfirmationRate, in.DeliveryRate)
	revenue := float64(funnel.DeliveredOrders) * in.ProductPrice
	costs := budget + float64(funnel.DeliveredOrders)*(in.ProductCost+in.ShippingCost)
	return models.ChannelEstimate{
		Budget:    budget,
		Leads:     leads,
		Delivered: funnel.DeliveredOrders,
		Profit:    revenue - costs,
	}
}

// Scenarios varies confirmation and delivery around the plan: best adds 10pp
// to both (capped at 100), worst removes 15pp (floored at 0).
func (p *BudgetPlanner) Scenarios(in models.BudgetPlanInput) models.BudgetScenarios {
	outcome := func(conf, del float64) models.BudgetOutcome {
		v := in
		v.ConfirmationRate = conf
		v.DeliveryRate = del
		plan := p.Plan(v)
		return models.BudgetOutcome{
			ConfirmationRate: conf,
			DeliveryRate:     del,
			Profit:           plan.Financials.Profit,
			Delivered:        plan.DeliveredOrders,
			ROI:              plan.Financials.ROI,
		}
	}

	return models.BudgetScenarios{
		Best:     outcome(addRate(in.ConfirmationRate, budgetBestGain), addRate(in.DeliveryRate, budgetBestGain)),
		Expected: outcome(in.ConfirmationRate, in.DeliveryRate),
		Worst:    outcome(math.Max(0, in.ConfirmationRate-budgetWorstDrop), math.Max(0, in.DeliveryRate-budgetWorstDrop)),
	}
}

// BreakEven computes the single-order contribution, the delivered orders
// needed to recover the budget and the highest CPL that still pays off.
func (p *BudgetPlanner) BreakEven(in models.BudgetPlanInput) models.BudgetBreakEven {
	profitPerOrder := in.ProductPrice - in.ProductCost - in.ShippingCost
	be := models.BudgetBreakEven{
		ProfitPerOrder:   profitPerOrder,
		IsProfitableUnit: profitPerOrder > 0,
	}
	if be.IsProfitableUnit {
		be.MinDeliveredOrders = int(math.Ceil(in.TotalBudget / profitPerOrder))
		be.MaxCPL = profitPerOrder * (in.ConfirmationRate / 100) * (in.DeliveryRate / 100)
	}
	return be
}

// Analyze runs the plan, its scenario range and its break-even together.
func (p *BudgetPlanner) Analyze(in models.BudgetPlanInput) models.BudgetPlanResponse {
	return models.BudgetPlanResponse{
		Plan:      p.Plan(in),
		Scenarios: p.Scenarios(in),
		BreakEven: p.BreakEven(in),
	}
}

// Strategies compares three ways of spending the same budget around a market
// CPL: cheaper leads, market-rate leads and premium leads with better quality.
func (p *BudgetPlanner) Strategies(in models.StrategyInput) models.BudgetStrategies {
	marketCPL := effectiveCPL(in.MarketCPL)

	conservative := strategy(in, marketCPL*0.7, strategyConfirmRate)
	conservative.Title = "Conservative Strategy"
	conservative.Type = "conservative"
	conservative.Risk = "Low"
	conservative.SuccessRate = 85

	balanced := strategy(in, marketCPL, strategyConfirmRate)
	balanced.Title = "Balanced Strategy"
	balanced.Type = "balanced"
	balanced.Risk = "Medium"
	balanced.SuccessRate = 70
	balanced.IsRecommended = true

	aggressive := strategy(in, marketCPL*1.3, strategyAggressiveConfirmRate)
	aggressive.Title = "Aggressive Strategy"
	aggressive.Type = "aggressive"
	aggressive.Risk = "High"
	aggressive.SuccessRate = 55

	return models.BudgetStrategies{
		Conservative: conservative,
		Balanced:     balanced,
		Aggressive:   aggressive,
	}
}

func strategy(in models.StrategyInput, cpl, confirmRate float64) models.BudgetStrategy {
	leads := int(math.Floor(in.TotalBudget / cpl))
	funnel := ConvertFunnel(leads, confirmRate, strategyDeliveryRate)
	revenue := float64(funnel.DeliveredOrders) * strategyProductPrice
	costs := in.TotalBudget + float64(funnel.DeliveredOrders)*(strategyProductCost+strategyShippingCost)
	profit := revenue - costs

	var roi float64
	if in.TotalBudget > 0 {
		roi = profit / in.TotalBudget * 100
	}

	return models.BudgetStrategy{
		CPL:       cpl,
		Leads:     leads,
		Confirmed: funnel.ConfirmedOrders,
		Delivered: funnel.DeliveredOrders,
		Revenue:   revenue,
		Profit:    profit,
		ROI:       roi,
		GoalMet:   in.ProfitGoal > 0 && profit >= in.ProfitGoal,
	}
}
