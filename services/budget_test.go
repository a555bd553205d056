package services

import (
	"testing"

	"github.com/markalston/cod-profit-simulator/models"
)

func budgetInput() models.BudgetPlanInput {
	return models.BudgetPlanInput{
		TotalBudget:      3000,
		DurationDays:     10,
		ProductPrice:     249,
		ProductCost:      80,
		ShippingCost:     35,
		ConfirmationRate: 50,
		DeliveryRate:     50,
		ChannelSplit:     models.ChannelSplit{Facebook: 60, TikTok: 40},
		SelectedCPL:      30,
		ReturnFee:        15,
	}
}

func TestBudgetPlan(t *testing.T) {
	plan := NewBudgetPlanner().Plan(budgetInput())

	if plan.TotalLeads != 100 {
		t.Errorf("Expected 100 leads, got %d", plan.TotalLeads)
	}
	if plan.ConfirmedOrders != 50 || plan.DeliveredOrders != 25 || plan.ReturnedOrders != 25 {
		t.Errorf("Expected 50/25/25 orders, got %d/%d/%d",
			plan.ConfirmedOrders, plan.DeliveredOrders, plan.ReturnedOrders)
	}
	if plan.DailyBudget != 300 {
		t.Errorf("Expected daily budget 300, got %v", plan.DailyBudget)
	}
	if plan.Financials.Revenue != 6225 {
		t.Errorf("Expected revenue 6225, got %v", plan.Financials.Revenue)
	}
	if plan.Financials.Costs != 5875 {
		t.Errorf("Expected costs 5875, got %v", plan.Financials.Costs)
	}
	if plan.Financials.Profit != 350 {
		t.Errorf("Expected profit 350, got %v", plan.Financials.Profit)
	}
	if !approxEqual(plan.Financials.ROI, 350.0/5875*100) {
		t.Errorf("Expected ROI ~5.96, got %v", plan.Financials.ROI)
	}
	if plan.Financials.ReturnCost != 0 {
		t.Errorf("Expected no return cost by default, got %v", plan.Financials.ReturnCost)
	}

	fb := plan.Channels["facebook"]
	if fb.Budget != 1800 || fb.Leads != 60 || fb.Delivered != 15 || fb.Profit != 210 {
		t.Errorf("Unexpected facebook estimate: %+v", fb)
	}
	tt := plan.Channels["tiktok"]
	if tt.Budget != 1200 || tt.Leads != 40 || tt.Delivered != 10 || tt.Profit != 140 {
		t.Errorf("Unexpected tiktok estimate: %+v", tt)
	}
}

func TestBudgetPlan_IncludeReturnFees(t *testing.T) {
	in := budgetInput()
	in.IncludeReturnFees = true

	plan := NewBudgetPlanner().Plan(in)

	if plan.Financials.ReturnCost != 375 {
		t.Errorf("Expected return cost 375, got %v", plan.Financials.ReturnCost)
	}
	if plan.Financials.Profit != -25 {
		t.Errorf("Expected profit -25, got %v", plan.Financials.Profit)
	}
}

func TestBudgetPlan_DefaultCPL(t *testing.T) {
	in := budgetInput()
	in.SelectedCPL = 0

	plan := NewBudgetPlanner().Plan(in)

	if plan.CPL != DefaultBudgetCPL {
		t.Errorf("Expected default CPL %d, got %v", DefaultBudgetCPL, plan.CPL)
	}
	if plan.TotalLeads != 100 {
		t.Errorf("Expected 100 leads, got %d", plan.TotalLeads)
	}
}

func TestBudgetScenarios(t *testing.T) {
	s := NewBudgetPlanner().Scenarios(budgetInput())

	if s.Best.ConfirmationRate != 60 || s.Best.DeliveryRate != 60 {
		t.Errorf("Expected best rates 60/60, got %v/%v", s.Best.ConfirmationRate, s.Best.DeliveryRate)
	}
	if s.Best.Delivered != 36 || s.Best.Profit != 1824 {
		t.Errorf("Expected best 36 delivered / 1824 profit, got %d / %v", s.Best.Delivered, s.Best.Profit)
	}
	if s.Expected.Profit != 350 {
		t.Errorf("Expected profit 350, got %v", s.Expected.Profit)
	}
	if s.Worst.ConfirmationRate != 35 || s.Worst.DeliveryRate != 35 {
		t.Errorf("Expected worst rates 35/35, got %v/%v", s.Worst.ConfirmationRate, s.Worst.DeliveryRate)
	}
	if s.Worst.Delivered != 12 || s.Worst.Profit != -1392 {
		t.Errorf("Expected worst 12 delivered / -1392 profit, got %d / %v", s.Worst.Delivered, s.Worst.Profit)
	}
}

func TestBudgetScenarios_ClampsRates(t *testing.T) {
	in := budgetInput()
	in.ConfirmationRate = 95
	in.DeliveryRate = 10

	s := NewBudgetPlanner().Scenarios(in)

	if s.Best.ConfirmationRate != 100 {
		t.Errorf("Expected best confirmation capped at 100, got %v", s.Best.ConfirmationRate)
	}
	if s.Worst.DeliveryRate != 0 {
		t.Errorf("Expected worst delivery floored at 0, got %v", s.Worst.DeliveryRate)
	}
}

func TestBudgetBreakEven(t *testing.T) {
	be := NewBudgetPlanner().BreakEven(budgetInput())

	if be.ProfitPerOrder != 134 {
		t.Errorf("Expected profit per order 134, got %v", be.ProfitPerOrder)
	}
	if be.MinDeliveredOrders != 23 {
		t.Errorf("Expected 23 delivered orders, got %d", be.MinDeliveredOrders)
	}
	if !approxEqual(be.MaxCPL, 33.5) {
		t.Errorf("Expected max CPL 33.5, got %v", be.MaxCPL)
	}
	if !be.IsProfitableUnit {
		t.Error("Expected profitable unit")
	}
}

func TestBudgetBreakEven_UnprofitableUnit(t *testing.T) {
	in := budgetInput()
	in.ProductPrice = 100

	be := NewBudgetPlanner().BreakEven(in)

	if be.IsProfitableUnit {
		t.Error("Expected unprofitable unit")
	}
	if be.MinDeliveredOrders != 0 || be.MaxCPL != 0 {
		t.Errorf("Expected zero thresholds, got %d / %v", be.MinDeliveredOrders, be.MaxCPL)
	}
}

func TestBudgetStrategies(t *testing.T) {
	s := NewBudgetPlanner().Strategies(models.StrategyInput{
		TotalBudget: 3000,
		ProfitGoal:  500,
		MarketCPL:   30,
	})

	if s.Balanced.Leads != 100 || s.Balanced.Delivered != 25 || s.Balanced.Profit != 350 {
		t.Errorf("Unexpected balanced strategy: %+v", s.Balanced)
	}
	if s.Balanced.GoalMet {
		t.Error("Expected balanced strategy to miss a 500 goal")
	}
	if !s.Balanced.IsRecommended || s.Conservative.IsRecommended || s.Aggressive.IsRecommended {
		t.Error("Expected only the balanced strategy to be recommended")
	}

	if s.Conservative.Leads != 142 || s.Conservative.Delivered != 36 || s.Conservative.Profit != 1824 {
		t.Errorf("Unexpected conservative strategy: %+v", s.Conservative)
	}
	if !s.Conservative.GoalMet {
		t.Error("Expected conservative strategy to meet a 500 goal")
	}
	if !approxEqual(s.Conservative.ROI, 1824.0/3000*100) {
		t.Errorf("Expected ROI on budget, got %v", s.Conservative.ROI)
	}

	if s.Aggressive.Leads != 76 || s.Aggressive.Confirmed != 42 || s.Aggressive.Delivered != 21 {
		t.Errorf("Unexpected aggressive strategy: %+v", s.Aggressive)
	}
	if s.Aggressive.Risk != "High" || s.Aggressive.SuccessRate != 55 {
		t.Errorf("Unexpected aggressive risk profile: %s/%d", s.Aggressive.Risk, s.Aggressive.SuccessRate)
	}
}
