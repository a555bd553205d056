// ABOUTME: Data models for the COD budget planner
// ABOUTME: Budget-first planning with channel split, scenarios, and strategies

package models

// ChannelSplit is the percentage of budget per ad channel.
type ChannelSplit struct {
	Facebook float64 `json:"facebook" yaml:"facebook"`
	TikTok   float64 `json:"tiktok" yaml:"tiktok"`
}

// BudgetPlanInput describes a budget-first campaign plan.
// Rates are percentages (0-100).
type BudgetPlanInput struct {
	TotalBudget       float64      `json:"totalBudget" yaml:"totalBudget"`
	DurationDays      int          `json:"duration" yaml:"duration"`
	ProductPrice      float64      `json:"productPrice" yaml:"productPrice"`
	ProductCost       float64      `json:"productCost" yaml:"productCost"`
	ShippingCost      float64      `json:"shippingCost" yaml:"shippingCost"`
	ConfirmationRate  float64      `json:"confirmationRate" yaml:"confirmationRate"`
	DeliveryRate      float64      `json:"deliveryRate" yaml:"deliveryRate"`
	ChannelSplit      ChannelSplit `json:"channelSplit" yaml:"channelSplit"`
	SelectedCPL       float64      `json:"selectedCPL" yaml:"selectedCPL"`
	ReturnFee         float64      `json:"returnFee" yaml:"returnFee"`
	IncludeReturnFees bool         `json:"includeReturnFees" yaml:"includeReturnFees"`
}

// BudgetFinancials is the money side of a budget plan.
type BudgetFinancials struct {
	Revenue    float64 `json:"revenue"`
	ReturnCost float64 `json:"returnCost"`
	Costs      float64 `json:"costs"`
	Profit     float64 `json:"profit"`
	ROI        float64 `json:"roi"`
	Margin     float64 `json:"margin"`
}

// ChannelEstimate is the proportional estimate for one ad channel.
type ChannelEstimate struct {
	Budget    float64 `json:"budget"`
	Leads     int     `json:"leads"`
	Delivered int     `json:"delivered"`
	Profit    float64 `json:"profit"`
}

// BudgetPlan is the outcome of a budget-first plan.
type BudgetPlan struct {
	CPL             float64                    `json:"cpl"`
	DailyBudget     float64                    `json:"dailyBudget"`
	TotalLeads      int                        `json:"totalLeads"`
	ConfirmedOrders int                        `json:"confirmedOrders"`
	DeliveredOrders int                        `json:"deliveredOrders"`
	ReturnedOrders  int                        `json:"returnedOrders"`
	Financials      BudgetFinancials           `json:"financials"`
	Channels        map[string]ChannelEstimate `json:"channels"`
}

// BudgetOutcome is a condensed plan result used for scenario ranges.
type BudgetOutcome struct {
	ConfirmationRate float64 `json:"confirmationRate"`
	DeliveryRate     float64 `json:"deliveryRate"`
	Profit           float64 `json:"profit"`
	Delivered        int     `json:"delivered"`
	ROI              float64 `json:"roi"`
}

// BudgetScenarios is the best/expected/worst range around a plan.
type BudgetScenarios struct {
	Best     BudgetOutcome `json:"best"`
	Expected BudgetOutcome `json:"expected"`
	Worst    BudgetOutcome `json:"worst"`
}

// BudgetBreakEven is the single-unit break-even of a budget plan.
type BudgetBreakEven struct {
	MinDeliveredOrders int     `json:"minDeliveredOrders"`
	MaxCPL             float64 `json:"maxCPL"`
	ProfitPerOrder     float64 `json:"profitPerOrder"`
	IsProfitableUnit   bool    `json:"isProfitableUnit"`
}

// BudgetPlanResponse bundles the plan, its scenario range and its break-even.
type BudgetPlanResponse struct {
	Plan      BudgetPlan      `json:"plan"`
	Scenarios BudgetScenarios `json:"scenarios"`
	BreakEven BudgetBreakEven `json:"breakEven"`
}

// StrategyInput asks for budget strategies around a market CPL.
type StrategyInput struct {
	TotalBudget float64 `json:"totalBudget" yaml:"totalBudget"`
	ProfitGoal  float64 `json:"profitGoal" yaml:"profitGoal"`
	MarketCPL   float64 `json:"marketCpl" yaml:"marketCpl"`
}

// BudgetStrategy is one risk profile for spending a fixed budget.
type BudgetStrategy struct {
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	CPL           float64 `json:"cpl"`
	Leads         int     `json:"leads"`
	Confirmed     int     `json:"confirmed"`
	Delivered     int     `json:"delivered"`
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`
	ROI           float64 `json:"roi"`
	Risk          string  `json:"risk"`
	SuccessRate   int     `json:"successRate"`
	IsRecommended bool    `json:"isRecommended"`
	GoalMet       bool    `json:"goalMet"`
}

// BudgetStrategies holds the three strategy profiles.
type BudgetStrategies struct {
	Conservative BudgetStrategy `json:"conservative"`
	Balanced     BudgetStrategy `json:"balanced"`
	Aggressive   BudgetStrategy `json:"aggressive"`
}
