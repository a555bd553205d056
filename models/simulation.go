// ABOUTME: Data models for COD profitability simulation input and output
// ABOUTME: JSON-serializable structures matching the simulator front end

package models

// Currency identifies the currency ad spend is quoted in.
type Currency string

const (
	CurrencyLocal Currency = "LOCAL"
	CurrencyUSD   Currency = "USD"
)

// StandardOfferName is the label of the synthesized single-unit tier.
const StandardOfferName = "Standard Offer (1x)"

// UpsellTier is an alternate bundle offer competing for a share of delivered orders.
type UpsellTier struct {
	Name    string  `json:"name" yaml:"name"`
	Qty     int     `json:"qty" yaml:"qty"`
	Price   float64 `json:"price" yaml:"price"`
	Percent float64 `json:"percent" yaml:"percent"` // share of delivered orders, 0-100
}

// SimulationInput holds the business assumptions for one calculation.
// Rates are percentages (0-100); money values are per unit/order/lead.
type SimulationInput struct {
	Leads            int          `json:"leads" yaml:"leads"`
	ConfirmationRate float64      `json:"confirmationRate" yaml:"confirmationRate"`
	DeliveryRate     float64      `json:"deliveryRate" yaml:"deliveryRate"`
	ProductPrice     float64      `json:"productPrice" yaml:"productPrice"`
	ProductCost      float64      `json:"productCost" yaml:"productCost"`           // per unit
	ShippingCost     float64      `json:"shippingCost" yaml:"shippingCost"`         // per delivered order
	ConfirmationCost float64      `json:"confirmationCost" yaml:"confirmationCost"` // per delivered order
	ReturnFee        float64      `json:"returnFee" yaml:"returnFee"`               // per returned order
	OtherCosts       float64      `json:"otherCosts" yaml:"otherCosts"`             // fixed
	CostPerLead      float64      `json:"costPerLead" yaml:"costPerLead"`
	AdCurrency       Currency     `json:"adCurrency" yaml:"adCurrency"`
	ExchangeRate     float64      `json:"exchangeRate" yaml:"exchangeRate"`
	UpsellTiers      []UpsellTier `json:"upsellTiers" yaml:"upsellTiers"`
}

// Clone returns a deep copy so perturbed variants never share the tier slice.
func (in SimulationInput) Clone() SimulationInput {
	out := in
	if in.UpsellTiers != nil {
		out.UpsellTiers = make([]UpsellTier, len(in.UpsellTiers))
		copy(out.UpsellTiers, in.UpsellTiers)
	}
	return out
}

// OfferTier is a tier after delivered orders have been distributed across it.
type OfferTier struct {
	Name       string  `json:"name"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
	Percent    float64 `json:"percent"`
	OrderCount int     `json:"orderCount"`
	Revenue    float64 `json:"revenue"`
	Units      int     `json:"units"`
}

// CostPolicy controls which cost components count toward total cost.
type CostPolicy struct {
	IncludeReturnFees bool `json:"includeReturnFees"`
}

// DefaultCostPolicy is the policy of the main calculator: returns are a real cost.
func DefaultCostPolicy() CostPolicy {
	return CostPolicy{IncludeReturnFees: true}
}

// Breakdown mirrors every intermediate value of a calculation for audit display.
type Breakdown struct {
	Leads                        int         `json:"leads"`
	ConfirmationRate             float64     `json:"confirmationRate"`
	DeliveryRate                 float64     `json:"deliveryRate"`
	ConfirmedOrders              int         `json:"confirmedOrders"`
	DeliveredOrders              int         `json:"deliveredOrders"`
	ReturnedOrders               int         `json:"returnedOrders"`
	Tiers                        []OfferTier `json:"tiers"`
	TotalUnits                   int         `json:"totalUnits"`
	ProductCostPerUnit           float64     `json:"productCostPerUnit"`
	TotalProductCost             float64     `json:"totalProductCost"`
	ShippingCostPerOrder         float64     `json:"shippingCostPerOrder"`
	TotalShippingCost            float64     `json:"totalShippingCost"`
	ConfirmationCostPerDelivered float64     `json:"confirmationCostPerDelivered"`
	TotalConfirmationCost        float64     `json:"totalConfirmationCost"`
	ReturnFee                    float64     `json:"returnFee"`
	TotalReturnCost              float64     `json:"totalReturnCost"`
	ReturnCostIncluded           bool        `json:"returnCostIncluded"`
	OtherCosts                   float64     `json:"otherCosts"`
	AdCost                       float64     `json:"adCost"`
	RealCostPerDeliveredOrder    float64     `json:"realCostPerDeliveredOrder"`
	TotalCost                    float64     `json:"totalCost"`
	Revenue                      float64     `json:"revenue"`
	Profit                       float64     `json:"profit"`
	TiersReconciled              bool        `json:"tiersReconciled"`
}

// MetricsResult is the full financial outcome of one simulation.
type MetricsResult struct {
	// Funnel
	Leads           int `json:"leads"`
	ConfirmedOrders int `json:"confirmedOrders"`
	DeliveredOrders int `json:"deliveredOrders"`
	ReturnedOrders  int `json:"returnedOrders"`

	// Financials
	Revenue   float64 `json:"revenue"`
	AdCost    float64 `json:"adCost"`
	AdCostUSD float64 `json:"adCostUSD"`

	TotalProductCost      float64 `json:"totalProductCost"`
	TotalShippingCost     float64 `json:"totalShippingCost"`
	TotalReturnCost       float64 `json:"totalReturnCost"`
	TotalConfirmationCost float64 `json:"totalConfirmationCost"`
	TotalCost             float64 `json:"totalCost"`

	Profit float64 `json:"profit"`
	ROI    float64 `json:"roi"`
	Margin float64 `json:"margin"`

	AvgRevenuePerOrder        float64 `json:"avgRevenuePerOrder"`
	RealCostPerDeliveredOrder float64 `json:"realCostPerDeliveredOrder"`
	EffectiveCPL              float64 `json:"effectiveCPL"`
	TotalUnits                int     `json:"totalUnits"`

	Breakdown Breakdown `json:"breakdown"`
}

// SimulationResponse bundles metrics with the derived break-even analysis.
type SimulationResponse struct {
	Input     SimulationInput `json:"input"`
	Metrics   MetricsResult   `json:"metrics"`
	BreakEven BreakEvenResult `json:"breakEven"`
}
