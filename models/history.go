// ABOUTME: Data models for saved simulation runs and history insights
// ABOUTME: Stores key metrics at save time so old runs survive formula changes

package models

import "time"

// HistoryMetrics is the snapshot of key results stored with a run.
type HistoryMetrics struct {
	Profit           float64 `json:"profit"`
	Revenue          float64 `json:"revenue"`
	Margin           float64 `json:"margin"`
	ROI              float64 `json:"roi"`
	TotalCost        float64 `json:"totalCost"`
	Leads            int     `json:"leads"`
	CPL              float64 `json:"cpl"`
	DeliveredOrders  int     `json:"deliveredOrders"`
	DeliveryRate     float64 `json:"deliveryRate"`
	ConfirmationRate float64 `json:"confirmationRate"`
}

// HistoryItem is one saved simulation run.
type HistoryItem struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Name      string          `json:"name"`
	Note      string          `json:"note"`
	Inputs    SimulationInput `json:"inputs"`
	Metrics   HistoryMetrics  `json:"metrics"`
}

// SaveHistoryRequest is the body for saving a run; metrics are computed server-side.
type SaveHistoryRequest struct {
	Name   string          `json:"name"`
	Note   string          `json:"note"`
	Inputs SimulationInput `json:"inputs"`
}

// Insight kinds.
const (
	InsightPositive = "positive"
	InsightNegative = "negative"
	InsightSuccess  = "success"
)

// HistoryInsight is a trend observation across saved runs.
type HistoryInsight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewHistoryMetrics snapshots the metrics worth keeping for a run.
func NewHistoryMetrics(in SimulationInput, m MetricsResult) HistoryMetrics {
	return HistoryMetrics{
		Profit:           m.Profit,
		Revenue:          m.Revenue,
		Margin:           m.Margin,
		ROI:              m.ROI,
		TotalCost:        m.TotalCost,
		Leads:            in.Leads,
		CPL:              in.CostPerLead,
		DeliveredOrders:  m.DeliveredOrders,
		DeliveryRate:     in.DeliveryRate,
		ConfirmationRate: in.ConfirmationRate,
	}
}
