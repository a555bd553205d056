// ABOUTME: Trend insights over saved simulation runs
// ABOUTME: Compares the latest run to the previous one and to the best run so far

package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/markalston/cod-profit-simulator/models"
)

const marginTrendThreshold = 5

// HistoryInsights compares the two most recent runs' margins and flags the
// latest run when it is the most profitable. Fewer than two runs yield none.
func HistoryInsights(items []models.HistoryItem) []models.HistoryInsight {
	insights := []models.HistoryInsight{}
	if len(items) < 2 {
		return insights
	}

	sorted := make([]models.HistoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	latest := sorted[len(sorted)-1]
	previous := sorted[len(sorted)-2]

	diff := latest.Metrics.Margin - previous.Metrics.Margin
	switch {
	case diff > marginTrendThreshold:
		insights = append(insights, models.HistoryInsight{
			Type:    models.InsightPositive,
			Message: fmt.Sprintf("Your profit margin improved by %.1f%% compared to the previous run.", diff),
		})
	case diff < -marginTrendThreshold:
		insights = append(insights, models.HistoryInsight{
			Type:    models.InsightNegative,
			Message: fmt.Sprintf("Your profit margin dropped by %.1f%% compared to the previous run.", math.Abs(diff)),
		})
	}

	best := sorted[0]
	for _, item := range sorted[1:] {
		if item.Metrics.Profit > best.Metrics.Profit {
			best = item
		}
	}
	if best.ID == latest.ID {
		insights = append(insights, models.HistoryInsight{
			Type:    models.InsightSuccess,
			Message: "This is your most profitable simulation yet! Great job.",
		})
	}

	return insights
}
