package services

import (
	"strings"
	"testing"
	"time"

	"github.com/markalston/cod-profit-simulator/models"
)

func historyItem(id string, at time.Time, margin, profit float64) models.HistoryItem {
	return models.HistoryItem{
		ID:        id,
		Timestamp: at,
		Metrics:   models.HistoryMetrics{Margin: margin, Profit: profit},
	}
}

func TestHistoryInsights_NeedsTwoRuns(t *testing.T) {
	now := time.Now()
	if got := HistoryInsights(nil); len(got) != 0 {
		t.Errorf("Expected no insights for empty history, got %v", got)
	}
	if got := HistoryInsights([]models.HistoryItem{historyItem("a", now, 10, 100)}); len(got) != 0 {
		t.Errorf("Expected no insights for one run, got %v", got)
	}
}

func TestHistoryInsights_MarginImprovedAndBestRun(t *testing.T) {
	now := time.Now()
	// Newest first, as the store returns them.
	items := []models.HistoryItem{
		historyItem("latest", now, 20, 900),
		historyItem("previous", now.Add(-time.Hour), 12.5, 400),
		historyItem("oldest", now.Add(-2*time.Hour), 30, 800),
	}

	insights := HistoryInsights(items)

	if len(insights) != 2 {
		t.Fatalf("Expected 2 insights, got %d: %v", len(insights), insights)
	}
	if insights[0].Type != models.InsightPositive {
		t.Errorf("Expected positive insight, got %s", insights[0].Type)
	}
	if !strings.Contains(insights[0].Message, "improved by 7.5%") {
		t.Errorf("Expected improvement message, got %q", insights[0].Message)
	}
	if insights[1].Type != models.InsightSuccess {
		t.Errorf("Expected success insight, got %s", insights[1].Type)
	}
}

func TestHistoryInsights_MarginDropped(t *testing.T) {
	now := time.Now()
	items := []models.HistoryItem{
		historyItem("previous", now.Add(-time.Minute), 25, 900),
		historyItem("latest", now, 10, 100),
	}

	insights := HistoryInsights(items)

	if len(insights) != 1 {
		t.Fatalf("Expected 1 insight, got %d: %v", len(insights), insights)
	}
	if insights[0].Type != models.InsightNegative {
		t.Errorf("Expected negative insight, got %s", insights[0].Type)
	}
	if !strings.Contains(insights[0].Message, "dropped by 15.0%") {
		t.Errorf("Expected drop message, got %q", insights[0].Message)
	}
}

func TestHistoryInsights_SmallChangeAndTiedProfit(t *testing.T) {
	now := time.Now()
	items := []models.HistoryItem{
		historyItem("latest", now, 12, 500),
		historyItem("previous", now.Add(-time.Minute), 10, 500),
	}

	// Ties go to the earlier run, so the latest is not flagged.
	if got := HistoryInsights(items); len(got) != 0 {
		t.Errorf("Expected no insights, got %v", got)
	}
}
