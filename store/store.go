// ABOUTME: Persistence interface for saved simulation runs
// ABOUTME: Implemented in memory and on PostgreSQL; lists are newest first

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/markalston/cod-profit-simulator/models"
)

// DefaultRunName labels runs saved without a name.
const DefaultRunName = "Simulation Run"

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("history item not found")

// HistoryStore saves and lists simulation runs.
type HistoryStore interface {
	Save(ctx context.Context, item models.HistoryItem) error
	List(ctx context.Context) ([]models.HistoryItem, error)
	Get(ctx context.Context, id string) (models.HistoryItem, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Name() string
	Close()
}

// NewItem builds a run with a fresh ID and timestamp.
func NewItem(name, note string, inputs models.SimulationInput, metrics models.HistoryMetrics) models.HistoryItem {
	if name == "" {
		name = DefaultRunName
	}
	return models.HistoryItem{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Name:      name,
		Note:      note,
		Inputs:    inputs.Clone(),
		Metrics:   metrics,
	}
}
