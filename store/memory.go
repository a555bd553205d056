// ABOUTME: In-process history store guarded by a read-write mutex
// ABOUTME: Used when no database is configured; contents are lost on restart

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/markalston/cod-profit-simulator/models"
)

// MemoryStore keeps runs in memory, capped at maxItems (0 = unbounded).
type MemoryStore struct {
	mu       sync.RWMutex
	items    []models.HistoryItem
	maxItems int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(maxItems int) *MemoryStore {
	return &MemoryStore{maxItems: maxItems}
}

func (s *MemoryStore) Save(_ context.Context, item models.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.Inputs = item.Inputs.Clone()
	s.items = append(s.items, item)
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].Timestamp.After(s.items[j].Timestamp)
	})
	if s.maxItems > 0 && len(s.items) > s.maxItems {
		s.items = s.items[:s.maxItems]
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HistoryItem, len(s.items))
	for i, item := range s.items {
		item.Inputs = item.Inputs.Clone()
		out[i] = item
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			item.Inputs = item.Inputs.Clone()
			return item, nil
		}
	}
	return models.HistoryItem{}, ErrNotFound
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Close() {}
