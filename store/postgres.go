// ABOUTME: PostgreSQL history store backed by a pgx connection pool
// ABOUTME: Inputs and metrics are stored as JSONB so schema changes stay additive

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markalston/cod-profit-simulator/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS simulation_history (
	id         UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	name       TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	inputs     JSONB NOT NULL,
	metrics    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS simulation_history_created_at_idx ON simulation_history (created_at DESC);
`

// PostgresStore persists runs in the simulation_history table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore parses databaseURL and opens a pool. The pool connects
// lazily; call Migrate to verify connectivity and create the table.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the history table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, item models.HistoryItem) error {
	inputs, err := json.Marshal(item.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	metrics, err := json.Marshal(item.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	query := `
		INSERT INTO simulation_history (id, created_at, name, note, inputs, metrics)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.pool.Exec(ctx, query, item.ID, item.Timestamp, item.Name, item.Note, inputs, metrics); err != nil {
		return fmt.Errorf("failed to save history item: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.HistoryItem, error) {
	query := `
		SELECT id::text, created_at, name, note, inputs, metrics
		FROM simulation_history
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	items := []models.HistoryItem{}
	for rows.Next() {
		var (
			item            models.HistoryItem
			inputs, metrics []byte
		)
		if err := rows.Scan(&item.ID, &item.Timestamp, &item.Name, &item.Note, &inputs, &metrics); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(inputs, &item.Inputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inputs for %s: %w", item.ID, err)
		}
		if err := json.Unmarshal(metrics, &item.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics for %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return items, nil
}

// Get loads one run by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (models.HistoryItem, error) {
	query := `
		SELECT id::text, created_at, name, note, inputs, metrics
		FROM simulation_history WHERE id = $1
	`
	var (
		item            models.HistoryItem
		inputs, metrics []byte
	)
	err := s.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.Timestamp, &item.Name, &item.Note, &inputs, &metrics)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HistoryItem{}, ErrNotFound
		}
		return models.HistoryItem{}, fmt.Errorf("failed to load history item: %w", err)
	}
	if err := json.Unmarshal(inputs, &item.Inputs); err != nil {
		return models.HistoryItem{}, fmt.Errorf("failed to unmarshal inputs: %w", err)
	}
	if err := json.Unmarshal(metrics, &item.Metrics); err != nil {
		return models.HistoryItem{}, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM simulation_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM simulation_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Close() {
	s.pool.Close()
}
