package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"investment_analytics/pkg/core/scenario"
)

// ScenarioRepo stores saved scenarios as JSONB blobs keyed by scenario id.
//
// Schema assumption (managed elsewhere, e.g. migrations):
//
//	CREATE TABLE IF NOT EXISTS scenarios (
//	  id TEXT PRIMARY KEY,
//	  name TEXT,
//	  scenario_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type ScenarioRepo struct{}

// NewScenarioRepo creates a new repository instance.
func NewScenarioRepo() *ScenarioRepo {
	return &ScenarioRepo{}
}

// Save upserts one scenario by id.
func (r *ScenarioRepo) Save(ctx context.Context, s scenario.Scenario) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, name, scenario_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			scenario_json = EXCLUDED.scenario_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, s.ID, s.Name, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// SaveBook persists every scenario in the book, base included.
func (r *ScenarioRepo) SaveBook(ctx context.Context, b *scenario.Book) error {
	for _, s := range b.List() {
		if err := r.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Load retrieves one scenario by id.
func (r *ScenarioRepo) Load(ctx context.Context, id string) (scenario.Scenario, error) {
	var s scenario.Scenario

	pool := GetPool()
	if pool == nil {
		return s, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT scenario_json FROM scenarios WHERE id = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return s, fmt.Errorf("no scenario found for id %s", id)
		}
		return s, fmt.Errorf("failed to load scenario: %w", err)
	}

	if err := json.Unmarshal(jsonData, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return s, nil
}

// List retrieves all saved scenarios, most recently updated first.
func (r *ScenarioRepo) List(ctx context.Context) ([]scenario.Scenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT scenario_json FROM scenarios ORDER BY updated_at DESC`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []scenario.Scenario
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		var s scenario.Scenario
		if err := json.Unmarshal(jsonData, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes one saved scenario. The base scenario is reserved and is
// refused here for the same reason the in-memory book refuses it.
func (r *ScenarioRepo) Delete(ctx context.Context, id string) error {
	if id == scenario.BaseID {
		return fmt.Errorf("the base scenario cannot be deleted")
	}

	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tag, err := pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no scenario found for id %s", id)
	}
	return nil
}
