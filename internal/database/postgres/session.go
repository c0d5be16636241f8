package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playventures/bizlab/internal/domain"
)

// SessionSaveRepository implements the game-save repository for PostgreSQL.
// Saves are opaque JSONB blobs keyed by (user, business).
type SessionSaveRepository struct {
	db *pgxpool.Pool
}

// NewSessionSaveRepository creates a new SessionSaveRepository
func NewSessionSaveRepository(db *pgxpool.Pool) *SessionSaveRepository {
	return &SessionSaveRepository{db: db}
}

// Load retrieves a save blob, or (nil, nil) when none exists
func (r *SessionSaveRepository) Load(ctx context.Context, userID, businessID string) (*domain.TycoonSave, error) {
	var data []byte
	err := r.db.QueryRow(ctx, queryLoadSave, userID, businessID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load game save: %w", err)
	}

	var save domain.TycoonSave
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("failed to decode game save: %w", err)
	}
	return &save, nil
}

// Save upserts a save blob
func (r *SessionSaveRepository) Save(ctx context.Context, userID, businessID string, save domain.TycoonSave) error {
	data, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to encode game save: %w", err)
	}
	if _, err := r.db.Exec(ctx, queryUpsertSave, userID, businessID, data); err != nil {
		return fmt.Errorf("failed to write game save: %w", err)
	}
	return nil
}

// Delete removes a save blob. Deleting a missing save is not an error.
func (r *SessionSaveRepository) Delete(ctx context.Context, userID, businessID string) error {
	if _, err := r.db.Exec(ctx, queryDeleteSave, userID, businessID); err != nil {
		return fmt.Errorf("failed to delete game save: %w", err)
	}
	return nil
}
