package repository

import (
	"context"

	"github.com/playventures/bizlab/internal/domain"
)

// SessionSave is the key-value store for the tycoon template's durable
// session blobs, addressed by (userID, businessID). Load returns (nil, nil)
// when no save exists; callers treat that as a fresh start.
type SessionSave interface {
	Load(ctx context.Context, userID, businessID string) (*domain.TycoonSave, error)
	Save(ctx context.Context, userID, businessID string, save domain.TycoonSave) error
	Delete(ctx context.Context, userID, businessID string) error
}
