package repository

import (
	"context"

	"github.com/playventures/bizlab/internal/domain"
)

// Ledger defines the interface for user reward-record persistence.
// Lookups return (nil, nil) when the record does not exist.
type Ledger interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx defines the interface for ledger transactions
type LedgerTx interface {
	Tx
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
}
