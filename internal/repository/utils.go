package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/playventures/bizlab/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// A rollback after commit is expected noise, not a failure
		if !errors.Is(err, pgx.ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
