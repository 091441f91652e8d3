package repository

import (
	"context"
	"errors"

	"github.com/firesafetykz/portal/internal/logger"
)

// ErrTxClosed is returned by Rollback after the transaction already finished
var ErrTxClosed = errors.New("tx is closed")

// Rollbacker is anything with a Rollback method
type Rollbacker interface {
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Rollbacker) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if !errors.Is(err, ErrTxClosed) && err.Error() != ErrTxClosed.Error() {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
