package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RunInTx executes fn inside one database transaction bounded by timeout.
// The transaction commits only when fn returns a nil error; any error, or a
// panic, rolls back everything fn staged.
func RunInTx[T any](ctx context.Context, db *gorm.DB, timeout time.Duration, fn func(tx *gorm.DB) (T, error)) (result T, err error) {
	var zero T
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return zero, persistenceError("begin transaction", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		tx.Rollback()
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	result, err = fn(tx)
	if err != nil {
		return zero, persistenceError("execute transaction", err)
	}
	if err := ctx.Err(); err != nil {
		return zero, persistenceError("execute transaction", fmt.Errorf("context done before commit: %w", err))
	}
	if err := tx.Commit().Error; err != nil {
		return zero, persistenceError("commit transaction", err)
	}
	committed = true
	return result, nil
}
