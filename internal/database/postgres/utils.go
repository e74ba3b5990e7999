package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/futebadosparcas/matchday/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgFailedToRollback, "error", err)
	}
}

// scheduleKey maps an optional schedule id to the streak key column
func scheduleKey(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// scheduleID is the inverse of scheduleKey
func scheduleID(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}

// nonNil keeps TEXT[] columns NOT NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
