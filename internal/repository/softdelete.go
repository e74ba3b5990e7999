package repository

import (
	"context"
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// SoftDelete defines the persistence for administrative game deletion
type SoftDelete interface {
	GetGame(ctx context.Context, gameID string) (*domain.Game, error)
	MarkGameDeleted(ctx context.Context, gameID, deletedBy, reason string, at time.Time) error
	RestoreGame(ctx context.Context, gameID string) error
}
