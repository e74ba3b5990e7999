package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// SoftDeleteRepository implements repository.SoftDelete for PostgreSQL
type SoftDeleteRepository struct {
	db *pgxpool.Pool
}

// NewSoftDeleteRepository creates a new SoftDeleteRepository
func NewSoftDeleteRepository(db *pgxpool.Pool) *SoftDeleteRepository {
	return &SoftDeleteRepository{db: db}
}

func (r *SoftDeleteRepository) GetGame(ctx context.Context, gameID string) (*domain.Game, error) {
	return getGame(ctx, r.db, gameID)
}

// MarkGameDeleted sets the soft-delete marker unless one is already present
func (r *SoftDeleteRepository) MarkGameDeleted(ctx context.Context, gameID, deletedBy, reason string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE games
		SET deleted_at = $2, deleted_by = $3, deletion_reason = NULLIF($4, ''), updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`, gameID, at, deletedBy, reason)
	if err != nil {
		return fmt.Errorf("failed to mark game deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// RestoreGame clears the soft-delete marker
func (r *SoftDeleteRepository) RestoreGame(ctx context.Context, gameID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE games
		SET deleted_at = NULL, deleted_by = NULL, deletion_reason = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL`, gameID)
	if err != nil {
		return fmt.Errorf("failed to restore game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGameNotDeleted
	}
	return nil
}
