package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// LeagueRepository implements repository.League for PostgreSQL
type LeagueRepository struct {
	db *pgxpool.Pool
}

// NewLeagueRepository creates a new LeagueRepository
func NewLeagueRepository(db *pgxpool.Pool) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetActiveSeason(ctx context.Context) (*domain.Season, error) {
	return getActiveSeason(ctx, r.db)
}

func (r *LeagueRepository) GetParticipation(ctx context.Context, seasonID, userID string) (*domain.LeagueParticipation, error) {
	p, err := scanParticipation(r.db.QueryRow(ctx,
		`SELECT `+participationColumns+` FROM league_participations WHERE season_id = $1 AND user_id = $2`,
		seasonID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	return &p, nil
}
