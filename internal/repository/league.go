package repository

import (
	"context"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// League defines read access to season standings
type League interface {
	GetActiveSeason(ctx context.Context) (*domain.Season, error)
	// GetParticipation returns nil without error when the user has no standing in the season
	GetParticipation(ctx context.Context, seasonID, userID string) (*domain.LeagueParticipation, error)
}
