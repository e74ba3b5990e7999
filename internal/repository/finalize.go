package repository

import (
	"context"
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// Finalize defines the persistence needed to finalize a game
type Finalize interface {
	// GetGame returns domain.ErrGameNotFound when the game does not exist
	GetGame(ctx context.Context, gameID string) (*domain.Game, error)

	// GetConfirmations returns the CONFIRMED attendance records of a game
	GetConfirmations(ctx context.Context, gameID string) ([]domain.Confirmation, error)
	GetTeams(ctx context.Context, gameID string) ([]domain.Team, error)
	// GetLiveScore returns nil without error when the game was not scored live
	GetLiveScore(ctx context.Context, gameID string) (*domain.LiveScore, error)
	// GetActiveSeason returns nil without error when no season is active
	GetActiveSeason(ctx context.Context) (*domain.Season, error)

	// Batch loads keyed by user id. Missing users are absent from the maps.
	// GetUsers must be read before the other per-player records: their
	// consistency is checked against the user versions at commit.
	GetUsers(ctx context.Context, userIDs []string) (map[string]domain.User, error)
	GetStatistics(ctx context.Context, userIDs []string) (map[string]domain.UserStatistics, error)
	GetStreaks(ctx context.Context, userIDs []string, scheduleID *string) (map[string]domain.UserStreak, error)
	GetBadges(ctx context.Context, userIDs []string) (map[string]map[domain.BadgeType]domain.UserBadge, error)
	GetParticipations(ctx context.Context, seasonID string, userIDs []string) (map[string]domain.LeagueParticipation, error)

	// GetMonthlyGoals returns the goals each user scored in processed games
	// within [from, to) and the highest total of any user in that range
	GetMonthlyGoals(ctx context.Context, from, to time.Time, userIDs []string) (map[string]int, int, error)
	// GetScheduleAttendance returns how many processed games the schedule had
	// within [from, to) and how many of them each user attended
	GetScheduleAttendance(ctx context.Context, scheduleID string, from, to time.Time, userIDs []string) (int, map[string]int, error)

	// Commit applies the plan atomically together with the processed marker.
	// It returns domain.ErrAlreadyClaimed when the marker was already set and
	// domain.ErrStaleRead when a user's version no longer matches the one the
	// plan was computed from. Neither writes anything.
	Commit(ctx context.Context, plan *FinalizePlan) error
}

// ConfirmationXP is the XP stamped back onto a confirmation
type ConfirmationXP struct {
	UserID string
	XP     int64
}

// FinalizePlan is the complete set of mutations produced by finalizing one game
type FinalizePlan struct {
	GameID         string
	ProcessedAt    time.Time
	Confirmations  []ConfirmationXP
	Users          []domain.User
	Statistics     []domain.UserStatistics
	Streaks        []domain.UserStreak
	Badges         []domain.UserBadge
	Participations []domain.LeagueParticipation
	XPLogs         []domain.XPLog
	RankingDeltas  []domain.RankingDelta
	Activity       *domain.Activity
}

// Writes counts the row mutations of the plan, the processed marker included
func (p *FinalizePlan) Writes() int {
	n := 1 + len(p.Confirmations) + len(p.Users) + len(p.Statistics) + len(p.Streaks) +
		len(p.Badges) + len(p.Participations) + len(p.XPLogs) + len(p.RankingDeltas)
	if p.Activity != nil {
		n++
	}
	return n
}
