package repository

import (
	"context"
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// Collection names a table swept by retention jobs
type Collection string

const (
	CollectionXPLogs          Collection = "xp_logs"
	CollectionActivities      Collection = "activities"
	CollectionNotifications   Collection = "notifications"
	CollectionMaintenanceRuns Collection = "maintenance_runs"
	CollectionDeletedGames    Collection = "games"
	CollectionStreaks         Collection = "user_streaks"
)

// StreakKey identifies one streak row
type StreakKey struct {
	UserID      string
	ScheduleKey string
}

// StreakRow is a streak together with the state of its owner
type StreakRow struct {
	Key         StreakKey
	Streak      domain.UserStreak
	UserMissing bool
	UserDeleted bool
}

// Maintenance defines the persistence for scheduled sweeps
type Maintenance interface {
	// DeleteExpired removes at most limit of the oldest rows of c whose
	// timestamp is before cutoff and returns how many were removed
	DeleteExpired(ctx context.Context, c Collection, cutoff time.Time, limit int) (int64, error)

	// ListStreaks pages through streaks ordered by key, strictly after the cursor
	ListStreaks(ctx context.Context, after StreakKey, limit int) ([]StreakRow, error)
	DeleteStreaks(ctx context.Context, keys []StreakKey) (int64, error)
	SaveStreaks(ctx context.Context, streaks []domain.UserStreak) (int64, error)

	RecordRun(ctx context.Context, run domain.MaintenanceRun) error
}

// Notifications defines storage of in-app notifications
type Notifications interface {
	InsertNotifications(ctx context.Context, notifications []domain.Notification) error
}
