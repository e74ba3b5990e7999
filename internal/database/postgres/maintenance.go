package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/repository"
)

// Each query deletes at most $2 of the oldest rows older than $1
var expiryQueries = map[repository.Collection]string{
	repository.CollectionXPLogs: `
		DELETE FROM xp_logs WHERE id IN (
			SELECT id FROM xp_logs WHERE created_at < $1 ORDER BY created_at LIMIT $2)`,
	repository.CollectionActivities: `
		DELETE FROM activities WHERE id IN (
			SELECT id FROM activities WHERE created_at < $1 ORDER BY created_at LIMIT $2)`,
	repository.CollectionNotifications: `
		DELETE FROM notifications WHERE id IN (
			SELECT id FROM notifications
			WHERE read AND COALESCE(read_at, created_at) < $1
			ORDER BY COALESCE(read_at, created_at) LIMIT $2)`,
	repository.CollectionMaintenanceRuns: `
		DELETE FROM maintenance_runs WHERE id IN (
			SELECT id FROM maintenance_runs WHERE created_at < $1 ORDER BY created_at LIMIT $2)`,
	repository.CollectionDeletedGames: `
		DELETE FROM games WHERE id IN (
			SELECT id FROM games
			WHERE deleted_at IS NOT NULL AND deleted_at < $1
			ORDER BY deleted_at LIMIT $2)`,
}

// MaintenanceRepository implements repository.Maintenance for PostgreSQL
type MaintenanceRepository struct {
	db *pgxpool.Pool
}

// NewMaintenanceRepository creates a new MaintenanceRepository
func NewMaintenanceRepository(db *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// DeleteExpired removes one page of expired rows of c
func (r *MaintenanceRepository) DeleteExpired(ctx context.Context, c repository.Collection, cutoff time.Time, limit int) (int64, error) {
	query, ok := expiryQueries[c]
	if !ok {
		return 0, fmt.Errorf("no expiry query for collection %q", c)
	}
	tag, err := r.db.Exec(ctx, query, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired %s: %w", c, err)
	}
	return tag.RowsAffected(), nil
}

// ListStreaks pages through streaks ordered by (user_id, schedule_key)
func (r *MaintenanceRepository) ListStreaks(ctx context.Context, after repository.StreakKey, limit int) ([]repository.StreakRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.user_id, s.schedule_key, s.current_streak, s.longest_streak, s.last_game_date,
		       s.streak_started_at, s.updated_at, u.id IS NULL, u.deleted_at IS NOT NULL
		FROM user_streaks s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE (s.user_id, s.schedule_key) > ($1, $2)
		ORDER BY s.user_id, s.schedule_key
		LIMIT $3`, after.UserID, after.ScheduleKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list streaks: %w", err)
	}
	defer rows.Close()

	var out []repository.StreakRow
	for rows.Next() {
		var row repository.StreakRow
		s := &row.Streak
		err := rows.Scan(&s.UserID, &row.Key.ScheduleKey, &s.CurrentStreak, &s.LongestStreak, &s.LastGameDate,
			&s.StreakStartedAt, &s.UpdatedAt, &row.UserMissing, &row.UserDeleted)
		if err != nil {
			return nil, err
		}
		row.Key.UserID = s.UserID
		s.ScheduleID = scheduleID(row.Key.ScheduleKey)
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteStreaks removes the streaks with the given keys
func (r *MaintenanceRepository) DeleteStreaks(ctx context.Context, keys []repository.StreakKey) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	users := make([]string, len(keys))
	schedules := make([]string, len(keys))
	for i, k := range keys {
		users[i] = k.UserID
		schedules[i] = k.ScheduleKey
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM user_streaks
		WHERE (user_id, schedule_key) IN (SELECT * FROM unnest($1::text[], $2::text[]))`, users, schedules)
	if err != nil {
		return 0, fmt.Errorf("failed to delete streaks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SaveStreaks upserts the streaks in one transaction
func (r *MaintenanceRepository) SaveStreaks(ctx context.Context, streaks []domain.UserStreak) (int64, error) {
	if len(streaks) == 0 {
		return 0, nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	b := &pgx.Batch{}
	for _, s := range streaks {
		queueStreakUpsert(b, s)
	}
	results := tx.SendBatch(ctx, b)
	var saved int64
	for range streaks {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("failed to save streak: %w", err)
		}
		saved += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to save streaks: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return saved, nil
}

// RecordRun stores the metrics of one maintenance invocation
func (r *MaintenanceRepository) RecordRun(ctx context.Context, run domain.MaintenanceRun) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO maintenance_runs (id, job, collection, type, processed, deleted, updated, pages,
			cutoff, status, error, duration_ms, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		run.ID, run.Job, run.Collection, run.Type, run.Processed, run.Deleted, run.Updated, run.Pages,
		run.Cutoff, string(run.Status), run.Error, durationMillis(run.Duration), run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to record maintenance run: %w", err)
	}
	return nil
}

// NotificationRepository implements repository.Notifications for PostgreSQL
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// InsertNotifications stores unread notifications
func (r *NotificationRepository) InsertNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, n := range notifications {
		data, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to encode notification data: %w", err)
		}
		b.Queue(`
			INSERT INTO notifications (id, user_id, type, title, body, data, read, read_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			n.ID, n.UserID, n.Type, n.Title, n.Body, data, n.Read, n.ReadAt, n.CreatedAt)
	}
	if err := r.db.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("failed to insert notifications: %w", err)
	}
	return nil
}
