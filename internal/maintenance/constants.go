package maintenance

import "time"

// Job names
const (
	JobXPLogTTL         = "xp_log_ttl"
	JobActivityTTL      = "activity_ttl"
	JobNotificationTTL  = "notification_ttl"
	JobRunRecordTTL     = "maintenance_run_ttl"
	JobSoftDeletePurge  = "soft_delete_purge"
	JobStreakValidation = "streak_validation"
)

// Run type tags
const (
	TypeTTL        = "ttl_cleanup"
	TypePurge      = "purge"
	TypeValidation = "validation"
)

// Retention windows
const (
	XPLogRetention        = 365 * 24 * time.Hour
	ActivityRetention     = 90 * 24 * time.Hour
	NotificationRetention = 30 * 24 * time.Hour
	RunRecordRetention    = 90 * 24 * time.Hour
	DeletedGameRetention  = 90 * 24 * time.Hour
)

// Defaults
const (
	DefaultPageSize     = 500
	DefaultMaxDuration  = 9 * time.Minute
	DefaultSafetyMargin = 30 * time.Second
)

// Log messages
const (
	LogMsgSweepStopped    = "Sweep stopped before the time budget ran out"
	LogMsgRunFinished     = "Maintenance run finished"
	LogMsgRunFailed       = "Maintenance run failed"
	LogMsgRecordRunFailed = "Failed to record maintenance run"
	LogMsgGhostStreaks    = "Removing streaks of missing or deleted users"
)

// Scheduling
const DefaultTimezone = "America/Sao_Paulo"

// DefaultSchedules maps each job to its cron expression in DefaultTimezone.
var DefaultSchedules = map[string]string{
	JobXPLogTTL:         "0 3 * * 0",
	JobActivityTTL:      "30 3 * * *",
	JobNotificationTTL:  "0 4 * * *",
	JobRunRecordTTL:     "0 2 * * 1",
	JobSoftDeletePurge:  "0 2 * * 6",
	JobStreakValidation: "0 4 1 * *",
}
