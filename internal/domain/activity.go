package domain

import "time"

// ActivityType tags a feed entry.
type ActivityType string

const (
	ActivityGameFinished ActivityType = "GAME_FINISHED"
)

// Activity is a feed entry shown to players of a group.
type Activity struct {
	ID        string         `json:"id"`
	Type      ActivityType   `json:"type"`
	GameID    string         `json:"game_id"`
	GroupID   *string        `json:"group_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Notification is an in-app message for one user.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// RunStatus is the outcome of one maintenance invocation.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunPartial   RunStatus = "partial"
	RunFailed    RunStatus = "failed"
)

// MaintenanceRun records the work done by one maintenance invocation.
type MaintenanceRun struct {
	ID         string        `json:"id"`
	Job        string        `json:"job"`
	Collection string        `json:"collection"`
	Type       string        `json:"type"`
	Processed  int64         `json:"processed"`
	Deleted    int64         `json:"deleted"`
	Updated    int64         `json:"updated"`
	Pages      int           `json:"pages"`
	Cutoff     *time.Time    `json:"cutoff,omitempty"`
	Status     RunStatus     `json:"status"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
	StartedAt  time.Time     `json:"started_at"`
}
