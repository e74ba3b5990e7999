package finalize

import (
	"github.com/futebadosparcas/matchday/internal/domain"
)

// State is a step of one finalization run.
type State string

const (
	StateReceived         State = "RECEIVED"
	StateGuardChecked     State = "GUARD_CHECKED"
	StateOutcomesComputed State = "OUTCOMES_COMPUTED"
	StateMutationsStaged  State = "MUTATIONS_STAGED"
	StateCommitted        State = "COMMITTED"
	StateFailed           State = "FAILED"
)

// Result reports what a finalization run did. AlreadyProcessed and Ignored
// runs are successes with no effect.
type Result struct {
	GameID           string         `json:"game_id"`
	State            State          `json:"state"`
	Ignored          bool           `json:"ignored,omitempty"`
	AlreadyProcessed bool           `json:"already_processed,omitempty"`
	MarkerOnly       bool           `json:"marker_only,omitempty"`
	PlayersProcessed int            `json:"players_processed"`
	Writes           int            `json:"writes"`
	Players          []PlayerResult `json:"players,omitempty"`
}

// PlayerResult summarizes the effects of a finalization for one player.
type PlayerResult struct {
	UserID       string             `json:"user_id"`
	XPEarned     int64              `json:"xp_earned"`
	TotalXP      int64              `json:"total_xp"`
	OldLevel     int                `json:"old_level"`
	NewLevel     int                `json:"new_level"`
	Milestones   []string           `json:"milestones,omitempty"`
	MilestoneXP  int64              `json:"milestone_xp,omitempty"`
	Badges       []domain.UserBadge `json:"badges,omitempty"`
	Streak       int                `json:"streak"`
	Division     domain.Division    `json:"division,omitempty"`
	PreviousDiv  domain.Division    `json:"previous_division,omitempty"`
	Promoted     bool               `json:"promoted,omitempty"`
	Relegated    bool               `json:"relegated,omitempty"`
	LeagueRating float64            `json:"league_rating,omitempty"`
	SeasonID     string             `json:"season_id,omitempty"`
}

// LeveledUp reports whether the player gained a level.
func (p PlayerResult) LeveledUp() bool {
	return p.NewLevel > p.OldLevel
}
