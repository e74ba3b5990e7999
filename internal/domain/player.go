package domain

import "time"

// User is the slice of the user profile this service reads and writes.
// Version counts committed finalizations of the player. Every per-player
// write of a finalization is conditional on the version it was computed from.
type User struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	ExperiencePoints   int64      `json:"experience_points"`
	Level              int        `json:"level"`
	MilestonesAchieved []string   `json:"milestones_achieved"`
	Version            int64      `json:"progression_version"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// HasMilestone reports whether the milestone was already granted.
func (u *User) HasMilestone(name string) bool {
	for _, m := range u.MilestonesAchieved {
		if m == name {
			return true
		}
	}
	return false
}

// UserStatistics holds cumulative per-user counters. Counters only grow; rate
// fields are recomputed from the counters.
type UserStatistics struct {
	UserID           string    `json:"user_id"`
	TotalGames       int       `json:"total_games"`
	TotalGoals       int       `json:"total_goals"`
	TotalAssists     int       `json:"total_assists"`
	TotalSaves       int       `json:"total_saves"`
	TotalYellowCards int       `json:"total_yellow_cards"`
	TotalRedCards    int       `json:"total_red_cards"`
	GamesWon         int       `json:"games_won"`
	GamesLost        int       `json:"games_lost"`
	GamesDraw        int       `json:"games_draw"`
	BestPlayerCount  int       `json:"best_player_count"`
	CleanSheets      int       `json:"clean_sheets"`
	GamesOrganized   int       `json:"games_organized"`
	InvitesAccepted  int       `json:"invites_accepted"`
	WinRate          float64   `json:"win_rate"`
	GoalsPerGame     float64   `json:"goals_per_game"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RecomputeRates refreshes the derived percentage fields.
func (s *UserStatistics) RecomputeRates() {
	if s.TotalGames == 0 {
		s.WinRate = 0
		s.GoalsPerGame = 0
		return
	}
	s.WinRate = float64(s.GamesWon) / float64(s.TotalGames)
	s.GoalsPerGame = float64(s.TotalGoals) / float64(s.TotalGames)
}

// UserStreak counts consecutive attendance, optionally per recurring schedule.
type UserStreak struct {
	UserID          string     `json:"user_id"`
	ScheduleID      *string    `json:"schedule_id,omitempty"`
	CurrentStreak   int        `json:"current_streak"`
	LongestStreak   int        `json:"longest_streak"`
	LastGameDate    *time.Time `json:"last_game_date,omitempty"`
	StreakStartedAt *time.Time `json:"streak_started_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// UserBadge records how often a user earned a badge.
type UserBadge struct {
	UserID       string    `json:"user_id"`
	BadgeID      BadgeType `json:"badge_id"`
	Count        int       `json:"count"`
	UnlockedAt   time.Time `json:"unlocked_at"`
	LastEarnedAt time.Time `json:"last_earned_at"`
}

// XPLog is the audit record of one XP award.
type XPLog struct {
	ID                 string     `json:"id"`
	TransactionID      string     `json:"transaction_id"`
	UserID             string     `json:"user_id"`
	GameID             string     `json:"game_id"`
	XPEarned           int64      `json:"xp_earned"`
	XPBefore           int64      `json:"xp_before"`
	XPAfter            int64      `json:"xp_after"`
	LevelBefore        int        `json:"level_before"`
	LevelAfter         int        `json:"level_after"`
	XPParticipation    int64      `json:"xp_participation"`
	XPGoals            int64      `json:"xp_goals"`
	XPAssists          int64      `json:"xp_assists"`
	XPSaves            int64      `json:"xp_saves"`
	XPResult           int64      `json:"xp_result"`
	XPMVP              int64      `json:"xp_mvp"`
	XPCleanSheet       int64      `json:"xp_clean_sheet"`
	XPMilestones       int64      `json:"xp_milestones"`
	XPStreak           int64      `json:"xp_streak"`
	XPPenalty          int64      `json:"xp_penalty"`
	Goals              int        `json:"goals"`
	Assists            int        `json:"assists"`
	Saves              int        `json:"saves"`
	WasMVP             bool       `json:"was_mvp"`
	GameResult         TeamResult `json:"game_result"`
	MilestonesUnlocked []string   `json:"milestones_unlocked"`
	CreatedAt          time.Time  `json:"created_at"`
}
