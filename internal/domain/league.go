package domain

import (
	"fmt"
	"time"
)

// Season is a ranked period. At most one season is active at a time.
type Season struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
}

// RecentGame is one entry of the rating lookback window, most recent first.
type RecentGame struct {
	GameID   string    `json:"game_id"`
	XPEarned int64     `json:"xp_earned"`
	Won      bool      `json:"won"`
	Drew     bool      `json:"drew"`
	GoalDiff int       `json:"goal_diff"`
	WasMVP   bool      `json:"was_mvp"`
	PlayedAt time.Time `json:"played_at"`
}

// LeagueParticipation is a user's standing in one season.
type LeagueParticipation struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"user_id"`
	SeasonID           string       `json:"season_id"`
	UserName           string       `json:"user_name"`
	Division           Division     `json:"division"`
	LeagueRating       float64      `json:"league_rating"`
	PromotionProgress  int          `json:"promotion_progress"`
	RelegationProgress int          `json:"relegation_progress"`
	ProtectionGames    int          `json:"protection_games"`
	Points             int          `json:"points"`
	GamesPlayed        int          `json:"games_played"`
	Wins               int          `json:"wins"`
	Draws              int          `json:"draws"`
	Losses             int          `json:"losses"`
	GoalsScored        int          `json:"goals_scored"`
	GoalsConceded      int          `json:"goals_conceded"`
	MVPCount           int          `json:"mvp_count"`
	RecentGames        []RecentGame `json:"recent_games"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Ranking periods
const (
	RankingPeriodWeek  = "week"
	RankingPeriodMonth = "month"
)

// RankingDelta accumulates a user's gains within one ranking period. Rows are
// keyed "<period>_<period key>_<user id>", e.g. "week_2026-W11_u1", and every
// finalized game adds to them.
type RankingDelta struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Period       string    `json:"period"`
	PeriodKey    string    `json:"period_key"`
	GoalsAdded   int       `json:"goals_added"`
	AssistsAdded int       `json:"assists_added"`
	SavesAdded   int       `json:"saves_added"`
	XPAdded      int64     `json:"xp_added"`
	GamesAdded   int       `json:"games_added"`
	WinsAdded    int       `json:"wins_added"`
	MVPAdded     int       `json:"mvp_added"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WeekKey returns the ISO week of t formatted as YYYY-Www.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns the month of t formatted as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// RankingDeltaID is the row key of a user's delta for one period.
func RankingDeltaID(period, periodKey, userID string) string {
	return period + "_" + periodKey + "_" + userID
}
