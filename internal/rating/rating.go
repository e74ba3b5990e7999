// Package rating computes the 0-100 league rating from a player's recent games.
package rating

import (
	"github.com/futebadosparcas/matchday/internal/domain"
)

// Breakdown exposes the weighted components of a rating.
type Breakdown struct {
	Games    int     `json:"games"`
	PPJ      float64 `json:"ppj"`
	WinRate  float64 `json:"win_rate"`
	GoalDiff float64 `json:"goal_diff"`
	MVP      float64 `json:"mvp"`
	Rating   float64 `json:"rating"`
}

// Calculate returns the league rating for games ordered most recent first.
// Only the first LookbackWindow games are considered. An empty list rates 0.
func Calculate(games []domain.RecentGame) float64 {
	return Explain(games).Rating
}

// Explain is Calculate with its intermediate scores.
func Explain(games []domain.RecentGame) Breakdown {
	games = Trim(games, LookbackWindow)
	if len(games) == 0 {
		return Breakdown{}
	}

	var (
		totalXP   int64
		wins      int
		goalDiffs int
		mvps      int
	)
	for _, g := range games {
		totalXP += g.XPEarned
		if g.Won {
			wins++
		}
		goalDiffs += g.GoalDiff
		if g.WasMVP {
			mvps++
		}
	}

	n := float64(len(games))
	b := Breakdown{
		Games:    len(games),
		PPJ:      min(float64(totalXP)/n/MaxXPPerGame, 1.0) * 100,
		WinRate:  float64(wins) / n * 100,
		GoalDiff: clamp((float64(goalDiffs)/n+GoalDiffOffset)/GoalDiffRange, 0, 1) * 100,
		MVP:      min(float64(mvps)/n/MVPRateCap, 1.0) * 100,
	}
	// Negative XP (penalties) must not drag PPJ below zero.
	b.PPJ = max(b.PPJ, 0)

	b.Rating = clamp(
		WeightPPJ*b.PPJ+WeightWinRate*b.WinRate+WeightGoalDiff*b.GoalDiff+WeightMVP*b.MVP,
		MinRating, MaxRating,
	)
	return b
}

// Trim returns at most limit games from the head of the list.
func Trim(games []domain.RecentGame, limit int) []domain.RecentGame {
	if limit < 0 {
		limit = 0
	}
	if len(games) > limit {
		return games[:limit]
	}
	return games
}

// Push prepends g to the recent list and trims it to LookbackWindow.
// The input slice is not modified.
func Push(recent []domain.RecentGame, g domain.RecentGame) []domain.RecentGame {
	out := make([]domain.RecentGame, 0, min(len(recent)+1, LookbackWindow))
	out = append(out, g)
	for _, r := range recent {
		if len(out) == LookbackWindow {
			break
		}
		out = append(out, r)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
