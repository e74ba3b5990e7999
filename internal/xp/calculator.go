// Package xp computes experience awarded for a finished game and maps total
// experience onto levels.
package xp

import (
	"fmt"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// GameEvents are one player's inputs to the XP calculation.
type GameEvents struct {
	Goals         int
	Assists       int
	Saves         int
	Result        domain.TeamResult
	WasMVP        bool
	WasWorst      bool
	CleanSheet    bool
	Position      domain.Position
	CurrentStreak int
	MilestoneXP   int64
}

// EventsFromOutcome builds GameEvents from a derived outcome.
func EventsFromOutcome(o domain.PlayerGameOutcome, streak int) GameEvents {
	return GameEvents{
		Goals:         o.Goals,
		Assists:       o.Assists,
		Saves:         o.Saves,
		Result:        o.Result,
		WasMVP:        o.WasMVP,
		WasWorst:      o.WasWorst,
		CleanSheet:    o.CleanSheet(),
		Position:      o.Position,
		CurrentStreak: streak,
	}
}

// Breakdown itemizes an XP award.
type Breakdown struct {
	Participation int64 `json:"participation"`
	Goals         int64 `json:"goals"`
	Assists       int64 `json:"assists"`
	Saves         int64 `json:"saves"`
	Result        int64 `json:"result"`
	MVP           int64 `json:"mvp"`
	CleanSheet    int64 `json:"clean_sheet"`
	Milestones    int64 `json:"milestones"`
	Streak        int64 `json:"streak"`
	Penalty       int64 `json:"penalty"`
}

// GameXP is the performance part of the award, clamped to the per-game bounds.
func (b Breakdown) GameXP() int64 {
	sum := b.Participation + b.Goals + b.Assists + b.Saves + b.Result +
		b.MVP + b.CleanSheet + b.Streak + b.Penalty
	return clampXP(sum)
}

// Total is GameXP plus milestone rewards. Milestones are computed server side
// and are not subject to the per-game clamp.
func (b Breakdown) Total() int64 {
	return b.GameXP() + b.Milestones
}

// Calculate applies the weight table to one player's game.
func Calculate(s Settings, ev GameEvents) Breakdown {
	ev = sanitizeEvents(ev)

	b := Breakdown{
		Participation: s.Presence,
		Goals:         int64(ev.Goals) * s.PerGoal,
		Assists:       int64(ev.Assists) * s.PerAssist,
		Saves:         int64(ev.Saves) * s.PerSave,
		Streak:        s.StreakBonus(ev.CurrentStreak),
		Milestones:    ev.MilestoneXP,
	}
	switch ev.Result {
	case domain.ResultWin:
		b.Result = s.Win
	case domain.ResultDraw:
		b.Result = s.Draw
	}
	if ev.WasMVP {
		b.MVP = s.MVP
	}
	if ev.CleanSheet && ev.Position == domain.PositionGoalkeeper {
		b.CleanSheet = s.CleanSheet
	}
	if ev.WasWorst {
		b.Penalty = s.WorstPlayer
	}
	return b
}

// Award is the effect of adding an XP delta to a running total.
type Award struct {
	Delta     int64 `json:"delta"`
	OldTotal  int64 `json:"old_total"`
	NewTotal  int64 `json:"new_total"`
	OldLevel  int   `json:"old_level"`
	NewLevel  int   `json:"new_level"`
	LeveledUp bool  `json:"leveled_up"`
}

// Apply adds delta to currentXP. Totals never drop below zero and levels are
// capped at MaxLevel.
func Apply(currentXP, delta int64) Award {
	current := max(currentXP, 0)
	total := max(current+delta, 0)
	oldLevel := LevelForXP(current)
	newLevel := LevelForXP(total)
	return Award{
		Delta:     total - current,
		OldTotal:  current,
		NewTotal:  total,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}
}

// TransactionID is the idempotency key of the XP award of a user in a game.
func TransactionID(gameID, userID string) string {
	return fmt.Sprintf("game_%s_user_%s", gameID, userID)
}
