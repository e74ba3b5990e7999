package xp

// Settings is the XP weight table. Stored overrides are merged field by field
// over the defaults.
type Settings struct {
	Presence    int64 `json:"xp_presence"`
	PerGoal     int64 `json:"xp_per_goal"`
	PerAssist   int64 `json:"xp_per_assist"`
	PerSave     int64 `json:"xp_per_save"`
	Win         int64 `json:"xp_win"`
	Draw        int64 `json:"xp_draw"`
	MVP         int64 `json:"xp_mvp"`
	CleanSheet  int64 `json:"xp_clean_sheet"`
	WorstPlayer int64 `json:"xp_worst_player"`
	Streak3     int64 `json:"xp_streak_3"`
	Streak7     int64 `json:"xp_streak_7"`
	Streak10    int64 `json:"xp_streak_10"`
}

// DefaultSettings returns the built-in weight table.
func DefaultSettings() Settings {
	return Settings{
		Presence:    DefaultXPPresence,
		PerGoal:     DefaultXPPerGoal,
		PerAssist:   DefaultXPPerAssist,
		PerSave:     DefaultXPPerSave,
		Win:         DefaultXPWin,
		Draw:        DefaultXPDraw,
		MVP:         DefaultXPMVP,
		CleanSheet:  DefaultXPCleanSheet,
		WorstPlayer: DefaultXPWorstPlayer,
		Streak3:     DefaultXPStreak3,
		Streak7:     DefaultXPStreak7,
		Streak10:    DefaultXPStreak10,
	}
}

// Overrides holds the optional stored values. Nil fields keep the default.
type Overrides struct {
	Presence    *int64 `json:"xp_presence,omitempty"`
	PerGoal     *int64 `json:"xp_per_goal,omitempty"`
	PerAssist   *int64 `json:"xp_per_assist,omitempty"`
	PerSave     *int64 `json:"xp_per_save,omitempty"`
	Win         *int64 `json:"xp_win,omitempty"`
	Draw        *int64 `json:"xp_draw,omitempty"`
	MVP         *int64 `json:"xp_mvp,omitempty"`
	CleanSheet  *int64 `json:"xp_clean_sheet,omitempty"`
	WorstPlayer *int64 `json:"xp_worst_player,omitempty"`
	Streak3     *int64 `json:"xp_streak_3,omitempty"`
	Streak7     *int64 `json:"xp_streak_7,omitempty"`
	Streak10    *int64 `json:"xp_streak_10,omitempty"`
}

// Merge applies o over s and returns the result.
func (s Settings) Merge(o Overrides) Settings {
	set := func(dst *int64, v *int64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.Presence, o.Presence)
	set(&s.PerGoal, o.PerGoal)
	set(&s.PerAssist, o.PerAssist)
	set(&s.PerSave, o.PerSave)
	set(&s.Win, o.Win)
	set(&s.Draw, o.Draw)
	set(&s.MVP, o.MVP)
	set(&s.CleanSheet, o.CleanSheet)
	set(&s.WorstPlayer, o.WorstPlayer)
	set(&s.Streak3, o.Streak3)
	set(&s.Streak7, o.Streak7)
	set(&s.Streak10, o.Streak10)
	return s
}

// Overrides returns s with every field set, the stored form of a full table.
func (s Settings) Overrides() Overrides {
	return Overrides{
		Presence:    &s.Presence,
		PerGoal:     &s.PerGoal,
		PerAssist:   &s.PerAssist,
		PerSave:     &s.PerSave,
		Win:         &s.Win,
		Draw:        &s.Draw,
		MVP:         &s.MVP,
		CleanSheet:  &s.CleanSheet,
		WorstPlayer: &s.WorstPlayer,
		Streak3:     &s.Streak3,
		Streak7:     &s.Streak7,
		Streak10:    &s.Streak10,
	}
}

// StreakBonus returns the bonus for a streak length. Only the highest tier applies.
func (s Settings) StreakBonus(streak int) int64 {
	switch {
	case streak >= StreakTier3:
		return s.Streak10
	case streak >= StreakTier2:
		return s.Streak7
	case streak >= StreakTier1:
		return s.Streak3
	default:
		return 0
	}
}
