package xp

// ClampStat bounds a per-game counter reported by clients.
func ClampStat(v int) int {
	return max(MinStatValue, min(v, MaxStatValue))
}

func clampXP(v int64) int64 {
	return max(MinGameXP, min(v, MaxGameXP))
}

func sanitizeEvents(ev GameEvents) GameEvents {
	ev.Goals = ClampStat(ev.Goals)
	ev.Assists = ClampStat(ev.Assists)
	ev.Saves = ClampStat(ev.Saves)
	ev.CurrentStreak = max(ev.CurrentStreak, 0)
	ev.MilestoneXP = max(ev.MilestoneXP, 0)
	return ev
}
