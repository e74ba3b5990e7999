package xp

// Level is one step of the level table.
type Level struct {
	Level      int    `json:"level"`
	XPRequired int64  `json:"xp_required"`
	Name       string `json:"name"`
}

// LevelTable is monotonic in XPRequired and indexed by level.
var LevelTable = []Level{
	{Level: 0, XPRequired: 0, Name: "Novato"},
	{Level: 1, XPRequired: 100, Name: "Iniciante"},
	{Level: 2, XPRequired: 350, Name: "Amador"},
	{Level: 3, XPRequired: 850, Name: "Regular"},
	{Level: 4, XPRequired: 1850, Name: "Experiente"},
	{Level: 5, XPRequired: 3850, Name: "Habilidoso"},
	{Level: 6, XPRequired: 7350, Name: "Profissional"},
	{Level: 7, XPRequired: 12850, Name: "Expert"},
	{Level: 8, XPRequired: 20850, Name: "Mestre"},
	{Level: 9, XPRequired: 32850, Name: "Lenda"},
	{Level: MaxLevel, XPRequired: 52850, Name: "Imortal"},
}

// LevelForXP returns the highest level whose threshold totalXP reaches.
// Negative XP maps to level 0.
func LevelForXP(totalXP int64) int {
	level := 0
	for _, l := range LevelTable {
		if totalXP < l.XPRequired {
			break
		}
		level = l.Level
	}
	return level
}

// XPForLevel returns the cumulative XP needed to reach level. Levels outside
// the table are clamped.
func XPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	if level >= MaxLevel {
		return LevelTable[MaxLevel].XPRequired
	}
	return LevelTable[level].XPRequired
}

// LevelName returns the display name of a level.
func LevelName(level int) string {
	level = max(0, min(level, MaxLevel))
	return LevelTable[level].Name
}

// Progress describes where a total XP value sits inside its level.
type Progress struct {
	Level         int     `json:"level"`
	LevelName     string  `json:"level_name"`
	TotalXP       int64   `json:"total_xp"`
	XPIntoLevel   int64   `json:"xp_into_level"`
	XPForNext     int64   `json:"xp_for_next"`
	XPToNext      int64   `json:"xp_to_next"`
	PercentToNext float64 `json:"percent_to_next"`
	AtMax         bool    `json:"at_max"`
}

// GetProgress returns the level progress for totalXP. At the maximum level the
// next-level fields stay zero and AtMax is set.
func GetProgress(totalXP int64) Progress {
	level := LevelForXP(totalXP)
	p := Progress{
		Level:     level,
		LevelName: LevelName(level),
		TotalXP:   totalXP,
	}
	if level >= MaxLevel {
		p.AtMax = true
		p.XPIntoLevel = totalXP - XPForLevel(MaxLevel)
		return p
	}

	floor := XPForLevel(level)
	next := XPForLevel(level + 1)
	p.XPIntoLevel = max(totalXP-floor, 0)
	p.XPForNext = next - floor
	p.XPToNext = next - max(totalXP, floor)
	p.PercentToNext = float64(p.XPIntoLevel) / float64(p.XPForNext) * 100
	return p
}
