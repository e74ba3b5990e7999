package xp

// Default XP weights
const (
	DefaultXPPresence    = 10
	DefaultXPPerGoal     = 10
	DefaultXPPerAssist   = 7
	DefaultXPPerSave     = 5
	DefaultXPWin         = 20
	DefaultXPDraw        = 10
	DefaultXPMVP         = 30
	DefaultXPCleanSheet  = 0
	DefaultXPWorstPlayer = -10
	DefaultXPStreak3     = 20
	DefaultXPStreak7     = 50
	DefaultXPStreak10    = 100
)

// Streak bonus tiers, in consecutive games
const (
	StreakTier1 = 3
	StreakTier2 = 7
	StreakTier3 = 10
)

// Per-game sanity bounds applied before anything is persisted
const (
	MinGameXP    = -100
	MaxGameXP    = 500
	MinStatValue = 0
	MaxStatValue = 50
)

// Level system
const (
	// MaxLevel is the highest level. XP keeps accruing past its threshold.
	MaxLevel = 10
)

// Settings storage
const (
	// SettingsKey is the app_settings row holding the gamification weights
	SettingsKey = "gamification"

	DefaultSettingsCacheSize = 8
)

// Log messages
const (
	LogMsgSettingsLoadFailed = "Failed to load gamification settings, using defaults"
	LogMsgSettingsCacheHit   = "Gamification settings cache hit"
)
