package badge

// Rule thresholds
const (
	HatTrickGoals         = 3
	StreakShort           = 7
	StreakLong            = 30
	MonthlyTopScorerGoals = 5
	FullMonthMinGames     = 4
	OrganizerMasterGames  = 50
	InfluencerInvites     = 10
	LegendGames           = 500
	MythMVPs              = 100
	BlackBeltLevel        = 10
)

// PeriodLayout formats the period key of monthly badges.
const PeriodLayout = "2006-01"
