package rating

// Lookback window
const (
	// LookbackWindow is the number of most recent games that feed the rating
	LookbackWindow = 10
)

// Component normalization
const (
	// MaxXPPerGame is the average XP per game that maps to a full PPJ score
	MaxXPPerGame = 500.0

	// GoalDiffOffset shifts the average goal difference so that -3 maps to zero
	GoalDiffOffset = 3.0

	// GoalDiffRange is the width of the goal difference band mapped onto 0..1
	GoalDiffRange = 6.0

	// MVPRateCap is the MVP rate that already earns the full MVP score
	MVPRateCap = 0.5
)

// Component weights. They sum to 1.0.
const (
	WeightPPJ      = 0.4
	WeightWinRate  = 0.3
	WeightGoalDiff = 0.2
	WeightMVP      = 0.1
)

// Bounds
const (
	MinRating = 0.0
	MaxRating = 100.0
)
