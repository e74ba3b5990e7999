package league

// Division rating thresholds. A rating at or above a threshold belongs to the
// division above it.
const (
	ThresholdPrata    = 30.0
	ThresholdOuro     = 50.0
	ThresholdDiamante = 70.0

	// CeilingRating is the "next threshold" of the top division. Ratings are
	// clamped to 100 and the top division cannot promote, so it is never used
	// to move a player.
	CeilingRating = 100.0
	FloorRating   = 0.0
)

// Progression rules
const (
	DefaultPromotionGamesRequired  = 3
	DefaultRelegationGamesRequired = 3
	DefaultProtectionGames         = 5
	DefaultMaxRecentGames          = 10
)

// Match points awarded to the season table
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)
