package league

import (
	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/rating"
)

// Summary is the progression view of one participation.
type Summary struct {
	UserID               string           `json:"user_id"`
	SeasonID             string           `json:"season_id"`
	Division             domain.Division  `json:"division"`
	Rating               float64          `json:"rating"`
	Points               int              `json:"points"`
	GamesPlayed          int              `json:"games_played"`
	Protected            bool             `json:"protected"`
	ProtectionGames      int              `json:"protection_games"`
	InPromotionZone      bool             `json:"in_promotion_zone"`
	InRelegationZone     bool             `json:"in_relegation_zone"`
	GamesUntilPromotion  int              `json:"games_until_promotion"`
	GamesUntilRelegation int              `json:"games_until_relegation"`
	NextThreshold        float64          `json:"next_threshold,omitempty"`
	PreviousThreshold    float64          `json:"previous_threshold,omitempty"`
	Breakdown            rating.Breakdown `json:"breakdown"`
}

// Summarize builds the progression view of p.
func (m *Machine) Summarize(p *domain.LeagueParticipation) Summary {
	s := StateOf(p)
	sum := Summary{
		UserID:               p.UserID,
		SeasonID:             p.SeasonID,
		Division:             p.Division,
		Rating:               p.LeagueRating,
		Points:               p.Points,
		GamesPlayed:          p.GamesPlayed,
		Protected:            IsProtected(s),
		ProtectionGames:      p.ProtectionGames,
		InPromotionZone:      InPromotionZone(s),
		InRelegationZone:     InRelegationZone(s),
		GamesUntilPromotion:  m.GamesUntilPromotion(s),
		GamesUntilRelegation: m.GamesUntilRelegation(s),
		Breakdown:            rating.Explain(p.RecentGames),
	}
	if !IsTop(p.Division) {
		sum.NextThreshold = NextThreshold(p.Division)
	}
	if !IsBottom(p.Division) {
		sum.PreviousThreshold = PreviousThreshold(p.Division)
	}
	return sum
}
