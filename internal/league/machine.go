package league

import (
	"github.com/futebadosparcas/matchday/internal/domain"
)

// Config holds the progression rule counts. Thresholds are fixed.
type Config struct {
	PromotionGamesRequired  int
	RelegationGamesRequired int
	ProtectionGames         int
	MaxRecentGames          int
}

// DefaultConfig returns the production rules.
func DefaultConfig() Config {
	return Config{
		PromotionGamesRequired:  DefaultPromotionGamesRequired,
		RelegationGamesRequired: DefaultRelegationGamesRequired,
		ProtectionGames:         DefaultProtectionGames,
		MaxRecentGames:          DefaultMaxRecentGames,
	}
}

// State is a player's position on the ladder together with its hysteresis counters.
type State struct {
	Division           domain.Division `json:"division"`
	Rating             float64         `json:"rating"`
	PromotionProgress  int             `json:"promotion_progress"`
	RelegationProgress int             `json:"relegation_progress"`
	ProtectionGames    int             `json:"protection_games"`
}

// StateOf extracts the machine state from a participation record.
func StateOf(p *domain.LeagueParticipation) State {
	return State{
		Division:           p.Division,
		Rating:             p.LeagueRating,
		PromotionProgress:  p.PromotionProgress,
		RelegationProgress: p.RelegationProgress,
		ProtectionGames:    p.ProtectionGames,
	}
}

// Transition is the result of feeding one rating into the machine.
type Transition struct {
	State     State           `json:"state"`
	Previous  domain.Division `json:"previous"`
	Promoted  bool            `json:"promoted"`
	Relegated bool            `json:"relegated"`
}

// DivisionChanged reports whether the player moved up or down.
func (t Transition) DivisionChanged() bool {
	return t.Promoted || t.Relegated
}

// Machine advances league state. It is stateless and safe for concurrent use.
type Machine struct {
	cfg Config
}

// NewMachine creates a Machine. Zero counts fall back to the defaults.
func NewMachine(cfg Config) *Machine {
	def := DefaultConfig()
	if cfg.PromotionGamesRequired <= 0 {
		cfg.PromotionGamesRequired = def.PromotionGamesRequired
	}
	if cfg.RelegationGamesRequired <= 0 {
		cfg.RelegationGamesRequired = def.RelegationGamesRequired
	}
	if cfg.ProtectionGames < 0 {
		cfg.ProtectionGames = def.ProtectionGames
	}
	if cfg.MaxRecentGames <= 0 {
		cfg.MaxRecentGames = def.MaxRecentGames
	}
	return &Machine{cfg: cfg}
}

// Config returns the rules in effect.
func (m *Machine) Config() Config {
	return m.cfg
}

// Next applies one game's rating to the current state.
//
// A player under protection only burns one protection game. Otherwise a rating
// at or above the next threshold counts towards promotion, a rating below the
// previous threshold counts towards relegation, and anything in between clears
// both counters. Reaching the required count moves the division and starts a
// new protection window.
func (m *Machine) Next(current State, rating float64) Transition {
	next := State{
		Division:           current.Division,
		Rating:             rating,
		PromotionProgress:  current.PromotionProgress,
		RelegationProgress: current.RelegationProgress,
		ProtectionGames:    current.ProtectionGames,
	}
	t := Transition{Previous: current.Division}

	switch {
	case next.ProtectionGames > 0:
		next.ProtectionGames--
		next.PromotionProgress = 0
		next.RelegationProgress = 0

	case rating >= NextThreshold(current.Division) && !IsTop(current.Division):
		next.PromotionProgress++
		next.RelegationProgress = 0
		if next.PromotionProgress >= m.cfg.PromotionGamesRequired {
			t.Promoted = true
			next.Division = NextDivision(current.Division)
			next.PromotionProgress = 0
			next.ProtectionGames = m.cfg.ProtectionGames
		}

	case rating < PreviousThreshold(current.Division) && !IsBottom(current.Division):
		next.RelegationProgress++
		next.PromotionProgress = 0
		if next.RelegationProgress >= m.cfg.RelegationGamesRequired {
			t.Relegated = true
			next.Division = PreviousDivision(current.Division)
			next.RelegationProgress = 0
			next.ProtectionGames = m.cfg.ProtectionGames
		}

	default:
		next.PromotionProgress = 0
		next.RelegationProgress = 0
	}

	t.State = next
	return t
}

// IsProtected reports whether the player is inside a protection window.
func IsProtected(s State) bool {
	return s.ProtectionGames > 0
}

// InPromotionZone reports whether the current rating qualifies for promotion.
func InPromotionZone(s State) bool {
	return !IsTop(s.Division) && s.Rating >= NextThreshold(s.Division)
}

// InRelegationZone reports whether the current rating qualifies for relegation.
func InRelegationZone(s State) bool {
	return !IsBottom(s.Division) && s.Rating < PreviousThreshold(s.Division)
}

// GamesUntilPromotion is the number of further qualifying games needed to
// promote, or -1 when the player cannot promote.
func (m *Machine) GamesUntilPromotion(s State) int {
	if IsTop(s.Division) {
		return -1
	}
	return s.ProtectionGames + max(m.cfg.PromotionGamesRequired-s.PromotionProgress, 0)
}

// GamesUntilRelegation is the number of further qualifying games needed to
// relegate, or -1 when the player cannot relegate.
func (m *Machine) GamesUntilRelegation(s State) int {
	if IsBottom(s.Division) {
		return -1
	}
	return s.ProtectionGames + max(m.cfg.RelegationGamesRequired-s.RelegationProgress, 0)
}
