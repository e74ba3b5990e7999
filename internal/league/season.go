package league

import (
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/rating"
)

// MatchPoints returns the table points for a result.
func MatchPoints(result domain.TeamResult) int {
	switch result {
	case domain.ResultWin:
		return PointsWin
	case domain.ResultDraw:
		return PointsDraw
	default:
		return PointsLoss
	}
}

// GameRecord is what one finished game contributes to a participation.
type GameRecord struct {
	GameID   string
	Outcome  domain.PlayerGameOutcome
	XPEarned int64
	PlayedAt time.Time
}

// ApplySeasonStats adds one game to the season table counters.
func ApplySeasonStats(p *domain.LeagueParticipation, o domain.PlayerGameOutcome) {
	p.GamesPlayed++
	switch o.Result {
	case domain.ResultWin:
		p.Wins++
	case domain.ResultDraw:
		p.Draws++
	default:
		p.Losses++
	}
	p.GoalsScored += o.GoalsFor
	p.GoalsConceded += o.GoalsAgainst
	if o.WasMVP {
		p.MVPCount++
	}
	p.Points += MatchPoints(o.Result)
}

// Advance applies a finished game to a participation: season table, recent
// game window, rating and ladder state. The input is not modified.
func (m *Machine) Advance(p domain.LeagueParticipation, rec GameRecord) (domain.LeagueParticipation, Transition) {
	next := p
	ApplySeasonStats(&next, rec.Outcome)

	recent := rating.Push(p.RecentGames, domain.RecentGame{
		GameID:   rec.GameID,
		XPEarned: rec.XPEarned,
		Won:      rec.Outcome.Result == domain.ResultWin,
		Drew:     rec.Outcome.Result == domain.ResultDraw,
		GoalDiff: rec.Outcome.GoalDiff(),
		WasMVP:   rec.Outcome.WasMVP,
		PlayedAt: rec.PlayedAt,
	})
	next.RecentGames = rating.Trim(recent, m.cfg.MaxRecentGames)

	t := m.Next(StateOf(&p), rating.Calculate(next.RecentGames))
	next.Division = t.State.Division
	next.LeagueRating = t.State.Rating
	next.PromotionProgress = t.State.PromotionProgress
	next.RelegationProgress = t.State.RelegationProgress
	next.ProtectionGames = t.State.ProtectionGames
	next.UpdatedAt = rec.PlayedAt

	return next, t
}

// NewParticipation creates the first participation record of a user in a season.
func NewParticipation(userID, userName, seasonID string, previousRating *float64) domain.LeagueParticipation {
	return domain.LeagueParticipation{
		ID:       ParticipationID(seasonID, userID),
		UserID:   userID,
		SeasonID: seasonID,
		UserName: userName,
		Division: InitialDivision(previousRating),
	}
}

// ParticipationID is the deterministic key of a (season, user) pair.
func ParticipationID(seasonID, userID string) string {
	return seasonID + "_" + userID
}
