package finalize

import (
	"fmt"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/xp"
)

type teamScore struct {
	result   domain.TeamResult
	goalsFor int
	against  int
}

// scoreboard resolves both sides of a game. A live score, when present, is
// authoritative over the team documents and the game record.
func scoreboard(g *domain.Game, teams []domain.Team, live *domain.LiveScore) (map[string]teamScore, error) {
	byID := make(map[string]domain.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	var id1, id2 string
	var s1, s2 int
	switch {
	case live != nil:
		id1, id2 = live.Team1ID, live.Team2ID
		s1, s2 = live.Team1Score, live.Team2Score
		if _, ok := byID[id1]; !ok {
			return nil, fmt.Errorf("%w: live score references unknown team %q", domain.ErrValidation, id1)
		}
		if _, ok := byID[id2]; !ok {
			return nil, fmt.Errorf("%w: live score references unknown team %q", domain.ErrValidation, id2)
		}
	case g.Team1ID != nil && g.Team2ID != nil:
		id1, id2 = *g.Team1ID, *g.Team2ID
		s1, s2 = g.Team1Score, g.Team2Score
		if t, ok := byID[id1]; ok {
			s1 = t.Score
		}
		if t, ok := byID[id2]; ok {
			s2 = t.Score
		}
	case len(teams) >= 2:
		id1, id2 = teams[0].ID, teams[1].ID
		s1, s2 = teams[0].Score, teams[1].Score
	default:
		return map[string]teamScore{}, nil
	}

	r1, r2 := domain.ResultDraw, domain.ResultDraw
	switch {
	case s1 > s2:
		r1, r2 = domain.ResultWin, domain.ResultLoss
	case s2 > s1:
		r1, r2 = domain.ResultLoss, domain.ResultWin
	}
	return map[string]teamScore{
		id1: {result: r1, goalsFor: s1, against: s2},
		id2: {result: r2, goalsFor: s2, against: s1},
	}, nil
}

// DeriveOutcomes builds one outcome per confirmed, non-casual player. Players
// without a scored team get a draw with no goals either way.
func DeriveOutcomes(g *domain.Game, confirmations []domain.Confirmation, teams []domain.Team, live *domain.LiveScore) ([]domain.PlayerGameOutcome, error) {
	board, err := scoreboard(g, teams, live)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(confirmations))
	out := make([]domain.PlayerGameOutcome, 0, len(confirmations))
	for _, c := range confirmations {
		if c.Status != domain.ConfirmationConfirmed || c.IsCasual {
			continue
		}
		if c.UserID == "" {
			return nil, fmt.Errorf("%w: confirmation without user id", domain.ErrValidation)
		}
		if _, dup := seen[c.UserID]; dup {
			continue
		}
		seen[c.UserID] = struct{}{}

		o := domain.PlayerGameOutcome{
			UserID:      c.UserID,
			Position:    c.Position,
			Goals:       xp.ClampStat(c.Goals),
			Assists:     xp.ClampStat(c.Assists),
			Saves:       xp.ClampStat(c.Saves),
			YellowCards: xp.ClampStat(c.YellowCards),
			RedCards:    xp.ClampStat(c.RedCards),
			Result:      domain.ResultDraw,
			WasMVP:      g.IsMVP(c.UserID),
			WasWorst:    g.IsWorst(c.UserID),
		}
		for _, t := range teams {
			if !t.HasPlayer(c.UserID) {
				continue
			}
			if score, ok := board[t.ID]; ok {
				o.TeamID = t.ID
				o.Result = score.result
				o.GoalsFor = score.goalsFor
				o.GoalsAgainst = score.against
			}
			break
		}
		out = append(out, o)
	}
	return out, nil
}
