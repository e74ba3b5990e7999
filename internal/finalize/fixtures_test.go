package finalize

import (
	"context"
	"sync"
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/event"
	"github.com/futebadosparcas/matchday/internal/xp"
)

var (
	gameDate = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	runAt    = gameDate.Add(2 * time.Hour)
)

func strPtr(s string) *string { return &s }

func testSettings() xp.Settings {
	return xp.Settings{
		Presence:    10,
		PerGoal:     10,
		PerAssist:   7,
		PerSave:     5,
		Win:         20,
		Draw:        10,
		MVP:         30,
		CleanSheet:  15,
		WorstPlayer: -20,
		Streak3:     20,
		Streak7:     50,
		Streak10:    100,
	}
}

type staticSettings struct{ s xp.Settings }

func (s staticSettings) Get(context.Context) xp.Settings { return s.s }

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func finishedGame(id string, date time.Time) *domain.Game {
	return &domain.Game{
		ID:            id,
		Status:        domain.GameStatusFinished,
		OwnerID:       "owner",
		Date:          date,
		Team1ID:       strPtr(id + "-t1"),
		Team2ID:       strPtr(id + "-t2"),
		Team1Score:    3,
		MVPID:         strPtr("u1"),
		WorstPlayerID: strPtr("u4"),
	}
}

// squad is six players: u1 scores a hat-trick, u3 keeps a clean sheet for
// team 1 which wins 3-0.
func squad(gameID string) ([]domain.Confirmation, []domain.Team) {
	c := func(userID, name string, pos domain.Position) domain.Confirmation {
		return domain.Confirmation{
			GameID:   gameID,
			UserID:   userID,
			UserName: name,
			Status:   domain.ConfirmationConfirmed,
			Position: pos,
		}
	}
	u1 := c("u1", "Ana", domain.PositionField)
	u1.Goals = 3
	u2 := c("u2", "Bia", domain.PositionField)
	u2.Assists = 2
	u3 := c("u3", "Caio", domain.PositionGoalkeeper)
	u3.Saves = 4
	u6 := c("u6", "Fabi", domain.PositionGoalkeeper)
	u6.Saves = 1

	confirmations := []domain.Confirmation{
		u1, u2, u3,
		c("u4", "Duda", domain.PositionField),
		c("u5", "Edu", domain.PositionField),
		u6,
	}
	teams := []domain.Team{
		{ID: gameID + "-t1", GameID: gameID, PlayerIDs: []string{"u1", "u2", "u3"}, Score: 3},
		{ID: gameID + "-t2", GameID: gameID, PlayerIDs: []string{"u4", "u5", "u6"}, Score: 0},
	}
	return confirmations, teams
}

func seedGame(repo *fakeRepository, g *domain.Game) {
	confirmations, teams := squad(g.ID)
	repo.games[g.ID] = g
	repo.confirmations[g.ID] = confirmations
	repo.teams[g.ID] = teams
}
