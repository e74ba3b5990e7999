package rating

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/domain"
)

func TestCalculate_Empty(t *testing.T) {
	assert.Zero(t, Calculate(nil))
	assert.Zero(t, Calculate([]domain.RecentGame{}))
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	games := make([]domain.RecentGame, 10)
	for i := range games {
		games[i] = domain.RecentGame{
			GameID:   fmt.Sprintf("g%d", i),
			XPEarned: 300,
			Won:      i < 6,
			GoalDiff: 1,
			WasMVP:   i < 2,
		}
	}

	b := Explain(games)
	assert.InDelta(t, 60.0, b.PPJ, 1e-9)
	assert.InDelta(t, 60.0, b.WinRate, 1e-9)
	assert.InDelta(t, 66.6667, b.GoalDiff, 1e-3)
	assert.InDelta(t, 40.0, b.MVP, 1e-9)
	assert.InDelta(t, 59.333, b.Rating, 1e-3)
}

func TestCalculate_PerfectAndWorstGame(t *testing.T) {
	perfect := []domain.RecentGame{{XPEarned: 500, Won: true, GoalDiff: 3, WasMVP: true}}
	assert.InDelta(t, 100.0, Calculate(perfect), 1e-9)

	// XP above the normalization cap does not push the rating past 100
	capped := []domain.RecentGame{{XPEarned: 5000, Won: true, GoalDiff: 10, WasMVP: true}}
	assert.InDelta(t, 100.0, Calculate(capped), 1e-9)

	worst := []domain.RecentGame{{XPEarned: 0, GoalDiff: -3}}
	assert.Zero(t, Calculate(worst))

	penalized := []domain.RecentGame{{XPEarned: -100, GoalDiff: -10}}
	assert.Zero(t, Calculate(penalized))
}

func TestCalculate_DrawIsNotAWin(t *testing.T) {
	b := Explain([]domain.RecentGame{{XPEarned: 100, Drew: true}})
	assert.Zero(t, b.WinRate)
	assert.InDelta(t, 50.0, b.GoalDiff, 1e-9)
}

func TestCalculate_OnlyLookbackWindowCounts(t *testing.T) {
	games := make([]domain.RecentGame, 0, 15)
	for i := 0; i < LookbackWindow; i++ {
		games = append(games, domain.RecentGame{XPEarned: 500, Won: true, GoalDiff: 3, WasMVP: true})
	}
	for i := 0; i < 5; i++ {
		games = append(games, domain.RecentGame{XPEarned: 0, GoalDiff: -5})
	}

	b := Explain(games)
	assert.Equal(t, LookbackWindow, b.Games)
	assert.InDelta(t, 100.0, b.Rating, 1e-9)
}

func TestCalculate_AlwaysWithinBounds(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 500; i++ {
		n := faker.IntRange(0, 15)
		games := make([]domain.RecentGame, n)
		for j := range games {
			games[j] = domain.RecentGame{
				XPEarned: int64(faker.IntRange(-100, 2000)),
				Won:      faker.Bool(),
				GoalDiff: faker.IntRange(-15, 15),
				WasMVP:   faker.Bool(),
			}
		}
		r := Calculate(games)
		require.GreaterOrEqual(t, r, MinRating)
		require.LessOrEqual(t, r, MaxRating)
	}
}

func TestPush(t *testing.T) {
	var recent []domain.RecentGame
	for i := 0; i < LookbackWindow+3; i++ {
		recent = Push(recent, domain.RecentGame{GameID: fmt.Sprintf("g%d", i)})
	}

	require.Len(t, recent, LookbackWindow)
	assert.Equal(t, fmt.Sprintf("g%d", LookbackWindow+2), recent[0].GameID)
	assert.Equal(t, "g3", recent[LookbackWindow-1].GameID)
}

func TestTrim(t *testing.T) {
	games := []domain.RecentGame{{GameID: "a"}, {GameID: "b"}, {GameID: "c"}}
	assert.Len(t, Trim(games, 2), 2)
	assert.Len(t, Trim(games, 10), 3)
	assert.Empty(t, Trim(games, -1))
}
