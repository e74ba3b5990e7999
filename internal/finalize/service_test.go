package finalize

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/event"
	"github.com/futebadosparcas/matchday/internal/league"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func newTestService(repo *fakeRepository, pub event.Publisher, cfg Config) *Service {
	return NewService(repo, staticSettings{testSettings()}, pub, league.NewMachine(league.DefaultConfig()), cfg,
		WithClock(func() time.Time { return runAt }),
		WithTracer(noop.NewTracerProvider().Tracer("test")),
	)
}

func TestFinalize_CommitsOnce(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	repo.users["u1"] = domain.User{ID: "u1", Name: "Ana", ExperiencePoints: 80}
	pub := &recordingPublisher{}
	svc := newTestService(repo, pub, Config{})

	res, err := svc.Finalize(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, res.State)
	assert.False(t, res.AlreadyProcessed)
	assert.Equal(t, 6, res.PlayersProcessed)
	assert.Equal(t, 1, repo.commitCount())
	assert.Equal(t, int64(170), repo.users["u1"].ExperiencePoints)
	assert.Equal(t, 1, repo.users["u1"].Level)
	assert.True(t, repo.games["g1"].ActivityGenerated)

	assert.ElementsMatch(t, []event.Type{
		event.PlayerLeveledUp,
		event.BadgeEarned,
		event.BadgeEarned,
		event.GameFinalized,
	}, pub.types())

	again, err := svc.Finalize(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, again.AlreadyProcessed)
	assert.Equal(t, StateCommitted, again.State)
	assert.Equal(t, 1, repo.commitCount())
	assert.Equal(t, int64(170), repo.users["u1"].ExperiencePoints)
	assert.Len(t, pub.types(), 4)
}

func TestFinalize_ConsecutiveGamesAccumulate(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	seedGame(repo, finishedGame("g2", gameDate.AddDate(0, 0, 7)))
	svc := newTestService(repo, nil, Config{})

	for _, id := range []string{"g1", "g2", "g1", "g2"} {
		_, err := svc.Finalize(context.Background(), id)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, repo.commitCount())
	assert.Equal(t, 2, repo.badges["u1"][domain.BadgeHatTrick].Count)
	assert.Equal(t, 2, repo.badges["u3"][domain.BadgeParedao].Count)
	assert.Equal(t, 2, repo.stats["u1"].TotalGames)
	assert.Equal(t, 6, repo.stats["u1"].TotalGoals)
	assert.Equal(t, 2, repo.streaks["u1"].CurrentStreak)
	assert.Equal(t, int64(180), repo.users["u1"].ExperiencePoints)
}

func TestFinalize_SameDayGamesBothExtendStreak(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	seedGame(repo, finishedGame("g2", gameDate.Add(3*time.Hour)))
	svc := newTestService(repo, nil, Config{})

	for _, id := range []string{"g1", "g2", "g2"} {
		_, err := svc.Finalize(context.Background(), id)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, repo.commitCount())
	assert.Equal(t, 2, repo.streaks["u1"].CurrentStreak)
	assert.Equal(t, 2, repo.streaks["u1"].LongestStreak)
}

func TestFinalize_LosesClaimRace(t *testing.T) {
	repo := newFakeRepository()
	g := finishedGame("g1", gameDate)
	g.Processed = true
	seedGame(repo, g)
	repo.staleGuard = true
	pub := &recordingPublisher{}
	svc := newTestService(repo, pub, Config{})

	res, err := svc.Finalize(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, res.AlreadyProcessed)
	assert.Equal(t, StateCommitted, res.State)
	assert.Zero(t, res.PlayersProcessed)
	assert.Zero(t, repo.commitCount())
	assert.Empty(t, pub.types())
}

func TestFinalize_ConcurrentDeliveries(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	svc := newTestService(repo, nil, Config{})

	const deliveries = 8
	results := make([]*Result, deliveries)
	var wg sync.WaitGroup
	for i := range deliveries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Finalize(context.Background(), "g1")
			assert.NoError(t, err)
			results[i] = res
		}()
	}
	wg.Wait()

	committed := 0
	for _, r := range results {
		if r != nil && !r.AlreadyProcessed {
			committed++
		}
	}
	assert.Equal(t, 1, committed)
	assert.Equal(t, 1, repo.commitCount())
	assert.Equal(t, 1, repo.stats["u1"].TotalGames)
}

func TestFinalize_ConcurrentGamesOfSamePlayers(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	seedGame(repo, finishedGame("g2", gameDate.AddDate(0, 0, 7)))
	svc := newTestService(repo, nil, Config{})

	// Both runs finish their read phase before either commits.
	var arrived sync.WaitGroup
	arrived.Add(2)
	var calls atomic.Int32
	repo.beforeCommit = func() {
		if calls.Add(1) <= 2 {
			arrived.Done()
			arrived.Wait()
		}
	}

	var wg sync.WaitGroup
	for _, id := range []string{"g1", "g2"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Finalize(context.Background(), id)
			if assert.NoError(t, err) {
				assert.Equal(t, StateCommitted, res.State)
				assert.False(t, res.AlreadyProcessed)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, repo.commitCount())
	assert.Equal(t, 1, repo.staleCommits)
	assert.Equal(t, int64(180), repo.users["u1"].ExperiencePoints)
	assert.Equal(t, int64(2), repo.users["u1"].Version)
	assert.Equal(t, 2, repo.stats["u1"].TotalGames)
	assert.Equal(t, 6, repo.stats["u1"].TotalGoals)
	assert.Equal(t, 2, repo.stats["u4"].GamesLost)
	assert.Equal(t, 2, repo.badges["u1"][domain.BadgeHatTrick].Count)

	month := repo.rankings["month_2026-03_u1"]
	assert.Equal(t, 2, month.GamesAdded)
	assert.Equal(t, int64(180), month.XPAdded)
	assert.Equal(t, 1, repo.rankings["week_2026-W11_u1"].GamesAdded)
	assert.Equal(t, 1, repo.rankings["week_2026-W12_u1"].GamesAdded)
}

func TestFinalize_StaleReadsExhaustAttempts(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	repo.users["u1"] = domain.User{ID: "u1", Name: "Ana"}
	// Another game of u1 commits between every read and commit.
	repo.beforeCommit = func() {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		u := repo.users["u1"]
		u.Version++
		repo.users["u1"] = u
	}
	svc := newTestService(repo, nil, Config{MaxAttempts: 2})

	res, err := svc.Finalize(context.Background(), "g1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.ErrorIs(t, err, domain.ErrStaleRead)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, 2, repo.staleCommits)
	assert.Zero(t, repo.commitCount())
	assert.False(t, repo.games["g1"].Processed)
}

func TestFinalize_NotEnoughPlayers(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	repo.confirmations["g1"] = repo.confirmations["g1"][:5]
	svc := newTestService(repo, nil, Config{})

	res, err := svc.Finalize(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, res.MarkerOnly)
	assert.Zero(t, res.PlayersProcessed)
	require.Equal(t, 1, repo.commitCount())
	assert.Equal(t, 1, repo.commits[0].Writes())
	assert.True(t, repo.games["g1"].Processed)
	assert.Empty(t, repo.users)
}

func TestFinalize_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(repo *fakeRepository)
		gameID  string
		wantErr error
	}{
		{
			name:    "missing game",
			gameID:  "nope",
			wantErr: domain.ErrGameNotFound,
		},
		{
			name:    "no confirmations",
			mutate:  func(repo *fakeRepository) { repo.confirmations["g1"] = nil },
			wantErr: domain.ErrNoConfirmations,
		},
		{
			name:    "deleted game",
			mutate:  func(repo *fakeRepository) { now := gameDate; repo.games["g1"].DeletedAt = &now },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "not finished",
			mutate:  func(repo *fakeRepository) { repo.games["g1"].Status = domain.GameStatusLive },
			wantErr: domain.ErrGameNotFinished,
		},
		{
			name: "live score for unknown team",
			mutate: func(repo *fakeRepository) {
				repo.live["g1"] = &domain.LiveScore{GameID: "g1", Team1ID: "x", Team2ID: "y"}
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			seedGame(repo, finishedGame("g1", gameDate))
			if tt.mutate != nil {
				tt.mutate(repo)
			}
			gameID := tt.gameID
			if gameID == "" {
				gameID = "g1"
			}

			res, err := newTestService(repo, nil, Config{}).Finalize(context.Background(), gameID)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, errors.Is(err, domain.ErrTransient))
			assert.Equal(t, StateFailed, res.State)
			assert.Zero(t, repo.commitCount())
		})
	}
}

func TestFinalize_TransientFailures(t *testing.T) {
	for _, method := range []string{"GetGame", "GetTeams", "Commit"} {
		t.Run(method, func(t *testing.T) {
			repo := newFakeRepository()
			seedGame(repo, finishedGame("g1", gameDate))
			repo.errs[method] = errors.New("connection reset")

			_, err := newTestService(repo, nil, Config{}).Finalize(context.Background(), "g1")
			assert.ErrorIs(t, err, domain.ErrTransient)
			assert.False(t, repo.games["g1"].Processed)
			assert.Zero(t, repo.commitCount())
		})
	}
}

func TestFinalize_BatchTooLarge(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	svc := newTestService(repo, nil, Config{MaxBatchWrites: 10})

	res, err := svc.Finalize(context.Background(), "g1")
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
	assert.Equal(t, StateFailed, res.State)
	assert.Zero(t, repo.commitCount())
	assert.False(t, repo.games["g1"].Processed)
}

func TestFinalize_PublishFailureDoesNotFail(t *testing.T) {
	repo := newFakeRepository()
	seedGame(repo, finishedGame("g1", gameDate))
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down"))
	svc := newTestService(repo, pub, Config{})

	res, err := svc.Finalize(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, res.State)
	pub.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.GameFinalized
	}))
}

func TestHandleGameUpdate(t *testing.T) {
	repo := newFakeRepository()
	g := finishedGame("g1", gameDate)
	seedGame(repo, g)
	svc := newTestService(repo, nil, Config{})

	live := *g
	live.Status = domain.GameStatusLive

	res, err := svc.HandleGameUpdate(context.Background(), domain.GameUpdate{Before: g, After: g})
	require.NoError(t, err)
	assert.True(t, res.Ignored)
	assert.Zero(t, repo.commitCount())

	res, err = svc.HandleGameUpdate(context.Background(), domain.GameUpdate{Before: &live, After: g})
	require.NoError(t, err)
	assert.False(t, res.Ignored)
	assert.Equal(t, StateCommitted, res.State)
	assert.Equal(t, 1, repo.commitCount())
}
