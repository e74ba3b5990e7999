package finalize

import (
	"context"
	"sync"
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/repository"
)

// fakeRepository is an in-memory repository.Finalize. Commit applies plans to
// its own state so consecutive games see each other's effects.
type fakeRepository struct {
	mu sync.Mutex

	games         map[string]*domain.Game
	confirmations map[string][]domain.Confirmation
	teams         map[string][]domain.Team
	live          map[string]*domain.LiveScore
	season        *domain.Season

	users          map[string]domain.User
	stats          map[string]domain.UserStatistics
	streaks        map[string]domain.UserStreak
	badges         map[string]map[domain.BadgeType]domain.UserBadge
	participations map[string]domain.LeagueParticipation
	rankings       map[string]domain.RankingDelta

	// staleGuard keeps returning the game as unprocessed, as a concurrent
	// reader would see it before the other run commits.
	staleGuard bool
	errs       map[string]error
	commits    []*repository.FinalizePlan
	// beforeCommit runs on every Commit call before any check.
	beforeCommit func()
	staleCommits int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		games:          map[string]*domain.Game{},
		confirmations:  map[string][]domain.Confirmation{},
		teams:          map[string][]domain.Team{},
		live:           map[string]*domain.LiveScore{},
		users:          map[string]domain.User{},
		stats:          map[string]domain.UserStatistics{},
		streaks:        map[string]domain.UserStreak{},
		badges:         map[string]map[domain.BadgeType]domain.UserBadge{},
		participations: map[string]domain.LeagueParticipation{},
		rankings:       map[string]domain.RankingDelta{},
		errs:           map[string]error{},
	}
}

func (f *fakeRepository) fail(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[method]
}

func (f *fakeRepository) GetGame(_ context.Context, gameID string) (*domain.Game, error) {
	if err := f.fail("GetGame"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[gameID]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	cp := *g
	if f.staleGuard {
		cp.Processed = false
	}
	return &cp, nil
}

func (f *fakeRepository) GetConfirmations(_ context.Context, gameID string) ([]domain.Confirmation, error) {
	if err := f.fail("GetConfirmations"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Confirmation(nil), f.confirmations[gameID]...), nil
}

func (f *fakeRepository) GetTeams(_ context.Context, gameID string) ([]domain.Team, error) {
	if err := f.fail("GetTeams"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Team(nil), f.teams[gameID]...), nil
}

func (f *fakeRepository) GetLiveScore(_ context.Context, gameID string) (*domain.LiveScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live[gameID], nil
}

func (f *fakeRepository) GetActiveSeason(_ context.Context) (*domain.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.season, nil
}

func (f *fakeRepository) GetUsers(_ context.Context, ids []string) (map[string]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pick(f.users, ids), nil
}

func (f *fakeRepository) GetStatistics(_ context.Context, ids []string) (map[string]domain.UserStatistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pick(f.stats, ids), nil
}

func (f *fakeRepository) GetStreaks(_ context.Context, ids []string, _ *string) (map[string]domain.UserStreak, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pick(f.streaks, ids), nil
}

func (f *fakeRepository) GetBadges(_ context.Context, ids []string) (map[string]map[domain.BadgeType]domain.UserBadge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]map[domain.BadgeType]domain.UserBadge)
	for _, id := range ids {
		held, ok := f.badges[id]
		if !ok {
			continue
		}
		cp := make(map[domain.BadgeType]domain.UserBadge, len(held))
		for k, v := range held {
			cp[k] = v
		}
		out[id] = cp
	}
	return out, nil
}

func (f *fakeRepository) GetParticipations(_ context.Context, _ string, ids []string) (map[string]domain.LeagueParticipation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pick(f.participations, ids), nil
}

func (f *fakeRepository) GetMonthlyGoals(_ context.Context, _, _ time.Time, _ []string) (map[string]int, int, error) {
	return map[string]int{}, 0, nil
}

func (f *fakeRepository) GetScheduleAttendance(_ context.Context, _ string, _, _ time.Time, _ []string) (int, map[string]int, error) {
	return 0, map[string]int{}, nil
}

func (f *fakeRepository) Commit(_ context.Context, plan *repository.FinalizePlan) error {
	if f.beforeCommit != nil {
		f.beforeCommit()
	}
	if err := f.fail("Commit"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	g, ok := f.games[plan.GameID]
	if !ok {
		return domain.ErrGameNotFound
	}
	if g.Processed {
		return domain.ErrAlreadyClaimed
	}
	for _, u := range plan.Users {
		if f.users[u.ID].Version != u.Version {
			f.staleCommits++
			return domain.ErrStaleRead
		}
	}
	g.Processed = true
	at := plan.ProcessedAt
	g.ProcessedAt = &at
	if plan.Activity != nil {
		g.ActivityGenerated = true
	}

	for _, u := range plan.Users {
		u.Version++
		f.users[u.ID] = u
	}
	for _, s := range plan.Statistics {
		f.stats[s.UserID] = s
	}
	for _, s := range plan.Streaks {
		f.streaks[s.UserID] = s
	}
	for _, b := range plan.Badges {
		if f.badges[b.UserID] == nil {
			f.badges[b.UserID] = map[domain.BadgeType]domain.UserBadge{}
		}
		f.badges[b.UserID][b.BadgeID] = b
	}
	for _, p := range plan.Participations {
		f.participations[p.UserID] = p
	}
	for _, d := range plan.RankingDeltas {
		acc := f.rankings[d.ID]
		acc.ID, acc.UserID, acc.Period, acc.PeriodKey = d.ID, d.UserID, d.Period, d.PeriodKey
		acc.GoalsAdded += d.GoalsAdded
		acc.AssistsAdded += d.AssistsAdded
		acc.SavesAdded += d.SavesAdded
		acc.XPAdded += d.XPAdded
		acc.GamesAdded += d.GamesAdded
		acc.WinsAdded += d.WinsAdded
		acc.MVPAdded += d.MVPAdded
		acc.UpdatedAt = d.UpdatedAt
		f.rankings[d.ID] = acc
	}
	f.commits = append(f.commits, plan)
	return nil
}

func (f *fakeRepository) commitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commits)
}

func pick[V any](m map[string]V, ids []string) map[string]V {
	out := make(map[string]V, len(ids))
	for _, id := range ids {
		if v, ok := m[id]; ok {
			out[id] = v
		}
	}
	return out
}
