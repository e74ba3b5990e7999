package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/domain"
)

func badgesOf(awards []Award) []domain.BadgeType {
	out := make([]domain.BadgeType, 0, len(awards))
	for _, a := range awards {
		out = append(out, a.Badge)
	}
	return out
}

func TestRules_Isolated(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		snap Snapshot
		want bool
	}{
		{"hat trick at three goals", HatTrick, Snapshot{Outcome: domain.PlayerGameOutcome{Goals: 3}}, true},
		{"two goals is not a hat trick", HatTrick, Snapshot{Outcome: domain.PlayerGameOutcome{Goals: 2}}, false},
		{"goalkeeper clean sheet", Paredao, Snapshot{Outcome: domain.PlayerGameOutcome{
			Position: domain.PositionGoalkeeper, TeamID: "t1", GoalsAgainst: 0,
		}}, true},
		{"field player clean sheet", Paredao, Snapshot{Outcome: domain.PlayerGameOutcome{
			Position: domain.PositionField, TeamID: "t1", GoalsAgainst: 0,
		}}, false},
		{"goalkeeper without team", Paredao, Snapshot{Outcome: domain.PlayerGameOutcome{
			Position: domain.PositionGoalkeeper,
		}}, false},
		{"goalkeeper conceded", Paredao, Snapshot{Outcome: domain.PlayerGameOutcome{
			Position: domain.PositionGoalkeeper, TeamID: "t1", GoalsAgainst: 1,
		}}, false},
		{"monthly leader", ArtilheiroMes, Snapshot{MonthGoals: 6, MonthLeaderGoals: 6}, true},
		{"monthly runner up", ArtilheiroMes, Snapshot{MonthGoals: 6, MonthLeaderGoals: 7}, false},
		{"monthly leader below floor", ArtilheiroMes, Snapshot{MonthGoals: 4}, false},
		{"full month", Fominha, Snapshot{MonthScheduleGames: 4, MonthScheduleAttended: 4}, true},
		{"missed one", Fominha, Snapshot{MonthScheduleGames: 5, MonthScheduleAttended: 4}, false},
		{"short month", Fominha, Snapshot{MonthScheduleGames: 3, MonthScheduleAttended: 3}, false},
		{"streak reaches 7", Streak7, Snapshot{Streak: domain.UserStreak{CurrentStreak: 7}}, true},
		{"streak past 7", Streak7, Snapshot{Streak: domain.UserStreak{CurrentStreak: 8}}, false},
		{"streak reaches 30", Streak30, Snapshot{Streak: domain.UserStreak{CurrentStreak: 30}}, true},
		{"organizer", OrganizadorMaster, Snapshot{Stats: domain.UserStatistics{GamesOrganized: 50}}, true},
		{"influencer", Influencer, Snapshot{Stats: domain.UserStatistics{InvitesAccepted: 9}}, false},
		{"legend", Lenda, Snapshot{Stats: domain.UserStatistics{TotalGames: 500}}, true},
		{"myth", Mito, Snapshot{Stats: domain.UserStatistics{BestPlayerCount: 100}}, true},
		{"black belt", FaixaPreta, Snapshot{Level: 10}, true},
		{"level nine", FaixaPreta, Snapshot{Level: 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Check(tt.snap))
		})
	}
}

func TestEvaluate_MultipleRules(t *testing.T) {
	snap := Snapshot{
		UserID: "u1",
		Outcome: domain.PlayerGameOutcome{
			Position: domain.PositionGoalkeeper, TeamID: "t1", Goals: 4,
		},
		Streak: domain.UserStreak{CurrentStreak: 7},
	}

	got := badgesOf(Evaluate(snap))
	assert.Equal(t, []domain.BadgeType{domain.BadgeHatTrick, domain.BadgeParedao, domain.BadgeStreak7}, got)
}

func TestEvaluate_NothingFires(t *testing.T) {
	assert.Empty(t, Evaluate(Snapshot{UserID: "u1", Outcome: domain.PlayerGameOutcome{Goals: 1, TeamID: "t1", GoalsAgainst: 2}}))
}

func TestApply_FirstGrant(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	grants := Apply("u1", nil, []Award{{Badge: domain.BadgeHatTrick, Policy: Repeatable}}, now)

	require.Len(t, grants, 1)
	assert.True(t, grants[0].New)
	assert.Equal(t, domain.UserBadge{
		UserID: "u1", BadgeID: domain.BadgeHatTrick, Count: 1, UnlockedAt: now, LastEarnedAt: now,
	}, grants[0].Badge)
}

func TestApply_RepeatableIncrementsOncePerGame(t *testing.T) {
	unlocked := time.Date(2026, 1, 5, 20, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	existing := map[domain.BadgeType]domain.UserBadge{
		domain.BadgeHatTrick: {UserID: "u1", BadgeID: domain.BadgeHatTrick, Count: 2, UnlockedAt: unlocked, LastEarnedAt: unlocked},
	}

	// four goals still yield a single hat-trick award
	awards := Evaluate(Snapshot{UserID: "u1", Outcome: domain.PlayerGameOutcome{Goals: 4, TeamID: "t1", GoalsAgainst: 1}})
	grants := Apply("u1", existing, awards, now)

	require.Len(t, grants, 1)
	assert.False(t, grants[0].New)
	assert.Equal(t, 3, grants[0].Badge.Count)
	assert.Equal(t, unlocked, grants[0].Badge.UnlockedAt)
	assert.Equal(t, now, grants[0].Badge.LastEarnedAt)
	assert.Equal(t, 2, existing[domain.BadgeHatTrick].Count, "input map must not change")
}

func TestApply_OneShotNeverRegranted(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	existing := map[domain.BadgeType]domain.UserBadge{
		domain.BadgeFaixaPreta: {UserID: "u1", BadgeID: domain.BadgeFaixaPreta, Count: 1},
	}

	grants := Apply("u1", existing, []Award{{Badge: domain.BadgeFaixaPreta, Policy: OneShot}}, now)
	assert.Empty(t, grants)
}

func TestApply_OncePerPeriod(t *testing.T) {
	march := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	existing := map[domain.BadgeType]domain.UserBadge{
		domain.BadgeArtilheiroMes: {UserID: "u1", BadgeID: domain.BadgeArtilheiroMes, Count: 1, UnlockedAt: march, LastEarnedAt: march},
	}
	award := []Award{{Badge: domain.BadgeArtilheiroMes, Policy: OncePerPeriod}}

	assert.Empty(t, Apply("u1", existing, award, march.AddDate(0, 0, 20)))

	april := time.Date(2026, 4, 6, 20, 0, 0, 0, time.UTC)
	grants := Apply("u1", existing, award, april)
	require.Len(t, grants, 1)
	assert.Equal(t, 2, grants[0].Badge.Count)
	assert.Equal(t, "2026-04", PeriodKey(grants[0].Badge.LastEarnedAt))
}

func TestRuleFor(t *testing.T) {
	r, ok := RuleFor(domain.BadgeMito)
	require.True(t, ok)
	assert.Equal(t, OneShot, r.Policy)
	assert.Equal(t, domain.RarityLendario, r.Rarity)

	_, ok = RuleFor(domain.BadgeType("UNKNOWN"))
	assert.False(t, ok)
	assert.Len(t, Rules, 11)
}
