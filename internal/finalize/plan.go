package finalize

import (
	"time"

	"github.com/google/uuid"

	"github.com/futebadosparcas/matchday/internal/badge"
	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/league"
	"github.com/futebadosparcas/matchday/internal/repository"
	"github.com/futebadosparcas/matchday/internal/streak"
	"github.com/futebadosparcas/matchday/internal/xp"
)

// Inputs is everything the read phase loaded for one game. Maps are keyed by
// user id; absent entries mean the record does not exist yet.
type Inputs struct {
	Game     *domain.Game
	Outcomes []domain.PlayerGameOutcome
	Names    map[string]string
	Settings xp.Settings
	Season   *domain.Season
	Now      time.Time

	Users          map[string]domain.User
	Statistics     map[string]domain.UserStatistics
	Streaks        map[string]domain.UserStreak
	Badges         map[string]map[domain.BadgeType]domain.UserBadge
	Participations map[string]domain.LeagueParticipation

	// Month aggregates exclude the game being finalized.
	MonthGoals            map[string]int
	MonthLeaderGoals      int
	MonthScheduleGames    int
	MonthScheduleAttended map[string]int
}

// Computed is the output of the pure phase: the mutation plan plus the per
// player summary returned to callers and used for post-commit events.
type Computed struct {
	Plan    *repository.FinalizePlan
	Players []PlayerResult
}

// BuildPlan computes every mutation of a finalization. It performs no I/O and
// does not modify in.
func BuildPlan(in Inputs, machine *league.Machine) Computed {
	g := in.Game
	plan := &repository.FinalizePlan{GameID: g.ID, ProcessedAt: in.Now}
	players := make([]PlayerResult, 0, len(in.Outcomes))

	leader := in.MonthLeaderGoals
	for _, o := range in.Outcomes {
		leader = max(leader, in.MonthGoals[o.UserID]+o.Goals)
	}

	for _, o := range in.Outcomes {
		user, ok := in.Users[o.UserID]
		if !ok {
			user = domain.User{ID: o.UserID, Name: in.Names[o.UserID]}
		}
		user.MilestonesAchieved = append([]string(nil), user.MilestonesAchieved...)

		stats, ok := in.Statistics[o.UserID]
		if !ok {
			stats = domain.UserStatistics{UserID: o.UserID}
		}
		applyOutcome(&stats, o)
		stats.UpdatedAt = in.Now

		prior, ok := in.Streaks[o.UserID]
		if !ok {
			prior = streak.New(o.UserID, g.ScheduleID)
		}
		streakBefore := prior.CurrentStreak
		if streak.IsExpired(prior, g.Date) {
			streakBefore = 0
		}
		nextStreak := streak.Advance(prior, g.Date)

		milestones, milestoneXP := xp.CheckMilestones(&stats, user.MilestonesAchieved)
		ev := xp.EventsFromOutcome(o, streakBefore)
		ev.MilestoneXP = milestoneXP
		breakdown := xp.Calculate(in.Settings, ev)
		award := xp.Apply(user.ExperiencePoints, breakdown.Total())

		user.ExperiencePoints = award.NewTotal
		user.Level = award.NewLevel
		user.MilestonesAchieved = append(user.MilestonesAchieved, milestones...)
		user.UpdatedAt = in.Now

		plan.Users = append(plan.Users, user)
		plan.Statistics = append(plan.Statistics, stats)
		plan.Streaks = append(plan.Streaks, nextStreak)
		plan.Confirmations = append(plan.Confirmations, repository.ConfirmationXP{UserID: o.UserID, XP: award.Delta})
		plan.XPLogs = append(plan.XPLogs, xpLog(g.ID, o, breakdown, award, milestones, in.Now))
		plan.RankingDeltas = append(plan.RankingDeltas,
			rankingDelta(domain.RankingPeriodWeek, domain.WeekKey(g.Date), o, award.Delta, in.Now),
			rankingDelta(domain.RankingPeriodMonth, domain.MonthKey(g.Date), o, award.Delta, in.Now),
		)

		res := PlayerResult{
			UserID:      o.UserID,
			XPEarned:    award.Delta,
			TotalXP:     award.NewTotal,
			OldLevel:    award.OldLevel,
			NewLevel:    award.NewLevel,
			Milestones:  milestones,
			MilestoneXP: milestoneXP,
			Streak:      nextStreak.CurrentStreak,
		}

		snap := badge.Snapshot{
			UserID:           o.UserID,
			Outcome:          o,
			Stats:            stats,
			Streak:           nextStreak,
			Level:            award.NewLevel,
			MonthGoals:       in.MonthGoals[o.UserID] + o.Goals,
			MonthLeaderGoals: leader,
		}
		if g.ScheduleID != nil {
			snap.MonthScheduleGames = in.MonthScheduleGames + 1
			snap.MonthScheduleAttended = in.MonthScheduleAttended[o.UserID] + 1
		}
		for _, grant := range badge.Apply(o.UserID, in.Badges[o.UserID], badge.Evaluate(snap), g.Date) {
			plan.Badges = append(plan.Badges, grant.Badge)
			res.Badges = append(res.Badges, grant.Badge)
		}

		if in.Season != nil {
			p, ok := in.Participations[o.UserID]
			if !ok {
				p = league.NewParticipation(o.UserID, user.Name, in.Season.ID, nil)
			}
			next, t := machine.Advance(p, league.GameRecord{
				GameID:   g.ID,
				Outcome:  o,
				XPEarned: award.Delta,
				PlayedAt: g.Date,
			})
			if user.Name != "" {
				next.UserName = user.Name
			}
			plan.Participations = append(plan.Participations, next)

			res.SeasonID = in.Season.ID
			res.Division = next.Division
			res.PreviousDiv = t.Previous
			res.Promoted = t.Promoted
			res.Relegated = t.Relegated
			res.LeagueRating = next.LeagueRating
		}

		players = append(players, res)
	}

	if !g.ActivityGenerated {
		plan.Activity = gameActivity(g, len(in.Outcomes), in.Now)
	}

	return Computed{Plan: plan, Players: players}
}

// MarkerPlan is the plan of a game finalized without player effects.
func MarkerPlan(g *domain.Game, now time.Time) *repository.FinalizePlan {
	return &repository.FinalizePlan{GameID: g.ID, ProcessedAt: now}
}

func applyOutcome(s *domain.UserStatistics, o domain.PlayerGameOutcome) {
	s.TotalGames++
	s.TotalGoals += o.Goals
	s.TotalAssists += o.Assists
	s.TotalSaves += o.Saves
	s.TotalYellowCards += o.YellowCards
	s.TotalRedCards += o.RedCards
	switch o.Result {
	case domain.ResultWin:
		s.GamesWon++
	case domain.ResultLoss:
		s.GamesLost++
	default:
		s.GamesDraw++
	}
	if o.WasMVP {
		s.BestPlayerCount++
	}
	if o.Position == domain.PositionGoalkeeper && o.CleanSheet() {
		s.CleanSheets++
	}
	s.RecomputeRates()
}

func xpLog(gameID string, o domain.PlayerGameOutcome, b xp.Breakdown, a xp.Award, milestones []string, now time.Time) domain.XPLog {
	return domain.XPLog{
		ID:                 uuid.NewString(),
		TransactionID:      xp.TransactionID(gameID, o.UserID),
		UserID:             o.UserID,
		GameID:             gameID,
		XPEarned:           a.Delta,
		XPBefore:           a.OldTotal,
		XPAfter:            a.NewTotal,
		LevelBefore:        a.OldLevel,
		LevelAfter:         a.NewLevel,
		XPParticipation:    b.Participation,
		XPGoals:            b.Goals,
		XPAssists:          b.Assists,
		XPSaves:            b.Saves,
		XPResult:           b.Result,
		XPMVP:              b.MVP,
		XPCleanSheet:       b.CleanSheet,
		XPMilestones:       b.Milestones,
		XPStreak:           b.Streak,
		XPPenalty:          b.Penalty,
		Goals:              o.Goals,
		Assists:            o.Assists,
		Saves:              o.Saves,
		WasMVP:             o.WasMVP,
		GameResult:         o.Result,
		MilestonesUnlocked: milestones,
		CreatedAt:          now,
	}
}

// rankingDelta is the contribution of one game to a period ranking. The
// period is taken from the game date so a late finalization still counts in
// the week the game was played.
func rankingDelta(period, key string, o domain.PlayerGameOutcome, xpEarned int64, now time.Time) domain.RankingDelta {
	d := domain.RankingDelta{
		ID:           domain.RankingDeltaID(period, key, o.UserID),
		UserID:       o.UserID,
		Period:       period,
		PeriodKey:    key,
		GoalsAdded:   o.Goals,
		AssistsAdded: o.Assists,
		SavesAdded:   o.Saves,
		XPAdded:      xpEarned,
		GamesAdded:   1,
		UpdatedAt:    now,
	}
	if o.Result == domain.ResultWin {
		d.WinsAdded = 1
	}
	if o.WasMVP {
		d.MVPAdded = 1
	}
	return d
}

func gameActivity(g *domain.Game, players int, now time.Time) *domain.Activity {
	payload := map[string]any{
		"team1_score": g.Team1Score,
		"team2_score": g.Team2Score,
		"players":     players,
	}
	if g.MVPID != nil {
		payload["mvp_id"] = *g.MVPID
	}
	return &domain.Activity{
		ID:        uuid.NewString(),
		Type:      domain.ActivityGameFinished,
		GameID:    g.ID,
		GroupID:   g.GroupID,
		Payload:   payload,
		CreatedAt: now,
	}
}
