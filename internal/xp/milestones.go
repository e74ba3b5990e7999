package xp

import "github.com/futebadosparcas/matchday/internal/domain"

// Milestone is a one-time XP reward for crossing a cumulative statistic.
type Milestone struct {
	Name      string
	XPReward  int64
	Threshold int
	Stat      func(*domain.UserStatistics) int
}

func totalGames(s *domain.UserStatistics) int   { return s.TotalGames }
func totalGoals(s *domain.UserStatistics) int   { return s.TotalGoals }
func totalAssists(s *domain.UserStatistics) int { return s.TotalAssists }
func totalSaves(s *domain.UserStatistics) int   { return s.TotalSaves }
func mvpCount(s *domain.UserStatistics) int     { return s.BestPlayerCount }
func gamesWon(s *domain.UserStatistics) int     { return s.GamesWon }

// Milestones is evaluated in order. Each milestone is granted at most once per user.
var Milestones = []Milestone{
	{"GAMES_10", 50, 10, totalGames},
	{"GAMES_25", 100, 25, totalGames},
	{"GAMES_50", 200, 50, totalGames},
	{"GAMES_100", 500, 100, totalGames},
	{"GAMES_250", 1000, 250, totalGames},
	{"GAMES_500", 2500, 500, totalGames},

	{"GOALS_10", 50, 10, totalGoals},
	{"GOALS_25", 100, 25, totalGoals},
	{"GOALS_50", 200, 50, totalGoals},
	{"GOALS_100", 500, 100, totalGoals},
	{"GOALS_250", 1000, 250, totalGoals},

	{"ASSISTS_10", 50, 10, totalAssists},
	{"ASSISTS_25", 100, 25, totalAssists},
	{"ASSISTS_50", 200, 50, totalAssists},
	{"ASSISTS_100", 500, 100, totalAssists},

	{"SAVES_25", 50, 25, totalSaves},
	{"SAVES_50", 100, 50, totalSaves},
	{"SAVES_100", 200, 100, totalSaves},
	{"SAVES_250", 500, 250, totalSaves},

	{"MVP_5", 100, 5, mvpCount},
	{"MVP_10", 300, 10, mvpCount},
	{"MVP_25", 750, 25, mvpCount},
	{"MVP_50", 1500, 50, mvpCount},

	{"WINS_10", 75, 10, gamesWon},
	{"WINS_25", 150, 25, gamesWon},
	{"WINS_50", 300, 50, gamesWon},
	{"WINS_100", 750, 100, gamesWon},
}

// CheckMilestones returns the milestones stats now satisfies that are not in
// achieved, and the XP they award.
func CheckMilestones(stats *domain.UserStatistics, achieved []string) ([]string, int64) {
	have := make(map[string]struct{}, len(achieved))
	for _, a := range achieved {
		have[a] = struct{}{}
	}

	var (
		unlocked []string
		reward   int64
	)
	for _, m := range Milestones {
		if _, ok := have[m.Name]; ok {
			continue
		}
		if m.Stat(stats) >= m.Threshold {
			unlocked = append(unlocked, m.Name)
			reward += m.XPReward
		}
	}
	return unlocked, reward
}
