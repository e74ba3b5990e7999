package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/repository"
)

// FinalizeRepository implements repository.Finalize for PostgreSQL
type FinalizeRepository struct {
	db *pgxpool.Pool
}

// NewFinalizeRepository creates a new FinalizeRepository
func NewFinalizeRepository(db *pgxpool.Pool) *FinalizeRepository {
	return &FinalizeRepository{db: db}
}

// GetGame retrieves a game by id, deleted games included
func (r *FinalizeRepository) GetGame(ctx context.Context, gameID string) (*domain.Game, error) {
	return getGame(ctx, r.db, gameID)
}

func getGame(ctx context.Context, q querier, gameID string) (*domain.Game, error) {
	g, err := scanGame(q.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

// GetConfirmations returns the CONFIRMED attendance records of a game
func (r *FinalizeRepository) GetConfirmations(ctx context.Context, gameID string) ([]domain.Confirmation, error) {
	query := `
		SELECT game_id, user_id, user_name, status, position, is_casual, payment_status,
		       goals, assists, saves, yellow_cards, red_cards, xp_earned
		FROM confirmations
		WHERE game_id = $1 AND status = 'CONFIRMED'
		ORDER BY user_id
	`
	rows, err := r.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get confirmations: %w", err)
	}
	defer rows.Close()

	var out []domain.Confirmation
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetTeams returns the teams of a game
func (r *FinalizeRepository) GetTeams(ctx context.Context, gameID string) ([]domain.Team, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, game_id, name, player_ids, score FROM teams WHERE game_id = $1 ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}
	defer rows.Close()

	var out []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.GameID, &t.Name, &t.PlayerIDs, &t.Score); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetLiveScore returns nil without error when the game was not scored live
func (r *FinalizeRepository) GetLiveScore(ctx context.Context, gameID string) (*domain.LiveScore, error) {
	var ls domain.LiveScore
	var events []byte
	err := r.db.QueryRow(ctx, `
		SELECT game_id, team1_id, team2_id, team1_score, team2_score, events
		FROM live_scores WHERE game_id = $1`, gameID,
	).Scan(&ls.GameID, &ls.Team1ID, &ls.Team2ID, &ls.Team1Score, &ls.Team2Score, &events)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get live score: %w", err)
	}
	if len(events) > 0 {
		if err := json.Unmarshal(events, &ls.Events); err != nil {
			return nil, fmt.Errorf("failed to decode live events: %w", err)
		}
	}
	return &ls, nil
}

// GetActiveSeason returns nil without error when no season is active
func (r *FinalizeRepository) GetActiveSeason(ctx context.Context) (*domain.Season, error) {
	return getActiveSeason(ctx, r.db)
}

func getActiveSeason(ctx context.Context, q querier) (*domain.Season, error) {
	s, err := scanSeason(q.QueryRow(ctx,
		`SELECT id, name, start_date, end_date, is_active FROM seasons WHERE is_active LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active season: %w", err)
	}
	return s, nil
}

// GetUsers loads the users by id together with their progression version
func (r *FinalizeRepository) GetUsers(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, experience_points, level, milestones_achieved, progression_version, deleted_at, updated_at
		FROM users WHERE id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.User, len(userIDs))
	for rows.Next() {
		var u domain.User
		err := rows.Scan(&u.ID, &u.Name, &u.ExperiencePoints, &u.Level, &u.MilestonesAchieved, &u.Version, &u.DeletedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}

// GetStatistics loads cumulative statistics by user id
func (r *FinalizeRepository) GetStatistics(ctx context.Context, userIDs []string) (map[string]domain.UserStatistics, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, total_games, total_goals, total_assists, total_saves, total_yellow_cards,
		       total_red_cards, games_won, games_lost, games_draw, best_player_count, clean_sheets,
		       games_organized, invites_accepted, win_rate, goals_per_game, updated_at
		FROM statistics WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.UserStatistics, len(userIDs))
	for rows.Next() {
		var s domain.UserStatistics
		err := rows.Scan(&s.UserID, &s.TotalGames, &s.TotalGoals, &s.TotalAssists, &s.TotalSaves, &s.TotalYellowCards,
			&s.TotalRedCards, &s.GamesWon, &s.GamesLost, &s.GamesDraw, &s.BestPlayerCount, &s.CleanSheets,
			&s.GamesOrganized, &s.InvitesAccepted, &s.WinRate, &s.GoalsPerGame, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out[s.UserID] = s
	}
	return out, rows.Err()
}

// GetStreaks loads the streaks of the given schedule (nil for the global streak)
func (r *FinalizeRepository) GetStreaks(ctx context.Context, userIDs []string, scheduleID *string) (map[string]domain.UserStreak, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, schedule_key, current_streak, longest_streak, last_game_date, streak_started_at, updated_at
		FROM user_streaks WHERE user_id = ANY($1) AND schedule_key = $2`, userIDs, scheduleKey(scheduleID))
	if err != nil {
		return nil, fmt.Errorf("failed to get streaks: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.UserStreak, len(userIDs))
	for rows.Next() {
		s, _, err := scanStreak(rows)
		if err != nil {
			return nil, err
		}
		out[s.UserID] = s
	}
	return out, rows.Err()
}

// GetBadges loads the badges held by each user
func (r *FinalizeRepository) GetBadges(ctx context.Context, userIDs []string) (map[string]map[domain.BadgeType]domain.UserBadge, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, badge_id, count, unlocked_at, last_earned_at
		FROM user_badges WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[domain.BadgeType]domain.UserBadge, len(userIDs))
	for rows.Next() {
		var b domain.UserBadge
		var badgeID string
		if err := rows.Scan(&b.UserID, &badgeID, &b.Count, &b.UnlockedAt, &b.LastEarnedAt); err != nil {
			return nil, err
		}
		if b.BadgeID, err = domain.ParseBadgeType(badgeID); err != nil {
			return nil, fmt.Errorf("badge of user %s: %w", b.UserID, err)
		}
		if out[b.UserID] == nil {
			out[b.UserID] = make(map[domain.BadgeType]domain.UserBadge)
		}
		out[b.UserID][b.BadgeID] = b
	}
	return out, rows.Err()
}

// GetParticipations loads season standings by user id
func (r *FinalizeRepository) GetParticipations(ctx context.Context, seasonID string, userIDs []string) (map[string]domain.LeagueParticipation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+participationColumns+` FROM league_participations WHERE season_id = $1 AND user_id = ANY($2)`,
		seasonID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get participations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.LeagueParticipation, len(userIDs))
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		out[p.UserID] = p
	}
	return out, rows.Err()
}

// GetMonthlyGoals sums goals of processed games played within [from, to)
func (r *FinalizeRepository) GetMonthlyGoals(ctx context.Context, from, to time.Time, userIDs []string) (map[string]int, int, error) {
	const totals = `
		SELECT c.user_id, SUM(c.goals)::int AS total
		FROM confirmations c
		JOIN games g ON g.id = c.game_id
		WHERE g.processed AND g.deleted_at IS NULL
		  AND g.date >= $1 AND g.date < $2
		  AND c.status = 'CONFIRMED'
		GROUP BY c.user_id
	`

	var leader int
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(total), 0) FROM (`+totals+`) t`, from, to).Scan(&leader); err != nil {
		return nil, 0, fmt.Errorf("failed to get monthly leader: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT user_id, total FROM (`+totals+`) t WHERE user_id = ANY($3)`, from, to, userIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get monthly goals: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int, len(userIDs))
	for rows.Next() {
		var userID string
		var total int
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, 0, err
		}
		out[userID] = total
	}
	return out, leader, rows.Err()
}

// GetScheduleAttendance counts processed games of a schedule within [from, to)
func (r *FinalizeRepository) GetScheduleAttendance(ctx context.Context, scheduleID string, from, to time.Time, userIDs []string) (int, map[string]int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM games
		WHERE schedule_id = $1 AND processed AND deleted_at IS NULL
		  AND date >= $2 AND date < $3`, scheduleID, from, to,
	).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count schedule games: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.user_id, COUNT(*)
		FROM confirmations c
		JOIN games g ON g.id = c.game_id
		WHERE g.schedule_id = $1 AND g.processed AND g.deleted_at IS NULL
		  AND g.date >= $2 AND g.date < $3
		  AND c.status = 'CONFIRMED' AND c.user_id = ANY($4)
		GROUP BY c.user_id`, scheduleID, from, to, userIDs)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get schedule attendance: %w", err)
	}
	defer rows.Close()

	attended := make(map[string]int, len(userIDs))
	for rows.Next() {
		var userID string
		var n int
		if err := rows.Scan(&userID, &n); err != nil {
			return 0, nil, err
		}
		attended[userID] = n
	}
	return total, attended, rows.Err()
}

// Commit claims the processed marker and applies every mutation of the plan in
// one transaction. A marker that is already set rolls the transaction back.
//
// User rows are written first, in id order, and only while their progression
// version still equals the one the plan was computed from. The row locks they
// take serialize the remaining per-player writes of concurrent games, and a
// version mismatch rolls everything back with domain.ErrStaleRead.
func (r *FinalizeRepository) Commit(ctx context.Context, plan *repository.FinalizePlan) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE games
		SET processed = TRUE, processed_at = $2, activity_generated = activity_generated OR $3, updated_at = $2
		WHERE id = $1 AND processed = FALSE`,
		plan.GameID, plan.ProcessedAt, plan.Activity != nil)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToClaimGame, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyClaimed
	}

	batch, err := planBatch(plan)
	if err != nil {
		return err
	}
	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return fmt.Errorf("failed to apply finalize mutation %d: %w", i, err)
			}
			if i < len(plan.Users) && tag.RowsAffected() == 0 {
				_ = results.Close()
				return domain.ErrStaleRead
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to apply finalize mutations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

// planBatch queues the user upserts first so Commit can match their results
// against plan.Users.
func planBatch(plan *repository.FinalizePlan) (*pgx.Batch, error) {
	b := &pgx.Batch{}

	users := slices.Clone(plan.Users)
	slices.SortFunc(users, func(a, b domain.User) int { return strings.Compare(a.ID, b.ID) })
	for _, u := range users {
		b.Queue(`
			INSERT INTO users (id, name, experience_points, level, milestones_achieved, progression_version, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6::bigint + 1, $7)
			ON CONFLICT (id) DO UPDATE SET
				experience_points = EXCLUDED.experience_points,
				level = EXCLUDED.level,
				milestones_achieved = EXCLUDED.milestones_achieved,
				progression_version = users.progression_version + 1,
				updated_at = EXCLUDED.updated_at
			WHERE users.progression_version = $6`,
			u.ID, u.Name, u.ExperiencePoints, u.Level, nonNil(u.MilestonesAchieved), u.Version, u.UpdatedAt)
	}

	for _, c := range plan.Confirmations {
		b.Queue(`UPDATE confirmations SET xp_earned = $3 WHERE game_id = $1 AND user_id = $2`,
			plan.GameID, c.UserID, c.XP)
	}

	for _, s := range plan.Statistics {
		b.Queue(`
			INSERT INTO statistics (user_id, total_games, total_goals, total_assists, total_saves,
				total_yellow_cards, total_red_cards, games_won, games_lost, games_draw, best_player_count,
				clean_sheets, games_organized, invites_accepted, win_rate, goals_per_game, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (user_id) DO UPDATE SET
				total_games = EXCLUDED.total_games,
				total_goals = EXCLUDED.total_goals,
				total_assists = EXCLUDED.total_assists,
				total_saves = EXCLUDED.total_saves,
				total_yellow_cards = EXCLUDED.total_yellow_cards,
				total_red_cards = EXCLUDED.total_red_cards,
				games_won = EXCLUDED.games_won,
				games_lost = EXCLUDED.games_lost,
				games_draw = EXCLUDED.games_draw,
				best_player_count = EXCLUDED.best_player_count,
				clean_sheets = EXCLUDED.clean_sheets,
				win_rate = EXCLUDED.win_rate,
				goals_per_game = EXCLUDED.goals_per_game,
				updated_at = EXCLUDED.updated_at`,
			s.UserID, s.TotalGames, s.TotalGoals, s.TotalAssists, s.TotalSaves,
			s.TotalYellowCards, s.TotalRedCards, s.GamesWon, s.GamesLost, s.GamesDraw, s.BestPlayerCount,
			s.CleanSheets, s.GamesOrganized, s.InvitesAccepted, s.WinRate, s.GoalsPerGame, s.UpdatedAt)
	}

	for _, s := range plan.Streaks {
		queueStreakUpsert(b, s)
	}

	for _, bd := range plan.Badges {
		b.Queue(`
			INSERT INTO user_badges (user_id, badge_id, count, unlocked_at, last_earned_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, badge_id) DO UPDATE SET
				count = EXCLUDED.count,
				last_earned_at = EXCLUDED.last_earned_at`,
			bd.UserID, string(bd.BadgeID), bd.Count, bd.UnlockedAt, bd.LastEarnedAt)
	}

	for _, p := range plan.Participations {
		recent, err := json.Marshal(p.RecentGames)
		if err != nil {
			return nil, fmt.Errorf("failed to encode recent games of %s: %w", p.ID, err)
		}
		b.Queue(`
			INSERT INTO league_participations (id, user_id, season_id, user_name, division, league_rating,
				promotion_progress, relegation_progress, protection_games, points, games_played, wins,
				draws, losses, goals_scored, goals_conceded, mvp_count, recent_games, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			ON CONFLICT (id) DO UPDATE SET
				user_name = EXCLUDED.user_name,
				division = EXCLUDED.division,
				league_rating = EXCLUDED.league_rating,
				promotion_progress = EXCLUDED.promotion_progress,
				relegation_progress = EXCLUDED.relegation_progress,
				protection_games = EXCLUDED.protection_games,
				points = EXCLUDED.points,
				games_played = EXCLUDED.games_played,
				wins = EXCLUDED.wins,
				draws = EXCLUDED.draws,
				losses = EXCLUDED.losses,
				goals_scored = EXCLUDED.goals_scored,
				goals_conceded = EXCLUDED.goals_conceded,
				mvp_count = EXCLUDED.mvp_count,
				recent_games = EXCLUDED.recent_games,
				updated_at = EXCLUDED.updated_at`,
			p.ID, p.UserID, p.SeasonID, p.UserName, string(p.Division), p.LeagueRating,
			p.PromotionProgress, p.RelegationProgress, p.ProtectionGames, p.Points, p.GamesPlayed, p.Wins,
			p.Draws, p.Losses, p.GoalsScored, p.GoalsConceded, p.MVPCount, recent, p.UpdatedAt)
	}

	for _, l := range plan.XPLogs {
		b.Queue(`
			INSERT INTO xp_logs (id, transaction_id, user_id, game_id, xp_earned, xp_before, xp_after,
				level_before, level_after, xp_participation, xp_goals, xp_assists, xp_saves, xp_result,
				xp_mvp, xp_clean_sheet, xp_milestones, xp_streak, xp_penalty, goals, assists, saves,
				was_mvp, game_result, milestones_unlocked, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
				$20, $21, $22, $23, $24, $25, $26)
			ON CONFLICT (transaction_id) DO NOTHING`,
			l.ID, l.TransactionID, l.UserID, l.GameID, l.XPEarned, l.XPBefore, l.XPAfter,
			l.LevelBefore, l.LevelAfter, l.XPParticipation, l.XPGoals, l.XPAssists, l.XPSaves, l.XPResult,
			l.XPMVP, l.XPCleanSheet, l.XPMilestones, l.XPStreak, l.XPPenalty, l.Goals, l.Assists, l.Saves,
			l.WasMVP, string(l.GameResult), nonNil(l.MilestonesUnlocked), l.CreatedAt)
	}

	for _, d := range plan.RankingDeltas {
		b.Queue(`
			INSERT INTO ranking_deltas (id, user_id, period, period_key, goals_added, assists_added,
				saves_added, xp_added, games_added, wins_added, mvp_added, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				goals_added = ranking_deltas.goals_added + EXCLUDED.goals_added,
				assists_added = ranking_deltas.assists_added + EXCLUDED.assists_added,
				saves_added = ranking_deltas.saves_added + EXCLUDED.saves_added,
				xp_added = ranking_deltas.xp_added + EXCLUDED.xp_added,
				games_added = ranking_deltas.games_added + EXCLUDED.games_added,
				wins_added = ranking_deltas.wins_added + EXCLUDED.wins_added,
				mvp_added = ranking_deltas.mvp_added + EXCLUDED.mvp_added,
				updated_at = EXCLUDED.updated_at`,
			d.ID, d.UserID, d.Period, d.PeriodKey, d.GoalsAdded, d.AssistsAdded,
			d.SavesAdded, d.XPAdded, d.GamesAdded, d.WinsAdded, d.MVPAdded, d.UpdatedAt)
	}

	if a := plan.Activity; a != nil {
		payload, err := json.Marshal(a.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode activity payload: %w", err)
		}
		b.Queue(`INSERT INTO activities (id, type, game_id, group_id, payload, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, string(a.Type), a.GameID, a.GroupID, payload, a.CreatedAt)
	}

	return b, nil
}

func queueStreakUpsert(b *pgx.Batch, s domain.UserStreak) {
	b.Queue(`
		INSERT INTO user_streaks (user_id, schedule_key, current_streak, longest_streak, last_game_date, streak_started_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, schedule_key) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_game_date = EXCLUDED.last_game_date,
			streak_started_at = EXCLUDED.streak_started_at,
			updated_at = EXCLUDED.updated_at`,
		s.UserID, scheduleKey(s.ScheduleID), s.CurrentStreak, s.LongestStreak, s.LastGameDate, s.StreakStartedAt, s.UpdatedAt)
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
