package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/futebadosparcas/matchday/internal/domain"
)

const gameColumns = `id, status, owner_id, schedule_id, group_id, date, team1_id, team2_id,
	team1_score, team2_score, mvp_id, worst_player_id, processed, processed_at, activity_generated,
	deleted_at, deleted_by, deletion_reason, created_at, updated_at`

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	var status string
	err := row.Scan(
		&g.ID, &status, &g.OwnerID, &g.ScheduleID, &g.GroupID, &g.Date, &g.Team1ID, &g.Team2ID,
		&g.Team1Score, &g.Team2Score, &g.MVPID, &g.WorstPlayerID, &g.Processed, &g.ProcessedAt, &g.ActivityGenerated,
		&g.DeletedAt, &g.DeletedBy, &g.DeletionReason, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if g.Status, err = domain.ParseGameStatus(status); err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}
	return &g, nil
}

func scanConfirmation(row pgx.Row) (domain.Confirmation, error) {
	var c domain.Confirmation
	var status, position, payment string
	err := row.Scan(
		&c.GameID, &c.UserID, &c.UserName, &status, &position, &c.IsCasual, &payment,
		&c.Goals, &c.Assists, &c.Saves, &c.YellowCards, &c.RedCards, &c.XPEarned,
	)
	if err != nil {
		return c, err
	}
	if c.Status, err = domain.ParseConfirmationStatus(status); err != nil {
		return c, fmt.Errorf("confirmation %s/%s: %w", c.GameID, c.UserID, err)
	}
	if c.Position, err = domain.ParsePosition(position); err != nil {
		return c, fmt.Errorf("confirmation %s/%s: %w", c.GameID, c.UserID, err)
	}
	if c.PaymentStatus, err = domain.ParsePaymentStatus(payment); err != nil {
		return c, fmt.Errorf("confirmation %s/%s: %w", c.GameID, c.UserID, err)
	}
	return c, nil
}

func scanStreak(row pgx.Row) (domain.UserStreak, string, error) {
	var s domain.UserStreak
	var key string
	err := row.Scan(&s.UserID, &key, &s.CurrentStreak, &s.LongestStreak, &s.LastGameDate, &s.StreakStartedAt, &s.UpdatedAt)
	s.ScheduleID = scheduleID(key)
	return s, key, err
}

const participationColumns = `id, user_id, season_id, user_name, division, league_rating,
	promotion_progress, relegation_progress, protection_games, points, games_played, wins,
	draws, losses, goals_scored, goals_conceded, mvp_count, recent_games, updated_at`

func scanParticipation(row pgx.Row) (domain.LeagueParticipation, error) {
	var p domain.LeagueParticipation
	var division string
	var recent []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.SeasonID, &p.UserName, &division, &p.LeagueRating,
		&p.PromotionProgress, &p.RelegationProgress, &p.ProtectionGames, &p.Points, &p.GamesPlayed, &p.Wins,
		&p.Draws, &p.Losses, &p.GoalsScored, &p.GoalsConceded, &p.MVPCount, &recent, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if p.Division, err = domain.ParseDivision(division); err != nil {
		return p, fmt.Errorf("participation %s: %w", p.ID, err)
	}
	if len(recent) > 0 {
		if err := json.Unmarshal(recent, &p.RecentGames); err != nil {
			return p, fmt.Errorf("participation %s: decode recent games: %w", p.ID, err)
		}
	}
	return p, nil
}

func scanSeason(row pgx.Row) (*domain.Season, error) {
	var s domain.Season
	if err := row.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.IsActive); err != nil {
		return nil, err
	}
	return &s, nil
}

func durationMillis(d time.Duration) int64 {
	return d.Milliseconds()
}
