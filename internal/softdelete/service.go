// Package softdelete marks games as deleted without removing them. Deleted
// games are purged by the maintenance sweep once the retention window passes.
package softdelete

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/logger"
	"github.com/futebadosparcas/matchday/internal/metrics"
	"github.com/futebadosparcas/matchday/internal/repository"
)

// Result reports the effect of a delete or restore.
type Result struct {
	GameID         string     `json:"game_id"`
	AlreadyDeleted bool       `json:"already_deleted,omitempty"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	Restored       bool       `json:"restored,omitempty"`
}

// Service enforces ownership and rate limits around game deletion.
type Service struct {
	repo    repository.SoftDelete
	limiter *userLimiter
	now     func() time.Time
}

// NewService creates a soft delete service allowing perWindow deletes and
// restores per user each RateWindow. Non-positive values use MaxRequestsPerWindow.
func NewService(repo repository.SoftDelete, perWindow int) *Service {
	if perWindow <= 0 {
		perWindow = MaxRequestsPerWindow
	}
	return &Service{
		repo:    repo,
		limiter: newUserLimiter(rate.Every(RateWindow/time.Duration(perWindow)), perWindow),
		now:     time.Now,
	}
}

// SoftDeleteGame marks gameID deleted on behalf of its owner. Deleting an
// already deleted game succeeds with AlreadyDeleted set.
func (s *Service) SoftDeleteGame(ctx context.Context, gameID, requestingUserID, reason string) (*Result, error) {
	log := logger.FromContext(ctx).With(logger.AttrKeyGameID, gameID, logger.AttrKeyUserID, requestingUserID)

	game, err := s.authorize(ctx, actionDelete, gameID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if game.OwnerID != requestingUserID {
		return nil, s.reject(fmt.Errorf("%w: game %s", domain.ErrForbidden, gameID))
	}
	if game.IsDeleted() {
		log.Info(LogMsgAlreadyDeleted)
		metrics.SoftDeletes.WithLabelValues(OutcomeAlreadyDeleted).Inc()
		return &Result{GameID: gameID, AlreadyDeleted: true, DeletedAt: game.DeletedAt}, nil
	}
	if game.Status == domain.GameStatusLive {
		return nil, s.reject(domain.ErrGameLive)
	}

	at := s.now()
	if err := s.repo.MarkGameDeleted(ctx, gameID, requestingUserID, strings.TrimSpace(reason), at); err != nil {
		return nil, fmt.Errorf("failed to delete game %s: %w", gameID, err)
	}
	log.Info(LogMsgGameDeleted)
	metrics.SoftDeletes.WithLabelValues(OutcomeDeleted).Inc()
	return &Result{GameID: gameID, DeletedAt: &at}, nil
}

// RestoreGame clears the deletion marker. Only the owner or whoever deleted
// the game may restore it.
func (s *Service) RestoreGame(ctx context.Context, gameID, requestingUserID string) (*Result, error) {
	game, err := s.authorize(ctx, actionRestore, gameID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !game.IsDeleted() {
		return nil, s.reject(domain.ErrGameNotDeleted)
	}
	deletedByRequester := game.DeletedBy != nil && *game.DeletedBy == requestingUserID
	if game.OwnerID != requestingUserID && !deletedByRequester {
		return nil, s.reject(fmt.Errorf("%w: game %s", domain.ErrForbidden, gameID))
	}

	if err := s.repo.RestoreGame(ctx, gameID); err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", gameID, err)
	}
	logger.FromContext(ctx).Info(LogMsgGameRestored, logger.AttrKeyGameID, gameID, logger.AttrKeyUserID, requestingUserID)
	metrics.SoftDeletes.WithLabelValues(OutcomeRestored).Inc()
	return &Result{GameID: gameID, Restored: true}, nil
}

// authorize applies the rate limit and loads the game.
func (s *Service) authorize(ctx context.Context, action, gameID, userID string) (*domain.Game, error) {
	if userID == "" || strings.TrimSpace(gameID) == "" {
		return nil, s.reject(fmt.Errorf("%w: game id and user id are required", domain.ErrInvalidInput))
	}
	if !s.limiter.allow(action+":"+userID, s.now()) {
		logger.FromContext(ctx).Warn(LogMsgRateLimited, logger.AttrKeyUserID, userID, "action", action)
		return nil, s.reject(domain.ErrRateLimited)
	}

	game, err := s.repo.GetGame(ctx, gameID)
	if errors.Is(err, domain.ErrGameNotFound) {
		return nil, s.reject(err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", gameID, err)
	}
	return game, nil
}

func (s *Service) reject(err error) error {
	metrics.SoftDeletes.WithLabelValues(OutcomeRejected).Inc()
	return err
}
