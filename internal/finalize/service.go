// Package finalize turns a FINISHED game into player progression exactly once.
//
// A run has three phases. The read phase loads the game, its attendance and
// the per-player records. The compute phase is pure and produces a mutation
// plan. The write phase commits the plan in one transaction that first claims
// the game's processed marker, so concurrent or repeated deliveries of the
// same game apply at most one plan.
//
// Different games sharing players may finalize concurrently. The commit only
// applies while every player's version matches the read phase; otherwise the
// read and compute phases are repeated from fresh records.
package finalize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/event"
	"github.com/futebadosparcas/matchday/internal/league"
	"github.com/futebadosparcas/matchday/internal/logger"
	"github.com/futebadosparcas/matchday/internal/metrics"
	"github.com/futebadosparcas/matchday/internal/repository"
	"github.com/futebadosparcas/matchday/internal/xp"
)

// SettingsSource resolves the XP weight table.
type SettingsSource interface {
	Get(ctx context.Context) xp.Settings
}

// Config bounds a finalization run.
type Config struct {
	MinPlayers     int
	MaxBatchWrites int
	// MaxAttempts caps the read, compute and commit cycles of one run.
	MaxAttempts int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for processed timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// Service finalizes games.
type Service struct {
	repo      repository.Finalize
	settings  SettingsSource
	publisher event.Publisher
	machine   *league.Machine
	cfg       Config
	tracer    trace.Tracer
	now       func() time.Time
}

// NewService creates a finalization service. Zero config values fall back to
// the defaults.
func NewService(repo repository.Finalize, settings SettingsSource, publisher event.Publisher, machine *league.Machine, cfg Config, opts ...Option) *Service {
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = DefaultMinPlayers
	}
	if cfg.MaxBatchWrites <= 0 {
		cfg.MaxBatchWrites = DefaultMaxBatchWrites
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	s := &Service{
		repo:      repo,
		settings:  settings,
		publisher: publisher,
		machine:   machine,
		cfg:       cfg,
		tracer:    otel.Tracer(TracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleGameUpdate finalizes the game when the update is its transition into
// FINISHED. Any other update is acknowledged and ignored.
func (s *Service) HandleGameUpdate(ctx context.Context, update domain.GameUpdate) (*Result, error) {
	if !update.ShouldFinalize() {
		res := &Result{State: StateReceived, Ignored: true}
		if update.After != nil {
			res.GameID = update.After.ID
		}
		logger.FromContext(ctx).Debug(LogMsgTriggerIgnored, logger.AttrKeyGameID, res.GameID)
		metrics.Finalizations.WithLabelValues(OutcomeIgnored).Inc()
		return res, nil
	}
	return s.Finalize(ctx, update.After.ID)
}

// Finalize runs the full finalization of one game. Repeated calls for a game
// that was already finalized succeed with AlreadyProcessed set.
func (s *Service) Finalize(ctx context.Context, gameID string) (*Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, SpanFinalize, trace.WithAttributes(attribute.String(AttrGameID, gameID)))
	defer span.End()

	log := logger.FromContext(ctx).With(logger.AttrKeyGameID, gameID)
	res := &Result{GameID: gameID}
	s.transition(log, res, StateReceived)

	res, err := s.run(ctx, log, res)
	metrics.FinalizationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.transition(log, res, StateFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error(LogMsgFailed, "error", err)
		metrics.Finalizations.WithLabelValues(failureOutcome(err)).Inc()
		return res, err
	}

	span.SetAttributes(
		attribute.Int(AttrPlayers, res.PlayersProcessed),
		attribute.Int(AttrWrites, res.Writes),
		attribute.Bool(AttrAlreadyHandled, res.AlreadyProcessed),
	)
	switch {
	case res.AlreadyProcessed:
		metrics.Finalizations.WithLabelValues(OutcomeAlreadyProcessed).Inc()
	case res.MarkerOnly:
		metrics.Finalizations.WithLabelValues(OutcomeMarkerOnly).Inc()
	default:
		metrics.Finalizations.WithLabelValues(OutcomeCommitted).Inc()
	}
	return res, nil
}

func (s *Service) run(ctx context.Context, log *slog.Logger, res *Result) (*Result, error) {
	game, err := s.repo.GetGame(ctx, res.GameID)
	if err != nil {
		return res, storeError(err)
	}
	switch {
	case game.Processed:
		res.AlreadyProcessed = true
		s.transition(log, res, StateGuardChecked)
		log.Info(LogMsgAlreadyProcessed)
		s.transition(log, res, StateCommitted)
		return res, nil
	case game.IsDeleted():
		return res, fmt.Errorf("%w: game %s is deleted", domain.ErrValidation, game.ID)
	case game.Status != domain.GameStatusFinished:
		return res, fmt.Errorf("%w: status %s", domain.ErrGameNotFinished, game.Status)
	}
	s.transition(log, res, StateGuardChecked)

	for attempt := 1; ; attempt++ {
		err = s.attempt(ctx, log, game, res)
		if !errors.Is(err, domain.ErrStaleRead) {
			return res, err
		}
		if attempt >= s.cfg.MaxAttempts {
			return res, fmt.Errorf("%w: %w after %d attempts", domain.ErrTransient, err, attempt)
		}
		log.Info(LogMsgStaleRead, "attempt", attempt)
		metrics.StaleRetries.Inc()
		s.transition(log, res, StateGuardChecked)
	}
}

// attempt runs one read, compute and commit cycle. It returns
// domain.ErrStaleRead unwrapped when the cycle must be repeated.
func (s *Service) attempt(ctx context.Context, log *slog.Logger, game *domain.Game, res *Result) error {
	in, confirmed, err := s.load(ctx, log, game)
	if err != nil {
		return err
	}

	var plan *repository.FinalizePlan
	var players []PlayerResult
	res.MarkerOnly = false
	if confirmed < s.cfg.MinPlayers {
		log.Info(LogMsgNotEnoughPlayers, "confirmed", confirmed, "min_players", s.cfg.MinPlayers)
		res.MarkerOnly = true
		plan = MarkerPlan(game, in.Now)
		s.transition(log, res, StateOutcomesComputed)
	} else {
		_, span := s.tracer.Start(ctx, SpanCompute)
		computed := BuildPlan(in, s.machine)
		span.End()
		plan, players = computed.Plan, computed.Players
		s.transition(log, res, StateOutcomesComputed)
	}

	if n := plan.Writes(); n > s.cfg.MaxBatchWrites {
		return fmt.Errorf("%w: %d writes, limit %d", domain.ErrBatchTooLarge, n, s.cfg.MaxBatchWrites)
	}
	s.transition(log, res, StateMutationsStaged)

	commitCtx, span := s.tracer.Start(ctx, SpanCommit, trace.WithAttributes(attribute.Int(AttrWrites, plan.Writes())))
	err = s.repo.Commit(commitCtx, plan)
	span.End()
	switch {
	case errors.Is(err, domain.ErrAlreadyClaimed):
		log.Info(LogMsgConcurrentFinalizer)
		res.AlreadyProcessed = true
		res.MarkerOnly = false
		s.transition(log, res, StateCommitted)
		return nil
	case errors.Is(err, domain.ErrStaleRead):
		return err
	case err != nil:
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}

	res.Writes = plan.Writes()
	res.Players = players
	res.PlayersProcessed = len(players)
	s.transition(log, res, StateCommitted)
	log.Info(LogMsgCommitted, "players", res.PlayersProcessed, "writes", res.Writes)

	s.record(players)
	s.publish(ctx, log, res)
	return nil
}

// load runs the read phase. It returns the compute inputs and the number of
// confirmed attendees.
func (s *Service) load(ctx context.Context, log *slog.Logger, game *domain.Game) (Inputs, int, error) {
	ctx, span := s.tracer.Start(ctx, SpanLoad)
	defer span.End()

	in := Inputs{Game: game, Now: s.now()}

	var (
		confirmations []domain.Confirmation
		teams         []domain.Team
		live          *domain.LiveScore
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		confirmations, err = s.repo.GetConfirmations(gctx, game.ID)
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.repo.GetTeams(gctx, game.ID)
		return err
	})
	g.Go(func() (err error) {
		live, err = s.repo.GetLiveScore(gctx, game.ID)
		return err
	})
	g.Go(func() (err error) {
		in.Season, err = s.repo.GetActiveSeason(gctx)
		return err
	})
	g.Go(func() error {
		in.Settings = s.settings.Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return in, 0, storeError(err)
	}

	if len(confirmations) == 0 {
		return in, 0, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrNoConfirmations)
	}
	if len(confirmations) < s.cfg.MinPlayers {
		return in, len(confirmations), nil
	}

	outcomes, err := DeriveOutcomes(game, confirmations, teams, live)
	if err != nil {
		return in, 0, err
	}
	in.Outcomes = outcomes
	in.Names = make(map[string]string, len(confirmations))
	for _, c := range confirmations {
		in.Names[c.UserID] = c.UserName
	}
	if in.Season == nil {
		log.Warn(LogMsgNoActiveSeason, "error", domain.ErrSeasonNotFound)
	}

	ids := make([]string, len(outcomes))
	for i, o := range outcomes {
		ids[i] = o.UserID
	}
	from, to := monthRange(game.Date)

	// Users are read alone and first. Their versions guard the records read
	// after them.
	if in.Users, err = s.repo.GetUsers(ctx, ids); err != nil {
		return in, 0, storeError(err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Statistics, err = s.repo.GetStatistics(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		in.Streaks, err = s.repo.GetStreaks(gctx, ids, game.ScheduleID)
		return err
	})
	g.Go(func() (err error) {
		in.Badges, err = s.repo.GetBadges(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		in.MonthGoals, in.MonthLeaderGoals, err = s.repo.GetMonthlyGoals(gctx, from, to, ids)
		return err
	})
	if in.Season != nil {
		seasonID := in.Season.ID
		g.Go(func() (err error) {
			in.Participations, err = s.repo.GetParticipations(gctx, seasonID, ids)
			return err
		})
	}
	if game.ScheduleID != nil {
		scheduleID := *game.ScheduleID
		g.Go(func() (err error) {
			in.MonthScheduleGames, in.MonthScheduleAttended, err = s.repo.GetScheduleAttendance(gctx, scheduleID, from, to, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return in, 0, storeError(err)
	}

	for _, id := range ids {
		if _, ok := in.Users[id]; !ok {
			log.Warn(LogMsgMissingUser, logger.AttrKeyUserID, id)
		}
	}
	return in, len(confirmations), nil
}

func (s *Service) transition(log *slog.Logger, res *Result, next State) {
	log.Debug(LogMsgStateChanged, "from", res.State, "to", next)
	res.State = next
}

func (s *Service) record(players []PlayerResult) {
	metrics.PlayersProcessed.Add(float64(len(players)))
	for _, p := range players {
		if p.XPEarned > 0 {
			metrics.XPAwarded.Add(float64(p.XPEarned))
		}
	}
}

// publish emits the post-commit events. The commit already happened, so a
// failed publish is logged and never turns the run into a failure.
func (s *Service) publish(ctx context.Context, log *slog.Logger, res *Result) {
	metrics.PlanWrites.Observe(float64(res.Writes))
	if s.publisher == nil {
		return
	}

	var events []event.Event
	for _, p := range res.Players {
		if p.LeveledUp() {
			events = append(events, event.NewPlayerLeveledUpEvent(p.UserID, res.GameID, p.OldLevel, p.NewLevel, xp.LevelName(p.NewLevel)))
		}
		if len(p.Milestones) > 0 {
			events = append(events, event.NewMilestoneUnlockedEvent(p.UserID, res.GameID, p.Milestones, p.MilestoneXP))
		}
		for _, b := range p.Badges {
			events = append(events, event.NewBadgeEarnedEvent(p.UserID, res.GameID, b.BadgeID, b.Count))
		}
		if p.Promoted || p.Relegated {
			events = append(events, event.NewDivisionChangedEvent(p.UserID, p.SeasonID, p.PreviousDiv, p.Division, p.Promoted))
		}
	}
	events = append(events, event.NewGameFinalizedEvent(res.GameID, res.PlayersProcessed, res.Writes))

	for _, evt := range events {
		if err := s.publisher.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
		}
	}
}

// storeError classifies a read failure. A missing game is a validation
// failure, everything else is retryable.
func storeError(err error) error {
	if errors.Is(err, domain.ErrGameNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrTransient, err)
}

func failureOutcome(err error) string {
	if errors.Is(err, domain.ErrTransient) {
		return OutcomeTransient
	}
	return OutcomeValidation
}

func monthRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}
