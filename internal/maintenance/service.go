// Package maintenance runs the scheduled retention and consistency sweeps.
package maintenance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/logger"
	"github.com/futebadosparcas/matchday/internal/metrics"
	"github.com/futebadosparcas/matchday/internal/repository"
	"github.com/futebadosparcas/matchday/internal/streak"
)

// Config bounds every run.
type Config struct {
	PageSize     int
	MaxDuration  time.Duration
	SafetyMargin time.Duration
}

// DefaultConfig returns the production limits.
func DefaultConfig() Config {
	return Config{
		PageSize:     DefaultPageSize,
		MaxDuration:  DefaultMaxDuration,
		SafetyMargin: DefaultSafetyMargin,
	}
}

type retention struct {
	collection repository.Collection
	ttl        time.Duration
	kind       string
}

var retentionJobs = map[string]retention{
	JobXPLogTTL:        {repository.CollectionXPLogs, XPLogRetention, TypeTTL},
	JobActivityTTL:     {repository.CollectionActivities, ActivityRetention, TypeTTL},
	JobNotificationTTL: {repository.CollectionNotifications, NotificationRetention, TypeTTL},
	JobRunRecordTTL:    {repository.CollectionMaintenanceRuns, RunRecordRetention, TypeTTL},
	JobSoftDeletePurge: {repository.CollectionDeletedGames, DeletedGameRetention, TypePurge},
}

// Jobs returns every job name in a stable order.
func Jobs() []string {
	names := make([]string, 0, len(retentionJobs)+1)
	for name := range retentionJobs {
		names = append(names, name)
	}
	names = append(names, JobStreakValidation)
	sort.Strings(names)
	return names
}

// Service executes maintenance jobs.
type Service struct {
	repo repository.Maintenance
	cfg  Config
	now  func() time.Time
}

// NewService creates a maintenance service.
func NewService(repo repository.Maintenance, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = def.MaxDuration
	}
	if cfg.SafetyMargin < 0 {
		cfg.SafetyMargin = def.SafetyMargin
	}
	return &Service{repo: repo, cfg: cfg, now: time.Now}
}

// Run executes one job and records the run. The returned run is also what
// was recorded.
func (s *Service) Run(ctx context.Context, job string) (*domain.MaintenanceRun, error) {
	run := domain.MaintenanceRun{
		ID:        uuid.NewString(),
		Job:       job,
		StartedAt: s.now(),
	}
	log := logger.FromContext(ctx).With(logger.AttrKeyJob, job, "run_id", run.ID)

	budget := Budget{MaxDuration: s.cfg.MaxDuration, SafetyMargin: s.cfg.SafetyMargin, Now: s.now}
	var (
		res SweepResult
		err error
	)
	if r, ok := retentionJobs[job]; ok {
		cutoff := run.StartedAt.Add(-r.ttl)
		run.Collection = string(r.collection)
		run.Type = r.kind
		run.Cutoff = &cutoff
		res, err = Sweep(ctx, budget, s.expire(r.collection, cutoff))
	} else if job == JobStreakValidation {
		run.Collection = string(repository.CollectionStreaks)
		run.Type = TypeValidation
		res, err = Sweep(ctx, budget, s.validateStreaks(run.StartedAt))
	} else {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownJob, job)
	}

	run.Pages = res.Pages
	run.Processed = res.Processed
	run.Deleted = res.Deleted
	run.Updated = res.Updated
	run.Duration = res.Elapsed
	switch {
	case err != nil:
		run.Status = domain.RunFailed
		run.Error = err.Error()
		log.Error(LogMsgRunFailed, "error", err, "pages", res.Pages)
	case res.Stopped:
		run.Status = domain.RunPartial
		log.Warn(LogMsgSweepStopped, "pages", res.Pages, "processed", res.Processed)
	default:
		run.Status = domain.RunCompleted
	}
	log.Info(LogMsgRunFinished, "status", run.Status, "deleted", run.Deleted, "updated", run.Updated, "duration", run.Duration)

	metrics.MaintenanceRuns.WithLabelValues(job, string(run.Status)).Inc()
	metrics.MaintenanceAffected.WithLabelValues(job, metrics.OperationDeleted).Add(float64(run.Deleted))
	metrics.MaintenanceAffected.WithLabelValues(job, metrics.OperationUpdated).Add(float64(run.Updated))
	metrics.MaintenanceDuration.WithLabelValues(job).Observe(run.Duration.Seconds())

	if recErr := s.repo.RecordRun(ctx, run); recErr != nil {
		log.Warn(LogMsgRecordRunFailed, "error", recErr)
	}
	if err != nil {
		return &run, fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	return &run, nil
}

func (s *Service) expire(c repository.Collection, cutoff time.Time) PageFunc {
	return func(ctx context.Context) (Page, error) {
		n, err := s.repo.DeleteExpired(ctx, c, cutoff, s.cfg.PageSize)
		if err != nil {
			return Page{}, err
		}
		return Page{Processed: n, Deleted: n, More: n >= int64(s.cfg.PageSize)}, nil
	}
}

// validateStreaks removes streaks whose owner is gone and zeroes streaks that
// went past the inactivity window.
func (s *Service) validateStreaks(now time.Time) PageFunc {
	var cursor repository.StreakKey
	return func(ctx context.Context) (Page, error) {
		rows, err := s.repo.ListStreaks(ctx, cursor, s.cfg.PageSize)
		if err != nil {
			return Page{}, err
		}
		if len(rows) == 0 {
			return Page{}, nil
		}

		var (
			ghosts  []repository.StreakKey
			expired []domain.UserStreak
		)
		for _, row := range rows {
			switch {
			case row.UserMissing || row.UserDeleted:
				ghosts = append(ghosts, row.Key)
			case streak.IsExpired(row.Streak, now):
				expired = append(expired, streak.Expire(row.Streak, now))
			}
		}

		page := Page{Processed: int64(len(rows)), More: len(rows) >= s.cfg.PageSize}
		if len(ghosts) > 0 {
			logger.FromContext(ctx).Debug(LogMsgGhostStreaks, "count", len(ghosts))
			if page.Deleted, err = s.repo.DeleteStreaks(ctx, ghosts); err != nil {
				return Page{}, err
			}
		}
		if len(expired) > 0 {
			if page.Updated, err = s.repo.SaveStreaks(ctx, expired); err != nil {
				return Page{}, err
			}
		}
		cursor = rows[len(rows)-1].Key
		return page, nil
	}
}

// Job adapts one named job to the worker pool.
type Job struct {
	svc  *Service
	name string
}

// Job returns the worker job for name.
func (s *Service) Job(name string) Job {
	return Job{svc: s, name: name}
}

// Name is the job name.
func (j Job) Name() string { return j.name }

// Process runs the job.
func (j Job) Process(ctx context.Context) error {
	_, err := j.svc.Run(ctx, j.name)
	return err
}
