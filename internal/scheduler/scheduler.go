package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/futebadosparcas/matchday/internal/logger"
	"github.com/futebadosparcas/matchday/internal/worker"
)

const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgJobDropped   = "Scheduled job not enqueued"
)

// Scheduler enqueues jobs into the worker pool on cron schedules
type Scheduler struct {
	cron       gocron.Scheduler
	workerPool *worker.Pool
}

// New creates a scheduler evaluating cron expressions in loc
func New(pool *worker.Pool, loc *time.Location) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{cron: cron, workerPool: pool}, nil
}

// Schedule registers job under a standard five-field cron expression
func (s *Scheduler) Schedule(name, expr string, job worker.Job) error {
	return s.schedule(name, gocron.CronJob(expr, false), job)
}

// Every registers job at a fixed interval
func (s *Scheduler) Every(name string, interval time.Duration, job worker.Job) error {
	return s.schedule(name, gocron.DurationJob(interval), job)
}

func (s *Scheduler) schedule(name string, def gocron.JobDefinition, job worker.Job) error {
	_, err := s.cron.NewJob(
		def,
		gocron.NewTask(func() {
			// Enqueue is non-blocking; a full queue skips this tick
			if !s.workerPool.Enqueue(job) {
				logger.Warn(LogMsgJobDropped, "job", name)
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	logger.Info(LogMsgJobScheduled, "job", name)
	return nil
}

// Start begins evaluating schedules
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}
