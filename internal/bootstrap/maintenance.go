package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/futebadosparcas/matchday/internal/config"
	"github.com/futebadosparcas/matchday/internal/maintenance"
	"github.com/futebadosparcas/matchday/internal/worker"
)

// JobScheduler registers cron jobs
type JobScheduler interface {
	Schedule(name, expr string, job worker.Job) error
}

// ScheduleMaintenance registers every maintenance job at its default cron expression.
func ScheduleMaintenance(s JobScheduler, svc *maintenance.Service) error {
	for _, name := range maintenance.Jobs() {
		expr := maintenance.DefaultSchedules[name]
		if err := s.Schedule(name, expr, svc.Job(name)); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedScheduleJob, name, err)
		}
		slog.Info(LogMsgMaintenanceScheduled, "job", name, "cron", expr)
	}
	return nil
}

// WorkerJobTimeout bounds one queued maintenance run. It follows the sweep
// budget so raising MAINTENANCE_MAX_DURATION never lets the worker cancel a
// run the budget still allows.
func WorkerJobTimeout(cfg *config.Config) time.Duration {
	return cfg.MaintenanceMaxDuration + WorkerJobTimeoutMargin
}
