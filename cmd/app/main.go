package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/futebadosparcas/matchday/internal/bootstrap"
	"github.com/futebadosparcas/matchday/internal/config"
	"github.com/futebadosparcas/matchday/internal/database"
	"github.com/futebadosparcas/matchday/internal/finalize"
	"github.com/futebadosparcas/matchday/internal/league"
	"github.com/futebadosparcas/matchday/internal/maintenance"
	"github.com/futebadosparcas/matchday/internal/scheduler"
	"github.com/futebadosparcas/matchday/internal/server"
	"github.com/futebadosparcas/matchday/internal/softdelete"
	"github.com/futebadosparcas/matchday/internal/worker"
	"github.com/futebadosparcas/matchday/internal/xp"
)

// @title Matchday API
// @version 1.0
// @description Match finalization and league progression service.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Application exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	bootstrap.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, database.DefaultMaxConnIdle, database.DefaultMaxConnLife)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	if err := bootstrap.SyncXPSettings(ctx, repos.Settings); err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:      eventBus,
		Notifications: repos.Notifications,
	})

	machine := league.NewMachine(league.DefaultConfig())
	settings := xp.NewSettingsProvider(repos.Settings, cfg.SettingsCacheTTL)

	finalizeService := finalize.NewService(repos.Finalize, settings, publisher, machine, finalize.Config{
		MinPlayers:     cfg.FinalizeMinPlayers,
		MaxBatchWrites: cfg.FinalizeMaxBatchWrites,
		MaxAttempts:    cfg.FinalizeMaxAttempts,
	})
	maintenanceService := maintenance.NewService(repos.Maintenance, maintenance.Config{
		PageSize:     cfg.MaintenancePageSize,
		MaxDuration:  cfg.MaintenanceMaxDuration,
		SafetyMargin: cfg.MaintenanceSafetyMargin,
	})
	softDeleteService := softdelete.NewService(repos.SoftDelete, cfg.SoftDeletePerMinute)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize, bootstrap.WorkerJobTimeout(cfg))
	pool.Start()

	sched, err := scheduler.New(pool, cfg.Location())
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := bootstrap.ScheduleMaintenance(sched, maintenanceService); err != nil {
		return err
	}
	sched.Start()

	srv := server.NewServer(
		server.Options{
			Port:           cfg.Port,
			APIKey:         cfg.APIKey,
			TrustedProxies: cfg.TrustedProxies,
			ServiceName:    cfg.ServiceName,
		},
		server.Services{
			DBPool:      dbPool,
			Finalizer:   finalizeService,
			Deleter:     softDeleteService,
			Maintenance: maintenanceService,
			Leagues:     repos.League,
			Machine:     machine,
		},
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
	})

	return runErr
}
