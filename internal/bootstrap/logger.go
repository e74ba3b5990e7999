package bootstrap

import (
	"log/slog"

	"github.com/futebadosparcas/matchday/internal/config"
	"github.com/futebadosparcas/matchday/internal/logger"
)

// SetupLogger installs the default slog logger from the application config.
// The environment picks the preset; explicit level and format settings win.
func SetupLogger(cfg *config.Config) {
	logger.InitLogger(logger.ForEnvironment(cfg.Environment, cfg.ServiceName, cfg.Version).
		Override(cfg.LogLevel, cfg.LogFormat))

	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"maintenance_timezone", cfg.MaintenanceTimezone)
}
