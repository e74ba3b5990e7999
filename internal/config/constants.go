package config

// Default values
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"
	DefaultServiceName = "matchday"

	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBName     = "matchday"
	DefaultDBMaxConns = 20

	DefaultFinalizeMaxBatchWrites = 500
	DefaultFinalizeMinPlayers     = 6
	DefaultFinalizeMaxAttempts    = 3

	DefaultMaintenanceTimezone     = "America/Sao_Paulo"
	DefaultMaintenanceMaxDuration  = "60s"
	DefaultMaintenanceSafetyMargin = "10s"
	DefaultMaintenancePageSize     = 400

	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 64

	DefaultEventMaxRetries  = 3
	DefaultEventRetryDelay  = "1s"
	DefaultDeadLetterPath   = "logs/deadletter.jsonl"
	DefaultSettingsCacheTTL = "5m"

	DefaultSoftDeletePerMinute = 5
	DefaultShutdownTimeout     = "15s"
)
