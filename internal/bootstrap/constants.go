package bootstrap

import "time"

// File System Permissions
const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// WorkerJobTimeoutMargin is the time a maintenance job gets past its sweep
// budget to record the run
const WorkerJobTimeoutMargin = 30 * time.Second

// Log messages for bootstrap operations
const (
	LogMsgStarting                   = "Starting matchday"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotifierRegistered         = "Notification handler registered"
	LogMsgSettingsSeeded             = "Default XP settings stored"
	LogMsgSettingsPresent            = "XP settings already stored, seed skipped"
	LogMsgMaintenanceScheduled       = "Maintenance job scheduled"
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgStoppingScheduler          = "Stopping maintenance scheduler"
	LogMsgSchedulerStopFailed        = "Scheduler shutdown failed"
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgServerStopped              = "Server stopped"
)

// Error messages for bootstrap operations
const (
	ErrMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	ErrMsgFailedLoadSettings        = "failed to load stored XP settings"
	ErrMsgFailedSeedSettings        = "failed to store default XP settings"
	ErrMsgFailedScheduleJob         = "failed to schedule maintenance job"
)
