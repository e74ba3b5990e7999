package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Finalization metric names
const (
	MetricNameFinalizations        = "finalizations_total"
	MetricNameFinalizationDuration = "finalization_duration_seconds"
	MetricNamePlayersProcessed     = "finalization_players_processed_total"
	MetricNamePlanWrites           = "finalization_plan_writes"
	MetricNameXPAwarded            = "xp_awarded_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameBadgesAwarded        = "badges_awarded_total"
	MetricNameDivisionChanges      = "division_changes_total"
	MetricNameStaleRetries         = "finalization_stale_retries_total"
)

// Maintenance metric names
const (
	MetricNameMaintenanceRuns     = "maintenance_runs_total"
	MetricNameMaintenanceAffected = "maintenance_rows_affected_total"
	MetricNameMaintenanceDuration = "maintenance_duration_seconds"
	MetricNameSoftDeletes         = "soft_deletes_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Finalization metric help text
const (
	HelpTextFinalizations        = "Total number of finalization runs by outcome"
	HelpTextFinalizationDuration = "Finalization run latency in seconds"
	HelpTextPlayersProcessed     = "Total number of player outcomes committed"
	HelpTextPlanWrites           = "Number of row mutations staged per finalization"
	HelpTextXPAwarded            = "Total experience awarded"
	HelpTextLevelUps             = "Total number of level ups"
	HelpTextBadgesAwarded        = "Total number of badges awarded"
	HelpTextDivisionChanges      = "Total number of promotions and relegations"
	HelpTextStaleRetries         = "Total number of finalization attempts recomputed after a concurrent player update"
)

// Maintenance metric help text
const (
	HelpTextMaintenanceRuns     = "Total number of maintenance runs by job and status"
	HelpTextMaintenanceAffected = "Total number of rows deleted or updated by maintenance jobs"
	HelpTextMaintenanceDuration = "Maintenance run duration in seconds"
	HelpTextSoftDeletes         = "Total number of soft delete requests by outcome"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOutcome   = "outcome"
	LabelBadge     = "badge"
	LabelDirection = "direction"
	LabelJob       = "job"
	LabelOperation = "operation"
)

// Label values
const (
	DirectionPromoted  = "promoted"
	DirectionRelegated = "relegated"
	OperationDeleted   = "deleted"
	OperationUpdated   = "updated"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets        = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	FinalizationLatencyBucket = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10}
	PlanWritesBuckets         = []float64{1, 10, 25, 50, 100, 200, 300, 400, 500}
	MaintenanceBuckets        = []float64{.1, .5, 1, 5, 10, 30, 60, 120}
)

// Log messages
const (
	LogMsgEventPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
