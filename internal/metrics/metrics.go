package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Finalization Metrics
var (
	Finalizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFinalizations,
			Help: HelpTextFinalizations,
		},
		[]string{LabelOutcome},
	)

	FinalizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameFinalizationDuration,
			Help:    HelpTextFinalizationDuration,
			Buckets: FinalizationLatencyBucket,
		},
	)

	PlayersProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayersProcessed,
			Help: HelpTextPlayersProcessed,
		},
	)

	PlanWrites = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePlanWrites,
			Help:    HelpTextPlanWrites,
			Buckets: PlanWritesBuckets,
		},
	)

	XPAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	BadgesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgesAwarded,
			Help: HelpTextBadgesAwarded,
		},
		[]string{LabelBadge},
	)

	DivisionChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDivisionChanges,
			Help: HelpTextDivisionChanges,
		},
		[]string{LabelDirection},
	)

	StaleRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStaleRetries,
			Help: HelpTextStaleRetries,
		},
	)
)

// Maintenance Metrics
var (
	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMaintenanceRuns,
			Help: HelpTextMaintenanceRuns,
		},
		[]string{LabelJob, LabelStatus},
	)

	MaintenanceAffected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMaintenanceAffected,
			Help: HelpTextMaintenanceAffected,
		},
		[]string{LabelJob, LabelOperation},
	)

	MaintenanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameMaintenanceDuration,
			Help:    HelpTextMaintenanceDuration,
			Buckets: MaintenanceBuckets,
		},
		[]string{LabelJob},
	)

	SoftDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSoftDeletes,
			Help: HelpTextSoftDeletes,
		},
		[]string{LabelOutcome},
	)
)
