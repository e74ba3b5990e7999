package finalize

// Defaults
const (
	DefaultMinPlayers     = 6
	DefaultMaxBatchWrites = 500
	DefaultMaxAttempts    = 3
)

// Tracing
const (
	TracerName         = "github.com/futebadosparcas/matchday/internal/finalize"
	SpanFinalize       = "finalize.Finalize"
	SpanLoad           = "finalize.load"
	SpanCompute        = "finalize.compute"
	SpanCommit         = "finalize.commit"
	AttrGameID         = "game.id"
	AttrPlayers        = "finalize.players"
	AttrWrites         = "finalize.writes"
	AttrAlreadyHandled = "finalize.already_processed"
)

// Metric outcome labels
const (
	OutcomeCommitted        = "committed"
	OutcomeMarkerOnly       = "marker_only"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeIgnored          = "ignored"
	OutcomeValidation       = "validation_failed"
	OutcomeTransient        = "transient_failed"
)

// Log messages
const (
	LogMsgTriggerIgnored      = "Game update is not a transition to FINISHED"
	LogMsgStateChanged        = "Finalization state changed"
	LogMsgAlreadyProcessed    = "Game already processed"
	LogMsgNotEnoughPlayers    = "Not enough players, marking processed only"
	LogMsgNoActiveSeason      = "No active season, skipping league update"
	LogMsgMissingUser         = "User record missing, starting from zero"
	LogMsgCommitted           = "Game finalization committed"
	LogMsgFailed              = "Game finalization failed"
	LogMsgPublishFailed       = "Failed to publish finalization event"
	LogMsgConcurrentFinalizer = "Game claimed by a concurrent finalization"
	LogMsgStaleRead           = "Players changed by a concurrent game, recomputing"
)
