package softdelete

import "time"

// Rate limits per user and action
const (
	MaxRequestsPerWindow = 5
	RateWindow           = time.Minute
)

const (
	limiterCleanupThreshold = 500
	limiterMaxIdle          = 10 * time.Minute

	actionDelete  = "delete"
	actionRestore = "restore"
)

// Log messages
const (
	LogMsgGameDeleted    = "Game soft-deleted"
	LogMsgGameRestored   = "Game restored"
	LogMsgAlreadyDeleted = "Game was already deleted"
	LogMsgRateLimited    = "Soft delete rate limit exceeded"
)

// Metric outcome labels
const (
	OutcomeDeleted        = "deleted"
	OutcomeAlreadyDeleted = "already_deleted"
	OutcomeRestored       = "restored"
	OutcomeRejected       = "rejected"
)
