package postgres

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
	ErrMsgFailedToClaimGame        = "failed to claim game"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)
