package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Parameter error messages
	ErrMsgInvalidPathParam  = "Invalid %s"
	ErrMsgMissingUserHeader = "Missing X-User-ID header"

	// Operation error messages, logged with the underlying error
	ErrMsgFinalizeFailed    = "Failed to finalize game"
	ErrMsgTriggerFailed     = "Failed to handle game update"
	ErrMsgDeleteGameFailed  = "Failed to delete game"
	ErrMsgRestoreGameFailed = "Failed to restore game"
	ErrMsgGetLeagueFailed   = "Failed to retrieve league standing"
	ErrMsgMaintenanceFailed = "Failed to run maintenance job"

	// Lookup error messages
	ErrMsgParticipationNotFound = "User has no standing in this season"
)

// Request header names read by handlers
const (
	HeaderUserID = "X-User-ID"
)

// Path and query parameter names
const (
	ParamGameID   = "gameID"
	ParamUserID   = "userID"
	ParamJob      = "job"
	ParamSeasonID = "season_id"
)
