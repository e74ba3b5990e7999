package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Enum parsing
	ErrMsgUnknownStatus   = "unknown status"
	ErrMsgUnknownPosition = "unknown position"
	ErrMsgUnknownResult   = "unknown team result"
	ErrMsgUnknownDivision = "unknown division"
	ErrMsgUnknownBadge    = "unknown badge type"

	// Game errors
	ErrMsgGameNotFound    = "game not found"
	ErrMsgGameNotFinished = "game is not finished"
	ErrMsgGameLive        = "game is live and cannot be deleted"
	ErrMsgGameNotDeleted  = "game is not deleted"

	// Finalization errors
	ErrMsgValidation         = "validation failed"
	ErrMsgNoConfirmations    = "game has no confirmations"
	ErrMsgBatchTooLarge      = "mutation batch exceeds size limit"
	ErrMsgTransient          = "transient infrastructure failure"
	ErrMsgSeasonNotFound     = "no active season"
	ErrMsgConcurrentFinalize = "game was finalized concurrently"
	ErrMsgStaleRead          = "player records changed during finalization"

	// Access errors
	ErrMsgForbidden    = "requesting user does not own the resource"
	ErrMsgRateLimited  = "rate limit exceeded"
	ErrMsgInvalidInput = "invalid input"

	// Maintenance errors
	ErrMsgUnknownJob = "unknown maintenance job"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUnknownStatus   = errors.New(ErrMsgUnknownStatus)
	ErrUnknownPosition = errors.New(ErrMsgUnknownPosition)
	ErrUnknownResult   = errors.New(ErrMsgUnknownResult)
	ErrUnknownDivision = errors.New(ErrMsgUnknownDivision)
	ErrUnknownBadge    = errors.New(ErrMsgUnknownBadge)

	ErrGameNotFound    = errors.New(ErrMsgGameNotFound)
	ErrGameNotFinished = errors.New(ErrMsgGameNotFinished)
	ErrGameLive        = errors.New(ErrMsgGameLive)
	ErrGameNotDeleted  = errors.New(ErrMsgGameNotDeleted)

	// ErrValidation marks runs aborted because linked data is missing or malformed.
	ErrValidation      = errors.New(ErrMsgValidation)
	ErrNoConfirmations = errors.New(ErrMsgNoConfirmations)
	// ErrTransient marks store failures. The whole run is safe to retry.
	ErrTransient      = errors.New(ErrMsgTransient)
	ErrBatchTooLarge  = errors.New(ErrMsgBatchTooLarge)
	ErrSeasonNotFound = errors.New(ErrMsgSeasonNotFound)
	ErrAlreadyClaimed = errors.New(ErrMsgConcurrentFinalize)
	// ErrStaleRead marks a commit rejected because another game of the same
	// players committed after the read phase. Nothing was written.
	ErrStaleRead = errors.New(ErrMsgStaleRead)

	ErrForbidden    = errors.New(ErrMsgForbidden)
	ErrRateLimited  = errors.New(ErrMsgRateLimited)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrUnknownJob = errors.New(ErrMsgUnknownJob)
)
