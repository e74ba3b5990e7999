package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the status and message it maps to
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName, "error", err, "status", status)
	} else {
		log.Warn(opName, "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."
	ErrMsgUnavailableError     = "Server is temporarily unavailable. Please try again later."

	ErrMsgGameNotFoundError    = "Game not found"
	ErrMsgGameLiveError        = "Game is live and cannot be deleted"
	ErrMsgGameNotDeletedError  = "Game is not deleted"
	ErrMsgForbiddenError       = "Only the game owner can do that"
	ErrMsgGameInvalidError     = "Game data is incomplete and cannot be finalized"
	ErrMsgBatchTooLargeError   = "Game has too many players to finalize at once"
	ErrMsgSeasonNotFoundError  = "No active season"
	ErrMsgUnknownJobError      = "Unknown maintenance job"
	ErrMsgConcurrentWriteError = "Game was updated concurrently. Please retry."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Order matters: finalization wraps a missing game as a validation failure
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		return http.StatusNotFound, ErrMsgGameNotFoundError
	case errors.Is(err, domain.ErrSeasonNotFound):
		return http.StatusNotFound, ErrMsgSeasonNotFoundError
	case errors.Is(err, domain.ErrUnknownJob):
		return http.StatusNotFound, ErrMsgUnknownJobError
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrMsgForbiddenError
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrMsgTooManyRequestsError
	case errors.Is(err, domain.ErrGameLive):
		return http.StatusConflict, ErrMsgGameLiveError
	case errors.Is(err, domain.ErrGameNotDeleted):
		return http.StatusConflict, ErrMsgGameNotDeletedError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgConcurrentWriteError
	case errors.Is(err, domain.ErrBatchTooLarge):
		return http.StatusUnprocessableEntity, ErrMsgBatchTooLargeError
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, ErrMsgGameInvalidError
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrUnknownPosition),
		errors.Is(err, domain.ErrUnknownResult),
		errors.Is(err, domain.ErrUnknownDivision),
		errors.Is(err, domain.ErrUnknownBadge):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrTransient):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
