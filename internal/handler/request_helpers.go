package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/futebadosparcas/matchday/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// An empty body decodes to the zero value and is then validated like any other.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req DeleteGameRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Delete game"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetPathID reads a chi URL parameter and checks it is a well-formed document id.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetPathID(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := chi.URLParam(r, paramName)
	if err := GetValidator().ValidateVar(value, "identifier"); err != nil {
		logger.FromContext(r.Context()).Warn("Invalid path parameter", "param", paramName, "value", value)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParam, paramName))
		return "", false
	}
	return value, true
}

// GetRequestingUser reads the acting user from the X-User-ID header.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetRequestingUser(r *http.Request, w http.ResponseWriter) (string, bool) {
	userID := r.Header.Get(HeaderUserID)
	if err := GetValidator().ValidateVar(userID, "identifier"); err != nil {
		logger.FromContext(r.Context()).Warn("Missing or invalid requesting user")
		respondError(w, http.StatusUnauthorized, ErrMsgMissingUserHeader)
		return "", false
	}
	return userID, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
//
// Example usage:
//
//	seasonID := GetOptionalQueryParam(r, "season_id", "")
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}
