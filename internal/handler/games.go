package handler

import (
	"context"
	"net/http"

	"github.com/futebadosparcas/matchday/internal/softdelete"
)

// GameDeleter soft deletes and restores games
type GameDeleter interface {
	SoftDeleteGame(ctx context.Context, gameID, requestingUserID, reason string) (*softdelete.Result, error)
	RestoreGame(ctx context.Context, gameID, requestingUserID string) (*softdelete.Result, error)
}

// DeleteGameRequest is the optional body of a delete call
type DeleteGameRequest struct {
	Reason string `json:"reason" validate:"max=500,excludesall=\x00"`
}

// GameHandler serves game lifecycle endpoints
type GameHandler struct {
	deleter GameDeleter
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(deleter GameDeleter) *GameHandler {
	return &GameHandler{deleter: deleter}
}

// HandleDeleteGame marks a game deleted on behalf of the user in X-User-ID
// @Summary Delete game
// @Description Soft deletes a game owned by the requesting user
// @Tags games
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "Requesting user"
// @Param request body DeleteGameRequest false "Deletion reason"
// @Success 200 {object} softdelete.Result
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Router /api/v1/games/{gameID}/delete [post]
func (h *GameHandler) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := GetPathID(r, w, ParamGameID)
	if !ok {
		return
	}
	userID, ok := GetRequestingUser(r, w)
	if !ok {
		return
	}

	var req DeleteGameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete game"); err != nil {
		return
	}

	res, err := h.deleter.SoftDeleteGame(r.Context(), gameID, userID, req.Reason)
	if err != nil {
		respondServiceError(w, r, ErrMsgDeleteGameFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleRestoreGame clears the deletion marker of a game
// @Summary Restore game
// @Tags games
// @Produce json
// @Security ApiKeyAuth
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "Requesting user"
// @Success 200 {object} softdelete.Result
// @Failure 404 {object} ErrorResponse "Game not found"
// @Router /api/v1/games/{gameID}/restore [post]
func (h *GameHandler) HandleRestoreGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := GetPathID(r, w, ParamGameID)
	if !ok {
		return
	}
	userID, ok := GetRequestingUser(r, w)
	if !ok {
		return
	}

	res, err := h.deleter.RestoreGame(r.Context(), gameID, userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgRestoreGameFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
