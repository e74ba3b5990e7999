package handler

import (
	"context"
	"net/http"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/finalize"
	"github.com/futebadosparcas/matchday/internal/logger"
)

// Finalizer runs match finalization
type Finalizer interface {
	Finalize(ctx context.Context, gameID string) (*finalize.Result, error)
	HandleGameUpdate(ctx context.Context, update domain.GameUpdate) (*finalize.Result, error)
}

// FinalizeHandler serves the game-updated trigger and manual finalization
type FinalizeHandler struct {
	finalizer Finalizer
}

// NewFinalizeHandler creates a new FinalizeHandler
func NewFinalizeHandler(finalizer Finalizer) *FinalizeHandler {
	return &FinalizeHandler{finalizer: finalizer}
}

// HandleGameUpdated receives the before/after pair of a changed game document.
// Updates that are not a transition into FINISHED are acknowledged and ignored.
// @Summary Game document changed
// @Description Finalizes a game when the update moves it into FINISHED
// @Tags finalization
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body domain.GameUpdate true "Before and after game documents"
// @Success 200 {object} finalize.Result
// @Failure 400 {object} ValidationErrorResponse "Invalid update"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /api/v1/triggers/game-updated [post]
func (h *FinalizeHandler) HandleGameUpdated(w http.ResponseWriter, r *http.Request) {
	var update domain.GameUpdate
	if err := DecodeAndValidateRequest(r, w, &update, "Game updated"); err != nil {
		return
	}
	if err := GetValidator().ValidateVar(update.After.ID, "identifier"); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: map[string]string{"after.id": "Invalid identifier"},
		})
		return
	}

	res, err := h.finalizer.HandleGameUpdate(r.Context(), update)
	if err != nil {
		respondServiceError(w, r, ErrMsgTriggerFailed, err)
		return
	}

	logger.FromContext(r.Context()).Debug("Game update handled",
		"game_id", res.GameID,
		"state", res.State,
		"ignored", res.Ignored)
	respondJSON(w, http.StatusOK, res)
}

// HandleFinalizeGame finalizes a game on demand. Replays are answered with
// already_processed set.
// @Summary Finalize game
// @Description Runs finalization for one game
// @Tags finalization
// @Produce json
// @Security ApiKeyAuth
// @Param gameID path string true "Game ID"
// @Success 200 {object} finalize.Result
// @Failure 404 {object} ErrorResponse "Game not found"
// @Failure 422 {object} ErrorResponse "Game data incomplete"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /api/v1/games/{gameID}/finalize [post]
func (h *FinalizeHandler) HandleFinalizeGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := GetPathID(r, w, ParamGameID)
	if !ok {
		return
	}

	res, err := h.finalizer.Finalize(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, r, ErrMsgFinalizeFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
