package handler

import (
	"fmt"
	"net/http"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/league"
	"github.com/futebadosparcas/matchday/internal/repository"
)

// LeagueHandler serves league standings
type LeagueHandler struct {
	repo    repository.League
	machine *league.Machine
}

// NewLeagueHandler creates a new LeagueHandler
func NewLeagueHandler(repo repository.League, machine *league.Machine) *LeagueHandler {
	return &LeagueHandler{repo: repo, machine: machine}
}

// HandleGetStanding returns the progression summary of a user in a season.
// Without season_id the active season is used.
// @Summary League standing
// @Tags league
// @Produce json
// @Security ApiKeyAuth
// @Param userID path string true "User ID"
// @Param season_id query string false "Season ID"
// @Success 200 {object} league.Summary
// @Failure 404 {object} ErrorResponse "No participation"
// @Router /api/v1/users/{userID}/league [get]
func (h *LeagueHandler) HandleGetStanding(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathID(r, w, ParamUserID)
	if !ok {
		return
	}

	seasonID := GetOptionalQueryParam(r, ParamSeasonID, "")
	if seasonID == "" {
		season, err := h.repo.GetActiveSeason(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetLeagueFailed, err)
			return
		}
		if season == nil {
			respondServiceError(w, r, ErrMsgGetLeagueFailed, domain.ErrSeasonNotFound)
			return
		}
		seasonID = season.ID
	} else if err := GetValidator().ValidateVar(seasonID, "identifier"); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParam, ParamSeasonID))
		return
	}

	p, err := h.repo.GetParticipation(r.Context(), seasonID, userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetLeagueFailed, err)
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, ErrMsgParticipationNotFound)
		return
	}

	respondJSON(w, http.StatusOK, h.machine.Summarize(p))
}
