package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/league"
)

func participation(seasonID string) *domain.LeagueParticipation {
	played := time.Date(2026, 10, 10, 20, 0, 0, 0, time.UTC)
	return &domain.LeagueParticipation{
		ID:                "p1",
		UserID:            "u1",
		SeasonID:          seasonID,
		Division:          domain.DivisionPrata,
		LeagueRating:      52.5,
		PromotionProgress: 1,
		Points:            9,
		GamesPlayed:       4,
		RecentGames: []domain.RecentGame{
			{GameID: "g4", XPEarned: 120, Won: true, GoalDiff: 2, WasMVP: true, PlayedAt: played},
			{GameID: "g3", XPEarned: 60, Drew: true, PlayedAt: played.AddDate(0, 0, -7)},
		},
	}
}

func TestHandleGetStanding(t *testing.T) {
	t.Run("explicit season", func(t *testing.T) {
		router, deps := newTestRouter()
		p := participation("s2")
		deps.leagues.On("GetParticipation", mock.Anything, "s2", "u1").Return(p, nil)

		w := serve(t, router, http.MethodGet, "/users/u1/league?season_id=s2", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var got league.Summary
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		if diff := cmp.Diff(deps.machine.Summarize(p), got); diff != "" {
			t.Errorf("summary mismatch (-want +got):\n%s", diff)
		}
		deps.leagues.AssertNotCalled(t, "GetActiveSeason", mock.Anything)
	})

	t.Run("defaults to active season", func(t *testing.T) {
		router, deps := newTestRouter()
		deps.leagues.On("GetActiveSeason", mock.Anything).Return(&domain.Season{ID: "s3", IsActive: true}, nil)
		deps.leagues.On("GetParticipation", mock.Anything, "s3", "u1").Return(participation("s3"), nil)

		w := serve(t, router, http.MethodGet, "/users/u1/league", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"season_id":"s3"`)
		deps.leagues.AssertExpectations(t)
	})

	t.Run("no active season", func(t *testing.T) {
		router, deps := newTestRouter()
		deps.leagues.On("GetActiveSeason", mock.Anything).Return(nil, nil)

		w := serve(t, router, http.MethodGet, "/users/u1/league", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgSeasonNotFoundError)
	})

	t.Run("no standing", func(t *testing.T) {
		router, deps := newTestRouter()
		deps.leagues.On("GetParticipation", mock.Anything, "s2", "u1").Return(nil, nil)

		w := serve(t, router, http.MethodGet, "/users/u1/league?season_id=s2", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgParticipationNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		router, deps := newTestRouter()
		deps.leagues.On("GetActiveSeason", mock.Anything).Return(nil, assert.AnError)

		w := serve(t, router, http.MethodGet, "/users/u1/league", "", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
	})
}
