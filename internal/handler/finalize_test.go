package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/finalize"
)

func TestHandleGameUpdated(t *testing.T) {
	t.Run("finished transition is finalized", func(t *testing.T) {
		router, deps := newTestRouter()
		deps.finalizer.On("HandleGameUpdate", mock.Anything, mock.MatchedBy(func(u domain.GameUpdate) bool {
			return u.ShouldFinalize() && u.After.ID == "g1"
		})).Return(&finalize.Result{GameID: "g1", State: finalize.StateCommitted, PlayersProcessed: 12}, nil)

		body := `{"before":{"id":"g1","status":"LIVE"},"after":{"id":"g1","status":"FINISHED"}}`
		w := serve(t, router, http.MethodPost, "/triggers/game-updated", body, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res finalize.Result
		require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Equal(t, finalize.StateCommitted, res.State)
		assert.Equal(t, 12, res.PlayersProcessed)
		deps.finalizer.AssertExpectations(t)
	})

	t.Run("unknown status is rejected before the service", func(t *testing.T) {
		router, deps := newTestRouter()

		body := `{"after":{"id":"g1","status":"DONE"}}`
		w := serve(t, router, http.MethodPost, "/triggers/game-updated", body, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
		deps.finalizer.AssertNotCalled(t, "HandleGameUpdate", mock.Anything, mock.Anything)
	})

	t.Run("missing after document", func(t *testing.T) {
		router, deps := newTestRouter()

		w := serve(t, router, http.MethodPost, "/triggers/game-updated", `{"before":{"id":"g1","status":"LIVE"}}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"after":"This field is required"`)
		deps.finalizer.AssertNotCalled(t, "HandleGameUpdate", mock.Anything, mock.Anything)
	})

	t.Run("after document without id", func(t *testing.T) {
		router, _ := newTestRouter()

		w := serve(t, router, http.MethodPost, "/triggers/game-updated", `{"after":{"status":"FINISHED"}}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "after.id")
	})
}

func TestHandleFinalizeGame(t *testing.T) {
	tests := []struct {
		name       string
		result     *finalize.Result
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "committed",
			result:     &finalize.Result{GameID: "g1", State: finalize.StateCommitted, PlayersProcessed: 10, Writes: 61},
			wantStatus: http.StatusOK,
			wantBody:   `"state":"COMMITTED"`,
		},
		{
			name:       "replay",
			result:     &finalize.Result{GameID: "g1", State: finalize.StateCommitted, AlreadyProcessed: true},
			wantStatus: http.StatusOK,
			wantBody:   `"already_processed":true`,
		},
		{
			name:       "missing game",
			err:        fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrGameNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   ErrMsgGameNotFoundError,
		},
		{
			name:       "no confirmations",
			err:        fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrNoConfirmations),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   ErrMsgGameInvalidError,
		},
		{
			name:       "batch too large",
			err:        fmt.Errorf("%w: 612 writes", domain.ErrBatchTooLarge),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   ErrMsgBatchTooLargeError,
		},
		{
			name:       "store unavailable",
			err:        fmt.Errorf("%w: connection reset", domain.ErrTransient),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   ErrMsgUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter()
			deps.finalizer.On("Finalize", mock.Anything, "g1").Return(tt.result, tt.err)

			w := serve(t, router, http.MethodPost, "/games/g1/finalize", "", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			deps.finalizer.AssertExpectations(t)
		})
	}
}
