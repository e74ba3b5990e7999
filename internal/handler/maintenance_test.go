package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/maintenance"
)

func TestHandleListJobs(t *testing.T) {
	router, _ := newTestRouter()

	w := serve(t, router, http.MethodGet, "/maintenance/jobs", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, maintenance.Jobs(), resp.Data)
}

func TestHandleRunJob(t *testing.T) {
	t.Run("partial run is a success", func(t *testing.T) {
		router, deps := newTestRouter()
		run := &domain.MaintenanceRun{
			Job:       maintenance.JobXPLogTTL,
			Processed: 1500,
			Deleted:   1500,
			Pages:     3,
			Status:    domain.RunPartial,
			StartedAt: time.Date(2026, 10, 11, 3, 0, 0, 0, time.UTC),
		}
		deps.runner.On("Run", mock.Anything, maintenance.JobXPLogTTL).Return(run, nil)

		w := serve(t, router, http.MethodPost, "/maintenance/jobs/"+maintenance.JobXPLogTTL, "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(`"status":%q`, domain.RunPartial))
		assert.Contains(t, w.Body.String(), `"deleted":1500`)
	})

	t.Run("unknown job", func(t *testing.T) {
		router, deps := newTestRouter()
		deps.runner.On("Run", mock.Anything, "vacuum").Return(nil, fmt.Errorf("%w: vacuum", domain.ErrUnknownJob))

		w := serve(t, router, http.MethodPost, "/maintenance/jobs/vacuum", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnknownJobError)
	})

	t.Run("transient failure", func(t *testing.T) {
		router, deps := newTestRouter()
		deps.runner.On("Run", mock.Anything, maintenance.JobActivityTTL).Return(nil, fmt.Errorf("%w: timeout", domain.ErrTransient))

		w := serve(t, router, http.MethodPost, "/maintenance/jobs/"+maintenance.JobActivityTTL, "", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
