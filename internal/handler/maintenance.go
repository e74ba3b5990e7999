package handler

import (
	"context"
	"net/http"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/maintenance"
)

// MaintenanceRunner runs maintenance jobs by name
type MaintenanceRunner interface {
	Run(ctx context.Context, job string) (*domain.MaintenanceRun, error)
}

// MaintenanceHandler exposes the maintenance jobs to operators
type MaintenanceHandler struct {
	runner MaintenanceRunner
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(runner MaintenanceRunner) *MaintenanceHandler {
	return &MaintenanceHandler{runner: runner}
}

// HandleListJobs lists the job names accepted by HandleRunJob
// @Summary List maintenance jobs
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DataResponse
// @Router /api/v1/admin/maintenance/jobs [get]
func (h *MaintenanceHandler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: maintenance.Jobs()})
}

// HandleRunJob runs one maintenance job synchronously and returns its run record.
// A run that stopped at its time budget is still a success with status partial.
// @Summary Run maintenance job
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param job path string true "Job name"
// @Success 200 {object} domain.MaintenanceRun
// @Failure 404 {object} ErrorResponse "Unknown job"
// @Router /api/v1/admin/maintenance/jobs/{job} [post]
func (h *MaintenanceHandler) HandleRunJob(w http.ResponseWriter, r *http.Request) {
	job, ok := GetPathID(r, w, ParamJob)
	if !ok {
		return
	}

	run, err := h.runner.Run(r.Context(), job)
	if err != nil {
		respondServiceError(w, r, ErrMsgMaintenanceFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}
