package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/finalize"
	"github.com/futebadosparcas/matchday/internal/league"
	"github.com/futebadosparcas/matchday/internal/softdelete"
)

type MockFinalizer struct {
	mock.Mock
}

func (m *MockFinalizer) Finalize(ctx context.Context, gameID string) (*finalize.Result, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finalize.Result), args.Error(1)
}

func (m *MockFinalizer) HandleGameUpdate(ctx context.Context, update domain.GameUpdate) (*finalize.Result, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finalize.Result), args.Error(1)
}

type MockGameDeleter struct {
	mock.Mock
}

func (m *MockGameDeleter) SoftDeleteGame(ctx context.Context, gameID, requestingUserID, reason string) (*softdelete.Result, error) {
	args := m.Called(ctx, gameID, requestingUserID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*softdelete.Result), args.Error(1)
}

func (m *MockGameDeleter) RestoreGame(ctx context.Context, gameID, requestingUserID string) (*softdelete.Result, error) {
	args := m.Called(ctx, gameID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*softdelete.Result), args.Error(1)
}

type MockMaintenanceRunner struct {
	mock.Mock
}

func (m *MockMaintenanceRunner) Run(ctx context.Context, job string) (*domain.MaintenanceRun, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceRun), args.Error(1)
}

type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) GetActiveSeason(ctx context.Context) (*domain.Season, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Season), args.Error(1)
}

func (m *MockLeagueRepository) GetParticipation(ctx context.Context, seasonID, userID string) (*domain.LeagueParticipation, error) {
	args := m.Called(ctx, seasonID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeagueParticipation), args.Error(1)
}

type testDeps struct {
	finalizer *MockFinalizer
	deleter   *MockGameDeleter
	runner    *MockMaintenanceRunner
	leagues   *MockLeagueRepository
	machine   *league.Machine
}

// newTestRouter mounts the handlers on the same paths the server uses
func newTestRouter() (http.Handler, *testDeps) {
	deps := &testDeps{
		finalizer: &MockFinalizer{},
		deleter:   &MockGameDeleter{},
		runner:    &MockMaintenanceRunner{},
		leagues:   &MockLeagueRepository{},
		machine:   league.NewMachine(league.DefaultConfig()),
	}

	fh := NewFinalizeHandler(deps.finalizer)
	gh := NewGameHandler(deps.deleter)
	lh := NewLeagueHandler(deps.leagues, deps.machine)
	mh := NewMaintenanceHandler(deps.runner)

	r := chi.NewRouter()
	r.Post("/triggers/game-updated", fh.HandleGameUpdated)
	r.Post("/games/{gameID}/finalize", fh.HandleFinalizeGame)
	r.Post("/games/{gameID}/delete", gh.HandleDeleteGame)
	r.Post("/games/{gameID}/restore", gh.HandleRestoreGame)
	r.Get("/users/{userID}/league", lh.HandleGetStanding)
	r.Get("/maintenance/jobs", mh.HandleListJobs)
	r.Post("/maintenance/jobs/{job}", mh.HandleRunJob)
	return r, deps
}

func serve(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
