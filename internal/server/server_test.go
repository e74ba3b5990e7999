package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/finalize"
	"github.com/futebadosparcas/matchday/internal/league"
	"github.com/futebadosparcas/matchday/internal/softdelete"
)

type stubPool struct{}

func (stubPool) Ping(context.Context) error { return nil }
func (stubPool) Close()                     {}

type stubFinalizer struct{ calls []string }

func (s *stubFinalizer) Finalize(_ context.Context, gameID string) (*finalize.Result, error) {
	s.calls = append(s.calls, gameID)
	return &finalize.Result{GameID: gameID, State: finalize.StateCommitted}, nil
}

func (s *stubFinalizer) HandleGameUpdate(_ context.Context, u domain.GameUpdate) (*finalize.Result, error) {
	return &finalize.Result{GameID: u.After.ID, State: finalize.StateReceived, Ignored: true}, nil
}

type stubDeleter struct{}

func (stubDeleter) SoftDeleteGame(_ context.Context, gameID, _, _ string) (*softdelete.Result, error) {
	return &softdelete.Result{GameID: gameID}, nil
}

func (stubDeleter) RestoreGame(_ context.Context, gameID, _ string) (*softdelete.Result, error) {
	return &softdelete.Result{GameID: gameID, Restored: true}, nil
}

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, job string) (*domain.MaintenanceRun, error) {
	return &domain.MaintenanceRun{Job: job, Status: domain.RunCompleted}, nil
}

type stubLeagues struct{}

func (stubLeagues) GetActiveSeason(context.Context) (*domain.Season, error) {
	return &domain.Season{ID: "s1", IsActive: true}, nil
}

func (stubLeagues) GetParticipation(_ context.Context, seasonID, userID string) (*domain.LeagueParticipation, error) {
	return &domain.LeagueParticipation{UserID: userID, SeasonID: seasonID, Division: domain.DivisionBronze}, nil
}

func TestRouter(t *testing.T) {
	finalizer := &stubFinalizer{}
	router := NewRouter(
		Options{APIKey: "k", ServiceName: "matchday"},
		Services{
			DBPool:      stubPool{},
			Finalizer:   finalizer,
			Deleter:     stubDeleter{},
			Maintenance: stubRunner{},
			Leagues:     stubLeagues{},
			Machine:     league.NewMachine(league.DefaultConfig()),
		},
	)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		apiKey     string
		headers    map[string]string
		wantStatus int
		wantBody   string
	}{
		{"health is public", http.MethodGet, "/healthz", "", "", nil, http.StatusOK, `"status":"ok"`},
		{"readiness is public", http.MethodGet, "/readyz", "", "", nil, http.StatusOK, `"status":"ok"`},
		{"metrics are public", http.MethodGet, "/metrics", "", "", nil, http.StatusOK, "go_goroutines"},
		{"swagger ui is public", http.MethodGet, "/swagger/index.html", "", "", nil, http.StatusOK, "swagger-ui"},
		{"swagger document", http.MethodGet, "/swagger/doc.json", "", "", nil, http.StatusOK, `"/api/v1/games/{gameID}/finalize"`},
		{"api requires key", http.MethodPost, "/api/v1/games/g1/finalize", "", "", nil, http.StatusUnauthorized, ErrMsgUnauthorized},
		{"finalize", http.MethodPost, "/api/v1/games/g1/finalize", "", "k", nil, http.StatusOK, `"state":"COMMITTED"`},
		{"trigger", http.MethodPost, "/api/v1/triggers/game-updated", `{"after":{"id":"g2","status":"LIVE"}}`, "k", nil, http.StatusOK, `"ignored":true`},
		{"delete", http.MethodPost, "/api/v1/games/g1/delete", "", "k", map[string]string{"X-User-ID": "u1"}, http.StatusOK, `"game_id":"g1"`},
		{"restore", http.MethodPost, "/api/v1/games/g1/restore", "", "k", map[string]string{"X-User-ID": "u1"}, http.StatusOK, `"restored":true`},
		{"league standing", http.MethodGet, "/api/v1/users/u1/league", "", "k", nil, http.StatusOK, `"division":"BRONZE"`},
		{"maintenance run", http.MethodPost, "/api/v1/admin/maintenance/jobs/activity_ttl", "", "k", nil, http.StatusOK, `"status":"completed"`},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", "k", nil, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("expected body to contain %q, got %s", tt.wantBody, rec.Body.String())
			}
		})
	}

	if len(finalizer.calls) != 1 || finalizer.calls[0] != "g1" {
		t.Errorf("expected one finalize call for g1, got %v", finalizer.calls)
	}
}
