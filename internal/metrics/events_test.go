package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/event"
)

func TestEventMetricsCollector_CountsBadgesAndDivisions(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	badges := BadgesAwarded.WithLabelValues(string(domain.BadgeHatTrick))
	promoted := DivisionChanges.WithLabelValues(DirectionPromoted)
	levels := LevelUps
	beforeBadges := testutil.ToFloat64(badges)
	beforePromoted := testutil.ToFloat64(promoted)
	beforeLevels := testutil.ToFloat64(levels)

	require.NoError(t, bus.Publish(ctx, event.NewBadgeEarnedEvent("u1", "g1", domain.BadgeHatTrick, 2)))
	require.NoError(t, bus.Publish(ctx, event.NewDivisionChangedEvent("u1", "s1", domain.DivisionPrata, domain.DivisionOuro, true)))
	require.NoError(t, bus.Publish(ctx, event.NewPlayerLeveledUpEvent("u1", "g1", 1, 2, "Amador")))

	assert.Equal(t, beforeBadges+1, testutil.ToFloat64(badges))
	assert.Equal(t, beforePromoted+1, testutil.ToFloat64(promoted))
	assert.Equal(t, beforeLevels+1, testutil.ToFloat64(levels))
}

func TestEventMetricsCollector_NotRecountedWhenAnotherHandlerRetries(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	var mu sync.Mutex
	failing := 0
	bus.Subscribe(event.PlayerLeveledUp, func(context.Context, event.Event) error {
		mu.Lock()
		defer mu.Unlock()
		failing++
		if failing < 3 {
			return errors.New("notification store down")
		}
		return nil
	})
	p := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: filepath.Join(t.TempDir(), "dlq.jsonl"),
	})

	published := EventsPublished.WithLabelValues(string(event.PlayerLeveledUp))
	beforePublished := testutil.ToFloat64(published)
	beforeLevels := testutil.ToFloat64(LevelUps)

	require.NoError(t, p.Publish(context.Background(), event.NewPlayerLeveledUpEvent("u1", "g1", 1, 2, "Amador")))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return failing == 3
	}, time.Second, time.Millisecond)
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Equal(t, beforePublished+1, testutil.ToFloat64(published))
	assert.Equal(t, beforeLevels+1, testutil.ToFloat64(LevelUps))
}

func TestEventMetricsCollector_IgnoresMalformedPayload(t *testing.T) {
	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.BadgeEarned,
		Payload: map[string]any{"badge_id": "NOT_A_BADGE"},
	})
	assert.NoError(t, err)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/games/{gameID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/games/{gameID}", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
