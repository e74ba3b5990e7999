package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futebadosparcas/matchday/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event
	bus.Subscribe(BadgeEarned, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewBadgeEarnedEvent("u1", "g1", domain.BadgeHatTrick, 2)))
	require.NoError(t, bus.Publish(context.Background(), NewGameFinalizedEvent("g1", 10, 42)))

	require.Len(t, got, 1)
	assert.Equal(t, EventSchemaVersion, got[0].Version)

	payload, err := DecodePayload[BadgeEarnedPayloadV1](got[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.BadgeHatTrick, payload.BadgeID)
	assert.Equal(t, 2, payload.Count)
}

func TestMemoryBus_AggregatesHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(PlayerLeveledUp, func(context.Context, Event) error { return errors.New("a") })
	bus.Subscribe(PlayerLeveledUp, func(context.Context, Event) error { return nil })
	bus.Subscribe(PlayerLeveledUp, func(context.Context, Event) error { return errors.New("b") })

	err := bus.Publish(context.Background(), NewPlayerLeveledUpEvent("u1", "g1", 1, 2, "Amador"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 2 errors")
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]any{"user_id": "u1", "from": "PRATA", "to": "OURO", "promoted": true}

	p, err := DecodePayload[DivisionChangedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, domain.DivisionOuro, p.To)
	assert.True(t, p.Promoted)

	_, err = DecodePayload[DivisionChangedPayloadV1](map[string]any{"to": "PLATINA"})
	assert.ErrorIs(t, err, domain.ErrUnknownDivision)
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, time.Second, CalculateRetryDelay(time.Second, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(time.Second, 3))
	assert.Equal(t, time.Second, CalculateRetryDelay(time.Second, 0))
}
