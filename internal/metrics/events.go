package metrics

import (
	"context"

	"github.com/futebadosparcas/matchday/internal/event"
	"github.com/futebadosparcas/matchday/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.GameFinalized,
		event.PlayerLeveledUp,
		event.BadgeEarned,
		event.DivisionChanged,
		event.MilestoneUnlocked,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.PlayerLeveledUp:
		LevelUps.Inc()

	case event.BadgeEarned:
		p, err := event.DecodePayload[event.BadgeEarnedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		BadgesAwarded.WithLabelValues(string(p.BadgeID)).Inc()

	case event.DivisionChanged:
		p, err := event.DecodePayload[event.DivisionChangedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		direction := DirectionRelegated
		if p.Promoted {
			direction = DirectionPromoted
		}
		DivisionChanges.WithLabelValues(direction).Inc()
	}

	return nil
}
