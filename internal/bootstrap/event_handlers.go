package bootstrap

import (
	"log/slog"

	"github.com/futebadosparcas/matchday/internal/event"
	"github.com/futebadosparcas/matchday/internal/metrics"
	"github.com/futebadosparcas/matchday/internal/notification"
	"github.com/futebadosparcas/matchday/internal/repository"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus      event.Bus
	Notifications repository.Notifications
}

// RegisterEventHandlers subscribes the metrics collector and the in-app
// notification writer to the bus.
func RegisterEventHandlers(deps EventHandlerDependencies) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	notification.NewNotifier(deps.Notifications).Register(deps.EventBus)
	slog.Info(LogMsgNotifierRegistered)
}
