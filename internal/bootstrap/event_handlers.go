package bootstrap

import (
	"log/slog"

	"github.com/firesafetykz/portal/internal/event"
	"github.com/firesafetykz/portal/internal/metrics"
	"github.com/firesafetykz/portal/internal/notification"
	"github.com/firesafetykz/portal/internal/relay"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus            event.Bus
	NotificationService notification.Service
	Hub                 *relay.Hub
}

// RegisterEventHandlers wires the subscribers:
// - notification handler turns achievements and level-ups into stored notifications
// - relay subscriber pushes created notifications and broadcasts to open sockets
// - metrics collector counts every event
func RegisterEventHandlers(deps EventHandlerDependencies) {
	notification.NewEventHandler(deps.NotificationService).Register(deps.EventBus)
	slog.Info(LogMsgNotificationHandlerRegistered)

	if deps.Hub != nil {
		relay.NewSubscriber(deps.Hub).Register(deps.EventBus)
		slog.Info(LogMsgRelaySubscriberRegistered)
	}

	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)
}
