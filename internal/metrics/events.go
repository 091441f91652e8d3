package metrics

import (
	"context"
	"strconv"

	"github.com/firesafetykz/portal/internal/event"
	"github.com/firesafetykz/portal/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event type the collector counts
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.NotificationCreated,
		event.NotificationBroadcast,
		event.SessionCompleted,
		event.AchievementUnlocked,
		event.LevelUp,
	} {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics. It never fails the publish.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.NotificationCreated:
		p, err := event.DecodePayload[event.NotificationCreatedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		NotificationsCreated.WithLabelValues(string(p.Notification.Kind)).Inc()

	case event.SessionCompleted:
		p, err := event.DecodePayload[event.SessionCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		SessionsCompleted.Inc()
		XPAwarded.Add(float64(p.XPEarned))

	case event.AchievementUnlocked:
		p, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		AchievementsUnlocked.WithLabelValues(p.AchievementID).Inc()
		XPAwarded.Add(float64(p.RewardXP))

	case event.LevelUp:
		p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		LevelUps.WithLabelValues(strconv.Itoa(p.NewLevel)).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
