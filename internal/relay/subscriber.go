package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/event"
)

// Subscriber bridges the internal event bus to the relay hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a new relay subscriber
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Register subscribes to the notification events that become frames
func (s *Subscriber) Register(bus event.Bus) {
	bus.Subscribe(event.NotificationCreated, s.handleNotificationCreated)
	bus.Subscribe(event.NotificationBroadcast, s.handleBroadcast)

	slog.Info("Relay subscriber registered for event types",
		"types", []string{string(event.NotificationCreated), string(event.NotificationBroadcast)})
}

func (s *Subscriber) handleNotificationCreated(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.NotificationCreatedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode notification payload: %w", err)
	}

	frame, err := FrameFromNotification(p.Notification)
	if err != nil {
		return err
	}
	n := s.hub.SendToUser(p.Notification.UserID, frame)

	slog.Debug(LogMsgEventRelayed, "event_type", evt.Type, "user_id", p.Notification.UserID, "sockets", n)
	return nil
}

func (s *Subscriber) handleBroadcast(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.BroadcastPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode broadcast payload: %w", err)
	}

	frame, err := domain.NewFrame(domain.FrameBroadcast, nil, p.Message)
	if err != nil {
		return err
	}
	if !p.SentAt.IsZero() {
		frame.Timestamp = p.SentAt.UTC()
	}
	n := s.hub.Broadcast(frame)

	slog.Debug(LogMsgEventRelayed, "event_type", evt.Type, "sockets", n)
	return nil
}

// FrameFromNotification builds the frame pushed for a stored notification.
// A notification without payload carries its own id, title and message as data.
func FrameFromNotification(n domain.Notification) (domain.Frame, error) {
	var data interface{}
	if len(n.Payload) > 0 {
		data = n.Payload
	} else {
		data = domain.NotificationEvent{ID: n.ID, Title: n.Title, Message: n.Message}
	}

	frame, err := domain.NewFrame(n.Kind, data, n.Message)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("failed to build frame for notification %s: %w", n.ID, err)
	}
	if !n.CreatedAt.IsZero() {
		frame.Timestamp = n.CreatedAt.UTC()
	}
	return frame, nil
}
