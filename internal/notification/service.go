// Package notification stores user notifications and announces them on the event bus
// so the relay can push them over the real-time channel.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/event"
	"github.com/firesafetykz/portal/internal/logger"
	"github.com/firesafetykz/portal/internal/repository"
)

// CreateInput describes a notification to store
type CreateInput struct {
	UserID  string
	Kind    domain.FrameType
	Title   string
	Message string
	// Payload is the frame data pushed to the client, e.g. a domain.BidEvent
	Payload json.RawMessage
}

// Service defines the notification business logic
type Service interface {
	Create(ctx context.Context, in CreateInput) (*domain.Notification, error)
	List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
	Broadcast(ctx context.Context, message string) (*domain.BroadcastMessage, error)
}

type service struct {
	repo     repository.Notification
	eventBus event.Bus
	now      func() time.Time
}

// NewService creates a new notification service
func NewService(repo repository.Notification, bus event.Bus) Service {
	return &service{
		repo:     repo,
		eventBus: bus,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.Notification, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Kind:      in.Kind,
		Title:     strings.TrimSpace(in.Title),
		Message:   in.Message,
		Payload:   in.Payload,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgCreated, "id", n.ID, "user_id", n.UserID, "kind", n.Kind)
	s.publish(ctx, event.NewNotificationCreatedEvent(*n))
	return n, nil
}

func (s *service) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	if err := validateUserID(filter.UserID); err != nil {
		return nil, err
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}

	list, err := s.repo.ListNotifications(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrNotificationNotFound, id)
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgMarkedAllRead, "user_id", userID, "count", n)
	return n, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrNotificationNotFound, id)
	}
	if err := s.repo.DeleteNotification(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgDeleted, "id", id)
	return nil
}

// Broadcast announces message to every connected client. Broadcasts are not stored.
func (s *service) Broadcast(ctx context.Context, message string) (*domain.BroadcastMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" || len(message) > MaxMessageLength {
		return nil, fmt.Errorf("%w: broadcast message must be 1-%d bytes", domain.ErrInvalidInput, MaxMessageLength)
	}

	b := &domain.BroadcastMessage{Message: message, SentAt: s.now().UTC()}
	logger.FromContext(ctx).Info(LogMsgBroadcast, "length", len(message))
	s.publish(ctx, event.NewBroadcastEvent(b.Message, b.SentAt))
	return b, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func validateUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidUserID, userID)
	}
	return nil
}

func validateCreate(in CreateInput) error {
	if err := validateUserID(in.UserID); err != nil {
		return err
	}
	if !domain.IsNotificationKind(in.Kind) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, in.Kind)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be 1-%d bytes", domain.ErrInvalidInput, MaxTitleLength)
	}
	if len(in.Message) > MaxMessageLength {
		return fmt.Errorf("%w: message longer than %d bytes", domain.ErrInvalidInput, MaxMessageLength)
	}
	if len(in.Payload) > 0 && !json.Valid(in.Payload) {
		return fmt.Errorf("%w: payload is not valid JSON", domain.ErrInvalidInput)
	}

	// the payload must decode the way the client decodes the pushed frame
	payload := domain.NewFramePayload(in.Kind)
	if len(in.Payload) > 0 && string(in.Payload) != "null" {
		if err := json.Unmarshal(in.Payload, payload); err != nil {
			return fmt.Errorf("%w: %s payload: %v", domain.ErrInvalidInput, in.Kind, err)
		}
	}

	if in.Kind == domain.FrameBidStatusChanged {
		if len(in.Payload) == 0 {
			return fmt.Errorf("%w: bid status change needs a payload", domain.ErrInvalidInput)
		}
		bid := payload.(*domain.BidEvent)
		if err := domain.ValidateBidTransition(bid.PrevStatus, bid.Status); err != nil {
			return err
		}
	}
	return nil
}
