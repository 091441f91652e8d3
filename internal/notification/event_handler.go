package notification

import (
	"context"
	"fmt"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/event"
	"github.com/firesafetykz/portal/internal/logger"
)

// EventHandler turns game progress events into stored notifications
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new notification event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.AchievementUnlocked, h.HandleAchievementUnlocked)
	bus.Subscribe(event.LevelUp, h.HandleLevelUp)
}

// HandleAchievementUnlocked notifies the player about a new achievement
func (h *EventHandler) HandleAchievementUnlocked(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode achievement payload: %w", err)
	}

	h.create(ctx, CreateInput{
		UserID:  p.UserID,
		Kind:    domain.FrameNotification,
		Title:   fmt.Sprintf(AchievementTitleFormat, p.Title),
		Message: fmt.Sprintf(AchievementBodyFormat, p.Badge, p.Title, p.RewardXP),
	})
	return nil
}

// HandleLevelUp notifies the player about a new level
func (h *EventHandler) HandleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode level up payload: %w", err)
	}

	h.create(ctx, CreateInput{
		UserID:  p.UserID,
		Kind:    domain.FrameNotification,
		Title:   fmt.Sprintf(LevelUpTitleFormat, p.NewLevel),
		Message: fmt.Sprintf(LevelUpBodyFormat, p.Title),
	})
	return nil
}

func (h *EventHandler) create(ctx context.Context, in CreateInput) {
	if _, err := h.service.Create(ctx, in); err != nil {
		// Don't return error to event bus to avoid retries for logic errors
		logger.FromContext(ctx).Warn(LogMsgGameEventFailed, "user_id", in.UserID, "error", err)
	}
}
