package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/firesafetykz/portal/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata, nil when absent
func (e Event) GetMetadataValue(key string) interface{} {
	m, ok := e.Metadata.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

// Event types
const (
	NotificationCreated   Type = "notification.created"
	NotificationBroadcast Type = "notification.broadcast"

	SessionCompleted    Type = "gamification.session_completed"
	AchievementUnlocked Type = "gamification.achievement_unlocked"
	LevelUp             Type = "gamification.level_up"
)

// NotificationCreatedPayloadV1 carries a stored notification to the relay
type NotificationCreatedPayloadV1 struct {
	Notification domain.Notification `json:"notification"`
}

// BroadcastPayloadV1 carries an announcement for every connected client
type BroadcastPayloadV1 struct {
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// SessionCompletedPayloadV1 is published once per finalized game session
type SessionCompletedPayloadV1 struct {
	UserID     string  `json:"user_id"`
	SessionID  string  `json:"session_id"`
	ScenarioID string  `json:"scenario_id"`
	XPEarned   int64   `json:"xp_earned"`
	Accuracy   float64 `json:"accuracy"`
}

// AchievementUnlockedPayloadV1 is published for each newly unlocked achievement
type AchievementUnlockedPayloadV1 struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	TitleKK       string `json:"title_kk"`
	Badge         string `json:"badge"`
	RewardXP      int64  `json:"reward_xp"`
}

// LevelUpPayloadV1 is published when a session moves a player to a higher tier
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Title    string `json:"title"`
	TitleKK  string `json:"title_kk"`
}

// NewNotificationCreatedEvent wraps a stored notification
func NewNotificationCreatedEvent(n domain.Notification) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NotificationCreated,
		Payload: NotificationCreatedPayloadV1{Notification: n},
		Metadata: map[string]interface{}{
			MetadataKeyUserID: n.UserID,
		},
	}
}

// NewBroadcastEvent creates an announcement event
func NewBroadcastEvent(message string, sentAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NotificationBroadcast,
		Payload: BroadcastPayloadV1{Message: message, SentAt: sentAt},
	}
}

// NewSessionCompletedEvent creates a session completion event
func NewSessionCompletedEvent(s domain.GameSession) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionCompleted,
		Payload: SessionCompletedPayloadV1{
			UserID:     s.UserID,
			SessionID:  s.ID,
			ScenarioID: s.ScenarioID,
			XPEarned:   s.XPEarned,
			Accuracy:   s.Accuracy,
		},
		Metadata: map[string]interface{}{
			MetadataKeyUserID: s.UserID,
		},
	}
}

// NewAchievementUnlockedEvent creates an achievement unlock event
func NewAchievementUnlockedEvent(userID string, a domain.Achievement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: AchievementUnlockedPayloadV1{
			UserID:        userID,
			AchievementID: a.ID,
			Title:         a.Title,
			TitleKK:       a.TitleKK,
			Badge:         a.Badge,
			RewardXP:      a.RewardXP,
		},
		Metadata: map[string]interface{}{
			MetadataKeyUserID: userID,
		},
	}
}

// NewLevelUpEvent creates a level up event
func NewLevelUpEvent(userID string, oldLevel, newLevel domain.LevelInfo) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:   userID,
			OldLevel: oldLevel.Level,
			NewLevel: newLevel.Level,
			Title:    newLevel.Title,
			TitleKK:  newLevel.TitleKK,
		},
		Metadata: map[string]interface{}{
			MetadataKeyUserID: userID,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
