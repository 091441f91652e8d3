package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType, Payload: "payload"})

	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}
	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "nobody"}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	calledSecond := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		calledSecond = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	assert.Error(t, err)
	assert.True(t, calledSecond, "a failing handler must not stop the others")
}

func TestTypedConstructors(t *testing.T) {
	n := domain.Notification{ID: "n1", UserID: "u1", Kind: domain.FrameNewBid}
	evt := NewNotificationCreatedEvent(n)
	assert.Equal(t, NotificationCreated, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, "u1", evt.GetMetadataValue(MetadataKeyUserID))

	payload, err := DecodePayload[NotificationCreatedPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, "n1", payload.Notification.ID)

	lvl := NewLevelUpEvent("u1", domain.LevelInfo{Level: 1}, domain.LevelInfo{Level: 2, Title: "Курсант"})
	up, err := DecodePayload[LevelUpPayloadV1](lvl.Payload)
	require.NoError(t, err)
	assert.Equal(t, 1, up.OldLevel)
	assert.Equal(t, 2, up.NewLevel)
	assert.Equal(t, "Курсант", up.Title)

	b := NewBroadcastEvent("maintenance", time.Unix(0, 0))
	assert.Nil(t, b.GetMetadataValue(MetadataKeyUserID))
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"user_id": "u9", "achievement_id": "first-fire", "reward_xp": 50}

	p, err := DecodePayload[AchievementUnlockedPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, "u9", p.UserID)
	assert.Equal(t, "first-fire", p.AchievementID)
	assert.Equal(t, int64(50), p.RewardXP)
}

func TestDecodePayload_Sources(t *testing.T) {
	want := LevelUpPayloadV1{UserID: "u9", NewLevel: 3}

	fromPtr, err := DecodePayload[LevelUpPayloadV1](&want)
	require.NoError(t, err)
	assert.Equal(t, want, fromPtr)

	fromRaw, err := DecodePayload[LevelUpPayloadV1](json.RawMessage(`{"user_id":"u9","new_level":3}`))
	require.NoError(t, err)
	assert.Equal(t, want, fromRaw)

	_, err = DecodePayload[LevelUpPayloadV1](nil)
	assert.ErrorIs(t, err, ErrNilPayload)

	_, err = DecodePayload[LevelUpPayloadV1]((*LevelUpPayloadV1)(nil))
	assert.ErrorIs(t, err, ErrNilPayload)

	_, err = DecodePayload[LevelUpPayloadV1]([]byte(`{"new_level":"three"}`))
	assert.Error(t, err)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 0))
}
