package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/domain"
)

func newNotification(userID string, at time.Time) *domain.Notification {
	return &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      domain.FrameNotification,
		Title:     "Проверка",
		Message:   "Огнетушитель проверен",
		CreatedAt: at,
	}
}

func TestNotificationRepository_Integration(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewNotificationRepository(pool)
	ctx := context.Background()

	userID := uuid.NewString()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	older := newNotification(userID, base)
	newer := newNotification(userID, base.Add(time.Minute))
	newer.Kind = domain.FrameNewBid
	newer.Payload = json.RawMessage(`{"orderId":"o-1","amount":15000}`)
	other := newNotification(uuid.NewString(), base)

	for _, n := range []*domain.Notification{older, newer, other} {
		require.NoError(t, repo.CreateNotification(ctx, n))
	}

	t.Run("list is newest first and scoped to the user", func(t *testing.T) {
		list, err := repo.ListNotifications(ctx, domain.NotificationFilter{UserID: userID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, domain.FrameNewBid, list[0].Kind)
		assert.JSONEq(t, string(newer.Payload), string(list[0].Payload))
		assert.Nil(t, list[1].Payload)
		assert.True(t, list[1].CreatedAt.Equal(base))
	})

	t.Run("limit", func(t *testing.T) {
		list, err := repo.ListNotifications(ctx, domain.NotificationFilter{UserID: userID, Limit: 1})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("mark read and count", func(t *testing.T) {
		count, err := repo.CountUnread(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		require.NoError(t, repo.MarkRead(ctx, older.ID))
		require.NoError(t, repo.MarkRead(ctx, older.ID), "marking twice succeeds")

		count, err = repo.CountUnread(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		unread, err := repo.ListNotifications(ctx, domain.NotificationFilter{UserID: userID, UnreadOnly: true, Limit: 10})
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, newer.ID, unread[0].ID)
	})

	t.Run("mark all read", func(t *testing.T) {
		changed, err := repo.MarkAllRead(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), changed)

		changed, err = repo.MarkAllRead(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), changed)
	})

	t.Run("missing ids", func(t *testing.T) {
		assert.ErrorIs(t, repo.MarkRead(ctx, uuid.NewString()), domain.ErrNotificationNotFound)
		assert.ErrorIs(t, repo.MarkRead(ctx, "not-a-uuid"), domain.ErrNotificationNotFound)
		assert.ErrorIs(t, repo.DeleteNotification(ctx, uuid.NewString()), domain.ErrNotificationNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteNotification(ctx, older.ID))
		list, err := repo.ListNotifications(ctx, domain.NotificationFilter{UserID: userID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, newer.ID, list[0].ID)
	})
}
