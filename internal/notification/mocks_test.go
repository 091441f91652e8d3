package notification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/firesafetykz/portal/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockRepository) ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.([]domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteNotification(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
