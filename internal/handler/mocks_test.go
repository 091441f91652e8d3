package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/gamification"
	"github.com/firesafetykz/portal/internal/notification"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// MockNotificationService mocks notification.Service
type MockNotificationService struct {
	mock.Mock
}

var _ notification.Service = (*MockNotificationService)(nil)

func (m *MockNotificationService) Create(ctx context.Context, in notification.CreateInput) (*domain.Notification, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationService) Broadcast(ctx context.Context, message string) (*domain.BroadcastMessage, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BroadcastMessage), args.Error(1)
}

// MockGameService mocks gamification.Service
type MockGameService struct {
	mock.Mock
}

var _ gamification.Service = (*MockGameService)(nil)

func (m *MockGameService) StartSession(ctx context.Context, userID, scenarioID string) (*domain.GameSession, error) {
	args := m.Called(ctx, userID, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameSession), args.Error(1)
}

func (m *MockGameService) CompleteSession(ctx context.Context, sessionID string, in gamification.CompleteInput) (*domain.SessionResult, error) {
	args := m.Called(ctx, sessionID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionResult), args.Error(1)
}

func (m *MockGameService) GetProfile(ctx context.Context, userID string) (*domain.ProfileView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileView), args.Error(1)
}

func (m *MockGameService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
