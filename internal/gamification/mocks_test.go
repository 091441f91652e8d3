package gamification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfile(ctx context.Context, userID string) (*domain.PlayerProfile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.PlayerProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CreateSession(ctx context.Context, session *domain.GameSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockRepository) GetSession(ctx context.Context, id string) (*domain.GameSession, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*domain.GameSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.GamificationTx, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repository.GamificationTx), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetSessionForUpdate(ctx context.Context, id string) (*domain.GameSession, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*domain.GameSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.PlayerProfile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.PlayerProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTx) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockTx) UpsertProfile(ctx context.Context, profile *domain.PlayerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
