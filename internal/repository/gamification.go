package repository

import (
	"context"

	"github.com/firesafetykz/portal/internal/domain"
)

// Gamification defines the data access interface for player profiles and game sessions
type Gamification interface {
	// GetProfile returns domain.ErrProfileNotFound when the player never finished a game
	GetProfile(ctx context.Context, userID string) (*domain.PlayerProfile, error)
	CreateSession(ctx context.Context, session *domain.GameSession) error
	GetSession(ctx context.Context, id string) (*domain.GameSession, error)
	BeginTx(ctx context.Context) (GamificationTx, error)
}

// GamificationTx finalizes a session and its profile atomically
type GamificationTx interface {
	GetSessionForUpdate(ctx context.Context, id string) (*domain.GameSession, error)
	// GetProfileForUpdate locks the player's profile, creating an empty one on a first game.
	// Callers still treat a nil profile as empty.
	GetProfileForUpdate(ctx context.Context, userID string) (*domain.PlayerProfile, error)
	UpdateSession(ctx context.Context, session *domain.GameSession) error
	UpsertProfile(ctx context.Context, profile *domain.PlayerProfile) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
