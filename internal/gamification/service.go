// Package gamification scores fire-safety training games: levels, achievements
// and player profiles.
package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/event"
	"github.com/firesafetykz/portal/internal/logger"
	"github.com/firesafetykz/portal/internal/repository"
)

// CompleteInput is what the game client reports when a session ends
type CompleteInput struct {
	Accuracy          float64
	TimeSpentSeconds  int
	ToolsUsed         []string
	FiresExtinguished int
	Completed         bool
	XPEarned          int64
}

// Validate checks the reported numbers are within bounds
func (in CompleteInput) Validate() error {
	switch {
	case in.Accuracy < 0 || in.Accuracy > MaxAccuracy:
		return fmt.Errorf("%w: accuracy must be between 0 and %.0f", domain.ErrInvalidInput, MaxAccuracy)
	case in.TimeSpentSeconds < 0 || in.TimeSpentSeconds > MaxSessionSeconds:
		return fmt.Errorf("%w: time spent out of range", domain.ErrInvalidInput)
	case in.FiresExtinguished < 0:
		return fmt.Errorf("%w: fires extinguished must not be negative", domain.ErrInvalidInput)
	case in.XPEarned < 0 || in.XPEarned > MaxSessionXP:
		return fmt.Errorf("%w: xp earned must be between 0 and %d", domain.ErrInvalidInput, MaxSessionXP)
	}
	return nil
}

// Service defines the gamification business logic
type Service interface {
	StartSession(ctx context.Context, userID, scenarioID string) (*domain.GameSession, error)
	CompleteSession(ctx context.Context, sessionID string, in CompleteInput) (*domain.SessionResult, error)
	GetProfile(ctx context.Context, userID string) (*domain.ProfileView, error)
	Shutdown(ctx context.Context) error
}

// Option configures the service
type Option func(*service)

// WithCache sets the profile cache size and ttl
func WithCache(size int, ttl time.Duration) Option {
	return func(s *service) {
		if size > 0 {
			s.cache = newProfileCache(size, ttl)
		}
	}
}

// WithNow replaces the clock used for timestamps and streaks
func WithNow(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repo     repository.Gamification
	eventBus event.Bus
	cache    *profileCache
	now      func() time.Time
}

// NewService creates a new gamification service. bus may be a *event.ResilientPublisher.
func NewService(repo repository.Gamification, bus event.Bus, opts ...Option) Service {
	s := &service{
		repo:     repo,
		eventBus: bus,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = newProfileCache(DefaultCacheSize, DefaultCacheTTL)
	}
	return s
}

func (s *service) StartSession(ctx context.Context, userID, scenarioID string) (*domain.GameSession, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidUserID, userID)
	}
	if !IsScenario(scenarioID) {
		return nil, fmt.Errorf("%w: unknown scenario %q", domain.ErrInvalidInput, scenarioID)
	}

	session := &domain.GameSession{
		ID:         uuid.NewString(),
		UserID:     userID,
		ScenarioID: scenarioID,
		ToolsUsed:  []string{},
		StartedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgSessionStarted, "session_id", session.ID, "user_id", userID, "scenario", scenarioID)
	return session, nil
}

func (s *service) CompleteSession(ctx context.Context, sessionID string, in CompleteInput) (*domain.SessionResult, error) {
	log := logger.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := tx.GetSessionForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.Finalized() {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionFinalized, sessionID)
	}

	now := s.now().UTC()
	session.Accuracy = in.Accuracy
	session.TimeSpentSeconds = in.TimeSpentSeconds
	session.ToolsUsed = append([]string{}, in.ToolsUsed...)
	session.FiresExtinguished = in.FiresExtinguished
	session.Completed = in.Completed
	session.XPEarned = in.XPEarned
	session.CompletedAt = &now

	profile, err := tx.GetProfileForUpdate(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		profile = newProfile(session.UserID)
	}

	result := ApplySession(*profile, *session, now)

	if err := tx.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if err := tx.UpsertProfile(ctx, &result.Profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		// the commit may still have landed, so the cached copy can't be trusted
		s.cache.Invalidate(session.UserID)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Set(result.Profile)

	log.Info(LogMsgSessionCompleted,
		"session_id", session.ID,
		"user_id", session.UserID,
		"xp", result.Profile.XP,
		"unlocked", len(result.Unlocked),
		"level", result.NewLevel.Level)

	s.publishResult(ctx, &result)
	return &result, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.ProfileView, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidUserID, userID)
	}

	if p, ok := s.cache.Get(userID); ok {
		return &domain.ProfileView{PlayerProfile: p, Level: CalculateLevel(p.XP)}, nil
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		// players without a finished game start at the first tier
		profile = newProfile(userID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	} else {
		s.cache.Set(*profile)
	}

	return &domain.ProfileView{PlayerProfile: *profile, Level: CalculateLevel(profile.XP)}, nil
}

// Shutdown drains the publisher when the bus is a resilient one
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	if rp, ok := s.eventBus.(*event.ResilientPublisher); ok {
		if err := rp.Shutdown(ctx); err != nil {
			log.Error("Failed to shut down gamification publisher", "error", err)
			return err
		}
	}

	log.Info(LogMsgShutdownComplete)
	return nil
}

func (s *service) publishResult(ctx context.Context, result *domain.SessionResult) {
	if s.eventBus == nil {
		return
	}
	log := logger.FromContext(ctx)
	userID := result.Session.UserID

	events := []event.Event{event.NewSessionCompletedEvent(result.Session)}
	for _, a := range result.Unlocked {
		log.Info(LogMsgAchievementUnlocked, "user_id", userID, "achievement", a.ID)
		events = append(events, event.NewAchievementUnlockedEvent(userID, a))
	}
	if result.LeveledUp {
		log.Info(LogMsgLevelUp, "user_id", userID, "old_level", result.OldLevel.Level, "new_level", result.NewLevel.Level)
		events = append(events, event.NewLevelUpEvent(userID, result.OldLevel, result.NewLevel))
	}

	for _, evt := range events {
		if err := s.eventBus.Publish(ctx, evt); err != nil {
			log.Warn("Failed to publish gamification event", "type", evt.Type, "error", err)
		}
	}
}

func newProfile(userID string) *domain.PlayerProfile {
	return &domain.PlayerProfile{
		UserID:             userID,
		CompletedScenarios: []string{},
		Achievements:       []string{},
	}
}
