package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/repository"
)

// GamificationRepository implements repository.Gamification for PostgreSQL
type GamificationRepository struct {
	db *pgxpool.Pool
}

var _ repository.Gamification = (*GamificationRepository)(nil)

// NewGamificationRepository creates a new GamificationRepository
func NewGamificationRepository(db *pgxpool.Pool) *GamificationRepository {
	return &GamificationRepository{db: db}
}

// GamificationTx implements repository.GamificationTx
type GamificationTx struct {
	tx pgx.Tx
}

const (
	profileColumns = `user_id, xp, games_played, total_fires_extinguished, average_accuracy,
		current_streak, longest_streak, last_played_at, completed_scenarios, achievements`
	sessionColumns = `session_id, user_id, scenario_id, accuracy, time_spent_seconds, tools_used,
		fires_extinguished, completed, xp_earned, started_at, completed_at`
)

// BeginTx starts a new transaction
func (r *GamificationRepository) BeginTx(ctx context.Context) (repository.GamificationTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &GamificationTx{tx: tx}, nil
}

// GetProfile returns domain.ErrProfileNotFound when no row exists
func (r *GamificationRepository) GetProfile(ctx context.Context, userID string) (*domain.PlayerProfile, error) {
	p, err := getProfile(ctx, r.db, `SELECT `+profileColumns+` FROM player_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}
	return p, nil
}

// CreateSession inserts a started, unfinalized session
func (r *GamificationRepository) CreateSession(ctx context.Context, s *domain.GameSession) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO game_sessions (session_id, user_id, scenario_id, tools_used, started_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.ScenarioID, nonNil(s.ToolsUsed), s.StartedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertSession, err)
	}
	return nil
}

// GetSession returns domain.ErrSessionNotFound when no row exists
func (r *GamificationRepository) GetSession(ctx context.Context, id string) (*domain.GameSession, error) {
	return getSession(ctx, r.db, `SELECT `+sessionColumns+` FROM game_sessions WHERE session_id = $1`, id)
}

// GetSessionForUpdate locks the session row until the transaction ends
func (t *GamificationTx) GetSessionForUpdate(ctx context.Context, id string) (*domain.GameSession, error) {
	return getSession(ctx, t.tx, `SELECT `+sessionColumns+` FROM game_sessions WHERE session_id = $1 FOR UPDATE`, id)
}

// GetProfileForUpdate locks the profile row until the transaction ends. A first game
// inserts an empty row so concurrent completions for the same player queue on it.
func (t *GamificationTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.PlayerProfile, error) {
	if _, err := t.tx.Exec(ctx,
		`INSERT INTO player_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProfile, err)
	}

	p, err := getProfile(ctx, t.tx, `SELECT `+profileColumns+` FROM player_profiles WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}
	return p, nil
}

// UpdateSession stores the final session values
func (t *GamificationTx) UpdateSession(ctx context.Context, s *domain.GameSession) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE game_sessions
		SET accuracy = $2, time_spent_seconds = $3, tools_used = $4, fires_extinguished = $5,
			completed = $6, xp_earned = $7, completed_at = $8
		WHERE session_id = $1`,
		s.ID, s.Accuracy, s.TimeSpentSeconds, nonNil(s.ToolsUsed), s.FiresExtinguished,
		s.Completed, s.XPEarned, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateSession, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// UpsertProfile inserts or replaces the profile row
func (t *GamificationTx) UpsertProfile(ctx context.Context, p *domain.PlayerProfile) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO player_profiles (`+profileColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			xp = EXCLUDED.xp,
			games_played = EXCLUDED.games_played,
			total_fires_extinguished = EXCLUDED.total_fires_extinguished,
			average_accuracy = EXCLUDED.average_accuracy,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_played_at = EXCLUDED.last_played_at,
			completed_scenarios = EXCLUDED.completed_scenarios,
			achievements = EXCLUDED.achievements,
			updated_at = NOW()`,
		p.UserID, p.XP, p.GamesPlayed, p.TotalFiresExtinguished, p.AverageAccuracy,
		p.CurrentStreak, p.LongestStreak, p.LastPlayedAt,
		nonNil(p.CompletedScenarios), nonNil(p.Achievements))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProfile, err)
	}
	return nil
}

// Commit commits the transaction
func (t *GamificationTx) Commit(ctx context.Context) error {
	return txError(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction
func (t *GamificationTx) Rollback(ctx context.Context) error {
	return txError(t.tx.Rollback(ctx))
}

func getProfile(ctx context.Context, q querier, sql, userID string) (*domain.PlayerProfile, error) {
	var (
		p          domain.PlayerProfile
		lastPlayed *time.Time
	)
	err := q.QueryRow(ctx, sql, userID).Scan(
		&p.UserID, &p.XP, &p.GamesPlayed, &p.TotalFiresExtinguished, &p.AverageAccuracy,
		&p.CurrentStreak, &p.LongestStreak, &lastPlayed, &p.CompletedScenarios, &p.Achievements)
	if err != nil {
		return nil, err
	}
	if lastPlayed != nil {
		utc := lastPlayed.UTC()
		p.LastPlayedAt = &utc
	}
	return &p, nil
}

func getSession(ctx context.Context, q querier, sql, id string) (*domain.GameSession, error) {
	var (
		s           domain.GameSession
		completedAt *time.Time
	)
	err := q.QueryRow(ctx, sql, id).Scan(
		&s.ID, &s.UserID, &s.ScenarioID, &s.Accuracy, &s.TimeSpentSeconds, &s.ToolsUsed,
		&s.FiresExtinguished, &s.Completed, &s.XPEarned, &s.StartedAt, &completedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSession, err)
	}
	s.StartedAt = s.StartedAt.UTC()
	if completedAt != nil {
		utc := completedAt.UTC()
		s.CompletedAt = &utc
	}
	return &s, nil
}
