package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firesafetykz/portal/internal/database/postgres"
	"github.com/firesafetykz/portal/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Notification repository.Notification
	Gamification repository.Gamification
}

// InitializeRepositories creates the postgres-backed repositories
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Notification: postgres.NewNotificationRepository(dbPool),
		Gamification: postgres.NewGamificationRepository(dbPool),
	}
}
