package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/database"
)

// testDBConnString is set by TestMain when a container is available
var testDBConnString string

// setupTestPool connects to the test container, applies migrations and empties every table
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := database.NewPool(context.Background(), database.PoolConfig{
		ConnString:      testDBConnString,
		MaxConns:        5,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 5 * time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ctx := context.Background()
	_, err = database.Migrate(ctx, pool)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE notifications, game_sessions, player_profiles`)
	require.NoError(t, err)
	return pool
}
