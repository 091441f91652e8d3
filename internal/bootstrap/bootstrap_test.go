package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/config"
)

type stubServer struct {
	stopped bool
}

func (s *stubServer) Stop(context.Context) error {
	s.stopped = true
	return nil
}

func TestInitializeEventSystem_CreatesDeadLetterDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deadletter.jsonl")

	bus, rp, err := InitializeEventSystem(&config.Config{EventDeadLetterPath: path})

	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, rp)
	assert.FileExists(t, path)
	require.NoError(t, rp.Shutdown(context.Background()))
}

func TestGracefulShutdown_StopsServerAndPublisher(t *testing.T) {
	_, rp, err := InitializeEventSystem(&config.Config{
		EventDeadLetterPath: filepath.Join(t.TempDir(), "dl.jsonl"),
	})
	require.NoError(t, err)

	srv := &stubServer{}
	GracefulShutdown(context.Background(), ShutdownComponents{Server: srv, ResilientPublisher: rp})

	assert.True(t, srv.stopped)
	// a second shutdown is harmless
	assert.NoError(t, rp.Shutdown(context.Background()))
}
