package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/realtime"
	"github.com/firesafetykz/portal/internal/toast"
)

type refusingDialer struct{}

func (refusingDialer) Dial(context.Context, string) (realtime.Conn, error) {
	return nil, errors.New("connection refused")
}

func TestFailedSignal_FiresWhenServerUnreachable(t *testing.T) {
	dispatcher := realtime.NewDispatcher(toast.NewPresenter(domain.LocaleRussian), realtime.RealClock{})
	client := realtime.NewClient("ws://127.0.0.1:1/ws",
		realtime.Session{UserID: "0b8e2f4c-6a1d-4e3b-8c9f-2d7a5e1b3c40"},
		dispatcher,
		realtime.WithDialer(refusingDialer{}),
		realtime.WithBackoff(time.Millisecond, 1))
	t.Cleanup(client.Disconnect)

	failed := failedSignal(client)
	client.Connect(context.Background())

	select {
	case st := <-failed:
		assert.Equal(t, realtime.StateFailed, st.State)
		assert.ErrorIs(t, st.LastError, realtime.ErrReconnectExhausted)
	case <-time.After(5 * time.Second):
		require.Fail(t, "client never reported Failed")
	}
}

func TestFailedSignal_QuietWhileHealthy(t *testing.T) {
	dispatcher := realtime.NewDispatcher(toast.NewPresenter(domain.LocaleRussian), realtime.RealClock{})
	client := realtime.NewClient("ws://127.0.0.1:1/ws", realtime.Session{}, dispatcher)

	failed := failedSignal(client)
	client.Disconnect()

	select {
	case <-failed:
		t.Fatal("a manual disconnect is not a failure")
	default:
	}
}
