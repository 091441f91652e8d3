package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/event"
	"github.com/firesafetykz/portal/internal/testing/leaktest"
)

const (
	userA = "1d3c5b7a-9e8f-4a2b-8c6d-0e1f2a3b4c5d"
	userB = "2e4d6c8b-0f9a-4b3c-9d7e-1f2a3b4c5d6e"
)

type testServer struct {
	hub *Hub
	srv *httptest.Server
	url string
}

func newTestServer(t *testing.T, auth Authenticator, origins ...string) *testServer {
	t.Helper()
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	hub := NewHub()
	r := chi.NewRouter()
	r.Get("/ws", Handler(hub, auth, origins))
	srv := httptest.NewServer(r)

	ts := &testServer{hub: hub, srv: srv, url: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"}
	t.Cleanup(ts.close)
	return ts
}

func (ts *testServer) close() {
	ts.hub.Close()
	ts.srv.Close()
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(ts.url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	f := readFrame(t, ws)
	require.Equal(t, domain.FrameConnection, f.Type)
	return ws
}

func readFrame(t *testing.T, ws *websocket.Conn) domain.Frame {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f domain.Frame
	require.NoError(t, ws.ReadJSON(&f))
	return f
}

func send(t *testing.T, ws *websocket.Conn, v interface{}) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(v))
}

func authAs(t *testing.T, ws *websocket.Conn, userID string) domain.Frame {
	t.Helper()
	send(t, ws, map[string]string{"type": "auth", "userId": userID})
	return readFrame(t, ws)
}

func TestRelay_ConnectionFrame(t *testing.T) {
	ts := newTestServer(t, nil)
	ws, _, err := websocket.DefaultDialer.Dial(ts.url, nil)
	require.NoError(t, err)
	defer ws.Close()

	f := readFrame(t, ws)
	assert.Equal(t, domain.FrameConnection, f.Type)
	assert.Equal(t, MsgConnected, f.Message)
	assert.False(t, f.Timestamp.IsZero())
	assert.Eventually(t, func() bool { return ts.hub.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestRelay_AuthSuccess(t *testing.T) {
	ts := newTestServer(t, nil)
	ws := ts.dial(t)

	f := authAs(t, ws, userA)

	assert.Equal(t, domain.FrameAuthSuccess, f.Type)
	assert.Equal(t, userA, f.UserID)
	assert.Equal(t, 1, ts.hub.UserConnectionCount(userA))
}

func TestRelay_AuthErrorKeepsSocketOpen(t *testing.T) {
	ts := newTestServer(t, nil)
	ws := ts.dial(t)

	f := authAs(t, ws, "not-a-uuid")
	assert.Equal(t, domain.FrameAuthError, f.Type)
	assert.Equal(t, MsgInvalidUserID, f.Message)

	send(t, ws, map[string]string{"type": "ping"})
	assert.Equal(t, domain.FramePong, readFrame(t, ws).Type)

	assert.Equal(t, domain.FrameAuthSuccess, authAs(t, ws, userA).Type)
}

func TestRelay_AuthenticatorRejects(t *testing.T) {
	auth := AuthenticatorFunc(func(_ context.Context, userID string) error {
		if userID == userB {
			return errors.New("banned")
		}
		return nil
	})
	ts := newTestServer(t, auth)
	ws := ts.dial(t)

	f := authAs(t, ws, userB)

	assert.Equal(t, domain.FrameAuthError, f.Type)
	assert.Equal(t, MsgAuthFailed, f.Message)
	assert.Zero(t, ts.hub.UserConnectionCount(userB))
}

func TestRelay_SendToUser(t *testing.T) {
	ts := newTestServer(t, nil)
	a1 := ts.dial(t)
	a2 := ts.dial(t)
	b := ts.dial(t)
	authAs(t, a1, userA)
	authAs(t, a2, userA)
	authAs(t, b, userB)

	frame, err := domain.NewFrame(domain.FrameNewOrder, domain.OrderEvent{OrderID: "o1", Title: "Монтаж"}, "")
	require.NoError(t, err)

	assert.Equal(t, 2, ts.hub.SendToUser(userA, frame))
	for _, ws := range []*websocket.Conn{a1, a2} {
		got := readFrame(t, ws)
		assert.Equal(t, domain.FrameNewOrder, got.Type)
		var order domain.OrderEvent
		require.NoError(t, json.Unmarshal(got.Data, &order))
		assert.Equal(t, "o1", order.OrderID)
	}

	// b only sees what comes next
	bc, err := domain.NewFrame(domain.FrameBroadcast, nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, 3, ts.hub.Broadcast(bc))
	assert.Equal(t, domain.FrameBroadcast, readFrame(t, b).Type)
}

func TestRelay_SendToUnknownUser(t *testing.T) {
	hub := NewHub()
	frame, err := domain.NewFrame(domain.FrameNotification, nil, "x")
	require.NoError(t, err)

	assert.Zero(t, hub.SendToUser(userA, frame))
}

func TestRelay_UnknownClientFrameIgnored(t *testing.T) {
	ts := newTestServer(t, nil)
	ws := ts.dial(t)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, ws, map[string]string{"type": "subscribe"})
	send(t, ws, map[string]string{"type": "ping"})

	assert.Equal(t, domain.FramePong, readFrame(t, ws).Type)
}

func TestRelay_ClientCloseUnregisters(t *testing.T) {
	ts := newTestServer(t, nil)
	ws := ts.dial(t)
	authAs(t, ws, userA)

	require.NoError(t, ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	assert.Eventually(t, func() bool {
		return ts.hub.ConnectionCount() == 0 && ts.hub.UserConnectionCount(userA) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRelay_CloseSendsGoingAway(t *testing.T) {
	ts := newTestServer(t, nil)
	ws := ts.dial(t)

	ts.hub.Close()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	var ce *websocket.CloseError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, websocket.CloseGoingAway, ce.Code)

	// a closed hub turns new sockets away
	late, _, err := websocket.DefaultDialer.Dial(ts.url, nil)
	require.NoError(t, err)
	defer late.Close()
	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}

func TestRelay_OriginRejected(t *testing.T) {
	ts := newTestServer(t, nil, "https://firesafety.kz")

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(ts.url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"https://FireSafety.kz/"}}
	ws, _, err := websocket.DefaultDialer.Dial(ts.url, header)
	require.NoError(t, err)
	ws.Close()
}

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard", []string{"*"}, "https://anything.example", true},
		{"no origin header", []string{"https://firesafety.kz"}, "", true},
		{"listed", []string{"https://firesafety.kz", "http://localhost:3000"}, "http://localhost:3000", true},
		{"not listed", []string{"https://firesafety.kz"}, "https://firesafety.kz.evil", false},
		{"empty list", nil, "https://firesafety.kz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, OriginChecker(tt.allowed)(r))
		})
	}
}

func TestHub_SlowConsumerDropped(t *testing.T) {
	hub := NewHub()
	c := newConn("slow", nil, hub, AllowAll, slog.Default())
	require.True(t, hub.register(c))
	hub.bind(c, userA)

	frame, err := domain.NewFrame(domain.FrameNotification, nil, "x")
	require.NoError(t, err)
	for i := 0; i < SendBufferSize; i++ {
		require.Equal(t, 1, hub.SendToUser(userA, frame))
	}

	assert.Zero(t, hub.SendToUser(userA, frame))
	assert.Zero(t, hub.ConnectionCount())
	code, reason := c.closeInfo()
	assert.Equal(t, websocket.CloseTryAgainLater, code)
	assert.Equal(t, MsgTooSlow, reason)
	assert.ErrorIs(t, c.enqueue([]byte("{}")), errSendClosed)
}

func TestSubscriber_NotificationCreated(t *testing.T) {
	ts := newTestServer(t, nil)
	bus := event.NewMemoryBus()
	NewSubscriber(ts.hub).Register(bus)
	ws := ts.dial(t)
	authAs(t, ws, userA)

	n := domain.Notification{
		ID:        "9a7b5c3d-1e2f-4a6b-8c0d-e1f2a3b4c5d6",
		UserID:    userA,
		Kind:      domain.FrameNotification,
		Title:     "Новое достижение: Первое пламя",
		Message:   "🔥 Первое пламя (+50 XP)",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, bus.Publish(context.Background(), event.NewNotificationCreatedEvent(n)))

	f := readFrame(t, ws)
	assert.Equal(t, domain.FrameNotification, f.Type)
	assert.True(t, f.Timestamp.Equal(n.CreatedAt))
	var data domain.NotificationEvent
	require.NoError(t, json.Unmarshal(f.Data, &data))
	assert.Equal(t, n.ID, data.ID)
	assert.Equal(t, n.Title, data.Title)
}

func TestSubscriber_Broadcast(t *testing.T) {
	ts := newTestServer(t, nil)
	bus := event.NewMemoryBus()
	NewSubscriber(ts.hub).Register(bus)
	ws := ts.dial(t)

	require.NoError(t, bus.Publish(context.Background(), event.NewBroadcastEvent("Учебная тревога", time.Now())))

	f := readFrame(t, ws)
	assert.Equal(t, domain.FrameBroadcast, f.Type)
	assert.Equal(t, "Учебная тревога", f.Message)
}

func TestFrameFromNotification_Payload(t *testing.T) {
	n := domain.Notification{
		Kind:    domain.FrameBidStatusChanged,
		Payload: json.RawMessage(`{"bidId":"b1","status":"accepted","prevStatus":"pending"}`),
	}

	f, err := FrameFromNotification(n)

	require.NoError(t, err)
	assert.JSONEq(t, string(n.Payload), string(f.Data))
}

func TestRelay_NoGoroutineLeak(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		hub := NewHub()
		srv := httptest.NewServer(Handler(hub, nil, []string{"*"}))
		url := "ws" + strings.TrimPrefix(srv.URL, "http")

		ws, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.FrameConnection, readFrame(t, ws).Type)
		assert.Equal(t, domain.FrameAuthSuccess, authAs(t, ws, userA).Type)

		hub.Close()
		_, _, _ = ws.ReadMessage()
		ws.Close()
		srv.Close()
	})
}
