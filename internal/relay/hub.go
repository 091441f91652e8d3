// Package relay is the server end of the real-time channel. It accepts WebSocket
// clients, authenticates them and pushes notification frames from the event bus.
package relay

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/metrics"
)

// Hub tracks open connections and the user each one authenticated as
type Hub struct {
	mu     sync.RWMutex
	conns  map[*conn]struct{}
	byUser map[string]map[*conn]struct{}
	closed bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		conns:  make(map[*conn]struct{}),
		byUser: make(map[string]map[*conn]struct{}),
	}
}

func (h *Hub) register(c *conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[c] = struct{}{}
	metrics.RelayConnections.Inc()
	return true
}

// unregister forgets c and closes its send queue with code. Repeated calls are no-ops.
func (h *Hub) unregister(c *conn, code int, reason string) {
	h.mu.Lock()
	_, ok := h.conns[c]
	if ok {
		delete(h.conns, c)
		h.unbindLocked(c)
		metrics.RelayConnections.Dec()
	}
	h.mu.Unlock()

	if ok {
		c.closeSend(code, reason)
	}
}

// bind attaches c to userID, replacing any earlier binding of c
func (h *Hub) bind(c *conn, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; !ok {
		return
	}
	h.unbindLocked(c)
	c.userID = userID
	set := h.byUser[userID]
	if set == nil {
		set = make(map[*conn]struct{})
		h.byUser[userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unbindLocked(c *conn) {
	if c.userID == "" {
		return
	}
	if set := h.byUser[c.userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.userID)
		}
	}
	c.userID = ""
}

// SendToUser queues frame on every socket authenticated as userID and
// returns how many sockets it reached
func (h *Hub) SendToUser(userID string, frame domain.Frame) int {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Error(LogMsgFrameEncodeFailed, "type", frame.Type, "error", err)
		return 0
	}

	h.mu.RLock()
	targets := make([]*conn, 0, len(h.byUser[userID]))
	for c := range h.byUser[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		metrics.RelayFramesDropped.WithLabelValues(metrics.ReasonNoListener).Inc()
		slog.Debug(LogMsgNoListener, "user_id", userID, "type", frame.Type)
		return 0
	}
	return h.deliver(targets, frame.Type, data)
}

// Broadcast queues frame on every open socket
func (h *Hub) Broadcast(frame domain.Frame) int {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Error(LogMsgFrameEncodeFailed, "type", frame.Type, "error", err)
		return 0
	}

	h.mu.RLock()
	targets := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	return h.deliver(targets, frame.Type, data)
}

func (h *Hub) deliver(targets []*conn, t domain.FrameType, data []byte) int {
	sent := 0
	for _, c := range targets {
		err := c.enqueue(data)
		switch {
		case err == nil:
			sent++
			metrics.RelayFramesSent.WithLabelValues(string(t)).Inc()
		case errors.Is(err, errSendFull):
			// the client can reconnect and catch up via REST
			metrics.RelayFramesDropped.WithLabelValues(metrics.ReasonBufferFull).Inc()
			slog.Warn(LogMsgSlowClient, "conn_id", c.id, "type", t)
			h.unregister(c, websocket.CloseTryAgainLater, MsgTooSlow)
		default:
			metrics.RelayFramesDropped.WithLabelValues(metrics.ReasonNoListener).Inc()
		}
	}
	return sent
}

// ConnectionCount returns the number of open sockets
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// UserConnectionCount returns the number of sockets authenticated as userID
func (h *Hub) UserConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}

// Close closes every socket with a going-away close frame and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	all := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		all = append(all, c)
	}
	h.mu.Unlock()

	for _, c := range all {
		h.unregister(c, websocket.CloseGoingAway, MsgShuttingDown)
	}
}
