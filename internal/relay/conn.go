package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/metrics"
)

var (
	errSendClosed = errors.New("send queue closed")
	errSendFull   = errors.New("send queue full")
)

type conn struct {
	id   string
	ws   *websocket.Conn
	hub  *Hub
	auth Authenticator
	log  *slog.Logger

	// userID is guarded by hub.mu
	userID string

	sendMu      sync.Mutex
	send        chan []byte
	sendClosed  bool
	closeCode   int
	closeReason string
}

func newConn(id string, ws *websocket.Conn, hub *Hub, auth Authenticator, log *slog.Logger) *conn {
	return &conn{
		id:   id,
		ws:   ws,
		hub:  hub,
		auth: auth,
		log:  log.With("conn_id", id),
		send: make(chan []byte, SendBufferSize),
	}
}

func (c *conn) enqueue(data []byte) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return errSendClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errSendFull
	}
}

func (c *conn) closeSend(code int, reason string) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	c.sendClosed = true
	c.closeCode = code
	c.closeReason = reason
	close(c.send)
}

func (c *conn) closeInfo() (int, string) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.closeCode, c.closeReason
}

// readPump runs on the handler goroutine until the socket fails or closes
func (c *conn) readPump(ctx context.Context) {
	defer c.hub.unregister(c, websocket.CloseNormalClosure, "")

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn(LogMsgReadError, "error", err)
			}
			return
		}
		// any client frame proves liveness
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		c.handle(ctx, data)
	}
}

func (c *conn) writePump(done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
		close(done)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				code, reason := c.closeInfo()
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type clientFrame struct {
	Type   domain.FrameType `json:"type"`
	UserID string           `json:"userId"`
}

func (c *conn) handle(ctx context.Context, data []byte) {
	var f clientFrame
	if err := json.Unmarshal(data, &f); err != nil {
		metrics.FramesDropped.WithLabelValues(metrics.ReasonMalformed).Inc()
		c.log.Debug(LogMsgBadFrame, "error", err)
		return
	}

	switch f.Type {
	case domain.FrameAuth:
		c.authenticate(ctx, f.UserID)
	case domain.FramePing:
		c.reply(domain.FramePong, "", "")
	default:
		metrics.FramesDropped.WithLabelValues(metrics.ReasonUnknownType).Inc()
		c.log.Debug(LogMsgBadFrame, "type", f.Type)
	}
}

// authenticate answers an auth frame. A rejected socket stays open and may retry.
func (c *conn) authenticate(ctx context.Context, userID string) {
	err := validateUserID(userID)
	msg := MsgInvalidUserID
	if err == nil {
		msg = MsgAuthFailed
		err = c.auth.Authenticate(ctx, userID)
	}
	if err != nil {
		metrics.RelayAuthResults.WithLabelValues(AuthResultFailure).Inc()
		c.log.Info(LogMsgAuthRejected, "user_id", userID, "error", err)
		c.reply(domain.FrameAuthError, "", msg)
		return
	}

	c.hub.bind(c, userID)
	metrics.RelayAuthResults.WithLabelValues(AuthResultSuccess).Inc()
	c.log.Info(LogMsgClientAuthed, "user_id", userID)
	c.reply(domain.FrameAuthSuccess, userID, "")
}

func (c *conn) reply(t domain.FrameType, userID, message string) {
	frame, err := domain.NewFrame(t, nil, message)
	if err != nil {
		c.log.Error(LogMsgFrameEncodeFailed, "type", t, "error", err)
		return
	}
	frame.UserID = userID

	data, err := json.Marshal(frame)
	if err != nil {
		c.log.Error(LogMsgFrameEncodeFailed, "type", t, "error", err)
		return
	}
	c.hub.deliver([]*conn{c}, t, data)
}
