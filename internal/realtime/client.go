package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/metrics"
)

// Client owns the single WebSocket of a logged-in session. It authenticates on
// open, sends heartbeats while open and reconnects with exponential backoff after
// abnormal closes. Callers observe it through Status and OnStateChange; transport
// errors are never returned.
//
// Every callback (dial result, read error, timer) is tagged with the generation
// it was started under. Teardown and close bump the generation, so callbacks
// from an earlier socket become no-ops.
type Client struct {
	endpoint   string
	session    Session
	dispatcher *Dispatcher
	dialer     Dialer
	clock      Clock
	log        *slog.Logger

	baseDelay  time.Duration
	maxRetries int
	heartbeat  time.Duration

	mu             sync.Mutex
	gen            uint64
	state          State
	attempt        int
	lastErr        error
	message        string
	conn           Conn
	dialing        bool
	cancelDial     context.CancelFunc
	reconnectTimer Timer
	heartbeatTimer Timer
	stopOnDone     func() bool
	observers      []func(Status)
	pending        []Status

	// writeMu serializes writes; gorilla allows one concurrent writer
	writeMu sync.Mutex
}

// Option configures a Client
type Option func(*Client)

// WithDialer replaces the gorilla dialer
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithClock replaces the system clock
func WithClock(clock Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithBackoff sets the base reconnect delay and the number of reconnect attempts
func WithBackoff(base time.Duration, maxRetries int) Option {
	return func(c *Client) {
		c.baseDelay = base
		c.maxRetries = maxRetries
	}
}

// WithHeartbeatInterval sets how often a ping frame is sent while open
func WithHeartbeatInterval(d time.Duration) Option {
	return func(c *Client) { c.heartbeat = d }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a disconnected client
func NewClient(endpoint string, session Session, dispatcher *Dispatcher, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		session:    session,
		dispatcher: dispatcher,
		dialer:     NewWebSocketDialer(),
		clock:      RealClock{},
		log:        slog.Default(),
		baseDelay:  DefaultBaseDelay,
		maxRetries: DefaultMaxRetries,
		heartbeat:  DefaultHeartbeatInterval,
		message:    MsgDisconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("endpoint", endpoint, "user_id", session.UserID)
	return c
}

// Status returns a snapshot of the connection
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// OnStateChange registers fn to receive every state transition.
// fn runs on whichever goroutine caused the transition and must not block.
func (c *Client) OnStateChange(fn func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Connect opens the socket in the background. It does nothing while a socket is
// open or being opened. A pending reconnect is replaced by an immediate attempt,
// and a Failed client starts over with a fresh attempt budget.
// Cancelling ctx tears the connection down as Disconnect does.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	if c.conn != nil || c.dialing {
		c.mu.Unlock()
		return
	}

	c.stopTimersLocked()
	if c.state == StateFailed || c.state == StateDisconnected {
		c.attempt = 0
		c.lastErr = nil
	}

	if c.stopOnDone != nil {
		c.stopOnDone()
		c.stopOnDone = nil
	}
	if ctx != nil && ctx.Done() != nil {
		c.stopOnDone = context.AfterFunc(ctx, c.Disconnect)
	}

	c.setStateLocked(StateConnecting, MsgConnecting)
	c.startDialLocked()
	c.unlockAndNotify()
}

// Disconnect cancels any pending reconnect and heartbeat, closes the socket with
// a normal close and leaves the client Disconnected. It is safe to call at any
// time and any number of times.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.gen++
	c.stopTimersLocked()
	if c.cancelDial != nil {
		c.cancelDial()
		c.cancelDial = nil
	}
	c.dialing = false

	conn := c.conn
	c.conn = nil
	c.attempt = 0
	c.lastErr = nil

	stop := c.stopOnDone
	c.stopOnDone = nil

	if c.state != StateDisconnected {
		c.setStateLocked(StateDisconnected, MsgDisconnected)
		c.log.Info(LogMsgDisconnected)
	}
	c.unlockAndNotify()

	if stop != nil {
		stop()
	}
	if conn != nil {
		c.writeMu.Lock()
		if err := conn.WriteClose(CloseNormal, ""); err != nil {
			c.log.Debug(LogMsgCloseSendFailed, "error", err)
		}
		c.writeMu.Unlock()
		conn.Close()
	}
}

// Send writes v as a JSON frame on the open socket
func (c *Client) Send(v interface{}) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return c.write(conn, v)
}

type authFrame struct {
	Type   domain.FrameType `json:"type"`
	UserID string           `json:"userId"`
}

type pingFrame struct {
	Type domain.FrameType `json:"type"`
}

func (c *Client) startDialLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelDial = cancel
	c.dialing = true
	gen := c.gen

	c.log.Debug(LogMsgConnecting, "attempt", c.attempt)
	go c.dial(ctx, gen)
}

func (c *Client) dial(ctx context.Context, gen uint64) {
	conn, err := c.dialer.Dial(ctx, c.endpoint)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	c.dialing = false
	if c.cancelDial != nil {
		c.cancelDial()
		c.cancelDial = nil
	}

	if err != nil {
		c.log.Warn(LogMsgDialFailed, "error", err, "attempt", c.attempt)
		c.gen++
		c.scheduleReconnectLocked(err)
		c.unlockAndNotify()
		return
	}

	c.conn = conn
	c.attempt = 0
	c.lastErr = nil
	c.setStateLocked(StateConnected, MsgConnected)
	c.scheduleHeartbeatLocked(gen)
	c.log.Info(LogMsgConnected)
	c.unlockAndNotify()

	if err := c.write(conn, authFrame{Type: domain.FrameAuth, UserID: c.session.UserID}); err != nil {
		// the read loop sees the broken socket and drives the reconnect
		c.log.Warn(LogMsgAuthSendFailed, "error", err)
	}

	c.readLoop(conn, gen)
}

// readLoop is the only place frames are dispatched, which keeps arrival order
func (c *Client) readLoop(conn Conn, gen uint64) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.onClosed(gen, CloseCode(err), err)
			return
		}
		if !c.isCurrent(gen) {
			return
		}
		c.dispatcher.Dispatch(data)
	}
}

func (c *Client) onClosed(gen uint64, code int, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	c.conn = nil
	c.gen++
	c.stopTimersLocked()

	c.log.Info(LogMsgClosed, "code", code, "error", err)
	if code == CloseNormal {
		c.attempt = 0
		c.lastErr = nil
		c.setStateLocked(StateDisconnected, MsgDisconnected)
	} else {
		c.scheduleReconnectLocked(err)
	}
	c.unlockAndNotify()

	if conn != nil {
		conn.Close()
	}
}

// scheduleReconnectLocked arms the single reconnect timer, or gives up once the
// attempt budget is spent. Delay is base * 2^attempt.
func (c *Client) scheduleReconnectLocked(cause error) {
	if c.attempt >= c.maxRetries {
		c.lastErr = ErrReconnectExhausted
		c.setStateLocked(StateFailed, MsgCannotReach)
		c.log.Error(LogMsgReconnectExhausted, "attempts", c.attempt, "error", cause)
		return
	}

	delay := c.baseDelay * time.Duration(1<<c.attempt)
	c.attempt++
	c.lastErr = cause
	c.setStateLocked(StateReconnecting, MsgReconnecting)
	metrics.RealtimeReconnects.Inc()

	gen := c.gen
	c.reconnectTimer = c.clock.AfterFunc(delay, func() { c.onReconnectTimer(gen) })
	c.log.Info(LogMsgReconnectScheduled, "attempt", c.attempt, "delay", delay)
}

func (c *Client) onReconnectTimer(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.reconnectTimer == nil {
		c.mu.Unlock()
		return
	}
	c.reconnectTimer = nil
	c.startDialLocked()
	c.mu.Unlock()
}

func (c *Client) scheduleHeartbeatLocked(gen uint64) {
	c.heartbeatTimer = c.clock.AfterFunc(c.heartbeat, func() { c.onHeartbeat(gen) })
}

func (c *Client) onHeartbeat(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.conn == nil {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	c.scheduleHeartbeatLocked(gen)
	c.mu.Unlock()

	if err := c.write(conn, pingFrame{Type: domain.FramePing}); err != nil {
		c.log.Warn(LogMsgHeartbeatSendFailed, "error", err)
	}
}

func (c *Client) write(conn Conn, v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(v)
}

func (c *Client) isCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen
}

func (c *Client) stopTimersLocked() {
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	if c.heartbeatTimer != nil {
		c.heartbeatTimer.Stop()
		c.heartbeatTimer = nil
	}
}

func (c *Client) statusLocked() Status {
	return Status{
		State:     c.state,
		Attempt:   c.attempt,
		LastError: c.lastErr,
		Message:   c.message,
	}
}

func (c *Client) setStateLocked(s State, message string) {
	c.state = s
	c.message = message
	metrics.RealtimeStateTransitions.WithLabelValues(s.String()).Inc()
	if len(c.observers) > 0 {
		c.pending = append(c.pending, c.statusLocked())
	}
}

// unlockAndNotify releases mu and then delivers queued transitions, so observers
// may call back into the client.
func (c *Client) unlockAndNotify() {
	pending := c.pending
	c.pending = nil
	observers := c.observers
	c.mu.Unlock()

	for _, st := range pending {
		for _, fn := range observers {
			fn(st)
		}
	}
}
