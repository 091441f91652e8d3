package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// manualClock records timers and fires them only when told to
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// pending returns timers that were neither stopped nor fired
func (c *manualClock) pending() []*manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs t's callback synchronously, even if it was stopped, to mimic a
// timer that raced with Stop
func (c *manualClock) fire(t *manualTimer) {
	c.mu.Lock()
	t.fired = true
	c.now = c.now.Add(t.delay)
	c.mu.Unlock()
	t.fn()
}

// fakeConn is an in-memory socket
type fakeConn struct {
	incoming  chan []byte
	readErr   chan error
	closed    chan struct{}
	closeOnce sync.Once

	mu         sync.Mutex
	written    []map[string]interface{}
	closeCodes []int
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan []byte, 16),
		readErr:  make(chan error, 1),
		closed:   make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case b := <-c.incoming:
		return websocket.TextMessage, b, nil
	case err := <-c.readErr:
		return 0, nil, err
	case <-c.closed:
		return 0, nil, errors.New("use of closed network connection")
	}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	select {
	case <-c.closed:
		return errors.New("write on closed connection")
	default:
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	c.mu.Lock()
	c.written = append(c.written, m)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) WriteClose(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCodes = append(c.closeCodes, code)
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) frames() []map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]map[string]interface{}(nil), c.written...)
}

func (c *fakeConn) sentCloseCodes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.closeCodes...)
}

// serverClose simulates the peer closing with code
func (c *fakeConn) serverClose(code int) {
	c.readErr <- &websocket.CloseError{Code: code}
}

// fakeDialer hands out scripted results in order; when the script runs out it fails
type fakeDialer struct {
	mu      sync.Mutex
	results []dialResult
	calls   int
	block   chan struct{}
}

type dialResult struct {
	conn *fakeConn
	err  error
}

var errRefused = errors.New("connection refused")

func (d *fakeDialer) push(results ...dialResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results = append(d.results, results...)
}

func (d *fakeDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	d.mu.Lock()
	d.calls++
	block := d.block
	var r dialResult
	if len(d.results) > 0 {
		r = d.results[0]
		d.results = d.results[1:]
	} else {
		r = dialResult{err: errRefused}
	}
	d.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.conn, nil
}

func (d *fakeDialer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// recordingHandler records the order in which variants arrive
type recordingHandler struct {
	mu   sync.Mutex
	msgs []Message
}

func (h *recordingHandler) add(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, m)
}

func (h *recordingHandler) received() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Message(nil), h.msgs...)
}

func (h *recordingHandler) OnConnection(m ConnectionFrame)                 { h.add(m) }
func (h *recordingHandler) OnAuthSuccess(m AuthSuccessFrame)               { h.add(m) }
func (h *recordingHandler) OnAuthError(m AuthErrorFrame)                   { h.add(m) }
func (h *recordingHandler) OnNewBid(m NewBidFrame)                         { h.add(m) }
func (h *recordingHandler) OnBidStatusChanged(m BidStatusChangedFrame)     { h.add(m) }
func (h *recordingHandler) OnNewOrder(m NewOrderFrame)                     { h.add(m) }
func (h *recordingHandler) OnNewMessage(m NewMessageFrame)                 { h.add(m) }
func (h *recordingHandler) OnOrderStatusChanged(m OrderStatusChangedFrame) { h.add(m) }
func (h *recordingHandler) OnNotification(m NotificationFrame)             { h.add(m) }
func (h *recordingHandler) OnBroadcast(m BroadcastFrame)                   { h.add(m) }
func (h *recordingHandler) OnPong(m PongFrame)                             { h.add(m) }
