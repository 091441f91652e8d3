package realtime

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/firesafetykz/portal/internal/metrics"
)

// Handler receives decoded frames, one method per variant.
// Implementations are presentation-only and must not touch connection state.
type Handler interface {
	OnConnection(ConnectionFrame)
	OnAuthSuccess(AuthSuccessFrame)
	OnAuthError(AuthErrorFrame)
	OnNewBid(NewBidFrame)
	OnBidStatusChanged(BidStatusChangedFrame)
	OnNewOrder(NewOrderFrame)
	OnNewMessage(NewMessageFrame)
	OnOrderStatusChanged(OrderStatusChangedFrame)
	OnNotification(NotificationFrame)
	OnBroadcast(BroadcastFrame)
	OnPong(PongFrame)
}

// Dispatcher decodes raw frames and routes them to a Handler in call order
type Dispatcher struct {
	handler Handler
	clock   Clock
	log     *slog.Logger

	mu       sync.Mutex
	lastPong time.Time
}

// NewDispatcher creates a dispatcher. A nil clock uses the system clock.
func NewDispatcher(handler Handler, clock Clock) *Dispatcher {
	if clock == nil {
		clock = RealClock{}
	}
	return &Dispatcher{
		handler: handler,
		clock:   clock,
		log:     slog.Default(),
	}
}

// Dispatch decodes raw and hands it to the handler. Malformed frames and unknown
// types are logged and dropped; nothing is returned to the caller.
func (d *Dispatcher) Dispatch(raw []byte) {
	msg, err := Decode(raw)
	if err != nil {
		if errors.Is(err, ErrUnknownFrameType) {
			metrics.FramesDropped.WithLabelValues(metrics.ReasonUnknownType).Inc()
			d.log.Warn(LogMsgFrameUnknownType, "error", err)
		} else {
			metrics.FramesDropped.WithLabelValues(metrics.ReasonMalformed).Inc()
			d.log.Warn(LogMsgFrameMalformed, "error", err, "size", len(raw))
		}
		return
	}

	d.Route(msg)
}

// Route hands an already decoded message to the handler
func (d *Dispatcher) Route(msg Message) {
	if _, ok := msg.(PongFrame); ok {
		d.mu.Lock()
		d.lastPong = d.clock.Now()
		d.mu.Unlock()
	}

	metrics.FramesDispatched.WithLabelValues(string(msg.Type())).Inc()
	d.log.Debug(LogMsgFrameDispatched, "type", msg.Type())
	msg.accept(d.handler)
}

// LastPong returns when the last pong arrived, zero if none has.
// Nothing enforces a deadline on it.
func (d *Dispatcher) LastPong() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastPong
}
