package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/firesafetykz/portal/internal/domain"
)

// Message is one decoded inbound frame. The set of implementations is closed:
// only this package can add variants, and each variant has a Handler method.
type Message interface {
	Type() domain.FrameType
	At() time.Time
	accept(h Handler)
}

// envelope holds the fields every frame shares
type envelope struct {
	Timestamp time.Time
	Text      string
}

// At returns the server timestamp, zero when the frame carried none
func (e envelope) At() time.Time { return e.Timestamp }

// ConnectionFrame greets a freshly opened socket
type ConnectionFrame struct{ envelope }

// AuthSuccessFrame confirms the auth frame
type AuthSuccessFrame struct {
	envelope
	UserID string
}

// AuthErrorFrame rejects the auth frame; the socket stays open
type AuthErrorFrame struct{ envelope }

// NewBidFrame announces a bid on one of the user's ads
type NewBidFrame struct {
	envelope
	Bid domain.BidEvent
}

// BidStatusChangedFrame reports a bid moving to another status
type BidStatusChangedFrame struct {
	envelope
	Bid domain.BidEvent
}

// NewOrderFrame announces a new order
type NewOrderFrame struct {
	envelope
	Order domain.OrderEvent
}

// NewMessageFrame announces a chat message
type NewMessageFrame struct {
	envelope
	Chat domain.ChatMessageEvent
}

// OrderStatusChangedFrame reports an order status change
type OrderStatusChangedFrame struct {
	envelope
	Order domain.OrderEvent
}

// NotificationFrame carries a generic notification
type NotificationFrame struct {
	envelope
	Notification domain.NotificationEvent
}

// BroadcastFrame carries an announcement sent to everyone
type BroadcastFrame struct{ envelope }

// PongFrame acknowledges a heartbeat
type PongFrame struct{ envelope }

func (ConnectionFrame) Type() domain.FrameType         { return domain.FrameConnection }
func (AuthSuccessFrame) Type() domain.FrameType        { return domain.FrameAuthSuccess }
func (AuthErrorFrame) Type() domain.FrameType          { return domain.FrameAuthError }
func (NewBidFrame) Type() domain.FrameType             { return domain.FrameNewBid }
func (BidStatusChangedFrame) Type() domain.FrameType   { return domain.FrameBidStatusChanged }
func (NewOrderFrame) Type() domain.FrameType           { return domain.FrameNewOrder }
func (NewMessageFrame) Type() domain.FrameType         { return domain.FrameNewMessage }
func (OrderStatusChangedFrame) Type() domain.FrameType { return domain.FrameOrderStatusChanged }
func (NotificationFrame) Type() domain.FrameType       { return domain.FrameNotification }
func (BroadcastFrame) Type() domain.FrameType          { return domain.FrameBroadcast }
func (PongFrame) Type() domain.FrameType               { return domain.FramePong }

func (m ConnectionFrame) accept(h Handler)         { h.OnConnection(m) }
func (m AuthSuccessFrame) accept(h Handler)        { h.OnAuthSuccess(m) }
func (m AuthErrorFrame) accept(h Handler)          { h.OnAuthError(m) }
func (m NewBidFrame) accept(h Handler)             { h.OnNewBid(m) }
func (m BidStatusChangedFrame) accept(h Handler)   { h.OnBidStatusChanged(m) }
func (m NewOrderFrame) accept(h Handler)           { h.OnNewOrder(m) }
func (m NewMessageFrame) accept(h Handler)         { h.OnNewMessage(m) }
func (m OrderStatusChangedFrame) accept(h Handler) { h.OnOrderStatusChanged(m) }
func (m NotificationFrame) accept(h Handler)       { h.OnNotification(m) }
func (m BroadcastFrame) accept(h Handler)          { h.OnBroadcast(m) }
func (m PongFrame) accept(h Handler)               { h.OnPong(m) }

// wireFrame mirrors the JSON envelope. Type is a pointer so a missing
// discriminator can be told apart from an empty one.
type wireFrame struct {
	Type      *domain.FrameType `json:"type"`
	UserID    string            `json:"userId"`
	Data      json.RawMessage   `json:"data"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
}

// Decode parses one raw text frame. It returns an error wrapping ErrMalformedFrame
// when the frame is not a JSON object with a string type or its data does not fit
// the variant, and ErrUnknownFrameType when the type is outside the known set.
func Decode(raw []byte) (Message, error) {
	var w wireFrame
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if w.Type == nil {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedFrame)
	}

	env := envelope{Text: w.Message}
	if w.Timestamp != "" {
		// an unparseable timestamp is not worth dropping the frame for
		if ts, err := time.Parse(time.RFC3339Nano, w.Timestamp); err == nil {
			env.Timestamp = ts
		}
	}

	switch *w.Type {
	case domain.FrameConnection:
		return ConnectionFrame{env}, nil
	case domain.FrameAuthSuccess:
		return AuthSuccessFrame{envelope: env, UserID: w.UserID}, nil
	case domain.FrameAuthError:
		return AuthErrorFrame{env}, nil
	case domain.FrameNewBid:
		m := NewBidFrame{envelope: env}
		if err := decodeData(w, &m.Bid); err != nil {
			return nil, err
		}
		return m, nil
	case domain.FrameBidStatusChanged:
		m := BidStatusChangedFrame{envelope: env}
		if err := decodeData(w, &m.Bid); err != nil {
			return nil, err
		}
		return m, nil
	case domain.FrameNewOrder:
		m := NewOrderFrame{envelope: env}
		if err := decodeData(w, &m.Order); err != nil {
			return nil, err
		}
		return m, nil
	case domain.FrameNewMessage:
		m := NewMessageFrame{envelope: env}
		if err := decodeData(w, &m.Chat); err != nil {
			return nil, err
		}
		return m, nil
	case domain.FrameOrderStatusChanged:
		m := OrderStatusChangedFrame{envelope: env}
		if err := decodeData(w, &m.Order); err != nil {
			return nil, err
		}
		return m, nil
	case domain.FrameNotification:
		m := NotificationFrame{envelope: env}
		if err := decodeData(w, &m.Notification); err != nil {
			return nil, err
		}
		return m, nil
	case domain.FrameBroadcast:
		return BroadcastFrame{env}, nil
	case domain.FramePong:
		return PongFrame{env}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFrameType, *w.Type)
}

// decodeData fills dst from the frame's data. Absent data leaves dst zero.
func decodeData(w wireFrame, dst interface{}) error {
	if len(w.Data) == 0 || string(w.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(w.Data, dst); err != nil {
		return fmt.Errorf("%w: %s data: %v", ErrMalformedFrame, *w.Type, err)
	}
	return nil
}
