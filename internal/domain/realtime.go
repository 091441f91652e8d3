package domain

import (
	"encoding/json"
	"time"
)

// FrameType is the discriminator carried by every frame on the real-time channel
type FrameType string

// Outbound frame types (client -> server)
const (
	FrameAuth FrameType = "auth"
	FramePing FrameType = "ping"
)

// Inbound frame types (server -> client)
const (
	FrameConnection         FrameType = "connection"
	FrameAuthSuccess        FrameType = "auth_success"
	FrameAuthError          FrameType = "auth_error"
	FrameNewBid             FrameType = "new_bid"
	FrameBidStatusChanged   FrameType = "bid_status_changed"
	FrameNewOrder           FrameType = "new_order"
	FrameNewMessage         FrameType = "new_message"
	FrameOrderStatusChanged FrameType = "order_status_changed"
	FrameNotification       FrameType = "notification"
	FrameBroadcast          FrameType = "broadcast"
	FramePong               FrameType = "pong"
)

// InboundFrameTypes lists every frame type a server may send, in protocol order
var InboundFrameTypes = []FrameType{
	FrameConnection,
	FrameAuthSuccess,
	FrameAuthError,
	FrameNewBid,
	FrameBidStatusChanged,
	FrameNewOrder,
	FrameNewMessage,
	FrameOrderStatusChanged,
	FrameNotification,
	FrameBroadcast,
	FramePong,
}

// Frame is the JSON envelope exchanged over the real-time channel.
// Data holds the variant payload and is decoded lazily by the receiver.
type Frame struct {
	Type      FrameType       `json:"type"`
	UserID    string          `json:"userId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewFrame builds a frame stamped with the current UTC time, marshalling data when present
func NewFrame(t FrameType, data interface{}, message string) (Frame, error) {
	f := Frame{
		Type:      t,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Frame{}, err
		}
		f.Data = raw
	}
	return f, nil
}

// BidEvent is the payload of new_bid and bid_status_changed frames
type BidEvent struct {
	BidID      string    `json:"bidId"`
	AdID       string    `json:"adId"`
	AdTitle    string    `json:"adTitle"`
	BidderName string    `json:"bidderName,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	Status     BidStatus `json:"status,omitempty"`
	PrevStatus BidStatus `json:"prevStatus,omitempty"`
}

// OrderEvent is the payload of new_order and order_status_changed frames
type OrderEvent struct {
	OrderID string `json:"orderId"`
	Title   string `json:"title"`
	Status  string `json:"status,omitempty"`
}

// ChatMessageEvent is the payload of new_message frames
type ChatMessageEvent struct {
	ConversationID string `json:"conversationId"`
	SenderName     string `json:"senderName"`
	Preview        string `json:"preview"`
}

// NotificationEvent is the payload of generic notification frames
type NotificationEvent struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// NewFramePayload returns a pointer to the zero payload carried by frames of type t,
// or nil when t carries no data
func NewFramePayload(t FrameType) interface{} {
	switch t {
	case FrameNewBid, FrameBidStatusChanged:
		return &BidEvent{}
	case FrameNewOrder, FrameOrderStatusChanged:
		return &OrderEvent{}
	case FrameNewMessage:
		return &ChatMessageEvent{}
	case FrameNotification:
		return &NotificationEvent{}
	}
	return nil
}
