package domain

import (
	"encoding/json"
	"time"
)

// Notification is a persisted, user-addressed message that is also pushed over the real-time channel
type Notification struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Kind      FrameType       `json:"kind"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationKinds are the frame types a stored notification may carry
var NotificationKinds = map[FrameType]bool{
	FrameNewBid:             true,
	FrameBidStatusChanged:   true,
	FrameNewOrder:           true,
	FrameNewMessage:         true,
	FrameOrderStatusChanged: true,
	FrameNotification:       true,
}

// IsNotificationKind reports whether k may be stored as a notification
func IsNotificationKind(k FrameType) bool {
	return NotificationKinds[k]
}

// NotificationFilter narrows a notification listing
type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
	Limit      int
}

// BroadcastMessage is an announcement pushed to every connected client; it is not persisted
type BroadcastMessage struct {
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}
