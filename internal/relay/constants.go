package relay

import "time"

// Connection tuning
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// SendBufferSize is how many frames may queue per connection before it is dropped as slow
	SendBufferSize = 64
)

// Texts sent to clients
const (
	MsgConnected     = "connected"
	MsgAuthFailed    = "authentication failed"
	MsgInvalidUserID = "invalid user id"
	MsgShuttingDown  = "server shutting down"
	MsgTooSlow       = "client too slow"
)

// Auth result labels
const (
	AuthResultSuccess = "success"
	AuthResultFailure = "failure"
)

// Log messages
const (
	LogMsgClientConnected    = "Relay client connected"
	LogMsgClientDisconnected = "Relay client disconnected"
	LogMsgClientAuthed       = "Relay client authenticated"
	LogMsgAuthRejected       = "Relay auth rejected"
	LogMsgUpgradeFailed      = "WebSocket upgrade failed"
	LogMsgReadError          = "Relay read error"
	LogMsgBadFrame           = "Relay ignored client frame"
	LogMsgSlowClient         = "Relay dropping slow client"
	LogMsgFrameEncodeFailed  = "Failed to encode relay frame"
	LogMsgEventRelayed       = "Event relayed to clients"
	LogMsgNoListener         = "No connected client for user"
)
