package realtime

import "time"

// Connection defaults
const (
	DefaultBaseDelay         = 3 * time.Second
	DefaultMaxRetries        = 5
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultHandshakeTimeout  = 10 * time.Second
	DefaultWriteWait         = 10 * time.Second

	// Path is where the server exposes the real-time channel
	Path = "/ws"
)

// WebSocket close codes the client distinguishes
const (
	CloseNormal   = 1000
	CloseAbnormal = 1006
)

// User-facing status messages
const (
	MsgConnecting   = "connecting"
	MsgConnected    = "connected"
	MsgReconnecting = "connection lost, reconnecting"
	MsgCannotReach  = "cannot reach server"
	MsgDisconnected = "disconnected"
)

// Log messages
const (
	LogMsgConnecting          = "Connecting to real-time channel"
	LogMsgConnected           = "Connected to real-time channel"
	LogMsgDialFailed          = "Failed to open real-time channel"
	LogMsgClosed              = "Real-time channel closed"
	LogMsgReconnectScheduled  = "Reconnect scheduled"
	LogMsgReconnectExhausted  = "Reconnect attempts exhausted"
	LogMsgDisconnected        = "Disconnected from real-time channel"
	LogMsgAuthSendFailed      = "Failed to send auth frame"
	LogMsgHeartbeatSendFailed = "Failed to send heartbeat"
	LogMsgCloseSendFailed     = "Failed to send close frame"
	LogMsgFrameMalformed      = "Dropping malformed frame"
	LogMsgFrameUnknownType    = "Dropping frame with unknown type"
	LogMsgFrameDispatched     = "Frame dispatched"
)
