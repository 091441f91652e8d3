package handler

// User-facing error messages. They never expose internal error details.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidUnread         = "Invalid unread parameter"

	ErrMsgNotificationNotFound = "Notification not found"
	ErrMsgInvalidKind          = "Unsupported notification kind"
	ErrMsgInvalidBidStatus     = "Unknown bid status"
	ErrMsgInvalidTransition    = "Bid status change is not allowed"
	ErrMsgInvalidUserID        = "user_id must be a UUID"

	ErrMsgSessionNotFound  = "Game session not found"
	ErrMsgSessionFinalized = "Game session is already finished"
)

// Success messages
const (
	MsgNotificationRead    = "Notification marked as read"
	MsgNotificationDeleted = "Notification deleted"
	MsgBroadcastSent       = "Broadcast sent"
)

// Log messages
const (
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgRequestDecoded     = "Request decoded"
	LogMsgMissingQueryParam  = "Missing query parameter"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgNotificationAdded  = "Notification created via API"
	LogMsgBroadcastRequested = "Broadcast requested"
	LogMsgSessionCompleted   = "Game session completed via API"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgDatabaseDown   = "database connection failed"
)
