package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeInvalidTextRepresentation is raised when a malformed uuid reaches a uuid column
	PgErrorCodeInvalidTextRepresentation = "22P02"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Error Messages - Notification Operations
const (
	ErrMsgFailedToInsertNotification = "failed to insert notification"
	ErrMsgFailedToListNotifications  = "failed to list notifications"
	ErrMsgFailedToScanNotification   = "failed to scan notification"
	ErrMsgFailedToCountUnread        = "failed to count unread notifications"
	ErrMsgFailedToMarkRead           = "failed to mark notification read"
	ErrMsgFailedToMarkAllRead        = "failed to mark notifications read"
	ErrMsgFailedToDeleteNotification = "failed to delete notification"
)

// Error Messages - Gamification Operations
const (
	ErrMsgFailedToGetProfile    = "failed to get player profile"
	ErrMsgFailedToUpsertProfile = "failed to upsert player profile"
	ErrMsgFailedToInsertSession = "failed to insert game session"
	ErrMsgFailedToGetSession    = "failed to get game session"
	ErrMsgFailedToUpdateSession = "failed to update game session"
)
