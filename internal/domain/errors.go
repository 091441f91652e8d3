package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Notification errors
	ErrMsgNotificationNotFound = "notification not found"
	ErrMsgInvalidKind          = "invalid notification kind"

	// Marketplace errors
	ErrMsgInvalidBidStatus  = "invalid bid status"
	ErrMsgInvalidTransition = "invalid bid status transition"

	// Gamification errors
	ErrMsgSessionNotFound  = "game session not found"
	ErrMsgSessionFinalized = "game session already finalized"
	ErrMsgProfileNotFound  = "player profile not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgInvalidUserID = "invalid user id"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Notification errors
	ErrNotificationNotFound = errors.New(ErrMsgNotificationNotFound)
	ErrInvalidKind          = errors.New(ErrMsgInvalidKind)

	// Marketplace errors
	ErrInvalidBidStatus  = errors.New(ErrMsgInvalidBidStatus)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)

	// Gamification errors
	ErrSessionNotFound  = errors.New(ErrMsgSessionNotFound)
	ErrSessionFinalized = errors.New(ErrMsgSessionFinalized)
	ErrProfileNotFound  = errors.New(ErrMsgProfileNotFound)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Input errors
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrInvalidUserID = errors.New(ErrMsgInvalidUserID)
)
