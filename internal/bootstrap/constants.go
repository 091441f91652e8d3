package bootstrap

// DirPermission is used when creating the dead-letter directory
const DirPermission = 0755

// Event system
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Event handler registration
const (
	LogMsgNotificationHandlerRegistered = "Notification event handler registered"
	LogMsgRelaySubscriberRegistered     = "Relay subscriber registered"
	LogMsgMetricsCollectorRegistered    = "Metrics collector registered"
)

// Shutdown
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgServiceShutdownFailed      = " service shutdown failed"

	ServiceNameGamification = "gamification"
)
