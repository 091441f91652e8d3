package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Realtime client metric names
const (
	MetricNameRealtimeStateTransitions = "realtime_state_transitions_total"
	MetricNameRealtimeReconnects       = "realtime_reconnect_attempts_total"
	MetricNameFramesDispatched         = "realtime_frames_dispatched_total"
	MetricNameFramesDropped            = "realtime_frames_dropped_total"
	MetricNameToastsEmitted            = "realtime_toasts_emitted_total"
)

// Relay metric names
const (
	MetricNameRelayConnections   = "relay_connections"
	MetricNameRelayAuthResults   = "relay_auth_results_total"
	MetricNameRelayFramesSent    = "relay_frames_sent_total"
	MetricNameRelayFramesDropped = "relay_frames_dropped_total"
)

// Business metric names
const (
	MetricNameNotificationsCreated = "notifications_created_total"
	MetricNameSessionsCompleted    = "game_sessions_completed_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameXPAwarded            = "xp_awarded_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextRealtimeStateTransitions = "Connection state transitions of the realtime client"
	HelpTextRealtimeReconnects       = "Reconnect attempts scheduled by the realtime client"
	HelpTextFramesDispatched         = "Inbound frames routed to a handler"
	HelpTextFramesDropped            = "Inbound frames dropped before dispatch"
	HelpTextToastsEmitted            = "Toasts shown to the user"

	HelpTextRelayConnections   = "Open WebSocket connections on the relay"
	HelpTextRelayAuthResults   = "Auth frames processed by the relay"
	HelpTextRelayFramesSent    = "Frames queued to relay connections"
	HelpTextRelayFramesDropped = "Frames dropped because a relay connection was full or gone"

	HelpTextNotificationsCreated = "Stored notifications created"
	HelpTextSessionsCompleted    = "Game sessions finalized"
	HelpTextAchievementsUnlocked = "Achievements unlocked"
	HelpTextLevelUps             = "Player level ups"
	HelpTextXPAwarded            = "Total XP awarded including achievement rewards"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelState       = "state"
	LabelReason      = "reason"
	LabelKind        = "kind"
	LabelResult      = "result"
	LabelAchievement = "achievement"
	LabelLevel       = "level"
)

// Drop reasons
const (
	ReasonMalformed   = "malformed"
	ReasonUnknownType = "unknown_type"
	ReasonBufferFull  = "buffer_full"
	ReasonNoListener  = "no_listener"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
