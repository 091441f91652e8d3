package config

import "time"

// Defaults
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultDBName            = "firesafety"
	DefaultDBMaxConns        = 20
	DefaultProfileCacheSize  = 1024
	DefaultNotifierOrigin    = "http://localhost:8080"
	DefaultNotifierLocale    = "ru"
	DefaultAllowedOriginsAll = "*"
)

// Event system defaults
const (
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Error messages
const (
	ErrMsgAPIKeyRequired     = "API_KEY environment variable must be set for security"
	ErrMsgInvalidPort        = "invalid PORT value"
	ErrMsgNotifierUserID     = "NOTIFIER_USER_ID environment variable must be set"
	ErrMsgDiscordChannelID   = "DISCORD_NOTIFICATION_CHANNEL_ID must be set when DISCORD_TOKEN is set"
	ErrMsgInvalidCacheSize   = "PROFILE_CACHE_SIZE must be positive"
	ErrMsgUnsupportedLogForm = "LOG_FORMAT must be json or text"
)
