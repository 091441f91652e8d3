package discord

// Embed colors per toast level
const (
	ColorInfo    = 0x3498db // Blue
	ColorSuccess = 0x2ecc71 // Green
	ColorWarning = 0xf39c12 // Orange
	ColorError   = 0xe74c3c // Red
)

const (
	EmbedFooterText  = "Fire Safety KZ"
	EmbedFieldKind   = "Тип"
	EmbedFieldSound  = "Звук"
	EmbedMaxTitleLen = 256
	EmbedMaxDescLen  = 4096
	BotTokenPrefix   = "Bot "
	ellipsis         = "…"
)

// Log messages
const (
	LogMsgNotificationSent  = "Discord notification sent"
	LogMsgNotificationError = "Failed to send Discord notification"
	LogMsgSessionOpened     = "Discord session opened"
	LogMsgSessionClosed     = "Discord session closed"
)
