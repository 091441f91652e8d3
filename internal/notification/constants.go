package notification

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	MaxTitleLength   = 200
	MaxMessageLength = 2000
)

// Texts of notifications generated from game progress
const (
	AchievementTitleFormat = "Новое достижение: %s"
	AchievementBodyFormat  = "%s %s (+%d XP)"
	LevelUpTitleFormat     = "Новый уровень: %d"
	LevelUpBodyFormat      = "Теперь вы %s"
)

// Log messages
const (
	LogMsgCreated         = "Notification created"
	LogMsgBroadcast       = "Broadcast sent"
	LogMsgMarkedAllRead   = "Notifications marked as read"
	LogMsgDeleted         = "Notification deleted"
	LogMsgPublishFailed   = "Failed to publish notification event"
	LogMsgGameEventFailed = "Failed to create notification for game event"
)
