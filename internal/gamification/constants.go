package gamification

import "time"

// Scenario ids
const (
	ScenarioKitchen   = "kitchen-fire"
	ScenarioOffice    = "office-fire"
	ScenarioWarehouse = "warehouse-fire"
	ScenarioForest    = "forest-fire"
	ScenarioElectric  = "electrical-fire"
)

// Session input bounds
const (
	MaxAccuracy       = 100.0
	MaxSessionXP      = 5000
	MaxSessionSeconds = int((24 * time.Hour) / time.Second)
)

// Cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgSessionStarted      = "Game session started"
	LogMsgSessionCompleted    = "Game session completed"
	LogMsgAchievementUnlocked = "Achievement unlocked"
	LogMsgLevelUp             = "Player leveled up"
	LogMsgShuttingDown        = "Gamification service shutting down..."
	LogMsgShutdownComplete    = "Gamification service shutdown complete"
)
