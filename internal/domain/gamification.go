package domain

import "time"

// PlayerProfile holds a player's cumulative game statistics.
// Level and title are derived from XP and are never stored on the profile.
type PlayerProfile struct {
	UserID                 string     `json:"user_id"`
	XP                     int64      `json:"xp"`
	GamesPlayed            int        `json:"games_played"`
	TotalFiresExtinguished int        `json:"total_fires_extinguished"`
	AverageAccuracy        float64    `json:"average_accuracy"`
	CurrentStreak          int        `json:"current_streak"`
	LongestStreak          int        `json:"longest_streak"`
	LastPlayedAt           *time.Time `json:"last_played_at,omitempty"`
	CompletedScenarios     []string   `json:"completed_scenarios"`
	Achievements           []string   `json:"achievements"`
}

// HasAchievement reports whether id is already unlocked
func (p *PlayerProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// HasScenario reports whether scenarioID was completed before
func (p *PlayerProfile) HasScenario(scenarioID string) bool {
	for _, s := range p.CompletedScenarios {
		if s == scenarioID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without aliasing the original slices
func (p PlayerProfile) Clone() PlayerProfile {
	out := p
	out.CompletedScenarios = append([]string(nil), p.CompletedScenarios...)
	out.Achievements = append([]string(nil), p.Achievements...)
	if p.LastPlayedAt != nil {
		t := *p.LastPlayedAt
		out.LastPlayedAt = &t
	}
	return out
}

// GameSession is one played attempt. It is finalized once, then immutable.
type GameSession struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	ScenarioID        string     `json:"scenario_id"`
	Accuracy          float64    `json:"accuracy"`
	TimeSpentSeconds  int        `json:"time_spent_seconds"`
	ToolsUsed         []string   `json:"tools_used"`
	FiresExtinguished int        `json:"fires_extinguished"`
	Completed         bool       `json:"completed"`
	XPEarned          int64      `json:"xp_earned"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// Finalized reports whether the session has already been evaluated
func (s *GameSession) Finalized() bool {
	return s.CompletedAt != nil
}

// AchievementRequirements lists the thresholds an achievement declares.
// A zero value means the requirement is not declared.
type AchievementRequirements struct {
	MinFiresExtinguished int      `json:"min_fires_extinguished,omitempty"`
	MinAccuracy          float64  `json:"min_accuracy,omitempty"`
	MaxTimeSeconds       int      `json:"max_time_seconds,omitempty"`
	MinStreakDays        int      `json:"min_streak_days,omitempty"`
	Scenarios            []string `json:"scenarios,omitempty"`
	// SessionScenario must be the scenario of the completed session itself
	SessionScenario      string   `json:"session_scenario,omitempty"`
}

// Achievement is a static catalog entry
type Achievement struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	TitleKK      string                  `json:"title_kk"`
	Description  string                  `json:"description"`
	Requirements AchievementRequirements `json:"requirements"`
	RewardXP     int64                   `json:"reward_xp"`
	Badge        string                  `json:"badge"`
}

// LevelInfo is the tier derived from a player's XP
type LevelInfo struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	TitleKK     string `json:"title_kk"`
	NextLevelXP int64  `json:"next_level_xp"`
}

// SessionResult describes the outcome of finalizing a game session
type SessionResult struct {
	Session   GameSession   `json:"session"`
	Profile   PlayerProfile `json:"profile"`
	Unlocked  []Achievement `json:"unlocked"`
	OldLevel  LevelInfo     `json:"old_level"`
	NewLevel  LevelInfo     `json:"new_level"`
	LeveledUp bool          `json:"leveled_up"`
}

// ProfileView is a profile with its derived level for API responses
type ProfileView struct {
	PlayerProfile
	Level LevelInfo `json:"level"`
}
