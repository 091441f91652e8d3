package gamification

import (
	"time"

	"github.com/firesafetykz/portal/internal/domain"
)

// CheckAchievements returns the ids of catalog achievements that are not yet
// unlocked on profile and whose declared requirements all pass. Profile stats
// are expected to already include session. It has no side effects.
func CheckAchievements(profile domain.PlayerProfile, session domain.GameSession) []string {
	var ids []string
	for _, a := range achievements {
		if profile.HasAchievement(a.ID) {
			continue
		}
		if meets(a.Requirements, profile, session) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func meets(req domain.AchievementRequirements, profile domain.PlayerProfile, session domain.GameSession) bool {
	if req.MinFiresExtinguished > 0 && profile.TotalFiresExtinguished < req.MinFiresExtinguished {
		return false
	}
	if req.MinAccuracy > 0 && (!session.Completed || session.Accuracy < req.MinAccuracy) {
		return false
	}
	if req.MaxTimeSeconds > 0 && (!session.Completed || session.TimeSpentSeconds > req.MaxTimeSeconds) {
		return false
	}
	if req.MinStreakDays > 0 && profile.CurrentStreak < req.MinStreakDays {
		return false
	}
	if req.SessionScenario != "" && (!session.Completed || session.ScenarioID != req.SessionScenario) {
		return false
	}
	for _, id := range req.Scenarios {
		played := profile.HasScenario(id) || (session.Completed && session.ScenarioID == id)
		if !played {
			return false
		}
	}
	return true
}

// ApplySession folds a finalized session into a copy of profile, unlocks the
// achievements it qualifies for and credits their rewards. The input profile is
// left untouched.
func ApplySession(profile domain.PlayerProfile, session domain.GameSession, now time.Time) domain.SessionResult {
	p := profile.Clone()
	oldLevel := CalculateLevel(p.XP)

	played := p.GamesPlayed
	p.AverageAccuracy = (p.AverageAccuracy*float64(played) + session.Accuracy) / float64(played+1)
	p.GamesPlayed = played + 1
	p.TotalFiresExtinguished += session.FiresExtinguished
	if session.XPEarned > 0 {
		p.XP += session.XPEarned
	}
	if session.Completed && session.ScenarioID != "" && !p.HasScenario(session.ScenarioID) {
		p.CompletedScenarios = append(p.CompletedScenarios, session.ScenarioID)
	}

	p.CurrentStreak = nextStreak(p.CurrentStreak, p.LastPlayedAt, now)
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	playedAt := now.UTC()
	p.LastPlayedAt = &playedAt

	var unlocked []domain.Achievement
	for _, id := range CheckAchievements(p, session) {
		a, _ := AchievementByID(id)
		unlocked = append(unlocked, a)
		p.Achievements = append(p.Achievements, id)
		p.XP += a.RewardXP
	}

	newLevel := CalculateLevel(p.XP)
	return domain.SessionResult{
		Session:   session,
		Profile:   p,
		Unlocked:  unlocked,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel.Level > oldLevel.Level,
	}
}

// nextStreak counts consecutive UTC calendar days with at least one game
func nextStreak(current int, last *time.Time, now time.Time) int {
	if last == nil || current <= 0 {
		return 1
	}
	days := utcDay(now).Sub(utcDay(*last)) / (24 * time.Hour)
	switch {
	case days <= 0:
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
