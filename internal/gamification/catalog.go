package gamification

import "github.com/firesafetykz/portal/internal/domain"

// Scenario is a playable fire simulation
type Scenario struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	TitleKK string `json:"title_kk"`
}

var scenarios = []Scenario{
	{ScenarioKitchen, "Пожар на кухне", "Ас үйдегі өрт"},
	{ScenarioOffice, "Пожар в офисе", "Кеңседегі өрт"},
	{ScenarioWarehouse, "Пожар на складе", "Қоймадағы өрт"},
	{ScenarioForest, "Лесной пожар", "Орман өрті"},
	{ScenarioElectric, "Возгорание электропроводки", "Электр сымдарының жануы"},
}

// Scenarios returns the scenario catalog
func Scenarios() []Scenario {
	return append([]Scenario(nil), scenarios...)
}

// IsScenario reports whether id is a known scenario
func IsScenario(id string) bool {
	for _, s := range scenarios {
		if s.ID == id {
			return true
		}
	}
	return false
}

var achievements = []domain.Achievement{
	{
		ID:           "first-fire",
		Title:        "Первое пламя",
		TitleKK:      "Алғашқы жалын",
		Description:  "Потушите первый очаг возгорания",
		Requirements: domain.AchievementRequirements{MinFiresExtinguished: 1},
		RewardXP:     50,
		Badge:        "🔥",
	},
	{
		ID:           "fire-tamer",
		Title:        "Укротитель огня",
		TitleKK:      "Отты бағындырушы",
		Description:  "Потушите 25 очагов возгорания",
		Requirements: domain.AchievementRequirements{MinFiresExtinguished: 25},
		RewardXP:     200,
		Badge:        "🧯",
	},
	{
		ID:           "fire-storm",
		Title:        "Гроза пожаров",
		TitleKK:      "Өрттердің қаһары",
		Description:  "Потушите 100 очагов возгорания",
		Requirements: domain.AchievementRequirements{MinFiresExtinguished: 100},
		RewardXP:     750,
		Badge:        "🚒",
	},
	{
		ID:           "sharpshooter",
		Title:        "Снайпер",
		TitleKK:      "Мерген",
		Description:  "Завершите игру с точностью не ниже 90%",
		Requirements: domain.AchievementRequirements{MinAccuracy: 90},
		RewardXP:     150,
		Badge:        "🎯",
	},
	{
		ID:           "lightning",
		Title:        "Молниеносный",
		TitleKK:      "Найзағайдай жылдам",
		Description:  "Завершите сценарий быстрее чем за 60 секунд",
		Requirements: domain.AchievementRequirements{MaxTimeSeconds: 60},
		RewardXP:     150,
		Badge:        "⚡",
	},
	{
		ID:           "perfect-drill",
		Title:        "Образцовые учения",
		TitleKK:      "Үлгілі жаттығу",
		Description:  "Точность 100% быстрее чем за 90 секунд",
		Requirements: domain.AchievementRequirements{MinAccuracy: 100, MaxTimeSeconds: 90},
		RewardXP:     400,
		Badge:        "💯",
	},
	{
		ID:           "streak-3",
		Title:        "Три дня подряд",
		TitleKK:      "Қатарынан үш күн",
		Description:  "Играйте три дня подряд",
		Requirements: domain.AchievementRequirements{MinStreakDays: 3},
		RewardXP:     100,
		Badge:        "📅",
	},
	{
		ID:           "streak-7",
		Title:        "Неделя на дежурстве",
		TitleKK:      "Бір апта кезекшілікте",
		Description:  "Играйте семь дней подряд",
		Requirements: domain.AchievementRequirements{MinStreakDays: 7},
		RewardXP:     300,
		Badge:        "🏅",
	},
	{
		ID:           "kitchen-safe",
		Title:        "Безопасная кухня",
		TitleKK:      "Қауіпсіз ас үй",
		Description:  "Пройдите сценарий пожара на кухне с точностью от 80%",
		Requirements: domain.AchievementRequirements{MinAccuracy: 80, SessionScenario: ScenarioKitchen},
		RewardXP:     100,
		Badge:        "🍳",
	},
	{
		ID:          "all-rounder",
		Title:       "Мастер сценариев",
		TitleKK:     "Сценарийлер шебері",
		Description: "Пройдите все сценарии",
		Requirements: domain.AchievementRequirements{Scenarios: []string{
			ScenarioKitchen, ScenarioOffice, ScenarioWarehouse, ScenarioForest, ScenarioElectric,
		}},
		RewardXP: 1000,
		Badge:    "🏆",
	},
}

// Achievements returns the achievement catalog
func Achievements() []domain.Achievement {
	return append([]domain.Achievement(nil), achievements...)
}

// AchievementByID looks up a catalog entry
func AchievementByID(id string) (domain.Achievement, bool) {
	for _, a := range achievements {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Achievement{}, false
}
