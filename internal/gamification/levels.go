package gamification

import (
	"math"

	"github.com/firesafetykz/portal/internal/domain"
)

// Unbounded is the next-level threshold reported at the final tier
const Unbounded int64 = math.MaxInt64

type tier struct {
	level   int
	minXP   int64
	title   string
	titleKK string
}

// tiers is ordered ascending by level and minXP
var tiers = []tier{
	{1, 0, "Новичок", "Жаңадан бастаушы"},
	{2, 500, "Курсант", "Курсант"},
	{3, 1500, "Пожарный", "Өрт сөндіруші"},
	{4, 3000, "Опытный пожарный", "Тәжірибелі өрт сөндіруші"},
	{5, 5000, "Старший пожарный", "Аға өрт сөндіруші"},
	{6, 8000, "Командир отделения", "Бөлімше командирі"},
	{7, 12000, "Начальник караула", "Күзет бастығы"},
	{8, 17000, "Инспектор", "Инспектор"},
	{9, 23000, "Эксперт пожарной безопасности", "Өрт қауіпсіздігі сарапшысы"},
	{10, 30000, "Легенда", "Аңыз"},
}

// CalculateLevel returns the highest tier whose threshold is at or below xp.
// Negative xp is treated as zero. At the final tier NextLevelXP is Unbounded.
func CalculateLevel(xp int64) domain.LevelInfo {
	idx := 0
	for i := len(tiers) - 1; i >= 0; i-- {
		if xp >= tiers[i].minXP {
			idx = i
			break
		}
	}

	next := Unbounded
	if idx+1 < len(tiers) {
		next = tiers[idx+1].minXP
	}
	t := tiers[idx]
	return domain.LevelInfo{
		Level:       t.level,
		Title:       t.title,
		TitleKK:     t.titleKK,
		NextLevelXP: next,
	}
}

// LevelRow is one entry of the level table
type LevelRow struct {
	Level   int    `json:"level"`
	MinXP   int64  `json:"min_xp"`
	Title   string `json:"title"`
	TitleKK string `json:"title_kk"`
}

// Levels returns the level table
func Levels() []LevelRow {
	out := make([]LevelRow, len(tiers))
	for i, t := range tiers {
		out[i] = LevelRow{Level: t.level, MinXP: t.minXP, Title: t.title, TitleKK: t.titleKK}
	}
	return out
}

// LocalizedTitle picks the title for locale
func LocalizedTitle(info domain.LevelInfo, locale domain.Locale) string {
	if locale == domain.LocaleKazakh && info.TitleKK != "" {
		return info.TitleKK
	}
	return info.Title
}
