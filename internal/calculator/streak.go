package calculator

import (
	"time"

	"SolveStreak/internal/model"
)

// CalculateStreak counts consecutive active days walking backward from the
// anchor: today when activeToday, otherwise yesterday. A single inactive or
// missing day ends the walk.
func CalculateStreak(activity map[string]bool, today time.Time, activeToday bool) int {
	day := model.Noon(today)
	if !activeToday {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for activity[model.DayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
