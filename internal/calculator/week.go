package calculator

import (
	"time"

	"SolveStreak/internal/model"
)

// CurrentWeek returns the Monday-to-Sunday week containing today with each
// day's activity flag.
func CurrentWeek(activity map[string]bool, today time.Time) []model.WeekDay {
	day := model.Noon(today)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	monday := day.AddDate(0, 0, -offset)

	week := make([]model.WeekDay, 7)
	for i := range week {
		key := model.DayKey(monday.AddDate(0, 0, i))
		week[i] = model.WeekDay{Date: key, Active: activity[key]}
	}
	return week
}
