package activity

import (
	"time"

	"SolveStreak/internal/model"
)

// MarkDay records a day's activity. A day already marked active stays active.
func MarkDay(rec *model.HistoryRecord, day string, active bool) {
	if rec.DailyActivity == nil {
		rec.DailyActivity = map[string]bool{}
	}
	if !active && rec.DailyActivity[day] {
		return
	}
	rec.DailyActivity[day] = active
}

// ApplyActivity updates the ledger entry for today and the last-activity
// timestamp, and reports whether today counts as active.
func ApplyActivity(rec *model.HistoryRecord, today string, now time.Time, anyIncrease bool) bool {
	activeToday := rec.DailyActivity[today]
	ts := model.UnixSeconds(now)

	if anyIncrease {
		activeToday = true
		rec.LastActivityTimestamp = ts
	}

	// Records from before the timestamp existed: assume the activity was now.
	if rec.LastActivityTimestamp == 0 && activeToday {
		rec.LastActivityTimestamp = ts
	}

	MarkDay(rec, today, activeToday)
	return activeToday
}
