package model

import "time"

// DayLayout is the calendar-day key format used in DailyActivity.
const DayLayout = "2006-01-02"

// DayKey formats t as a calendar-day key in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// Noon returns midday of t's calendar day. Day arithmetic is done from noon so
// that AddDate never lands on a skipped or repeated DST hour.
func Noon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// UnixSeconds returns t as fractional seconds since the epoch.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
