package model

import "time"

// WeekDay is one cell of the Monday-first weekly activity strip.
type WeekDay struct {
	Date   string `json:"date"`
	Active bool   `json:"active"`
}

// RunResult is what a reconciliation run hands to the renderers.
type RunResult struct {
	Record         *HistoryRecord
	Now            time.Time
	Today          string
	ActiveToday    bool
	FireOn         bool
	Week           []WeekDay
	PreviousStreak int
	Readings       map[string]Reading
}
