package recorder

import (
	"time"

	"SolveStreak/internal/model"
)

// RunSnapshot holds everything worth keeping about one reconciliation run.
type RunSnapshot struct {
	Time        time.Time
	Day         string
	Readings    map[string]model.Reading // observed values, Missing when the fetch failed
	Record      *model.HistoryRecord
	ActiveToday bool
	FireOn      bool
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	Close() error
}
