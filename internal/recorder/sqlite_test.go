package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SolveStreak/internal/model"
)

func snapshot(day string, active bool, readings map[string]model.Reading) *RunSnapshot {
	rec := model.NewHistoryRecord()
	rec.LastCounterTotals[model.CounterPrimary] = 12
	rec.LastCounterTotals[model.CounterSecondary] = 4
	rec.SumTotals()
	rec.Streak = 2
	return &RunSnapshot{
		Time:        time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC),
		Day:         day,
		Readings:    readings,
		Record:      rec,
		ActiveToday: active,
		FireOn:      active,
	}
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer r.Close()

	readings := map[string]model.Reading{
		model.CounterPrimary:   model.Observed(12),
		model.CounterSecondary: model.Missing(),
	}
	require.NoError(t, r.RecordRun(snapshot("2026-10-17", true, readings)))

	var (
		primaryObs, secondaryObs sql.NullInt64
		total, streak, fire      int
	)
	row := r.db.QueryRow(`SELECT primary_observed, secondary_observed, total, streak, fire_on FROM runs`)
	require.NoError(t, row.Scan(&primaryObs, &secondaryObs, &total, &streak, &fire))
	assert.Equal(t, sql.NullInt64{Int64: 12, Valid: true}, primaryObs)
	assert.False(t, secondaryObs.Valid)
	assert.Equal(t, 16, total)
	assert.Equal(t, 2, streak)
	assert.Equal(t, 1, fire)
}

func TestSQLiteRecorder_DailyActivityNeverRegresses(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordRun(snapshot("2026-10-17", false, nil)))
	require.NoError(t, r.RecordRun(snapshot("2026-10-17", true, nil)))
	require.NoError(t, r.RecordRun(snapshot("2026-10-17", false, nil)))

	var active, runs int
	require.NoError(t, r.db.QueryRow(`SELECT active FROM daily_activity WHERE day = ?`, "2026-10-17").Scan(&active))
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 1, active)
	assert.Equal(t, 3, runs)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(snapshot("2026-10-17", true, nil)))
	assert.NoError(t, r.Close())
}
