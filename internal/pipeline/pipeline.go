package pipeline

import (
	"errors"
	"log"
	"time"

	"SolveStreak/internal/activity"
	"SolveStreak/internal/calculator"
	"SolveStreak/internal/history"
	"SolveStreak/internal/model"
	"SolveStreak/internal/observability"
	"SolveStreak/internal/recorder"
)

// Store loads and saves the single history record.
type Store interface {
	Load() (*model.HistoryRecord, error)
	Save(rec *model.HistoryRecord) error
}

// Pipeline reconciles one run's readings into the persisted history.
type Pipeline struct {
	Store    Store
	Recorder recorder.Recorder
}

// New creates a Pipeline. A nil recorder records nothing.
func New(store Store, rec recorder.Recorder) *Pipeline {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Pipeline{Store: store, Recorder: rec}
}

// Run loads the record, merges readings, updates the ledger and streak,
// saves, and returns the result for rendering. now fixes both the instant and
// the calendar day (in now's location) for the whole run.
func (p *Pipeline) Run(now time.Time, readings map[string]model.Reading) *model.RunResult {
	rec := p.load()
	prevStreak := rec.Streak

	today := model.Noon(now)
	todayKey := model.DayKey(today)

	rc := activity.Reconcile(rec, readings)
	for name := range rc.Increased {
		log.Printf("[INFO] %s counter increased to %d", name, rec.LastCounterTotals[name])
	}

	activeToday := activity.ApplyActivity(rec, todayKey, now, rc.AnyIncrease)

	rec.Streak = calculator.CalculateStreak(rec.DailyActivity, today, activeToday)
	if activeToday {
		rec.LastActiveDate = &todayKey
	}

	fireOn := calculator.CalculateFire(rec.LastActivityTimestamp, now)

	if err := p.Store.Save(rec); err != nil {
		log.Printf("[ERROR] save history: %v", err)
	}

	res := &model.RunResult{
		Record:         rec,
		Now:            now,
		Today:          todayKey,
		ActiveToday:    activeToday,
		FireOn:         fireOn,
		Week:           calculator.CurrentWeek(rec.DailyActivity, today),
		PreviousStreak: prevStreak,
		Readings:       readings,
	}

	if err := p.Recorder.RecordRun(&recorder.RunSnapshot{
		Time:        now,
		Day:         todayKey,
		Readings:    readings,
		Record:      rec,
		ActiveToday: activeToday,
		FireOn:      fireOn,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	observability.RecordRun(res)

	log.Printf("[INFO] reconciled: streak=%d total=%d active_today=%v fire=%v",
		rec.Streak, rec.LastTotal, activeToday, fireOn)
	return res
}

// Snapshot derives the signals from the stored record without saving. The
// streak is re-derived for now's day so a stale record is not misreported.
func (p *Pipeline) Snapshot(now time.Time) *model.RunResult {
	rec := p.load()
	prevStreak := rec.Streak
	today := model.Noon(now)
	todayKey := model.DayKey(today)
	activeToday := rec.DailyActivity[todayKey]
	rec.Streak = calculator.CalculateStreak(rec.DailyActivity, today, activeToday)
	return &model.RunResult{
		Record:         rec,
		Now:            now,
		Today:          todayKey,
		ActiveToday:    activeToday,
		FireOn:         calculator.CalculateFire(rec.LastActivityTimestamp, now),
		Week:           calculator.CurrentWeek(rec.DailyActivity, today),
		PreviousStreak: prevStreak,
	}
}

func (p *Pipeline) load() *model.HistoryRecord {
	rec, err := p.Store.Load()
	switch {
	case errors.Is(err, history.ErrPartial):
		log.Printf("[WARN] %v", err)
	case err != nil:
		log.Printf("[WARN] load history: %v, starting from defaults", err)
	}
	if rec == nil {
		rec = model.NewHistoryRecord()
	}
	return rec
}
