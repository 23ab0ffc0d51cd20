package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"SolveStreak/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			day                TEXT NOT NULL,
			primary_observed   INTEGER,
			secondary_observed INTEGER,
			primary_total      INTEGER NOT NULL,
			secondary_total    INTEGER NOT NULL,
			total              INTEGER NOT NULL,
			streak             INTEGER NOT NULL,
			active_today       INTEGER NOT NULL,
			fire_on            INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS daily_activity (
			day    TEXT PRIMARY KEY,
			active INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run row and mirrors today's ledger entry. The mirror
// keeps MAX(active) so a day never flips back to inactive.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := snap.Record
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(timestamp, day, primary_observed, secondary_observed,
		 primary_total, secondary_total, total, streak, active_today, fire_on)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		snap.Time.Unix(), snap.Day,
		observed(snap.Readings, model.CounterPrimary),
		observed(snap.Readings, model.CounterSecondary),
		rec.LastCounterTotals[model.CounterPrimary],
		rec.LastCounterTotals[model.CounterSecondary],
		rec.LastTotal, rec.Streak,
		boolInt(snap.ActiveToday), boolInt(snap.FireOn),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO daily_activity (day, active) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET active = MAX(active, excluded.active)`,
		snap.Day, boolInt(snap.ActiveToday),
	)
	if err != nil {
		return fmt.Errorf("upsert daily activity: %w", err)
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func observed(readings map[string]model.Reading, name string) sql.NullInt64 {
	rd, ok := readings[name]
	if !ok || !rd.OK {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(rd.Value), Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
