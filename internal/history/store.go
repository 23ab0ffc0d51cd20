package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"SolveStreak/internal/model"
)

var (
	// ErrCorrupt reports a history file that could not be used at all.
	ErrCorrupt = errors.New("history: corrupt record")
	// ErrPartial reports individual fields that were malformed and defaulted.
	ErrPartial = errors.New("history: malformed fields defaulted")
)

// Legacy per-counter keys written by older versions of the tracker.
const (
	legacyPrimaryKey   = "last_lc_total"
	legacySecondaryKey = "last_gfg_total"
)

// Store persists a single HistoryRecord as a JSON document.
type Store struct {
	FilePath string
}

// NewStore creates a Store backed by filePath.
func NewStore(filePath string) *Store {
	return &Store{FilePath: filePath}
}

// recordFile is the on-disk shape. Legacy keys are still written so older
// readers keep working.
type recordFile struct {
	Streak                int             `json:"streak"`
	LastLCTotal           int             `json:"last_lc_total"`
	LastGFGTotal          int             `json:"last_gfg_total"`
	LastCounterTotals     map[string]int  `json:"last_counter_totals"`
	LastTotal             int             `json:"last_total"`
	LastDate              *string         `json:"last_date"`
	DailyHistory          map[string]bool `json:"daily_history"`
	LastActivityTimestamp float64         `json:"last_activity_timestamp"`
}

// Load reads the record. It always returns a usable record: a missing file
// yields the default record with a nil error, an unusable file yields the
// default record with ErrCorrupt, and malformed fields are defaulted one by
// one and reported with ErrPartial.
func (s *Store) Load() (*model.HistoryRecord, error) {
	rec := model.NewHistoryRecord()

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return rec, nil
		}
		return rec, fmt.Errorf("%w: read %s: %v", ErrCorrupt, s.FilePath, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return rec, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, s.FilePath, err)
	}
	if fields == nil {
		return rec, fmt.Errorf("%w: %s is not a JSON object", ErrCorrupt, s.FilePath)
	}

	d := decoder{fields: fields}

	if v, ok := decodeField[int](&d, "streak"); ok {
		if v >= 0 {
			rec.Streak = v
		} else {
			d.reject("streak")
		}
	}

	if totals, ok := decodeField[map[string]int](&d, "last_counter_totals"); ok {
		for name, v := range totals {
			if v < 0 {
				d.reject("last_counter_totals." + name)
				continue
			}
			rec.LastCounterTotals[name] = v
		}
	} else {
		migrateLegacyTotal(&d, rec, legacyPrimaryKey, model.CounterPrimary)
		migrateLegacyTotal(&d, rec, legacySecondaryKey, model.CounterSecondary)
	}

	if v, ok := decodeField[string](&d, "last_date"); ok {
		if _, err := time.Parse(model.DayLayout, v); err == nil {
			rec.LastActiveDate = &v
		} else {
			d.reject("last_date")
		}
	}

	if days, ok := decodeField[map[string]json.RawMessage](&d, "daily_history"); ok {
		for day, raw := range days {
			var active bool
			if err := json.Unmarshal(raw, &active); err != nil {
				d.reject("daily_history." + day)
				continue
			}
			if _, err := time.Parse(model.DayLayout, day); err != nil {
				d.reject("daily_history." + day)
				continue
			}
			rec.DailyActivity[day] = active
		}
	}

	if v, ok := decodeField[float64](&d, "last_activity_timestamp"); ok {
		if v >= 0 {
			rec.LastActivityTimestamp = v
		} else {
			d.reject("last_activity_timestamp")
		}
	}

	// last_total is derived, never trusted from disk.
	rec.SumTotals()

	if len(d.bad) > 0 {
		sort.Strings(d.bad)
		return rec, fmt.Errorf("%w: %v", ErrPartial, d.bad)
	}
	return rec, nil
}

// Save writes the record through a temp file and rename.
func (s *Store) Save(rec *model.HistoryRecord) error {
	rec.SumTotals()
	file := recordFile{
		Streak:                rec.Streak,
		LastLCTotal:           rec.LastCounterTotals[model.CounterPrimary],
		LastGFGTotal:          rec.LastCounterTotals[model.CounterSecondary],
		LastCounterTotals:     rec.LastCounterTotals,
		LastTotal:             rec.LastTotal,
		LastDate:              rec.LastActiveDate,
		DailyHistory:          rec.DailyActivity,
		LastActivityTimestamp: rec.LastActivityTimestamp,
	}
	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if dir := filepath.Dir(s.FilePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.FilePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

type decoder struct {
	fields map[string]json.RawMessage
	bad    []string
}

func (d *decoder) reject(key string) {
	d.bad = append(d.bad, key)
}

// decodeField decodes one top-level key. Absent and null keys are reported as
// not ok without being flagged.
func decodeField[T any](d *decoder, key string) (T, bool) {
	var v T
	raw, ok := d.fields[key]
	if !ok || string(raw) == "null" {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		d.reject(key)
		var zero T
		return zero, false
	}
	return v, true
}

func migrateLegacyTotal(d *decoder, rec *model.HistoryRecord, key, counter string) {
	v, ok := decodeField[int](d, key)
	if !ok {
		return
	}
	if v < 0 {
		d.reject(key)
		return
	}
	rec.LastCounterTotals[counter] = v
}
