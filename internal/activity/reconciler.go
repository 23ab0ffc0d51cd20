package activity

import (
	"sort"

	"SolveStreak/internal/model"
)

// Reconciliation reports which counters moved during a run.
type Reconciliation struct {
	Increased   map[string]bool
	AnyIncrease bool
}

// Reconcile merges readings into the record's best-known totals. A reading
// replaces the stored total only when it is strictly greater; missing, equal
// and lower readings leave the total untouched. LastTotal is recomputed.
func Reconcile(rec *model.HistoryRecord, readings map[string]model.Reading) Reconciliation {
	if rec.LastCounterTotals == nil {
		rec.LastCounterTotals = map[string]int{}
	}
	out := Reconciliation{Increased: map[string]bool{}}

	names := make([]string, 0, len(readings))
	for name := range readings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := readings[name]
		if !r.OK || r.Value < 0 {
			continue
		}
		if r.Value > rec.LastCounterTotals[name] {
			rec.LastCounterTotals[name] = r.Value
			out.Increased[name] = true
			out.AnyIncrease = true
		}
	}

	rec.SumTotals()
	return out
}
