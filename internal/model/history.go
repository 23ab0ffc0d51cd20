package model

// Counter names. The primary counter is the LeetCode total, the secondary the
// GeeksforGeeks total.
const (
	CounterPrimary   = "primary"
	CounterSecondary = "secondary"
)

// CounterNames lists the counters every record carries, in display order.
var CounterNames = []string{CounterPrimary, CounterSecondary}

// HistoryRecord is the durable state carried between runs.
type HistoryRecord struct {
	Streak            int            `json:"streak"`
	LastCounterTotals map[string]int `json:"last_counter_totals"`
	LastTotal         int            `json:"last_total"`
	LastActiveDate    *string        `json:"last_date"`
	// DailyActivity is keyed by DayLayout dates. A true entry is never reset.
	DailyActivity map[string]bool `json:"daily_history"`
	// LastActivityTimestamp is unix seconds of the last observed increase; 0 means never.
	LastActivityTimestamp float64 `json:"last_activity_timestamp"`
}

// NewHistoryRecord returns the zero-value record used on first run.
func NewHistoryRecord() *HistoryRecord {
	totals := make(map[string]int, len(CounterNames))
	for _, name := range CounterNames {
		totals[name] = 0
	}
	return &HistoryRecord{
		LastCounterTotals: totals,
		DailyActivity:     map[string]bool{},
	}
}

// SumTotals recomputes LastTotal from LastCounterTotals.
func (r *HistoryRecord) SumTotals() int {
	sum := 0
	for _, v := range r.LastCounterTotals {
		sum += v
	}
	r.LastTotal = sum
	return sum
}

// Clone returns a deep copy of the record.
func (r *HistoryRecord) Clone() *HistoryRecord {
	c := *r
	c.LastCounterTotals = make(map[string]int, len(r.LastCounterTotals))
	for k, v := range r.LastCounterTotals {
		c.LastCounterTotals[k] = v
	}
	c.DailyActivity = make(map[string]bool, len(r.DailyActivity))
	for k, v := range r.DailyActivity {
		c.DailyActivity[k] = v
	}
	if r.LastActiveDate != nil {
		d := *r.LastActiveDate
		c.LastActiveDate = &d
	}
	return &c
}
