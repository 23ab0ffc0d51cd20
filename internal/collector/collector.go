package collector

import (
	"context"
	"log"

	"SolveStreak/internal/model"
	"SolveStreak/internal/observability"
)

// MockFetcher returns a fixed total or error, for development and testing.
type MockFetcher struct {
	Total int
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchTotal(_ context.Context) (int, error) {
	m.Calls++
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Total, nil
}

// Collector fetches every configured counter and turns failures into
// missing readings.
type Collector struct {
	Fetchers map[string]Fetcher // keyed by counter name
}

// NewCollector creates a Collector for the given counter fetchers.
func NewCollector(fetchers map[string]Fetcher) *Collector {
	return &Collector{Fetchers: fetchers}
}

// Collect returns one reading per counter. It never fails: a fetch error or
// a negative value becomes model.Missing().
func (c *Collector) Collect(ctx context.Context) map[string]model.Reading {
	readings := make(map[string]model.Reading, len(c.Fetchers))
	for _, name := range model.CounterNames {
		f, ok := c.Fetchers[name]
		if !ok {
			continue
		}
		readings[name] = c.fetchOne(ctx, name, f)
	}
	for name, f := range c.Fetchers {
		if _, done := readings[name]; !done {
			readings[name] = c.fetchOne(ctx, name, f)
		}
	}
	return readings
}

func (c *Collector) fetchOne(ctx context.Context, name string, f Fetcher) model.Reading {
	log.Printf("[INFO] fetching %s counter from %s", name, f.Name())
	total, err := f.FetchTotal(ctx)
	if err != nil {
		log.Printf("[WARN] %s fetch failed: %v", f.Name(), err)
		observability.RecordFetchFailure(name)
		return model.Missing()
	}
	if total < 0 {
		log.Printf("[WARN] %s returned negative total %d, ignoring", f.Name(), total)
		observability.RecordFetchFailure(name)
		return model.Missing()
	}
	log.Printf("[INFO] %s success: %d", f.Name(), total)
	return model.Observed(total)
}
