// Package tracker wires collection, reconciliation and rendering into a
// single run.
package tracker

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"SolveStreak/internal/collector"
	"SolveStreak/internal/model"
	"SolveStreak/internal/notifier"
	"SolveStreak/internal/pipeline"
)

// Sender pushes a text message somewhere, e.g. Telegram.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Tracker runs fetch, reconcile, persist and render for one invocation.
type Tracker struct {
	Collector  *collector.Collector
	Pipeline   *pipeline.Pipeline
	Format     string
	Theme      notifier.Theme
	OutputPath string // empty writes nothing
	Sender     Sender // nil disables push notifications
	Location   *time.Location
	Now        func() time.Time

	mu sync.Mutex // serializes load-modify-save within this process
}

func (t *Tracker) now() time.Time {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	loc := t.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Run performs one full update. It never panics: any unexpected failure is
// logged and reported as an error so schedulers keep running.
func (t *Tracker) Run(ctx context.Context) (res *model.RunResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] critical: %v\n%s", r, debug.Stack())
			res, err = nil, fmt.Errorf("run aborted: %v", r)
		}
	}()

	log.Println("[INFO] --- starting update ---")
	readings := t.Collector.Collect(ctx)

	res = t.reconcile(readings)

	if err := t.write(res); err != nil {
		log.Printf("[ERROR] write output: %v", err)
	}
	t.notify(ctx, res)

	log.Println("[INFO] stats updated successfully")
	return res, nil
}

// Show renders the stored record without fetching or saving.
func (t *Tracker) Show() (string, error) {
	return notifier.Render(t.Format, t.snapshot(), t.Theme)
}

// HandleCommand answers chat commands.
func (t *Tracker) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/streak", "/status":
		return notifier.FormatMessage(t.snapshot())
	case "/refresh":
		res, err := t.Run(ctx)
		if err != nil {
			return fmt.Sprintf("❌ refresh failed: %v", err)
		}
		return notifier.FormatMessage(res)
	default:
		return "Available commands:\n• /streak\n• /refresh"
	}
}

func (t *Tracker) reconcile(readings map[string]model.Reading) *model.RunResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Pipeline.Run(t.now(), readings)
}

func (t *Tracker) snapshot() *model.RunResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Pipeline.Snapshot(t.now())
}

func (t *Tracker) write(res *model.RunResult) error {
	if t.OutputPath == "" {
		return nil
	}
	out, err := notifier.Render(t.Format, res, t.Theme)
	if err != nil {
		return err
	}
	return notifier.WriteFile(t.OutputPath, out)
}

// notify pushes a message when the streak changed.
func (t *Tracker) notify(ctx context.Context, res *model.RunResult) {
	if t.Sender == nil || res.Record.Streak == res.PreviousStreak {
		return
	}
	if err := t.Sender.SendWithRetry(ctx, notifier.FormatMessage(res), 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
