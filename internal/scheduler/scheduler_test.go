package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRegister_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(context.Background(), func(context.Context) {})
	if err := s.Register("not a cron spec"); err == nil {
		t.Fatal("expected error for invalid spec")
	}
	if err := s.Register("0 */30 * * * *"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunNow_SkipsAfterCancel(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx, func(context.Context) { runs.Add(1) })

	s.RunNow()
	cancel()
	s.RunNow()
	if got := runs.Load(); got != 1 {
		t.Errorf("expected 1 run, got %d", got)
	}
}

func TestScheduler_FiresJob(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := NewScheduler(context.Background(), func(context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err := s.Register("* * * * * *"); err != nil {
		t.Fatal(err)
	}
	s.Start()
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire within 3s")
	}
}
