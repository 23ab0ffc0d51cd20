package calculator

import (
	"testing"
	"time"

	"SolveStreak/internal/model"
)

// 2026-10-17 is a Saturday.
var today = time.Date(2026, 10, 17, 20, 15, 0, 0, time.UTC)

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name        string
		activity    map[string]bool
		activeToday bool
		want        int
	}{
		{"empty history", map[string]bool{}, false, 0},
		{"only today", map[string]bool{"2026-10-17": true}, true, 1},
		{"yesterday anchors when today idle", map[string]bool{"2026-10-16": true, "2026-10-17": false}, false, 1},
		{"today and two before", map[string]bool{"2026-10-15": true, "2026-10-16": true, "2026-10-17": true}, true, 3},
		{"gap breaks chain", map[string]bool{"2026-10-13": true, "2026-10-14": true, "2026-10-15": true, "2026-10-16": false, "2026-10-17": true}, true, 1},
		{"missing day breaks chain", map[string]bool{"2026-10-14": true, "2026-10-15": true, "2026-10-17": true}, true, 1},
		{"two idle days zero older history", map[string]bool{"2026-10-10": true, "2026-10-11": true, "2026-10-15": true}, false, 0},
		{"yesterday inactive today idle", map[string]bool{"2026-10-15": true, "2026-10-16": false}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateStreak(tt.activity, today, tt.activeToday); got != tt.want {
				t.Errorf("expected streak %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCalculateStreak_AcrossMonthAndDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks go back on 2026-10-25 in Berlin.
	now := time.Date(2026, 11, 1, 0, 30, 0, 0, loc)
	activity := map[string]bool{}
	for d := time.Date(2026, 10, 20, 12, 0, 0, 0, loc); !d.After(model.Noon(now)); d = d.AddDate(0, 0, 1) {
		activity[model.DayKey(d)] = true
	}
	if got := CalculateStreak(activity, now, true); got != 13 {
		t.Errorf("expected streak 13, got %d", got)
	}
}

func TestCalculateFire(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	tests := []struct {
		name string
		last float64
		want bool
	}{
		{"never active", 0, false},
		{"just now", float64(now.Unix()), true},
		{"one second inside window", float64(now.Unix() - 86399), true},
		{"exactly 24h", float64(now.Unix() - 86400), false},
		{"two days ago", float64(now.Unix() - 2*86400), false},
	}
	for _, tt := range tests {
		if got := CalculateFire(tt.last, now); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestCurrentWeek(t *testing.T) {
	activity := map[string]bool{"2026-10-12": true, "2026-10-14": true, "2026-10-17": true, "2026-10-19": true}
	week := CurrentWeek(activity, today)
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	wantDates := []string{"2026-10-12", "2026-10-13", "2026-10-14", "2026-10-15", "2026-10-16", "2026-10-17", "2026-10-18"}
	wantActive := []bool{true, false, true, false, false, true, false}
	for i, d := range week {
		if d.Date != wantDates[i] || d.Active != wantActive[i] {
			t.Errorf("day %d: expected %s/%v, got %s/%v", i+1, wantDates[i], wantActive[i], d.Date, d.Active)
		}
	}

	// Monday maps to itself, Sunday to the preceding Monday.
	if w := CurrentWeek(nil, time.Date(2026, 10, 12, 1, 0, 0, 0, time.UTC)); w[0].Date != "2026-10-12" {
		t.Errorf("monday: expected week start 2026-10-12, got %s", w[0].Date)
	}
	if w := CurrentWeek(nil, time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)); w[0].Date != "2026-10-12" {
		t.Errorf("sunday: expected week start 2026-10-12, got %s", w[0].Date)
	}
}
