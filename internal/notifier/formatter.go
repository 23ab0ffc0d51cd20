package notifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"SolveStreak/internal/config"
	"SolveStreak/internal/model"
)

// Theme controls the widget-facing values of the variables renderer.
type Theme struct {
	ActiveColor   string
	InactiveColor string
	FireOnImage   string
	FireOffImage  string
}

// ThemeFromConfig copies the render settings into a Theme.
func ThemeFromConfig(cfg *config.Config) Theme {
	return Theme{
		ActiveColor:   cfg.Render.ActiveColor,
		InactiveColor: cfg.Render.InactiveColor,
		FireOnImage:   cfg.Render.FireOnImage,
		FireOffImage:  cfg.Render.FireOffImage,
	}
}

// Render formats res in the named format.
func Render(format string, res *model.RunResult, theme Theme) (string, error) {
	switch format {
	case config.FormatVariables, "":
		return FormatVariables(res, theme), nil
	case config.FormatJSON:
		return FormatJSON(res)
	case config.FormatSummary:
		return FormatSummary(res) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// FormatVariables renders a Rainmeter [Variables] section.
func FormatVariables(res *model.RunResult, theme Theme) string {
	rec := res.Record
	var b strings.Builder

	b.WriteString("[Variables]\n")
	b.WriteString(fmt.Sprintf("Streak=%d\n", rec.Streak))
	b.WriteString(fmt.Sprintf("TotalSolved=%d\n", rec.LastTotal))
	b.WriteString(fmt.Sprintf("LC_Count=%d\n", rec.LastCounterTotals[model.CounterPrimary]))
	b.WriteString(fmt.Sprintf("GFG_Count=%d\n", rec.LastCounterTotals[model.CounterSecondary]))

	fire := theme.FireOffImage
	if res.FireOn {
		fire = theme.FireOnImage
	}
	b.WriteString(fmt.Sprintf("FireImg=%s\n", fire))

	for i, d := range res.Week {
		color := theme.InactiveColor
		if d.Active {
			color = theme.ActiveColor
		}
		b.WriteString(fmt.Sprintf("Day%dColor=%s\n", i+1, color))
	}
	return b.String()
}

type jsonDocument struct {
	Streak                int             `json:"streak"`
	LastCounterTotals     map[string]int  `json:"last_counter_totals"`
	LastTotal             int             `json:"last_total"`
	LastActiveDate        *string         `json:"last_active_date"`
	DailyActivity         map[string]bool `json:"daily_activity"`
	LastActivityTimestamp float64         `json:"last_activity_timestamp"`
	Today                 string          `json:"today"`
	ActiveToday           bool            `json:"active_today"`
	FireOn                bool            `json:"fire_on"`
	Week                  []model.WeekDay `json:"week"`
}

// FormatJSON renders every record field plus the derived signals.
func FormatJSON(res *model.RunResult) (string, error) {
	rec := res.Record
	doc := jsonDocument{
		Streak:                rec.Streak,
		LastCounterTotals:     rec.LastCounterTotals,
		LastTotal:             rec.LastTotal,
		LastActiveDate:        rec.LastActiveDate,
		DailyActivity:         rec.DailyActivity,
		LastActivityTimestamp: rec.LastActivityTimestamp,
		Today:                 res.Today,
		ActiveToday:           res.ActiveToday,
		FireOn:                res.FireOn,
		Week:                  res.Week,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json output: %w", err)
	}
	return string(data) + "\n", nil
}

// FormatSummary renders a single line, e.g.
// "streak=3 total=42 primary=30 secondary=12 fire=on week=MTW----".
func FormatSummary(res *model.RunResult) string {
	rec := res.Record
	fire := "off"
	if res.FireOn {
		fire = "on"
	}
	return fmt.Sprintf("streak=%d total=%d %s=%d %s=%d fire=%s week=%s",
		rec.Streak, rec.LastTotal,
		model.CounterPrimary, rec.LastCounterTotals[model.CounterPrimary],
		model.CounterSecondary, rec.LastCounterTotals[model.CounterSecondary],
		fire, WeekStrip(res.Week))
}

// WeekStrip renders the week as one letter per active day and '-' otherwise.
func WeekStrip(week []model.WeekDay) string {
	const letters = "MTWTFSS"
	var b strings.Builder
	for i, d := range week {
		if d.Active && i < len(letters) {
			b.WriteByte(letters[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// WriteFile replaces path with content through a temp file and rename.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

// FormatMessage renders a short chat message for push notifications.
func FormatMessage(res *model.RunResult) string {
	rec := res.Record
	var b strings.Builder
	if res.FireOn {
		b.WriteString("🔥 ")
	}
	b.WriteString(fmt.Sprintf("Streak: %d day(s)", rec.Streak))
	if res.PreviousStreak > rec.Streak {
		b.WriteString(fmt.Sprintf(" (was %d)", res.PreviousStreak))
	}
	b.WriteString(fmt.Sprintf("\nTotal solved: %d (LeetCode %d, GFG %d)\n",
		rec.LastTotal, rec.LastCounterTotals[model.CounterPrimary], rec.LastCounterTotals[model.CounterSecondary]))
	b.WriteString(fmt.Sprintf("Week: %s", WeekStrip(res.Week)))
	return b.String()
}
