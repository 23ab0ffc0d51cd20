package cli

import (
	"io"
	"log"

	"SolveStreak/internal/collector"
	"SolveStreak/internal/config"
	"SolveStreak/internal/history"
	"SolveStreak/internal/logging"
	"SolveStreak/internal/model"
	"SolveStreak/internal/notifier"
	"SolveStreak/internal/pipeline"
	"SolveStreak/internal/recorder"
	"SolveStreak/internal/tracker"
)

// app is the fully wired object graph shared by the subcommands.
type app struct {
	cfg      *config.Config
	tracker  *tracker.Tracker
	telegram *notifier.TelegramNotifier // nil when not configured
	closers  []io.Closer
}

// newApp loads config and builds every collaborator. withRecorder opens the
// SQLite run recorder; read-only commands skip it.
func newApp(opts *RootOptions, withRecorder bool) *app {
	cfg := config.Load(opts.ConfigPath)
	a := &app{cfg: cfg}
	a.closers = append(a.closers, logging.Setup(cfg.Files.DebugLog))

	format := cfg.Render.Format
	if opts.Format != "" {
		format = opts.Format
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if withRecorder && cfg.Files.SQLite != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Files.SQLite)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			rec = sr
			a.closers = append(a.closers, sr)
		}
	}

	col := collector.NewCollector(map[string]collector.Fetcher{
		model.CounterPrimary: collector.NewLeetCodeFetcher(
			cfg.Counters.Primary.Endpoint, cfg.Counters.Primary.Username, cfg.Proxy, cfg.Timeout),
		model.CounterSecondary: collector.NewGFGFetcher(
			cfg.Counters.Secondary.ProfileURL, cfg.Counters.Secondary.CardURL,
			cfg.Counters.Secondary.Username, cfg.Proxy, cfg.Timeout),
	})

	a.tracker = &tracker.Tracker{
		Collector:  col,
		Pipeline:   pipeline.New(history.NewStore(cfg.Files.History), rec),
		Format:     format,
		Theme:      notifier.ThemeFromConfig(cfg),
		OutputPath: cfg.Files.Output,
		Location:   cfg.Location,
	}

	if cfg.TelegramEnabled() {
		a.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		a.tracker.Sender = a.telegram
	}
	return a
}

// Close releases the recorder and the debug log, last opened first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Printf("[WARN] close: %v", err)
		}
	}
}
