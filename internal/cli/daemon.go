package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"SolveStreak/internal/observability"
	"SolveStreak/internal/scheduler"
)

// DaemonOptions holds flags for the daemon command.
type DaemonOptions struct {
	RunOnStart bool
}

// NewDaemonCommand creates the daemon command.
func NewDaemonCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DaemonOptions{}

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run updates on a cron schedule",
		Long: `Runs the update on schedule.cron until interrupted. Optionally serves
Prometheus metrics and answers Telegram commands (/streak, /refresh).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), rootOpts, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.RunOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "run once immediately")

	return cmd
}

func runDaemon(parent context.Context, rootOpts *RootOptions, opts *DaemonOptions) error {
	a := newApp(rootOpts, true)
	defer a.Close()

	log.Println("[INFO] SolveStreak daemon starting...")

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, func(ctx context.Context) {
		if _, err := a.tracker.Run(ctx); err != nil {
			log.Printf("[ERROR] %v", err)
		}
	})
	if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if addr := a.cfg.Metrics.Address; addr != "" {
		srv := observability.NewServer(addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[ERROR] metrics server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			srv.Shutdown(shutdownCtx)
		}()
		log.Printf("[INFO] metrics listening on %s", addr)
	}

	if a.telegram != nil {
		go a.telegram.StartPolling(ctx, a.tracker.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if opts.RunOnStart {
		log.Println("[INFO] run-on-start enabled, executing update now")
		go sched.RunNow()
	}

	log.Printf("[INFO] SolveStreak is running (%s). Press Ctrl+C to stop.", a.cfg.Schedule.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	cancel()
	log.Println("[INFO] SolveStreak stopped")
	return nil
}
