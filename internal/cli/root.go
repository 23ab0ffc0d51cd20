package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"SolveStreak/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // empty uses render.format from the config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatVariables, config.FormatJSON, config.FormatSummary}

// NewRootCommand creates the root command for the streak CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Daily problem-solving streak tracker",
		Long: `Tracks a daily problem-solving streak from solved-problem counters.

Each run fetches the counters, reconciles them against the stored history,
recomputes the streak and fire indicator, and renders them for a widget.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "" && !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath(), "config file path")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format (variables|json|summary)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewDaemonCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

func defaultConfigPath() string {
	if v := os.Getenv("STREAK_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
