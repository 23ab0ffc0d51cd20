package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch counters, update the streak and render it once",
		Long: `Performs a single update: fetches both counters, reconciles them with the
history file, saves it and rewrites the output file.

A failed run is logged and still exits 0 so the invoking timer keeps firing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(rootOpts, true)
			defer a.Close()

			log.Println("[INFO] SolveStreak run starting...")
			if _, err := a.tracker.Run(cmd.Context()); err != nil {
				log.Printf("[ERROR] %v", err)
			}
			return nil
		},
	}

	return cmd
}
