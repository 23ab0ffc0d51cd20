package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the stored streak without fetching",
		Long: `Loads the history file and prints it in the selected format. Nothing is
fetched and nothing is written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(rootOpts, false)
			defer a.Close()

			out, err := a.tracker.Show()
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	return cmd
}
