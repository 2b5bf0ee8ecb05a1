package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the local change log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := s.ReadEvents(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 200, "Max events to return, newest kept (0 = all)")

	cmd.AddCommand(listCmd)
	return cmd
}
