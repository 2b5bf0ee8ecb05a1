package cli

import (
	"mandalart-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the saved state and event log for problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			report := s.Doctor(cmd.Context())

			meta := map[string]any{
				"dir":       s.Dir,
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": meta,
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
