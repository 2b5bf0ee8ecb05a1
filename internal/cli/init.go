package cli

import (
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the store and seed the selected year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, s, err := loadState(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}

			// A brand-new store takes its language from config.
			_, existed, err := s.LoadRaw(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !existed {
				st = st.WithLanguage(model.Language(app.cfg.Language))
			}

			res := mutate.SeedYear(st, app.year(), app.cfg.Theme)
			if err := commit(ctx, s, res); err != nil {
				return writeErr(cmd, err)
			}
			yd, _ := res.State.Year(app.year())
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        s.Dir,
					"backend":    string(s.Backend),
					"year":       yd.Year,
					"colorTheme": yd.ColorTheme,
					"language":   string(res.State.Language),
					"created":    res.EventType == mutate.EventYearCreate,
				},
			})
		},
	}
	return cmd
}
