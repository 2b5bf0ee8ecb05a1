package cli

import (
	"strings"

	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/store"

	"github.com/spf13/cobra"
)

func newLanguageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "language",
		Aliases: []string{"lang"},
		Short:   "Show or change the UI language (ko|en|jp)",
	}

	out := func(cmd *cobra.Command, st store.State, changed bool) error {
		return writeOut(cmd, app, map[string]any{
			"data": map[string]any{"language": string(st.Language)},
			"meta": map[string]any{"changed": changed},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored language",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return out(cmd, st, false)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <ko|en|jp>",
		Short: "Set the language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, s, err := loadState(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetLanguage(st, model.Language(strings.ToLower(strings.TrimSpace(args[0]))))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(ctx, s, res); err != nil {
				return writeErr(cmd, err)
			}
			return out(cmd, res.State, res.Changed)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cycle",
		Short: "Advance ko → en → jp → ko",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, s, err := loadState(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.CycleLanguage(st)
			if err := commit(ctx, s, res); err != nil {
				return writeErr(cmd, err)
			}
			return out(cmd, res.State, res.Changed)
		},
	})

	return cmd
}
