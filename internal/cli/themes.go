package cli

import (
	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/palette"

	"github.com/spf13/cobra"
)

func newThemesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "Colour themes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available colour themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": palette.All()})
		},
	})
	return cmd
}

func newKeywordsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List the suggested category keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"initial":   goaltree.InitialKeywords,
					"recommend": goaltree.RecommendKeywords,
				},
			})
		},
	}
}
