package cli

import (
	"errors"
	"strings"
	"time"

	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool
	var utc bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export a year as Markdown pages (not read back)",
		Example: strings.TrimSpace(`
  mandalart publish --to ./plans --year 2025
  mandalart publish --to ./plans --overwrite
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			st, _, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			year := app.year()
			_, stored := st.Year(year)
			loc := time.Local
			if utc {
				loc = time.UTC
			}
			res, err := publish.WriteYear(mutate.GetOrCreateYear(st, year), toDir, publish.WriteOptions{
				RenderOptions: publish.RenderOptions{Language: st.Language, Location: loc},
				Overwrite:     overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"meta": map[string]any{"year": year, "stored": stored},
			})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory (a <year>/ folder is created inside)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing pages")
	cmd.Flags().BoolVar(&utc, "utc", false, "Print completion dates in UTC instead of local time")
	return cmd
}
