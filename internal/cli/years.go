package cli

import (
	"strings"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"

	"github.com/spf13/cobra"
)

type yearView struct {
	Year       int            `json:"year"`
	RootID     string         `json:"rootId"`
	Vision     string         `json:"vision"`
	ColorTheme string         `json:"colorTheme"`
	Stored     bool           `json:"stored"`
	Progress   float64        `json:"progress"`
	Percent    int            `json:"percent"`
	Stats      goaltree.Stats `json:"stats"`
	Categories []goalSummary  `json:"categories"`
}

func viewYear(yd model.YearData, stored bool) yearView {
	v := yearView{
		Year:       yd.Year,
		RootID:     yd.RootGoal.ID,
		Vision:     yd.RootGoal.Text,
		ColorTheme: yd.ColorTheme,
		Stored:     stored,
		Progress:   goaltree.Progress(yd.RootGoal),
		Percent:    goaltree.Percent(yd.RootGoal),
		Stats:      goaltree.CountStats(yd.RootGoal),
		Categories: []goalSummary{},
	}
	for _, c := range yd.RootGoal.SubGoals {
		if c != nil {
			v.Categories = append(v.Categories, summarize(c))
		}
	}
	return v
}

func newYearsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "years",
		Aliases: []string{"year"},
		Short:   "List and inspect planner years",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored years",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []yearView{}
			for _, y := range st.Years() {
				yd, _ := st.Year(y)
				if yd.RootGoal == nil {
					continue
				}
				out = append(out, viewYear(yd, true))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the selected year (default tree if never saved)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, stored := st.Year(app.year())
			return writeOut(cmd, app, map[string]any{"data": viewYear(mutate.GetOrCreateYear(st, app.year()), stored)})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "theme <theme-key>",
		Short: "Set the colour theme of the selected year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, s, err := loadState(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTheme(st, app.year(), strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(ctx, s, res); err != nil {
				return writeErr(cmd, err)
			}
			yd, _ := res.State.Year(app.year())
			return writeOut(cmd, app, map[string]any{
				"data": viewYear(yd, true),
				"meta": map[string]any{"changed": res.Changed},
			})
		},
	})

	return cmd
}
