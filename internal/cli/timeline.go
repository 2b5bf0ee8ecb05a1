package cli

import (
	"time"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/i18n"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type timelineEntry struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	CompletedAt time.Time `json:"completedAt"`
	Ago         string    `json:"ago"`
}

type timelineMonth struct {
	Month int             `json:"month"`
	Name  string          `json:"name"`
	Goals []timelineEntry `json:"goals"`
}

type timelineHalf struct {
	Label  string          `json:"label"`
	Months []timelineMonth `json:"months"`
}

func viewTimeline(tl goaltree.Timeline, lang model.Language, now time.Time) []timelineHalf {
	half := func(label i18n.Key, groups []goaltree.MonthGroup) timelineHalf {
		h := timelineHalf{Label: i18n.T(lang, label), Months: []timelineMonth{}}
		for _, grp := range groups {
			m := timelineMonth{Month: int(grp.Month), Name: i18n.Month(lang, grp.Month), Goals: []timelineEntry{}}
			for _, g := range grp.Goals {
				m.Goals = append(m.Goals, timelineEntry{
					ID:          g.ID,
					Text:        g.Text,
					CompletedAt: *g.CompletedAt,
					Ago:         humanize.RelTime(*g.CompletedAt, now, "ago", "from now"),
				})
			}
			h.Months = append(h.Months, m)
		}
		return h
	}
	return []timelineHalf{
		half(i18n.FirstHalf, tl.FirstHalf),
		half(i18n.SecondHalf, tl.SecondHalf),
	}
}

func newTimelineCmd(app *App) *cobra.Command {
	var utc bool
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Completed goals of the selected year, grouped by half-year and month",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loc := time.Local
			if utc {
				loc = time.UTC
			}
			root := mutate.GetOrCreateYear(st, app.year()).RootGoal
			tl := goaltree.BuildTimeline(root, loc)
			return writeOut(cmd, app, map[string]any{
				"data": viewTimeline(tl, st.Language, app.now()),
				"meta": map[string]any{"year": app.year(), "empty": tl.Empty()},
			})
		},
	}
	cmd.Flags().BoolVar(&utc, "utc", false, "Group by UTC months instead of local time")
	return cmd
}
