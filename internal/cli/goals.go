package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/store"

	"github.com/spf13/cobra"
)

type goalSummary struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Progress    float64    `json:"progress"`
	HasChildren bool       `json:"hasChildren"`
}

type goalView struct {
	ID          string        `json:"id"`
	Year        int           `json:"year"`
	Text        string        `json:"text"`
	Notes       string        `json:"notes"`
	IsCompleted bool          `json:"isCompleted"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Depth       int           `json:"depth"`
	Path        []string      `json:"path"`
	Progress    float64       `json:"progress"`
	Percent     int           `json:"percent"`
	Done        int           `json:"done"`
	Total       int           `json:"total"`
	SubGoals    []goalSummary `json:"subGoals"`
}

func summarize(g *model.Goal) goalSummary {
	return goalSummary{
		ID:          g.ID,
		Text:        g.Text,
		IsCompleted: g.IsCompleted,
		CompletedAt: g.CompletedAt,
		Progress:    goaltree.Progress(g),
		HasChildren: g.HasChildren(),
	}
}

func viewGoal(root *model.Goal, year int, g *model.Goal) goalView {
	v := goalView{
		ID:          g.ID,
		Year:        year,
		Text:        g.Text,
		Notes:       g.Notes,
		IsCompleted: g.IsCompleted,
		CompletedAt: g.CompletedAt,
		Path:        []string{},
		Progress:    goaltree.Progress(g),
		Percent:     goaltree.Percent(g),
		SubGoals:    []goalSummary{},
	}
	if d, ok := goaltree.Depth(root, g.ID); ok {
		v.Depth = d
	}
	if chain, ok := goaltree.PathTo(root, g.ID); ok {
		for _, x := range chain {
			v.Path = append(v.Path, x.ID)
		}
	}
	v.Done, v.Total = goaltree.DirectCounts(g)
	for _, ch := range g.SubGoals {
		if ch != nil {
			v.SubGoals = append(v.SubGoals, summarize(ch))
		}
	}
	return v
}

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal", "g"},
		Short:   "Inspect and edit goals of a year",
	}
	cmd.AddCommand(newGoalsShowCmd(app))
	cmd.AddCommand(newGoalsSetCmd(app))
	cmd.AddCommand(newGoalsDoneCmd(app, "done", true))
	cmd.AddCommand(newGoalsDoneCmd(app, "undone", false))
	cmd.AddCommand(newGoalsExpandCmd(app))
	cmd.AddCommand(newGoalsAddItemCmd(app))
	cmd.AddCommand(newGoalsProgressCmd(app))
	cmd.AddCommand(newGoalsFocusCmd(app))
	cmd.AddCommand(newGoalsTreeCmd(app))
	return cmd
}

// yearForGoal picks the year a goal id belongs to: --year when given,
// otherwise the year encoded in seed-shaped ids, otherwise the current year.
func yearForGoal(app *App, id string) int {
	if app.Year != 0 {
		return app.Year
	}
	if y, ok := goaltree.YearFromID(id); ok {
		return y
	}
	return app.year()
}

func findGoal(ctx context.Context, app *App, id string) (store.State, store.Store, int, *model.Goal, error) {
	id = strings.TrimSpace(id)
	st, s, err := loadState(ctx, app)
	if err != nil {
		return store.State{}, store.Store{}, 0, nil, err
	}
	year := yearForGoal(app, id)
	g, err := mutate.FindGoal(st, year, id)
	if err != nil {
		return st, s, year, nil, err
	}
	return st, s, year, g, nil
}

func newGoalsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal with its progress and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, year, g, err := findGoal(cmd.Context(), app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			root := mutate.GetOrCreateYear(st, year).RootGoal
			return writeOut(cmd, app, map[string]any{"data": viewGoal(root, year, g)})
		},
	}
}

// applyGoal runs a goal mutation, commits it, and prints the updated goal.
// fn receives the trimmed id.
func applyGoal(cmd *cobra.Command, app *App, id string, fn func(st store.State, year int, id string) mutate.Result) error {
	ctx := cmd.Context()
	id = strings.TrimSpace(id)
	st, s, year, _, err := findGoal(ctx, app, id)
	if err != nil {
		return writeErr(cmd, err)
	}
	res := fn(st, year, id)
	if err := commit(ctx, s, res); err != nil {
		return writeErr(cmd, err)
	}
	g := res.Goal
	if g == nil {
		if g, err = mutate.FindGoal(res.State, year, id); err != nil {
			return writeErr(cmd, err)
		}
	}
	root := mutate.GetOrCreateYear(res.State, year).RootGoal
	return writeOut(cmd, app, map[string]any{
		"data": viewGoal(root, year, g),
		"meta": map[string]any{"changed": res.Changed},
	})
}

func newGoalsSetCmd(app *App) *cobra.Command {
	var text, notes string
	cmd := &cobra.Command{
		Use:   "set <goal-id>",
		Short: "Set a goal's text and/or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p goaltree.Patch
			if cmd.Flags().Changed("text") {
				p = p.WithText(strings.TrimSpace(text))
			}
			if cmd.Flags().Changed("notes") {
				p = p.WithNotes(notes)
			}
			if p.IsEmpty() {
				return writeErr(cmd, errors.New("nothing to set: pass --text and/or --notes"))
			}
			return applyGoal(cmd, app, args[0], func(st store.State, year int, id string) mutate.Result {
				return mutate.UpdateGoal(st, year, id, p, app.now())
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Goal text")
	cmd.Flags().StringVar(&notes, "notes", "", "Goal notes (markdown)")
	return cmd
}

func newGoalsDoneCmd(app *App, use string, done bool) *cobra.Command {
	short := "Mark a goal as completed"
	if !done {
		short = "Mark a goal as not completed"
	}
	return &cobra.Command{
		Use:   use + " <goal-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyGoal(cmd, app, args[0], func(st store.State, year int, id string) mutate.Result {
				g, _ := mutate.FindGoal(st, year, id)
				if g != nil && g.IsCompleted == done {
					return mutate.Result{State: st, Year: year, Goal: g}
				}
				return mutate.UpdateGoal(st, year, id, goaltree.Patch{}.WithCompleted(done), app.now())
			})
		},
	}
}

func newGoalsExpandCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <goal-id>",
		Short: "Give a goal its 8 grid children (no-op if it has children)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyGoal(cmd, app, args[0], func(st store.State, year int, id string) mutate.Result {
				return mutate.EnsureExpanded(st, year, id)
			})
		},
	}
}

func newGoalsAddItemCmd(app *App) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "add-item <parent-id>",
		Short: "Append a checklist item under a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			parentID := strings.TrimSpace(args[0])
			st, s, year, _, err := findGoal(ctx, app, parentID)
			if err != nil {
				return writeErr(cmd, err)
			}
			now := app.now()
			res := mutate.AddChecklistItem(st, year, parentID, now)
			if err := commit(ctx, s, res); err != nil {
				return writeErr(cmd, err)
			}
			item := res.Goal
			if t := strings.TrimSpace(text); t != "" {
				upd := mutate.UpdateGoal(res.State, year, item.ID, goaltree.Patch{}.WithText(t), now)
				if err := commit(ctx, s, upd); err != nil {
					return writeErr(cmd, err)
				}
				res, item = upd, upd.Goal
			}
			root := mutate.GetOrCreateYear(res.State, year).RootGoal
			return writeOut(cmd, app, map[string]any{"data": viewGoal(root, year, item)})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Item text")
	return cmd
}

func newGoalsProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <goal-id>",
		Short: "Show a goal's completion ratio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, _, g, err := findGoal(cmd.Context(), app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			done, total := goaltree.DirectCounts(g)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"id":       g.ID,
					"progress": mutate.ComputeProgress(g),
					"percent":  goaltree.Percent(g),
					"done":     done,
					"total":    total,
				},
			})
		},
	}
}

func newGoalsFocusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "focus [goal-id...]",
		Short: "Resolve the focused goal for a navigation path",
		Long:  "Resolve the focused goal for a navigation path of goal ids, oldest first. An empty path focuses the year's root. An id that no longer exists is returned as-is and reported stale.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			year := app.year()
			if app.Year == 0 && len(args) > 0 {
				year = yearForGoal(app, args[len(args)-1])
			}
			root := mutate.GetOrCreateYear(st, year).RootGoal
			path := goaltree.NavPathFromIDs(root, args)
			focus := mutate.ResolveFocus(root, path)
			_, live := goaltree.Locate(root, focus.ID)
			return writeOut(cmd, app, map[string]any{
				"data": viewGoal(root, year, focus),
				"meta": map[string]any{"stale": !live, "path": path.IDs()},
			})
		},
	}
}

func newGoalsTreeCmd(app *App) *cobra.Command {
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "tree [goal-id]",
		Short: "Print a goal subtree (default: the year's root)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			year := app.year()
			root := mutate.GetOrCreateYear(st, year).RootGoal
			g := root
			if len(args) == 1 {
				year = yearForGoal(app, args[0])
				if g, err = mutate.FindGoal(st, year, args[0]); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": goaltree.Prune(g, maxDepth)})
		},
	}
	cmd.Flags().IntVar(&maxDepth, "depth", 0, "Max levels below the goal to include (0 = all)")
	return cmd
}
