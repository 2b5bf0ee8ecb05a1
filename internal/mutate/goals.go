package mutate

import (
	"strings"
	"time"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/store"
)

// FindGoal looks up id in year and reports a NotFoundError when it is absent.
// The tree functions themselves treat unknown ids as no-ops; this is for
// callers that need to tell the user.
func FindGoal(st store.State, year int, id string) (*model.Goal, error) {
	id = strings.TrimSpace(id)
	yd := GetOrCreateYear(st, year)
	g, ok := goaltree.Locate(yd.RootGoal, id)
	if !ok {
		return nil, NotFoundError{Kind: "goal", ID: id}
	}
	return g, nil
}

// UpdateGoal merges patch into goalID of year. An unknown id leaves the state
// unchanged.
func UpdateGoal(st store.State, year int, goalID string, patch goaltree.Patch, now time.Time) Result {
	yd := GetOrCreateYear(st, year)
	if patch.IsEmpty() {
		g, _ := goaltree.Locate(yd.RootGoal, goalID)
		return unchanged(st, year, g)
	}
	root := goaltree.UpdateByIDAt(yd.RootGoal, goalID, patch, now)
	if root == yd.RootGoal {
		return unchanged(st, year, nil)
	}
	g, _ := goaltree.Locate(root, goalID)

	payload := map[string]any{}
	if patch.Text != nil {
		payload["text"] = *patch.Text
	}
	if patch.Notes != nil {
		payload["notes"] = *patch.Notes
	}
	if patch.IsCompleted != nil {
		payload["isCompleted"] = *patch.IsCompleted
		if g.CompletedAt != nil {
			payload["completedAt"] = g.CompletedAt.UTC().Format(time.RFC3339Nano)
		}
	}
	return Result{
		State:        withRoot(st, yd, root),
		Year:         year,
		Goal:         g,
		Changed:      true,
		EventType:    EventGoalUpdate,
		EntityID:     g.ID,
		EventPayload: payload,
	}
}

// ToggleGoal flips the completion flag of goalID.
func ToggleGoal(st store.State, year int, goalID string, now time.Time) Result {
	g, err := FindGoal(st, year, goalID)
	if err != nil {
		return unchanged(st, year, nil)
	}
	return UpdateGoal(st, year, goalID, goaltree.Patch{}.WithCompleted(!g.IsCompleted), now)
}

// EnsureExpanded gives goalID its 8 grid children if it has none.
func EnsureExpanded(st store.State, year int, goalID string) Result {
	yd := GetOrCreateYear(st, year)
	root := goaltree.EnsureChildren(yd.RootGoal, goalID)
	if root == yd.RootGoal {
		g, _ := goaltree.Locate(root, goalID)
		return unchanged(st, year, g)
	}
	g, _ := goaltree.Locate(root, goalID)
	return Result{
		State:     withRoot(st, yd, root),
		Year:      year,
		Goal:      g,
		Changed:   true,
		EventType: EventGoalExpand,
		EntityID:  g.ID,
		EventPayload: map[string]any{
			"children": len(g.SubGoals),
		},
	}
}

// AddChecklistItem appends an empty item under parentID. Result.Goal is the
// new item.
func AddChecklistItem(st store.State, year int, parentID string, now time.Time) Result {
	yd := GetOrCreateYear(st, year)
	root := goaltree.AppendChildAt(yd.RootGoal, parentID, now)
	if root == yd.RootGoal {
		return unchanged(st, year, nil)
	}
	item, _ := goaltree.LastChild(root, parentID)
	return Result{
		State:     withRoot(st, yd, root),
		Year:      year,
		Goal:      item,
		Changed:   true,
		EventType: EventGoalAddItem,
		EntityID:  parentID,
		EventPayload: map[string]any{
			"itemId": item.ID,
		},
	}
}

func ComputeProgress(g *model.Goal) float64 {
	return goaltree.Progress(g)
}

func ResolveFocus(root *model.Goal, path goaltree.NavPath) *model.Goal {
	return goaltree.ResolveFocus(root, path)
}
