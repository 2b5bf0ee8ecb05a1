package mutate

import (
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/store"
)

// Event types recorded for each kind of change.
const (
	EventYearCreate  = "year.create"
	EventGoalUpdate  = "goal.update"
	EventGoalExpand  = "goal.expand"
	EventGoalAddItem = "goal.add_item"
	EventYearTheme   = "year.theme"
	EventLanguageSet = "state.language"
)

// Result is the outcome of one mutation. State is always a complete snapshot
// (the input when nothing changed). Callers are responsible for saving State
// and appending the event when Changed is true.
type Result struct {
	State        store.State
	Year         int
	Goal         *model.Goal
	Changed      bool
	EventType    string
	EntityID     string
	EventPayload map[string]any
}

func unchanged(st store.State, year int, g *model.Goal) Result {
	return Result{State: st, Year: year, Goal: g}
}
