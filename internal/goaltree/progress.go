package goaltree

import "mandalart-cli/internal/model"

// Progress returns the completion ratio of g in [0, 1].
//
// A completed goal counts as 1 regardless of its children. An incomplete goal
// without children counts as 0. Otherwise the result is the mean of the
// children's progress, each child weighing the same.
func Progress(g *model.Goal) float64 {
	return progress(g, 0)
}

func progress(g *model.Goal, depth int) float64 {
	if g == nil {
		return 0
	}
	if g.IsCompleted {
		return 1
	}
	if len(g.SubGoals) == 0 || depth >= maxDepth {
		return 0
	}
	sum := 0.0
	for _, ch := range g.SubGoals {
		sum += progress(ch, depth+1)
	}
	return sum / float64(len(g.SubGoals))
}

// Percent is Progress rounded to a whole percentage.
func Percent(g *model.Goal) int {
	return int(Progress(g)*100 + 0.5)
}

// DirectCounts returns how many direct children of g are completed, and how
// many children g has. The checklist header uses this.
func DirectCounts(g *model.Goal) (done, total int) {
	if g == nil {
		return 0, 0
	}
	for _, ch := range g.SubGoals {
		if ch != nil && ch.IsCompleted {
			done++
		}
	}
	return done, len(g.SubGoals)
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Expanded  int `json:"expanded"`
	Named     int `json:"named"`
}

// CountStats tallies every node below root (inclusive).
func CountStats(root *model.Goal) Stats {
	var st Stats
	Walk(root, func(g *model.Goal, _ int) {
		st.Total++
		if g.IsCompleted {
			st.Completed++
		}
		if g.HasChildren() {
			st.Expanded++
		}
		if g.Text != "" {
			st.Named++
		}
	})
	return st
}
