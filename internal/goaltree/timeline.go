package goaltree

import (
	"sort"
	"time"

	"mandalart-cli/internal/model"
)

// Completed returns every completed goal that carries a completion time,
// oldest completion first.
func Completed(root *model.Goal) []*model.Goal {
	var out []*model.Goal
	Walk(root, func(g *model.Goal, _ int) {
		if g.IsCompleted && g.CompletedAt != nil {
			out = append(out, g)
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.Before(*out[j].CompletedAt)
	})
	return out
}

type MonthGroup struct {
	Month time.Month    `json:"month"`
	Goals []*model.Goal `json:"goals"`
}

// Timeline splits completed goals into the first (Jan–Jun) and second
// (Jul–Dec) half of the year, grouped by month.
type Timeline struct {
	FirstHalf  []MonthGroup `json:"firstHalf"`
	SecondHalf []MonthGroup `json:"secondHalf"`
}

func (t Timeline) Empty() bool {
	return len(t.FirstHalf) == 0 && len(t.SecondHalf) == 0
}

// BuildTimeline groups Completed(root) by month in loc (time.Local when nil).
func BuildTimeline(root *model.Goal, loc *time.Location) Timeline {
	if loc == nil {
		loc = time.Local
	}
	byMonth := map[time.Month][]*model.Goal{}
	for _, g := range Completed(root) {
		m := g.CompletedAt.In(loc).Month()
		byMonth[m] = append(byMonth[m], g)
	}
	tl := Timeline{FirstHalf: []MonthGroup{}, SecondHalf: []MonthGroup{}}
	for m := time.January; m <= time.December; m++ {
		goals, ok := byMonth[m]
		if !ok {
			continue
		}
		grp := MonthGroup{Month: m, Goals: goals}
		if m <= time.June {
			tl.FirstHalf = append(tl.FirstHalf, grp)
		} else {
			tl.SecondHalf = append(tl.SecondHalf, grp)
		}
	}
	return tl
}
