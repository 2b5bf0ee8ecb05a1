package goaltree

import (
	"fmt"
	"time"

	"mandalart-cli/internal/model"
)

// NewGoal returns an empty, incomplete goal.
func NewGoal(id, text string) *model.Goal {
	return &model.Goal{ID: id, Text: text}
}

// GridChildID is the id of the i-th grid child of parentID.
func GridChildID(parentID string, i int) string {
	return fmt.Sprintf("%s-sub-%d", parentID, i)
}

// EnsureChildren gives the node with parentID its 8 grid children if it has
// none yet. A node that already has children, or an unknown parentID, leaves
// the tree untouched.
func EnsureChildren(root *model.Goal, parentID string) *model.Goal {
	return rewrite(root, parentID, func(g *model.Goal) *model.Goal {
		if g.HasChildren() {
			return g
		}
		cp := g.Clone()
		cp.SubGoals = make([]*model.Goal, model.GridSize)
		for i := range cp.SubGoals {
			cp.SubGoals[i] = NewGoal(GridChildID(g.ID, i), "")
		}
		return cp
	})
}

// AppendChild adds one empty checklist item under parentID, using the current
// time as the id's uniqueness source.
func AppendChild(root *model.Goal, parentID string) *model.Goal {
	return AppendChildAt(root, parentID, time.Now().UTC())
}

// AppendChildAt is AppendChild with an explicit clock. The new id is
// <parent>-item-<unix millis>; the millis are bumped until the id is unused
// anywhere in the tree. Checklists are variable length, so the grid fan-out is
// not enforced here.
func AppendChildAt(root *model.Goal, parentID string, now time.Time) *model.Goal {
	if _, ok := Locate(root, parentID); !ok {
		return root
	}
	ms := now.UnixMilli()
	id := checklistItemID(parentID, ms)
	for {
		if _, taken := Locate(root, id); !taken {
			break
		}
		ms++
		id = checklistItemID(parentID, ms)
	}
	return rewrite(root, parentID, func(g *model.Goal) *model.Goal {
		cp := g.Clone()
		cp.SubGoals = append(cp.SubGoals, NewGoal(id, ""))
		return cp
	})
}

func checklistItemID(parentID string, ms int64) string {
	return fmt.Sprintf("%s-item-%d", parentID, ms)
}

// LastChild returns the last child of the node with parentID.
func LastChild(root *model.Goal, parentID string) (*model.Goal, bool) {
	g, ok := Locate(root, parentID)
	if !ok || len(g.SubGoals) == 0 {
		return nil, false
	}
	return g.SubGoals[len(g.SubGoals)-1], true
}
