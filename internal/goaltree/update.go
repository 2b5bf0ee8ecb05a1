package goaltree

import (
	"time"

	"mandalart-cli/internal/model"
)

// Patch is a partial update. Nil fields are left untouched; a non-nil empty
// SubGoals clears the children.
type Patch struct {
	Text        *string       `json:"text,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	IsCompleted *bool         `json:"isCompleted,omitempty"`
	SubGoals    []*model.Goal `json:"subGoals,omitempty"`
}

func (p Patch) WithText(s string) Patch {
	p.Text = &s
	return p
}

func (p Patch) WithNotes(s string) Patch {
	p.Notes = &s
	return p
}

func (p Patch) WithCompleted(b bool) Patch {
	p.IsCompleted = &b
	return p
}

// WithSubGoals replaces the children. The goals are shared, not copied.
func (p Patch) WithSubGoals(gs []*model.Goal) Patch {
	p.SubGoals = make([]*model.Goal, len(gs))
	copy(p.SubGoals, gs)
	return p
}

func (p Patch) IsEmpty() bool {
	return p.Text == nil && p.Notes == nil && p.IsCompleted == nil && p.SubGoals == nil
}

// apply returns a copy of g with p merged in. The completion timestamp is
// maintained in the same copy as the flag: a false→true transition stamps now,
// an explicit false clears it, and true on an already completed goal keeps the
// original stamp.
func (p Patch) apply(g *model.Goal, now time.Time) *model.Goal {
	cp := g.Clone()
	if p.Text != nil {
		cp.Text = *p.Text
	}
	if p.Notes != nil {
		cp.Notes = *p.Notes
	}
	if p.SubGoals != nil {
		cp.SubGoals = make([]*model.Goal, len(p.SubGoals))
		copy(cp.SubGoals, p.SubGoals)
	}
	if p.IsCompleted != nil {
		done := *p.IsCompleted
		switch {
		case done && !g.IsCompleted:
			ts := now
			cp.CompletedAt = &ts
		case !done:
			cp.CompletedAt = nil
		}
		cp.IsCompleted = done
	}
	return cp
}

// UpdateByID merges p into the node with id, stamping completion with the
// current UTC time.
func UpdateByID(root *model.Goal, id string, p Patch) *model.Goal {
	return UpdateByIDAt(root, id, p, time.Now().UTC())
}

// UpdateByIDAt is UpdateByID with an explicit clock. If id is not in the tree,
// root itself is returned.
func UpdateByIDAt(root *model.Goal, id string, p Patch, now time.Time) *model.Goal {
	return rewrite(root, id, func(g *model.Goal) *model.Goal {
		return p.apply(g, now)
	})
}

// rewrite replaces the node with id by fn(node), copying every ancestor on the
// way back up. fn may return its argument unchanged, in which case the
// original root is returned.
func rewrite(root *model.Goal, id string, fn func(*model.Goal) *model.Goal) *model.Goal {
	if root == nil || id == "" {
		return root
	}
	out, _ := rewriteNode(root, id, fn, 0)
	return out
}

// rewriteNode reports whether id was found below g (inclusive).
func rewriteNode(g *model.Goal, id string, fn func(*model.Goal) *model.Goal, depth int) (*model.Goal, bool) {
	if g.ID == id {
		return fn(g), true
	}
	if depth >= maxDepth {
		return g, false
	}
	for i, ch := range g.SubGoals {
		if ch == nil {
			continue
		}
		next, found := rewriteNode(ch, id, fn, depth+1)
		if !found {
			continue
		}
		if next == ch {
			return g, true
		}
		cp := g.Clone()
		cp.SubGoals[i] = next
		return cp, true
	}
	return g, false
}
