package goaltree

import "mandalart-cli/internal/model"

// NavPath is the user's drill-down position: the goals visited below the
// root, oldest first. The root itself is never part of the path.
type NavPath []*model.Goal

func (p NavPath) Push(g *model.Goal) NavPath {
	out := make(NavPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, g)
}

func (p NavPath) Pop() NavPath {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// Truncate keeps the first n entries.
func (p NavPath) Truncate(n int) NavPath {
	if n < 0 {
		n = 0
	}
	if n >= len(p) {
		return p
	}
	return p[:n:n]
}

func (p NavPath) IDs() []string {
	out := make([]string, 0, len(p))
	for _, g := range p {
		if g != nil {
			out = append(out, g.ID)
		}
	}
	return out
}

func (p NavPath) Last() (*model.Goal, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p[len(p)-1], p[len(p)-1] != nil
}

// Refresh replaces every entry with its counterpart in root. Entries whose id
// no longer exists keep their old reference.
func (p NavPath) Refresh(root *model.Goal) NavPath {
	out := make(NavPath, len(p))
	for i, g := range p {
		out[i] = g
		if g == nil {
			continue
		}
		if cur, ok := Locate(root, g.ID); ok {
			out[i] = cur
		}
	}
	return out
}

// ResolveFocus returns the goal shown at the centre of the active grid.
//
// An empty path focuses the root. Otherwise the last entry's id is looked up
// in the current tree; if it is gone, the last entry itself is returned, so
// callers must tolerate a stale node in that case.
func ResolveFocus(root *model.Goal, path NavPath) *model.Goal {
	last, ok := path.Last()
	if !ok {
		return root
	}
	if cur, found := Locate(root, last.ID); found {
		return cur
	}
	return last
}

// NavPathFromIDs rebuilds a path from ids. Ids not present in root become
// placeholder goals carrying only the id, which ResolveFocus will return as
// the stale fallback.
func NavPathFromIDs(root *model.Goal, ids []string) NavPath {
	out := make(NavPath, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if g, ok := Locate(root, id); ok {
			out = append(out, g)
			continue
		}
		out = append(out, &model.Goal{ID: id})
	}
	return out
}
