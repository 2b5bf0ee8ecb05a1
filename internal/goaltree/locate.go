// Package goaltree implements the Mandalart goal tree: lookup, immutable
// updates, child expansion, progress aggregation, and focus resolution.
//
// Trees are persistent. Every operation that changes a node returns a new root
// in which only the nodes on the root→target path are new; every other node is
// shared with the input tree. Callers may rely on pointer equality to detect
// which subtrees changed.
package goaltree

import "mandalart-cli/internal/model"

// maxDepth bounds every recursive walk. Well-formed trees are at most a few
// levels deep; the guard only matters for corrupt persisted data.
const maxDepth = 16

// Locate returns the first node (pre-order) whose id equals id.
func Locate(root *model.Goal, id string) (*model.Goal, bool) {
	if root == nil || id == "" {
		return nil, false
	}
	return locate(root, id, 0)
}

func locate(g *model.Goal, id string, depth int) (*model.Goal, bool) {
	if g.ID == id {
		return g, true
	}
	if depth >= maxDepth {
		return nil, false
	}
	for _, ch := range g.SubGoals {
		if ch == nil {
			continue
		}
		if found, ok := locate(ch, id, depth+1); ok {
			return found, true
		}
	}
	return nil, false
}

// PathTo returns the chain of nodes from root to the node with id (inclusive).
func PathTo(root *model.Goal, id string) ([]*model.Goal, bool) {
	if root == nil || id == "" {
		return nil, false
	}
	var path []*model.Goal
	var walk func(g *model.Goal, depth int) bool
	walk = func(g *model.Goal, depth int) bool {
		path = append(path, g)
		if g.ID == id {
			return true
		}
		if depth < maxDepth {
			for _, ch := range g.SubGoals {
				if ch != nil && walk(ch, depth+1) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !walk(root, 0) {
		return nil, false
	}
	return path, true
}

// Depth returns the depth of id below root (root is 0).
func Depth(root *model.Goal, id string) (int, bool) {
	path, ok := PathTo(root, id)
	if !ok {
		return 0, false
	}
	return len(path) - 1, true
}

// Walk visits every node in pre-order.
func Walk(root *model.Goal, fn func(g *model.Goal, depth int)) {
	if root == nil {
		return
	}
	var walk func(g *model.Goal, depth int)
	walk = func(g *model.Goal, depth int) {
		fn(g, depth)
		if depth >= maxDepth {
			return
		}
		for _, ch := range g.SubGoals {
			if ch != nil {
				walk(ch, depth+1)
			}
		}
	}
	walk(root, 0)
}

// Prune returns g limited to levels below it. levels <= 0 returns g as is.
// Nodes that are cut keep their own fields but lose their children.
func Prune(g *model.Goal, levels int) *model.Goal {
	if g == nil || levels <= 0 {
		return g
	}
	return prune(g, levels)
}

func prune(g *model.Goal, levels int) *model.Goal {
	cp := g.Clone()
	if levels == 0 {
		cp.SubGoals = nil
		return cp
	}
	for i, ch := range cp.SubGoals {
		if ch != nil {
			cp.SubGoals[i] = prune(ch, levels-1)
		}
	}
	return cp
}
