package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/store"
)

// drillDepth is how deep the grid goes before a goal's children are shown as
// a checklist instead.
const drillDepth = 2

// gridSlot maps a 3x3 position (row-major) to a child index. The centre holds
// the parent itself.
func gridSlot(pos int) (int, bool) {
	switch {
	case pos == centreCell:
		return 0, false
	case pos < centreCell:
		return pos, true
	default:
		return pos - 1, true
	}
}

func childAt(g *model.Goal, pos int) *model.Goal {
	i, ok := gridSlot(pos)
	if !ok || g == nil || i >= len(g.SubGoals) {
		return nil
	}
	return g.SubGoals[i]
}

func (m appModel) inChecklist() bool {
	return m.mode == modeGrid && len(m.path) >= drillDepth
}

func (m appModel) checklistItems() []*model.Goal {
	return m.focus().SubGoals
}

// overviewBlock is the goal at the centre of one overview mini-grid: the root
// in the middle, a category elsewhere.
func (m appModel) overviewBlock(pos int) *model.Goal {
	if pos == centreCell {
		return m.root()
	}
	return childAt(m.root(), pos)
}

// selectedGoal is the goal the cursor is on, or nil for empty slots and the
// checklist's add row.
func (m appModel) selectedGoal() *model.Goal {
	switch {
	case m.mode == modeOverview:
		return m.overviewBlock(m.overviewSel)
	case m.inChecklist():
		items := m.checklistItems()
		if m.listSel < len(items) {
			return items[m.listSel]
		}
		return nil
	case m.mode == modeGrid:
		if m.gridSel == centreCell {
			return m.focus()
		}
		return childAt(m.focus(), m.gridSel)
	}
	return nil
}

func (m *appModel) move(dx, dy int) {
	switch {
	case m.mode == modeOverview:
		m.overviewSel = moveCell(m.overviewSel, dx, dy)
	case m.inChecklist():
		if dy == 0 {
			return
		}
		// The row after the last item is the add row.
		m.listSel = clamp(m.listSel+dy, 0, len(m.checklistItems()))
	case m.mode == modeGrid:
		m.gridSel = moveCell(m.gridSel, dx, dy)
	}
}

func moveCell(pos, dx, dy int) int {
	row := clamp(pos/3+dy, 0, 2)
	col := clamp(pos%3+dx, 0, 2)
	return row*3 + col
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *appModel) clampSelection() {
	if m.inChecklist() {
		m.listSel = clamp(m.listSel, 0, len(m.checklistItems()))
	}
}

// open activates the selection: overview blocks zoom in, grid cells drill
// down until drillDepth, and everything deeper opens the editor.
func (m appModel) open() (tea.Model, tea.Cmd) {
	switch {
	case m.mode == modeOverview:
		m.mode = modeGrid
		m.gridSel = centreCell
		m.path = nil
		if m.overviewSel == centreCell {
			return m, nil
		}
		if cat := m.overviewBlock(m.overviewSel); cat != nil {
			m.drillInto(cat)
		}
		return m, nil

	case m.inChecklist():
		items := m.checklistItems()
		if m.listSel >= len(items) {
			return m.addChecklistItem()
		}
		return m, m.openEditor(items[m.listSel])

	case m.mode == modeGrid:
		if m.gridSel == centreCell {
			return m, m.openEditor(m.focus())
		}
		child := childAt(m.focus(), m.gridSel)
		if child == nil {
			return m, nil
		}
		if len(m.path) < drillDepth {
			m.drillInto(child)
			return m, nil
		}
		return m, m.openEditor(child)
	}
	return m, nil
}

func (m *appModel) drillInto(g *model.Goal) {
	id := g.ID
	res := m.apply(func(st store.State) mutate.Result {
		return mutate.EnsureExpanded(st, m.year, id)
	})
	next := g
	if res.Goal != nil {
		next = res.Goal
	}
	m.path = m.path.Push(next)
	m.gridSel = centreCell
	m.listSel = 0
}

func (m *appModel) goBack() {
	if m.mode != modeGrid {
		return
	}
	if len(m.path) == 0 {
		m.mode = modeOverview
		return
	}
	m.path = m.path.Pop()
	m.gridSel = centreCell
	m.listSel = 0
}

func (m *appModel) toggleOverview() {
	if m.mode == modeOverview {
		m.mode = modeGrid
	} else {
		m.mode = modeOverview
	}
	m.path = nil
	m.gridSel = centreCell
	m.overviewSel = centreCell
}

func (m *appModel) switchYear(delta int) {
	m.year += delta
	m.path = nil
	m.mode = modeOverview
	m.overviewSel = centreCell
	m.gridSel = centreCell
	m.refreshTimeline()
}

func (m appModel) addChecklistItem() (tea.Model, tea.Cmd) {
	parent := m.focus()
	res := m.apply(func(st store.State) mutate.Result {
		return mutate.AddChecklistItem(st, m.year, parent.ID, m.sess.Now())
	})
	if !res.Changed || res.Goal == nil {
		return m, nil
	}
	m.listSel = len(m.checklistItems()) - 1
	return m, m.openEditor(res.Goal)
}
