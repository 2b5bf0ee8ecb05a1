package tui

import (
	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/store"
)

func (m viewMode) String() string {
	switch m {
	case modeGrid:
		return "grid"
	case modeTimeline:
		return "timeline"
	default:
		return "overview"
	}
}

func parseViewMode(s string) viewMode {
	switch s {
	case "grid":
		return modeGrid
	case "timeline":
		return modeTimeline
	default:
		return modeOverview
	}
}

// snapshot captures the screen for the next launch.
func (m appModel) snapshot() *store.TUIState {
	mode := m.mode
	if mode == modeTimeline {
		mode = m.back
	}
	return &store.TUIState{
		Version:     1,
		Year:        m.year,
		View:        mode.String(),
		Path:        m.path.IDs(),
		OverviewSel: m.overviewSel,
	}
}

// restore reopens a saved screen. State saved for another year is ignored,
// and the path is cut at the first goal that no longer exists.
func (m *appModel) restore(st *store.TUIState) {
	if st == nil || st.Year != m.year {
		return
	}
	m.mode = parseViewMode(st.View)
	if m.mode == modeTimeline {
		m.mode = modeOverview
	}
	m.overviewSel = clamp(st.OverviewSel, 0, 8)
	if m.mode != modeGrid {
		return
	}
	path := goaltree.NavPathFromIDs(m.root(), st.Path)
	for i, g := range path {
		if _, ok := goaltree.Locate(m.root(), g.ID); !ok {
			path = path.Truncate(i)
			break
		}
	}
	m.path = path
	m.gridSel = centreCell
	m.listSel = 0
}
