package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/i18n"
	"mandalart-cli/internal/logging"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/session"
	"mandalart-cli/internal/store"
)

type viewMode int

const (
	modeOverview viewMode = iota
	modeGrid
	modeTimeline
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditor
	modalPalette
)

// centreCell is the 3x3 position of the focused goal (or the root block in
// the overview).
const centreCell = 4

type storeChangedMsg struct {
	change store.Change
}

type flashClearMsg struct {
	seq int
}

type appModel struct {
	ctx    context.Context
	sess   *session.Session
	logger *slog.Logger

	year  int
	mode  viewMode
	back  viewMode // restored when the timeline closes
	modal modalKind
	path  goaltree.NavPath

	gridSel     int
	overviewSel int
	listSel     int

	width  int
	height int

	keys     keyMap
	help     help.Model
	editor   editorState
	picker   pickerState
	timeline viewport.Model

	flash    string
	flashSeq int

	changes <-chan store.Change
}

func newAppModel(ctx context.Context, sess *session.Session, year int, logger *slog.Logger) appModel {
	if logger == nil {
		logger = logging.Discard()
	}
	m := appModel{
		ctx:         ctx,
		sess:        sess,
		logger:      logger,
		year:        year,
		mode:        modeOverview,
		gridSel:     centreCell,
		overviewSel: centreCell,
		keys:        defaultKeyMap(),
		help:        help.New(),
		editor:      newEditorState(),
		timeline:    viewport.New(80, 20),
		width:       80,
		height:      24,
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan store.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{change: c}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case storeChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Debug("clipboard copy failed", "err", msg.err)
			return m, m.setFlash(msg.err.Error())
		}
		return m, m.setFlash(m.t(i18n.Copied))

	case externalEditorDoneMsg:
		return m, m.applyExternalEditorResult(msg)

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.modal {
		case modalEditor:
			return m.updateEditor(msg)
		case modalPalette:
			return m.updatePicker(msg)
		}
		return m.updateKey(msg)
	}

	if m.modal == modalEditor {
		return m.forwardToEditor(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.reload()
		return m, nil
	case key.Matches(msg, m.keys.Language):
		m.apply(mutate.CycleLanguage)
		m.refreshTimeline()
		return m, nil
	case key.Matches(msg, m.keys.PrevYear):
		m.switchYear(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextYear):
		m.switchYear(1)
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		m.openPicker()
		return m, nil
	case key.Matches(msg, m.keys.Timeline):
		if m.mode == modeTimeline {
			m.mode = m.back
			return m, nil
		}
		m.back = m.mode
		m.mode = modeTimeline
		m.refreshTimeline()
		m.timeline.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Overview):
		m.toggleOverview()
		return m, nil
	}

	if m.mode == modeTimeline {
		if key.Matches(msg, m.keys.Back) {
			m.mode = m.back
			return m, nil
		}
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.goBack()
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.Edit):
		if g := m.selectedGoal(); g != nil {
			return m, m.openEditor(g)
		}
	case key.Matches(msg, m.keys.Toggle):
		if g := m.selectedGoal(); g != nil {
			m.apply(func(st store.State) mutate.Result {
				return mutate.ToggleGoal(st, m.year, g.ID, m.sess.Now())
			})
		}
	case key.Matches(msg, m.keys.Add):
		if m.inChecklist() {
			return m.addChecklistItem()
		}
	case key.Matches(msg, m.keys.Copy):
		if g := m.selectedGoal(); g != nil && g.Text != "" {
			return m, copyCmd(g.Text)
		}
	case key.Matches(msg, m.keys.Up):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.move(1, 0)
	}
	return m, nil
}

// apply runs a mutation through the session and re-anchors the navigation
// path on the new tree.
func (m *appModel) apply(fn func(store.State) mutate.Result) mutate.Result {
	res := m.sess.Apply(m.ctx, fn)
	if res.Changed {
		m.path = m.path.Refresh(m.root())
	}
	return res
}

func (m *appModel) reload() {
	changed, err := m.sess.Reload(m.ctx)
	if err != nil {
		m.logger.Warn("reload state", "err", err)
		return
	}
	if !changed {
		return
	}
	m.logger.Debug("reloaded state after external write")
	m.path = m.path.Refresh(m.root())
	m.clampSelection()
	m.refreshTimeline()
}

func (m *appModel) setFlash(s string) tea.Cmd {
	m.flashSeq++
	m.flash = s
	seq := m.flashSeq
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return flashClearMsg{seq: seq} })
}

func (m appModel) yearData() model.YearData {
	return mutate.GetOrCreateYear(m.sess.State(), m.year)
}

func (m appModel) root() *model.Goal {
	return m.yearData().RootGoal
}

func (m appModel) focus() *model.Goal {
	return mutate.ResolveFocus(m.root(), m.path)
}

func (m appModel) lang() model.Language {
	return m.sess.State().Language
}

func (m appModel) t(k i18n.Key) string {
	return i18n.T(m.lang(), k)
}

func (m appModel) colors() paletteColors {
	return colorsFor(m.yearData().ColorTheme)
}

func (m *appModel) resize() {
	m.editor.resize(m.width)
	m.timeline.Width = max(20, m.width-4)
	m.timeline.Height = max(5, m.height-chromeHeight)
	m.refreshTimeline()
}
