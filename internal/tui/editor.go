package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/i18n"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/store"
)

type editorField int

const (
	fieldText editorField = iota
	fieldKeywords
	fieldNotes
	editorFieldCount
)

type editorState struct {
	goalID string
	text   textinput.Model
	notes  textarea.Model
	field  editorField
	kwIdx  int
	keys   editorKeyMap

	// Set while $EDITOR runs on the notes.
	externalPath   string
	externalBefore string
}

func newEditorState() editorState {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(48)
	ta.SetHeight(4)

	return editorState{text: ti, notes: ta, keys: defaultEditorKeyMap()}
}

func (e *editorState) resize(width int) {
	w := clamp(width-10, 20, 72)
	e.text.Width = w - 2
	e.notes.SetWidth(w)
}

func (e *editorState) focusField(f editorField) tea.Cmd {
	e.field = f
	e.text.Blur()
	e.notes.Blur()
	switch f {
	case fieldText:
		return e.text.Focus()
	case fieldNotes:
		return e.notes.Focus()
	}
	return nil
}

func (m *appModel) openEditor(g *model.Goal) tea.Cmd {
	if g == nil {
		return nil
	}
	m.modal = modalEditor
	m.editor.goalID = g.ID
	m.editor.kwIdx = 0
	m.editor.text.Placeholder = m.t(i18n.PlaceholderGoal)
	m.editor.notes.Placeholder = m.t(i18n.PlaceholderNote)
	m.editor.text.SetValue(g.Text)
	m.editor.text.CursorEnd()
	m.editor.notes.SetValue(g.Notes)
	return tea.Batch(m.editor.focusField(fieldText), textinput.Blink)
}

func (m *appModel) closeEditor() {
	m.modal = modalNone
	m.editor.goalID = ""
	m.editor.text.Blur()
	m.editor.notes.Blur()
}

// editedGoal is the goal under edit as it currently exists in the tree. It is
// nil when an external write removed it.
func (m appModel) editedGoal() *model.Goal {
	g, err := mutate.FindGoal(m.sess.State(), m.year, m.editor.goalID)
	if err != nil {
		return nil
	}
	return g
}

// editorPatch holds only the fields that differ from the stored goal, so an
// unchanged save does not rewrite the tree.
func (m appModel) editorPatch(cur *model.Goal) goaltree.Patch {
	var p goaltree.Patch
	if text := m.editor.text.Value(); text != cur.Text {
		p = p.WithText(text)
	}
	if notes := m.editor.notes.Value(); notes != cur.Notes {
		p = p.WithNotes(notes)
	}
	return p
}

func (m *appModel) saveEditor(p goaltree.Patch) {
	if p.IsEmpty() {
		return
	}
	id := m.editor.goalID
	m.apply(func(st store.State) mutate.Result {
		return mutate.UpdateGoal(st, m.year, id, p, m.sess.Now())
	})
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.editor.keys
	switch {
	case key.Matches(msg, k.Cancel):
		m.closeEditor()
		return m, nil

	case key.Matches(msg, k.Save):
		if cur := m.editedGoal(); cur != nil {
			m.saveEditor(m.editorPatch(cur))
		}
		m.closeEditor()
		return m, nil

	case key.Matches(msg, k.Done):
		cur := m.editedGoal()
		if cur == nil {
			return m, nil
		}
		m.saveEditor(m.editorPatch(cur).WithCompleted(!cur.IsCompleted))
		return m, nil

	case key.Matches(msg, k.External):
		cmd, err := m.openExternalEditor()
		if err != nil {
			return m, m.setFlash("Editor failed: " + err.Error())
		}
		m.editor.focusField(fieldNotes)
		return m, cmd

	case key.Matches(msg, k.NextField):
		return m, m.editor.focusField((m.editor.field + 1) % editorFieldCount)

	case key.Matches(msg, k.PrevField):
		return m, m.editor.focusField((m.editor.field + editorFieldCount - 1) % editorFieldCount)
	}

	if m.editor.field == fieldKeywords {
		kws := goaltree.RecommendKeywords
		switch {
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
			m.editor.kwIdx = clamp(m.editor.kwIdx-1, 0, len(kws)-1)
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
			m.editor.kwIdx = clamp(m.editor.kwIdx+1, 0, len(kws)-1)
		case key.Matches(msg, k.Apply):
			// A keyword is saved as the goal text right away.
			kw := kws[m.editor.kwIdx]
			m.editor.text.SetValue(kw)
			m.saveEditor(goaltree.Patch{}.WithText(kw))
		}
		return m, nil
	}

	if m.editor.field == fieldText && key.Matches(msg, k.Apply) {
		if cur := m.editedGoal(); cur != nil {
			m.saveEditor(m.editorPatch(cur))
		}
		m.closeEditor()
		return m, nil
	}

	return m.forwardToEditor(msg)
}

func (m appModel) forwardToEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.editor.field {
	case fieldText:
		m.editor.text, cmd = m.editor.text.Update(msg)
	case fieldNotes:
		m.editor.notes, cmd = m.editor.notes.Update(msg)
	}
	return m, cmd
}

func (m appModel) viewEditor() string {
	g := m.editedGoal()
	pc := m.colors()
	w := clamp(m.width-6, 24, 76)

	var b strings.Builder
	b.WriteString(titleStyle(pc).Render(m.t(i18n.GoalDetails)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle(m.editor.field == fieldText).Render(m.t(i18n.TheGoal)))
	b.WriteString("\n")
	b.WriteString(m.editor.text.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle(m.editor.field == fieldKeywords).Render(m.t(i18n.Keywords)))
	b.WriteString("\n")
	b.WriteString(m.viewKeywords(pc, w-4))
	b.WriteString("\n\n")

	b.WriteString(labelStyle(m.editor.field == fieldNotes).Render(m.t(i18n.Notes)))
	b.WriteString("\n")
	if m.editor.field == fieldNotes {
		b.WriteString(m.editor.notes.View())
	} else if notes := m.editor.notes.Value(); strings.TrimSpace(notes) != "" {
		b.WriteString(renderMarkdown(notes, w-4, pc))
	} else {
		b.WriteString(styleMuted().Render(m.t(i18n.PlaceholderNote)))
	}
	b.WriteString("\n\n")

	if g != nil {
		status := glyphCheck(g.IsCompleted) + " " + m.t(i18n.MarkAsDone)
		if g.IsCompleted {
			status = glyphCheck(true) + " " + m.t(i18n.Completed)
		}
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render(m.help.ShortHelpView(m.editor.keys.ShortHelp())))

	return modalStyle(pc).Width(w).Render(b.String())
}

func (m appModel) viewKeywords(pc paletteColors, width int) string {
	var lines []string
	line := ""
	for i, kw := range goaltree.RecommendKeywords {
		chip := keywordChip(pc, "#"+kw, m.editor.field == fieldKeywords && i == m.editor.kwIdx)
		if line != "" && visibleWidth(line)+1+visibleWidth(chip) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += chip
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
