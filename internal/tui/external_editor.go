package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	err error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditor hands the notes field to $VISUAL/$EDITOR. The result
// replaces the field when the editor exits; nothing is saved until ctrl+s.
func (m *appModel) openExternalEditor() (tea.Cmd, error) {
	args := splitShellWords(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "mandalart-notes-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	before := m.editor.notes.Value()
	if _, err := f.WriteString(before); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	m.editor.externalPath = path
	m.editor.externalBefore = before

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	}), nil
}

func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) tea.Cmd {
	path := m.editor.externalPath
	before := m.editor.externalBefore
	m.editor.externalPath = ""
	m.editor.externalBefore = ""

	if strings.TrimSpace(path) == "" {
		return nil
	}
	defer func() { _ = os.Remove(path) }()

	if msg.err != nil {
		m.logger.Debug("external editor failed", "err", msg.err)
		return m.setFlash("Editor failed: " + msg.err.Error())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return m.setFlash("Editor read failed: " + err.Error())
	}

	after := strings.TrimRight(string(b), "\n")
	if m.modal == modalEditor {
		m.editor.notes.SetValue(after)
	}
	if strings.TrimSpace(after) == strings.TrimSpace(before) {
		return m.setFlash(fmt.Sprintf("No changes from %s", externalEditorName()))
	}
	return m.setFlash(fmt.Sprintf("Updated from %s (ctrl+s to save)", externalEditorName()))
}
