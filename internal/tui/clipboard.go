package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type clipboardMsg struct {
	err error
}

// copyCmd copies s off the update loop; the platform helpers can be slow.
func copyCmd(s string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))}
	}
}
