package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mandalart-cli/internal/i18n"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/palette"
	"mandalart-cli/internal/store"
)

type pickerState struct {
	idx int
}

func (m *appModel) openPicker() {
	m.modal = modalPalette
	m.picker.idx = 0
	cur := m.yearData().ColorTheme
	for i, t := range palette.All() {
		if t.Key == cur {
			m.picker.idx = i
			break
		}
	}
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	themes := palette.All()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.modal = modalNone
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		m.picker.idx = clamp(m.picker.idx-1, 0, len(themes)-1)
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		m.picker.idx = clamp(m.picker.idx+1, 0, len(themes)-1)
	case key.Matches(msg, m.keys.Open):
		themeKey := themes[m.picker.idx].Key
		var err error
		m.apply(func(st store.State) mutate.Result {
			res, e := mutate.SetTheme(st, m.year, themeKey)
			if e != nil {
				err = e
				return mutate.Result{State: st}
			}
			return res
		})
		if err != nil {
			m.logger.Warn("set theme", "theme", themeKey, "err", err)
		}
		m.modal = modalNone
	}
	return m, nil
}

func (m appModel) viewPicker() string {
	pc := m.colors()
	var b strings.Builder
	b.WriteString(titleStyle(pc).Render(m.t(i18n.PickPalette)))
	b.WriteString("\n\n")
	for i, t := range palette.All() {
		sc := colorsFor(t.Key)
		swatch := lipgloss.NewStyle().Background(sc.bg).Render("  ") +
			lipgloss.NewStyle().Background(sc.accent).Render("  ") +
			lipgloss.NewStyle().Background(sc.solid).Render("  ")
		name := t.Name
		if t.Key == pc.key {
			name += " " + glyphDot()
		}
		row := swatch + " " + name
		if i == m.picker.idx {
			row = lipgloss.NewStyle().Bold(true).Foreground(sc.text).Render("> ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return modalStyle(pc).Render(strings.TrimRight(b.String(), "\n"))
}
