package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/i18n"
)

func (m *appModel) refreshTimeline() {
	m.timeline.SetContent(m.timelineContent())
}

func (m appModel) timelineContent() string {
	tl := goaltree.BuildTimeline(m.root(), time.Local)
	if tl.Empty() {
		return styleMuted().Render(m.t(i18n.NoHistory))
	}
	pc := m.colors()
	now := m.sess.Now()
	width := max(20, m.timeline.Width)

	head := lipgloss.NewStyle().Bold(true).Foreground(pc.text)
	month := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	half := func(label i18n.Key, groups []goaltree.MonthGroup) {
		if len(groups) == 0 {
			return
		}
		b.WriteString(head.Render(m.t(label)))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(strings.Repeat(glyphHRule(), min(width, 40))))
		b.WriteString("\n")
		for _, grp := range groups {
			b.WriteString(month.Render(i18n.Month(m.lang(), grp.Month)))
			b.WriteString("\n")
			for _, g := range grp.Goals {
				at := g.CompletedAt.In(time.Local)
				meta := fmt.Sprintf("%d/%d %s", int(at.Month()), at.Day(), humanize.RelTime(at, now, "ago", "from now"))
				text := g.Text
				if text == "" {
					text = m.t(i18n.SubTask)
				}
				line := "  " + glyphCheck(true) + " " + truncateText(text, width-visibleWidth(meta)-8) + "  " + styleMuted().Render(meta)
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	half(i18n.FirstHalf, tl.FirstHalf)
	half(i18n.SecondHalf, tl.SecondHalf)
	return strings.TrimRight(b.String(), "\n")
}
