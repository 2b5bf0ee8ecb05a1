package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/i18n"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/palette"
)

// chromeHeight is the number of rows taken by header, breadcrumb, title and
// footer around the main body.
const chromeHeight = 8

func visibleWidth(s string) int { return xansi.StringWidth(s) }

func truncateText(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return xansi.Truncate(s, w, glyphEllipsis())
}

// cellText wraps s into at most h lines of width w, ellipsising the last line
// when it does not fit.
func cellText(s string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	lines := strings.Split(xansi.Wrap(s, w, ""), "\n")
	if len(lines) > h {
		lines = lines[:h]
		last := lines[h-1]
		if visibleWidth(last)+visibleWidth(glyphEllipsis()) > w {
			last = xansi.Cut(last, 0, w-visibleWidth(glyphEllipsis()))
		}
		lines[h-1] = last + glyphEllipsis()
	}
	return strings.Join(lines, "\n")
}

func titleStyle(pc paletteColors) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(pc.text)
}

func labelStyle(active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	if active {
		return st.Foreground(colorAccent)
	}
	return faintIfDark(st.Foreground(colorChromeMutedFg))
}

func modalStyle(pc paletteColors) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pc.solid).
		Padding(1, 2)
}

func keywordChip(pc paletteColors, s string, selected bool) string {
	st := lipgloss.NewStyle().Background(pc.accent).Foreground(pc.text).Padding(0, 1)
	if selected {
		st = st.Background(pc.solid).Foreground(colorOnSolidFg).Bold(true)
	}
	return st.Render(s)
}

func progressBar(pc paletteColors, ratio float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(ratio*float64(width) + 0.5)
	filled = clamp(filled, 0, width)
	return lipgloss.NewStyle().Foreground(pc.solid).Render(strings.Repeat(glyphBarFull(), filled)) +
		styleMuted().Render(strings.Repeat(glyphBarEmpty(), width-filled))
}

func (m appModel) View() string {
	pc := m.colors()
	header := m.viewHeader(pc)
	crumbs := m.viewBreadcrumb()
	title := m.viewTitle(pc)

	bodyHeight := max(3, m.height-chromeHeight)
	var body string
	switch m.modal {
	case modalEditor:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.viewEditor())
	case modalPalette:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.viewPicker())
	default:
		switch {
		case m.mode == modeTimeline:
			body = m.timeline.View()
		case m.mode == modeOverview:
			body = m.viewOverview(pc)
		case m.inChecklist():
			body = m.viewChecklist(pc, bodyHeight)
		default:
			body = m.viewGrid(pc, bodyHeight)
		}
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}

	footer := m.viewFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, crumbs, title, "", body, footer)
}

func (m appModel) viewHeader(pc paletteColors) string {
	year := lipgloss.NewStyle().Bold(true).Foreground(pc.text).
		Render(fmt.Sprintf("[ %d ]", m.year))
	lang := styleMuted().Render(m.t(i18n.Language) + ": " + strings.ToUpper(string(m.lang())))
	theme := styleMuted().Render(m.t(i18n.Theme) + ": " + palette.Lookup(pc.key).Name)

	var label string
	switch m.mode {
	case modeOverview:
		label = m.t(i18n.Overview)
	case modeTimeline:
		label = m.t(i18n.Timeline)
	default:
		label = m.t(i18n.ZoomView)
	}
	left := year + "  " + lang + "  " + theme
	right := lipgloss.NewStyle().Bold(true).Render(label)
	gap := max(1, m.width-visibleWidth(left)-visibleWidth(right))
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) viewBreadcrumb() string {
	parts := []string{strconv.Itoa(m.year)}
	if m.mode == modeGrid {
		for _, g := range m.path {
			label := g.Text
			if label == "" {
				label = m.t(i18n.Branch)
			}
			parts = append(parts, label)
		}
	}
	return styleMuted().Render(truncateText(strings.Join(parts, " "+glyphSep()+" "), m.width))
}

func (m appModel) viewTitle(pc paletteColors) string {
	st := titleStyle(pc)
	switch {
	case m.mode == modeOverview:
		return st.Render(m.t(i18n.MainGrid))
	case m.mode == modeTimeline:
		return st.Render(m.t(i18n.Timeline))
	}
	f := m.focus()
	text := f.Text
	if text == "" {
		text = m.t(i18n.Focus)
	}
	title := text + "  " + strconv.Itoa(goaltree.Percent(f)) + "%"
	if len(m.path) > 0 {
		title = glyphBack() + " " + title
	}
	return st.Render(truncateText(title, m.width))
}

func (m appModel) viewFooter() string {
	instr := styleMuted().Render(truncateText(m.t(i18n.Instruction), m.width))
	helpView := m.help.View(m.keys)
	if m.flash != "" {
		flash := lipgloss.NewStyle().Background(colorFlashBg).Padding(0, 1).Render(m.flash)
		return lipgloss.JoinVertical(lipgloss.Left, flash, instr, helpView)
	}
	return lipgloss.JoinVertical(lipgloss.Left, instr, helpView)
}

// gridCellSize returns the inner width and height of one zoomed-grid cell.
func (m appModel) gridCellSize(bodyHeight int) (int, int) {
	w := clamp((m.width-6)/3-2, 8, 26)
	h := clamp(bodyHeight/3-2, 1, 7)
	return w, h
}

func (m appModel) viewGrid(pc paletteColors, bodyHeight int) string {
	focus := m.focus()
	w, h := m.gridCellSize(bodyHeight)
	topLevel := len(m.path) == 0

	rows := make([]string, 0, 3)
	for r := 0; r < 3; r++ {
		cells := make([]string, 0, 3)
		for c := 0; c < 3; c++ {
			pos := r*3 + c
			selected := pos == m.gridSel
			if pos == centreCell {
				cells = append(cells, m.renderCentre(pc, focus, w, h, selected))
				continue
			}
			cells = append(cells, m.renderCell(pc, childAt(focus, pos), topLevel, w, h, selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cellBox(w, h int, selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Width(w).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder)
	if selected {
		st = st.Border(lipgloss.ThickBorder()).BorderForeground(colorSelectedBorder)
	}
	return st
}

func (m appModel) renderCell(pc paletteColors, g *model.Goal, topLevel bool, w, h int, selected bool) string {
	box := cellBox(w, h, selected)
	if g == nil {
		return box.BorderStyle(lipgloss.HiddenBorder()).Render("")
	}
	text := g.Text
	if text == "" {
		if topLevel {
			text = m.t(i18n.Branch)
		} else {
			text = m.t(i18n.SubTask)
		}
	}
	if g.IsCompleted {
		text = glyphCheck(true) + " " + text
	}
	bg, fg := pc.cellFill(g.IsCompleted, goaltree.Progress(g))
	st := box.Background(bg).Foreground(fg)
	if topLevel {
		st = st.Bold(true)
	}
	return st.Render(cellText(text, w, h))
}

func (m appModel) renderCentre(pc paletteColors, g *model.Goal, w, h int, selected bool) string {
	text := g.Text
	if text == "" {
		text = m.t(i18n.Focus)
	}
	if len(m.path) == 0 {
		text = strconv.Itoa(m.year) + "\n" + text
	}
	pct := strconv.Itoa(goaltree.Percent(g)) + "%"
	content := cellText(text, w, max(1, h-1)) + "\n" + progressBar(pc, goaltree.Progress(g), min(w, 10)) + " " + pct
	return cellBox(w, h, selected).
		Bold(true).
		Foreground(pc.text).
		BorderForeground(pc.solid).
		Render(content)
}

// viewOverview renders the root grid in the middle with each category's grid
// around it.
func (m appModel) viewOverview(pc paletteColors) string {
	cw := clamp((m.width-8)/9, 3, 12)
	blocks := make([]string, 0, 9)
	for pos := 0; pos < 9; pos++ {
		blocks = append(blocks, m.renderBlock(pc, m.overviewBlock(pos), pos == centreCell, cw, pos == m.overviewSel))
	}
	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, blocks[0:3]...),
		lipgloss.JoinHorizontal(lipgloss.Top, blocks[3:6]...),
		lipgloss.JoinHorizontal(lipgloss.Top, blocks[6:9]...),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m appModel) renderBlock(pc paletteColors, centre *model.Goal, isRoot bool, cw int, selected bool) string {
	frame := lipgloss.NewStyle().Border(lipgloss.HiddenBorder())
	if selected {
		frame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSelectedBorder)
	}
	if centre == nil {
		empty := lipgloss.NewStyle().Width(cw * 3).Height(3).Render("")
		return frame.Render(empty)
	}

	rows := make([]string, 0, 3)
	for r := 0; r < 3; r++ {
		cells := make([]string, 0, 3)
		for c := 0; c < 3; c++ {
			pos := r*3 + c
			var (
				text string
				st   lipgloss.Style
			)
			if pos == centreCell {
				text = centre.Text
				if text == "" {
					text = m.t(i18n.Focus)
				}
				st = lipgloss.NewStyle().Bold(true).Foreground(pc.text).Background(pc.bg)
			} else {
				g := childAt(centre, pos)
				if g == nil {
					cells = append(cells, lipgloss.NewStyle().Width(cw).Render(""))
					continue
				}
				text = g.Text
				if text == "" {
					text = glyphDot()
				}
				bg, fg := pc.cellFill(g.IsCompleted, goaltree.Progress(g))
				st = lipgloss.NewStyle().Background(bg).Foreground(fg)
				if isRoot {
					st = st.Bold(true)
				}
			}
			cells = append(cells, st.Width(cw).MaxWidth(cw).Align(lipgloss.Center).Render(truncateText(text, cw)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m appModel) viewChecklist(pc paletteColors, bodyHeight int) string {
	focus := m.focus()
	items := focus.SubGoals
	width := clamp(m.width-4, 20, 72)

	done, total := goaltree.DirectCounts(focus)
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	pct := strconv.Itoa(int(ratio*100+0.5)) + "%"
	head := lipgloss.NewStyle().Bold(true).Foreground(pc.text).Render(m.t(i18n.Progress) + " " + pct)
	bar := progressBar(pc, ratio, width)

	// Rows: one per item plus the add row.
	visible := max(1, bodyHeight-3)
	start := 0
	if m.listSel >= visible {
		start = m.listSel - visible + 1
	}
	end := min(len(items)+1, start+visible)

	lines := []string{head, bar, ""}
	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.listSel {
			cursor = lipgloss.NewStyle().Bold(true).Foreground(pc.solid).Render("> ")
		}
		if i == len(items) {
			lines = append(lines, cursor+styleMuted().Render("+ "+m.t(i18n.AddDetail)))
			continue
		}
		lines = append(lines, cursor+m.checklistRow(pc, items[i], width-2))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m appModel) checklistRow(pc paletteColors, g *model.Goal, width int) string {
	mark := glyphCheck(g.IsCompleted)
	text := g.Text
	textStyle := lipgloss.NewStyle()
	if text == "" {
		text = m.t(i18n.EnterDetail)
		textStyle = styleMuted()
	}
	meta := ""
	if g.IsCompleted {
		mark = lipgloss.NewStyle().Foreground(pc.solid).Render(mark)
		textStyle = textStyle.Strikethrough(true)
		if g.CompletedAt != nil {
			meta = fmt.Sprintf("  %d/%d", int(g.CompletedAt.Month()), g.CompletedAt.Day())
		}
	}
	avail := width - visibleWidth(mark) - 1 - visibleWidth(meta)
	return mark + " " + textStyle.Render(truncateText(text, avail)) + styleMuted().Render(meta)
}
