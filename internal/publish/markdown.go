package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/i18n"
	"mandalart-cli/internal/model"
)

type RenderOptions struct {
	Language model.Language
	// Location is used for completion dates (UTC when nil).
	Location *time.Location
}

func (o RenderOptions) lang() model.Language {
	if o.Language.Valid() {
		return o.Language
	}
	return model.DefaultLanguage
}

func (o RenderOptions) loc() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// RenderYearMarkdown renders the index page of a year: the vision, overall
// progress, one link per category and the completion timeline.
func RenderYearMarkdown(yd model.YearData, opt RenderOptions) (string, error) {
	root := yd.RootGoal
	if root == nil {
		return "", fmt.Errorf("year %d has no goal tree", yd.Year)
	}
	lang := opt.lang()

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + goalTitle(root, lang, i18n.Focus))
	writeLn("")
	writeLn(fmt.Sprintf("- %s: %d", i18n.T(lang, i18n.Year), yd.Year))
	writeLn(fmt.Sprintf("- %s: %d%%", i18n.T(lang, i18n.Progress), goaltree.Percent(root)))
	writeLn(fmt.Sprintf("- %s: %s", i18n.T(lang, i18n.Theme), yd.ColorTheme))
	writeNotes(writeLn, root.Notes)

	writeLn("")
	writeLn("## " + i18n.T(lang, i18n.MainGrid))
	writeLn("")
	for _, cat := range root.SubGoals {
		if cat == nil {
			continue
		}
		writeLn(fmt.Sprintf("- %s [%s](%s) %d%%", checkbox(cat), goalTitle(cat, lang, i18n.Branch), pageName(cat.ID), goaltree.Percent(cat)))
	}

	tl := goaltree.BuildTimeline(root, opt.loc())
	if !tl.Empty() {
		writeLn("")
		writeLn("## " + i18n.T(lang, i18n.Timeline))
		half := func(label i18n.Key, groups []goaltree.MonthGroup) {
			if len(groups) == 0 {
				return
			}
			writeLn("")
			writeLn("### " + i18n.T(lang, label))
			for _, grp := range groups {
				writeLn("")
				writeLn("#### " + i18n.Month(lang, grp.Month))
				writeLn("")
				for _, g := range grp.Goals {
					writeLn(fmt.Sprintf("- %s %s", g.CompletedAt.In(opt.loc()).Format("2006-01-02"), goalTitle(g, lang, i18n.SubTask)))
				}
			}
		}
		half(i18n.FirstHalf, tl.FirstHalf)
		half(i18n.SecondHalf, tl.SecondHalf)
	}

	return buf.String(), nil
}

// RenderCategoryMarkdown renders one category page: every task as a checkbox
// with its checklist items nested below it.
func RenderCategoryMarkdown(cat *model.Goal, opt RenderOptions) (string, error) {
	if cat == nil {
		return "", fmt.Errorf("missing category")
	}
	lang := opt.lang()

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + goalTitle(cat, lang, i18n.Branch))
	writeLn("")
	writeLn("- ID: " + cat.ID)
	writeLn(fmt.Sprintf("- %s: %d%%", i18n.T(lang, i18n.Progress), goaltree.Percent(cat)))
	writeNotes(writeLn, cat.Notes)

	writeLn("")
	writeLn("## " + i18n.T(lang, i18n.SubTask))
	writeLn("")
	for _, task := range cat.SubGoals {
		renderGoalLine(&buf, task, 0, lang, opt.loc())
	}
	return buf.String(), nil
}

func renderGoalLine(buf *bytes.Buffer, g *model.Goal, depth int, lang model.Language, loc *time.Location) {
	if g == nil || depth > 4 {
		return
	}
	prefix := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s- %s %s", prefix, checkbox(g), goalTitle(g, lang, i18n.SubTask))
	if g.IsCompleted && g.CompletedAt != nil {
		line += " (" + g.CompletedAt.In(loc).Format("2006-01-02") + ")"
	} else if g.HasChildren() {
		line += fmt.Sprintf(" %d%%", goaltree.Percent(g))
	}
	buf.WriteString(line + "\n")
	if notes := strings.TrimSpace(g.Notes); notes != "" {
		for _, l := range strings.Split(notes, "\n") {
			buf.WriteString(prefix + "  > " + l + "\n")
		}
	}
	for _, ch := range g.SubGoals {
		renderGoalLine(buf, ch, depth+1, lang, loc)
	}
}

func checkbox(g *model.Goal) string {
	if g.IsCompleted {
		return "[x]"
	}
	return "[ ]"
}

// goalTitle falls back to a localized placeholder for goals with no text yet.
func goalTitle(g *model.Goal, lang model.Language, placeholder i18n.Key) string {
	if t := strings.TrimSpace(g.Text); t != "" {
		return t
	}
	return "_" + i18n.T(lang, placeholder) + "_"
}

func writeNotes(writeLn func(string), notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return
	}
	writeLn("")
	writeLn(notes)
}
