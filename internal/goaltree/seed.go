package goaltree

import (
	"fmt"
	"strconv"
	"strings"

	"mandalart-cli/internal/model"
	"mandalart-cli/internal/palette"
)

// InitialKeywords name the 8 categories of a fresh year, in grid order.
var InitialKeywords = []string{"연구", "운동", "학교", "일상", "배움", "책", "자산", "건강"}

// RecommendKeywords are offered as quick labels in the goal editor.
var RecommendKeywords = append(append([]string{}, InitialKeywords...),
	"회사", "여행", "디자인", "작업", "취미", "습관", "목표", "도전", "재테크",
)

func RootID(year int) string {
	return fmt.Sprintf("root-%d", year)
}

func CategoryID(year, i int) string {
	return fmt.Sprintf("sub-%d-%d", year, i)
}

// DefaultYear builds the canonical tree for year: a vision root with the 8
// initial categories, each already holding 8 empty tasks.
func DefaultYear(year int) model.YearData {
	return DefaultYearWithTheme(year, palette.DefaultKey)
}

// DefaultYearWithTheme is DefaultYear with a caller-chosen colour theme.
// Unknown theme keys fall back to the default theme.
func DefaultYearWithTheme(year int, themeKey string) model.YearData {
	if !palette.Valid(themeKey) {
		themeKey = palette.DefaultKey
	}
	root := NewGoal(RootID(year), fmt.Sprintf("%d Vision", year))
	root.SubGoals = make([]*model.Goal, model.GridSize)
	for i := range root.SubGoals {
		cat := NewGoal(CategoryID(year, i), InitialKeywords[i])
		root.SubGoals[i] = EnsureChildren(cat, cat.ID)
	}
	return model.YearData{
		Year:       year,
		RootGoal:   root,
		ColorTheme: themeKey,
	}
}

// YearFromID extracts the year from ids derived from RootID or CategoryID.
func YearFromID(id string) (int, bool) {
	var rest string
	switch {
	case strings.HasPrefix(id, "root-"):
		rest = strings.TrimPrefix(id, "root-")
	case strings.HasPrefix(id, "sub-"):
		rest = strings.TrimPrefix(id, "sub-")
	default:
		return 0, false
	}
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		rest = rest[:i]
	}
	y, err := strconv.Atoi(rest)
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}
