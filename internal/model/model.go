package model

import "time"

// GridSize is the fixed fan-out of an expanded grid node (3x3 minus the centre).
const GridSize = 8

type Language string

const (
	LanguageKorean   Language = "ko"
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "jp"
)

// Languages is the cycle order used by the language toggle.
var Languages = []Language{LanguageKorean, LanguageEnglish, LanguageJapanese}

const DefaultLanguage = LanguageKorean

func (l Language) Valid() bool {
	for _, x := range Languages {
		if x == l {
			return true
		}
	}
	return false
}

// Goal is one node of a year's planning tree (vision, category, or task).
//
// Goals are treated as immutable once they are reachable from a published tree:
// the goaltree package copies every node it changes.
type Goal struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Text        string     `json:"text" yaml:"text" toml:"text"`
	Notes       string     `json:"notes" yaml:"notes" toml:"notes"`
	IsCompleted bool       `json:"isCompleted" yaml:"isCompleted" toml:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty" toml:"completedAt,omitempty"`
	SubGoals    []*Goal    `json:"subGoals,omitempty" yaml:"subGoals,omitempty" toml:"subGoals,omitempty"`
}

// HasChildren reports whether g has been expanded.
func (g *Goal) HasChildren() bool {
	return g != nil && len(g.SubGoals) > 0
}

// Clone returns a shallow copy of g. The child slice is copied but children are shared.
func (g *Goal) Clone() *Goal {
	if g == nil {
		return nil
	}
	cp := *g
	if g.SubGoals != nil {
		cp.SubGoals = make([]*Goal, len(g.SubGoals))
		copy(cp.SubGoals, g.SubGoals)
	}
	return &cp
}

type YearData struct {
	Year       int    `json:"year"`
	RootGoal   *Goal  `json:"rootGoal"`
	ColorTheme string `json:"colorTheme"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Year     int       `json:"year,omitempty"`
	Payload  any       `json:"payload"`
}
