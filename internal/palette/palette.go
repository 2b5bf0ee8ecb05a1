// Package palette holds the colour themes a year can be rendered with.
//
// Each colour is a light/dark pair so the TUI stays readable on both terminal
// backgrounds.
package palette

import "sort"

const DefaultKey = "softBlue"

type Color struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

type Theme struct {
	Key  string `json:"key"`
	Name string `json:"name"`

	Bg     Color `json:"bg"`
	Card   Color `json:"card"`
	Accent Color `json:"accent"`
	Text   Color `json:"text"`
	// Solid fills completed cells.
	Solid Color `json:"solid"`
}

var themes = map[string]Theme{
	"softBlue": {
		Key:    "softBlue",
		Name:   "Soft Blue",
		Bg:     Color{Light: "#eff6ff", Dark: "#172033"},
		Card:   Color{Light: "#ffffff", Dark: "#1e293b"},
		Accent: Color{Light: "#bfdbfe", Dark: "#1e3a8a"},
		Text:   Color{Light: "#1e3a8a", Dark: "#dbeafe"},
		Solid:  Color{Light: "#60a5fa", Dark: "#3b82f6"},
	},
	"mintGreen": {
		Key:    "mintGreen",
		Name:   "Mint Green",
		Bg:     Color{Light: "#ecfdf5", Dark: "#0f2a22"},
		Card:   Color{Light: "#ffffff", Dark: "#13332a"},
		Accent: Color{Light: "#a7f3d0", Dark: "#065f46"},
		Text:   Color{Light: "#064e3b", Dark: "#d1fae5"},
		Solid:  Color{Light: "#34d399", Dark: "#10b981"},
	},
	"peachPink": {
		Key:    "peachPink",
		Name:   "Peach Pink",
		Bg:     Color{Light: "#fff1f2", Dark: "#2d1519"},
		Card:   Color{Light: "#ffffff", Dark: "#3a1a20"},
		Accent: Color{Light: "#fecdd3", Dark: "#9f1239"},
		Text:   Color{Light: "#881337", Dark: "#ffe4e6"},
		Solid:  Color{Light: "#fb7185", Dark: "#f43f5e"},
	},
	"lavender": {
		Key:    "lavender",
		Name:   "Lavender",
		Bg:     Color{Light: "#faf5ff", Dark: "#221631"},
		Card:   Color{Light: "#ffffff", Dark: "#2b1c3d"},
		Accent: Color{Light: "#e9d5ff", Dark: "#6b21a8"},
		Text:   Color{Light: "#581c87", Dark: "#f3e8ff"},
		Solid:  Color{Light: "#c084fc", Dark: "#a855f7"},
	},
	"warmBeige": {
		Key:    "warmBeige",
		Name:   "Warm Beige",
		Bg:     Color{Light: "#fff7ed", Dark: "#2a1d12"},
		Card:   Color{Light: "#ffffff", Dark: "#352516"},
		Accent: Color{Light: "#ffedd5", Dark: "#9a3412"},
		Text:   Color{Light: "#7c2d12", Dark: "#ffedd5"},
		Solid:  Color{Light: "#fdba74", Dark: "#f97316"},
	},
}

// order is the display order used by pickers.
var order = []string{"softBlue", "mintGreen", "peachPink", "lavender", "warmBeige"}

func Valid(key string) bool {
	_, ok := themes[key]
	return ok
}

// Lookup returns the theme for key, falling back to the default theme.
func Lookup(key string) Theme {
	if t, ok := themes[key]; ok {
		return t
	}
	return themes[DefaultKey]
}

// All returns every theme in display order.
func All() []Theme {
	out := make([]Theme, 0, len(order))
	for _, k := range order {
		out = append(out, themes[k])
	}
	return out
}

// Keys returns the sorted theme keys.
func Keys() []string {
	out := make([]string, 0, len(themes))
	for k := range themes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
