package tui

import (
	"strings"
	"sync"
)

// Terminal apps can't change the user's font. Instead the TUI picks between
// Unicode and ASCII glyph sets for checkmarks, bars and separators.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference sets the glyph set from the tui.glyphs config value.
// Unknown values are ignored.
func applyGlyphPreference(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphCheck(done bool) string {
	if glyphs() == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "●"
	}
	return "○"
}

func glyphDot() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphBack() string {
	if glyphs() == glyphSetASCII {
		return "<-"
	}
	return "←"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphBarFull() string {
	if glyphs() == glyphSetASCII {
		return "#"
	}
	return "█"
}

func glyphBarEmpty() string {
	if glyphs() == glyphSetASCII {
		return "."
	}
	return "░"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}
