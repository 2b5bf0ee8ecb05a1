package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"mandalart-cli/internal/palette"
)

// The TUI must remain readable on both light and dark terminal backgrounds.
// Chrome uses lipgloss.AdaptiveColor; "faint" is only applied on dark
// backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          = ac("240", "243")
	colorChromeMutedFg  = ac("240", "245")
	colorSelectedBorder = ac("232", "255")
	colorCardBorder     = ac("250", "243")
	colorSurfaceFg      = ac("235", "252")
	colorControlBg      = ac("252", "235")
	colorAccent         = ac("27", "62")
	colorOnSolidFg      = ac("#ffffff", "#ffffff")
	colorFlashBg        = ac("#dcfce7", "#14532d")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// paletteColors adapts a year's colour theme to Lip Gloss.
type paletteColors struct {
	key    string
	bg     lipgloss.AdaptiveColor
	card   lipgloss.AdaptiveColor
	accent lipgloss.AdaptiveColor
	text   lipgloss.AdaptiveColor
	solid  lipgloss.AdaptiveColor
}

func colorsFor(themeKey string) paletteColors {
	t := palette.Lookup(themeKey)
	pc := func(c palette.Color) lipgloss.AdaptiveColor { return ac(c.Light, c.Dark) }
	return paletteColors{
		key:    t.Key,
		bg:     pc(t.Bg),
		card:   pc(t.Card),
		accent: pc(t.Accent),
		text:   pc(t.Text),
		solid:  pc(t.Solid),
	}
}

// cellFill picks a cell background from its goal state: completed cells are
// solid, partially done ones use the accent, the rest the card colour.
func (p paletteColors) cellFill(completed bool, progress float64) (bg, fg lipgloss.AdaptiveColor) {
	switch {
	case completed:
		return p.solid, colorOnSolidFg
	case progress > 0:
		return p.accent, p.text
	default:
		return p.card, p.text
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can
// accidentally disable colors in a TUI. Only NO_COLOR is honoured here;
// otherwise the terminal's capabilities decide.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports
	// (macOS Terminal.app under-reports and ends up with gray palettes).
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

var (
	themePrefMu sync.RWMutex
	themePref   = "auto"
)

func currentThemePref() string {
	themePrefMu.RLock()
	defer themePrefMu.RUnlock()
	return themePref
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) pref (tui.theme in config): light|dark|auto
// 2) COLORFGBG heuristic (format like "15;0" = fg;bg)
// 3) macOS appearance
func applyThemePreference(pref string) {
	pref = strings.ToLower(strings.TrimSpace(pref))
	switch pref {
	case "light", "dark", "auto":
	default:
		pref = "auto"
	}
	themePrefMu.Lock()
	themePref = pref
	themePrefMu.Unlock()

	switch pref {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if bg, ok := colorFGBGBackground(); ok {
		lipgloss.SetHasDarkBackground(bg < 7)
		return
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

// colorFGBGBackground reads the background index from COLORFGBG. The last
// segment is the background.
func colorFGBGBackground() (int, bool) {
	v := strings.TrimSpace(os.Getenv("COLORFGBG"))
	if v == "" {
		return 0, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || bg < 0 {
		return 0, false
	}
	return bg, true
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// `defaults read -g AppleInterfaceStyle` prints "Dark" in dark mode and
	// exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
