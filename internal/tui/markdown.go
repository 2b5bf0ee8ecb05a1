package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// noteRenderers caches one glamour renderer per (light/dark, palette, width).
// The style is fixed up front: WithAutoStyle queries the terminal background,
// which blocks on some terminals.
type noteRenderers struct {
	mu sync.Mutex
	m  map[string]*glamour.TermRenderer
}

var mdCache = &noteRenderers{m: map[string]*glamour.TermRenderer{}}

func (c *noteRenderers) get(styleName string, pc paletteColors, width int) (*glamour.TermRenderer, error) {
	key := fmt.Sprintf("%s:%s:%d", styleName, pc.key, width)
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.m[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(notesStyleConfig(styleName, pc)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.m[key] = r
	return r, nil
}

// renderMarkdown renders goal notes in the year's colours. Rendering errors
// fall back to the raw text.
func renderMarkdown(md string, width int, pc paletteColors) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := mdCache.get(markdownStyle(), pc, max(width, 10))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// markdownStyle follows the tui.theme preference, then COLORFGBG, then Lip
// Gloss's own background detection.
func markdownStyle() string {
	switch currentThemePref() {
	case "light", "dark":
		return currentThemePref()
	}
	if bg, ok := colorFGBGBackground(); ok {
		if bg >= 7 {
			return "light"
		}
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// notesStyleConfig starts from glamour's light or dark style and recolours
// headings and links with the palette accent. Only fresh pointers are
// assigned, so glamour's shared defaults stay untouched.
func notesStyleConfig(styleName string, pc paletteColors) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if styleName == "light" {
		cfg = styles.LightStyleConfig
	}
	pick := func(c lipgloss.AdaptiveColor) *string {
		s := c.Dark
		if styleName == "light" {
			s = c.Light
		}
		return &s
	}
	yes, no := true, false
	var zero uint

	cfg.Document.Margin = &zero
	cfg.Text.Color = pick(colorSurfaceFg)
	for _, h := range []*ansi.StyleBlock{&cfg.Heading, &cfg.H1, &cfg.H2, &cfg.H3} {
		h.Color = pick(pc.accent)
		h.BackgroundColor = nil
	}
	cfg.Link.Color = pick(pc.accent)
	cfg.Link.Underline = &yes
	cfg.LinkText.Color = pick(pc.accent)
	cfg.LinkText.Underline = &yes
	cfg.Code.Color = pick(colorSurfaceFg)
	cfg.CodeBlock.Color = pick(colorSurfaceFg)
	if cfg.CodeBlock.BackgroundColor == nil {
		cfg.CodeBlock.BackgroundColor = pick(colorControlBg)
	}
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	cfg.BlockQuote.Faint = &no
	return cfg
}
