package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"
)

func TestMarkdownStyle_FollowsThemePreference(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	defer applyThemePreference("auto")

	applyThemePreference("light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	applyThemePreference("dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_AutoUsesColorFGBG(t *testing.T) {
	defer applyThemePreference("auto")

	t.Setenv("COLORFGBG", "0;15")
	applyThemePreference("auto")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light for bright background; got %q", got)
	}

	t.Setenv("COLORFGBG", "15;0")
	applyThemePreference("bogus")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark for dark background; got %q", got)
	}
}

func TestNotesStyleConfig_UsesPaletteAccent(t *testing.T) {
	pc := colorsFor("mintGreen")
	got := notesStyleConfig("light", pc)
	if got.Link.Color == nil || *got.Link.Color != pc.accent.Light {
		t.Fatalf("expected light accent link colour; got %v", got.Link.Color)
	}
	got = notesStyleConfig("dark", pc)
	if got.H1.Color == nil || *got.H1.Color != pc.accent.Dark {
		t.Fatalf("expected dark accent heading colour; got %v", got.H1.Color)
	}
	if got.Document.Margin == nil || *got.Document.Margin != 0 {
		t.Fatalf("expected zero document margin")
	}
	// The shared glamour defaults must not be modified.
	if c := styles.DarkStyleConfig.Link.Color; c != nil && *c == pc.accent.Dark {
		t.Fatalf("expected glamour defaults to stay untouched")
	}
}

func TestRenderMarkdown(t *testing.T) {
	applyThemePreference("light")
	defer applyThemePreference("auto")

	if got := renderMarkdown("   ", 40, colorsFor("softBlue")); got != "" {
		t.Fatalf("expected empty output for blank notes; got %q", got)
	}
	got := renderMarkdown("**weekly** review", 40, colorsFor("softBlue"))
	if !strings.Contains(got, "weekly") || !strings.Contains(got, "review") {
		t.Fatalf("expected rendered text; got %q", got)
	}
	if strings.Contains(got, "**") {
		t.Fatalf("expected emphasis markers to be rendered; got %q", got)
	}
}
