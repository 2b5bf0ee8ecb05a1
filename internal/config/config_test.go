package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(filepath.Join(t.TempDir(), "missing.yaml")))
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Dir", cfg.Dir, ""},
		{"Backend", cfg.Backend, "sqlite"},
		{"Language", cfg.Language, "ko"},
		{"Theme", cfg.Theme, "softBlue"},
		{"LogLevel", cfg.LogLevel, "warn"},
		{"TUI.Glyphs", cfg.TUI.Glyphs, "unicode"},
		{"TUI.Theme", cfg.TUI.Theme, "auto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MANDALART_LANGUAGE", "jp")
	t.Setenv("MANDALART_TUI_GLYPHS", "ascii")
	t.Setenv("MANDALART_BACKEND", "json")

	cfg, err := Load(New(filepath.Join(t.TempDir(), "missing.yaml")))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "jp" {
		t.Errorf("Language = %q, want jp", cfg.Language)
	}
	if cfg.TUI.Glyphs != "ascii" {
		t.Errorf("TUI.Glyphs = %q, want ascii", cfg.TUI.Glyphs)
	}
	if cfg.Backend != "json" {
		t.Errorf("Backend = %q, want json", cfg.Backend)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mandalart.yaml")
	body := "theme: lavender\nlog_level: debug\ntui:\n  theme: dark\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v := New(path)
	if err := ReadFile(v); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "lavender" || cfg.LogLevel != "debug" || cfg.TUI.Theme != "dark" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestReadFile_MissingIsFine(t *testing.T) {
	if err := ReadFile(New(filepath.Join(t.TempDir(), "nope.yaml"))); err != nil {
		t.Fatalf("expected missing config to be ignored, got %v", err)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	for key, val := range map[string]string{
		"MANDALART_LANGUAGE":   "fr",
		"MANDALART_THEME":      "neon",
		"MANDALART_BACKEND":    "redis",
		"MANDALART_TUI_THEME":  "sepia",
		"MANDALART_TUI_GLYPHS": "emoji",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(New(filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}
