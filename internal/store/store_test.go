package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
)

func withEnv(t *testing.T, k, v string, fn func()) {
	t.Helper()
	old, had := os.LookupEnv(k)
	if err := os.Setenv(k, v); err != nil {
		t.Fatalf("setenv %s: %v", k, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(k, old)
		} else {
			_ = os.Unsetenv(k)
		}
	})
	fn()
}

func sampleState() State {
	yd := goaltree.DefaultYear(2025)
	root := goaltree.UpdateByIDAt(yd.RootGoal, "sub-2025-0-sub-0",
		goaltree.Patch{}.WithText("Read 20 papers").WithCompleted(true),
		time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))
	yd.RootGoal = root
	yd.ColorTheme = "lavender"
	return EmptyState().WithYear(yd).WithLanguage(model.LanguageEnglish)
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	for _, backend := range []Backend{BackendSQLite, BackendJSON} {
		t.Run(string(backend), func(t *testing.T) {
			ctx := context.Background()
			s := Store{Dir: t.TempDir(), Backend: backend}

			if err := s.Save(ctx, sampleState()); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.Language != model.LanguageEnglish {
				t.Fatalf("expected language en, got %q", got.Language)
			}
			yd, ok := got.Year(2025)
			if !ok {
				t.Fatalf("expected year 2025 to be stored")
			}
			if yd.ColorTheme != "lavender" {
				t.Fatalf("expected theme lavender, got %q", yd.ColorTheme)
			}
			g, _ := goaltree.Locate(yd.RootGoal, "sub-2025-0-sub-0")
			if g == nil || g.Text != "Read 20 papers" || !g.IsCompleted {
				t.Fatalf("unexpected task after reload: %+v", g)
			}
			if g.CompletedAt == nil || g.CompletedAt.Year() != 2025 {
				t.Fatalf("expected completedAt to survive, got %v", g.CompletedAt)
			}
		})
	}
}

func TestStore_Load_MissingIsEmpty(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Data) != 0 || got.Language != model.DefaultLanguage {
		t.Fatalf("expected empty state, got %+v", got)
	}
}

func TestStore_Load_CorruptRecordIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if err := s.KV().Save(ctx, []byte("{not json")); err != nil {
		t.Fatalf("save raw: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("expected corrupt record to be ignored, got %v", err)
	}
	if len(got.Data) != 0 {
		t.Fatalf("expected no years, got %v", got.Years())
	}
}

func TestDecode_FillsDefaults(t *testing.T) {
	st, err := Decode([]byte(`{"data":{"2026":{"colorTheme":"neon"}},"language":"fr"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Language != model.DefaultLanguage {
		t.Fatalf("expected default language, got %q", st.Language)
	}
	yd, ok := st.Year(2026)
	if !ok {
		t.Fatalf("expected year 2026")
	}
	if yd.Year != 2026 {
		t.Fatalf("expected year filled from key, got %d", yd.Year)
	}
	if yd.ColorTheme != "softBlue" {
		t.Fatalf("expected default theme, got %q", yd.ColorTheme)
	}
	if yd.RootGoal == nil || yd.RootGoal.ID != "root-2026" || len(yd.RootGoal.SubGoals) != model.GridSize {
		t.Fatalf("expected seeded tree, got %+v", yd.RootGoal)
	}
}

func TestDecode_YearKeyOverridesField(t *testing.T) {
	st, err := Decode([]byte(`{"data":{"2025":{"year":2024,"colorTheme":"softBlue"}},"language":"en"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	yd, ok := st.Year(2025)
	if !ok {
		t.Fatalf("expected year 2025")
	}
	if yd.Year != 2025 {
		t.Fatalf("expected year from key 2025, got %d", yd.Year)
	}
	if _, ok := st.Year(2024); ok {
		t.Fatalf("did not expect a 2024 entry")
	}

	next := st.WithYear(yd)
	if got := next.Years(); len(got) != 1 || got[0] != 2025 {
		t.Fatalf("expected write-back under 2025, got %v", got)
	}
}

func TestDecode_NoData(t *testing.T) {
	st, err := Decode([]byte(`{"language":"jp"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Data == nil || len(st.Data) != 0 {
		t.Fatalf("expected empty year map, got %+v", st.Data)
	}
	if st.Language != model.LanguageJapanese {
		t.Fatalf("expected jp, got %q", st.Language)
	}
}

func TestEncode_UsesStableKeys(t *testing.T) {
	raw, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(raw)
	for _, want := range []string{`"data":{"2025":`, `"language":"en"`, `"rootGoal":`, `"colorTheme":"lavender"`, `"isCompleted":true`, `"subGoals":`} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %s in %s", want, s)
		}
	}
}

func TestSQLiteKV_ImportsLegacyJSONOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	legacy := Store{Dir: dir, Backend: BackendJSON}
	if err := legacy.Save(ctx, sampleState()); err != nil {
		t.Fatalf("save legacy json: %v", err)
	}

	s := Store{Dir: dir, Backend: BackendSQLite}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load sqlite: %v", err)
	}
	if _, ok := got.Year(2025); !ok {
		t.Fatalf("expected legacy year to be imported")
	}

	// Once imported, the sqlite copy is authoritative.
	if err := os.Remove(filepath.Join(dir, jsonFileName)); err != nil {
		t.Fatalf("remove legacy: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("reload sqlite: %v", err)
	}
	if got.Language != model.LanguageEnglish {
		t.Fatalf("expected imported language to persist, got %q", got.Language)
	}
}

func TestParseBackend(t *testing.T) {
	cases := map[string]Backend{"": BackendSQLite, "sqlite": BackendSQLite, " JSON ": BackendJSON, "file": BackendJSON}
	for in, want := range cases {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Fatalf("ParseBackend(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseBackend("redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestConfigDir_EnvOverride(t *testing.T) {
	want := t.TempDir()
	withEnv(t, "MANDALART_CONFIG_DIR", want, func() {
		got, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
		def, err := DefaultDir()
		if err != nil {
			t.Fatalf("DefaultDir: %v", err)
		}
		if def != filepath.Join(want, "default") {
			t.Fatalf("unexpected default dir %q", def)
		}
	})
}

func TestState_WithYearDoesNotModifyReceiver(t *testing.T) {
	a := EmptyState()
	b := a.WithYear(goaltree.DefaultYear(2030))
	if len(a.Data) != 0 {
		t.Fatalf("expected receiver untouched")
	}
	if got := b.Years(); len(got) != 1 || got[0] != 2030 {
		t.Fatalf("unexpected years %v", got)
	}
}

func TestNewEventIDs(t *testing.T) {
	a, err := newEvent("goal.updated", "sub-2025-0", 2025, nil)
	if err != nil {
		t.Fatalf("newEvent: %v", err)
	}
	b, err := newEvent("goal.updated", "sub-2025-0", 2025, nil)
	if err != nil {
		t.Fatalf("newEvent: %v", err)
	}
	if !strings.HasPrefix(a.ID, eventIDPrefix) {
		t.Fatalf("expected evt prefix, got %q", a.ID)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(a.ID, eventIDPrefix)); err != nil {
		t.Fatalf("expected uuid suffix in %q: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both %q", a.ID)
	}
}
