package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mandalart-cli/internal/logging"
	"mandalart-cli/internal/model"
)

const (
	// StateKey is the fixed key the whole planner state is stored under.
	StateKey = "mandalart_v3"

	sqliteFileName = "mandalart.sqlite"
	jsonFileName   = "mandalart.json"
	eventsFileName = "events.jsonl"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite":
		return BackendSQLite, nil
	case "json", "file":
		return BackendJSON, nil
	default:
		return "", fmt.Errorf("invalid backend: %q (expected sqlite|json)", s)
	}
}

// State is the persisted planner state: every year seen so far plus the
// selected UI language.
type State struct {
	Data     map[int]model.YearData `json:"data"`
	Language model.Language         `json:"language"`
}

func EmptyState() State {
	return State{Data: map[int]model.YearData{}, Language: model.DefaultLanguage}
}

// Year returns the stored data for year, if any.
func (s State) Year(year int) (model.YearData, bool) {
	yd, ok := s.Data[year]
	return yd, ok
}

// WithYear returns a copy of s with yd stored under yd.Year. s is not modified.
func (s State) WithYear(yd model.YearData) State {
	next := make(map[int]model.YearData, len(s.Data)+1)
	for k, v := range s.Data {
		next[k] = v
	}
	next[yd.Year] = yd
	return State{Data: next, Language: s.Language}
}

func (s State) WithLanguage(lang model.Language) State {
	return State{Data: s.Data, Language: lang}
}

// Years returns the stored years in ascending order.
func (s State) Years() []int {
	out := make([]int, 0, len(s.Data))
	for y := range s.Data {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// Store is a workspace directory holding one planner state.
type Store struct {
	Dir     string
	Backend Backend
	Logger  *slog.Logger
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.mandalart).
	if v := strings.TrimSpace(os.Getenv("MANDALART_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mandalart"), nil
}

// DefaultDir is the store used when no --dir is given.
func DefaultDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "default"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string { return filepath.Join(s.Dir, sqliteFileName) }
func (s Store) jsonPath() string   { return filepath.Join(s.Dir, jsonFileName) }
func (s Store) eventsPath() string { return filepath.Join(s.Dir, eventsFileName) }

func (s Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.Discard()
}

func (s Store) backend() Backend {
	if s.Backend == "" {
		return BackendSQLite
	}
	return s.Backend
}

// KV returns the key-value adapter for the configured backend.
func (s Store) KV() KV {
	if s.backend() == BackendJSON {
		return FileKV{Path: s.jsonPath()}
	}
	return SQLiteKV{Path: s.sqlitePath(), LegacyJSONPath: s.jsonPath(), Key: StateKey}
}

// Load reads the planner state. A missing record yields an empty state. A
// record that cannot be parsed is logged and also treated as empty; only I/O
// failures are returned.
func (s Store) Load(ctx context.Context) (State, error) {
	if err := s.Ensure(); err != nil {
		return State{}, err
	}
	raw, ok, err := s.KV().Load(ctx)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return EmptyState(), nil
	}
	st, err := Decode(raw)
	if err != nil {
		s.logger().Warn("ignoring unreadable saved state", "dir", s.Dir, "err", err)
		return EmptyState(), nil
	}
	return st, nil
}

// LoadRaw returns the stored record as-is.
func (s Store) LoadRaw(ctx context.Context) ([]byte, bool, error) {
	if err := s.Ensure(); err != nil {
		return nil, false, err
	}
	return s.KV().Load(ctx)
}

func (s Store) Save(ctx context.Context, st State) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	raw, err := Encode(st)
	if err != nil {
		return err
	}
	return s.KV().Save(ctx, raw)
}
