package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState remembers where the planner was left so a relaunch reopens the
// same screen. It lives next to the state record and is best effort: callers
// tolerate a missing or unreadable file.
type TUIState struct {
	Version int `json:"version"`

	Year int `json:"year,omitempty"`

	// View is one of: overview|grid|timeline
	View string `json:"view,omitempty"`

	// Path holds the drilled-into goal ids, outermost first.
	Path []string `json:"path,omitempty"`

	// OverviewSel is the highlighted block on the overview (0..8).
	OverviewSel int `json:"overviewSel,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		s.logger().Debug("ignoring unreadable tui state", "path", s.tuiStatePath(), "err", err)
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, ".tui_state-*.tmp", s.tuiStatePath(), b, 0o644)
}
