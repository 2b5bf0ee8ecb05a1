package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"mandalart-cli/internal/logging"
	"mandalart-cli/internal/session"
	"mandalart-cli/internal/store"
)

// Options configures an interactive run.
type Options struct {
	Session *session.Session
	Store   store.Store
	Year    int
	// Glyphs is unicode|ascii, Theme is light|dark|auto.
	Glyphs string
	Theme  string
	Logger *slog.Logger
}

// Run starts the full-screen planner and blocks until the user quits. Writes
// to the store from other processes are picked up through a file watcher, and
// the last screen is remembered in the store directory.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts.Session, opts.Year, logger)
	if ts, err := opts.Store.LoadTUIState(); err != nil {
		logger.Debug("tui state unavailable", "err", err)
	} else {
		m.restore(ts)
	}

	w, err := store.NewWatcher(opts.Store.Dir)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		logger.Warn("store watcher disabled", "dir", opts.Store.Dir, "err", err)
	} else {
		defer w.Stop()
		m.changes = w.Changes
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(appModel); ok {
		if serr := opts.Store.SaveTUIState(fm.snapshot()); serr != nil {
			logger.Warn("save tui state", "err", serr)
		}
	}
	return err
}
