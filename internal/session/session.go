// Package session holds the single live planner snapshot for an interactive
// run. All mutations go through Apply; the snapshot is replaced, never edited.
package session

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"mandalart-cli/internal/logging"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/store"
)

type Session struct {
	store  store.Store
	state  store.State
	logger *slog.Logger
	now    func() time.Time

	// lastSaved is the encoded record of the most recent save, used to skip
	// reloading our own writes when the watcher fires.
	lastSaved []byte
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads the store into a new session.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Session, error) {
	s := &Session{
		store:  st,
		logger: logging.Discard(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	state, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.state = state
	if raw, ok, err := st.LoadRaw(ctx); err == nil && ok {
		s.lastSaved = raw
	}
	return s, nil
}

func (s *Session) State() store.State { return s.state }

func (s *Session) Now() time.Time { return s.now() }

// Apply runs fn against the current snapshot. A changed result replaces the
// snapshot and is persisted; persistence failures are logged and otherwise
// ignored, since the in-memory snapshot stays authoritative.
func (s *Session) Apply(ctx context.Context, fn func(store.State) mutate.Result) mutate.Result {
	res := fn(s.state)
	if !res.Changed {
		return res
	}
	s.state = res.State
	s.persist(ctx, res)
	return res
}

func (s *Session) persist(ctx context.Context, res mutate.Result) {
	raw, err := store.Encode(s.state)
	if err != nil {
		s.logger.Warn("encode state", "err", err)
		return
	}
	if err := s.store.KV().Save(ctx, raw); err != nil {
		s.logger.Warn("save state", "dir", s.store.Dir, "err", err)
		return
	}
	s.lastSaved = raw
	if res.EventType == "" {
		return
	}
	if err := s.store.AppendEvent(ctx, res.EventType, res.EntityID, res.Year, res.EventPayload); err != nil {
		s.logger.Debug("append event", "type", res.EventType, "err", err)
	}
}

// Reload re-reads the store after an external write. It reports false when
// the stored record is the one this session saved last.
func (s *Session) Reload(ctx context.Context) (bool, error) {
	raw, ok, err := s.store.LoadRaw(ctx)
	if err != nil {
		return false, err
	}
	if !ok || bytes.Equal(raw, s.lastSaved) {
		return false, nil
	}
	st, err := store.Decode(raw)
	if err != nil {
		s.logger.Warn("ignoring unreadable external write", "err", err)
		return false, nil
	}
	s.state = st
	s.lastSaved = raw
	return true, nil
}
