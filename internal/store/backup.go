package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	backupManifestName = "manifest.json"
	backupStateName    = "state.json"
	backupEventsName   = "events.jsonl"
)

// BackupManifest describes a backup directory.
type BackupManifest struct {
	Version   int       `json:"version"`
	Key       string    `json:"key"`
	Backend   Backend   `json:"backend"`
	CreatedAt time.Time `json:"createdAt"`
	Events    int       `json:"events"`
}

// Backup writes the stored record and the event log into dest, which must be
// empty or absent.
func (s Store) Backup(ctx context.Context, dest string) (BackupManifest, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return BackupManifest{}, errors.New("backup: missing destination")
	}
	if entries, err := os.ReadDir(dest); err == nil && len(entries) > 0 {
		return BackupManifest{}, fmt.Errorf("backup: destination is not empty: %s", dest)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return BackupManifest{}, err
	}

	raw, ok, err := s.LoadRaw(ctx)
	if err != nil {
		return BackupManifest{}, err
	}
	if !ok {
		// Nothing saved yet: back up the empty state so restore is well-defined.
		if raw, err = Encode(EmptyState()); err != nil {
			return BackupManifest{}, err
		}
	}
	if err := atomicWriteFile(dest, backupStateName+".*.tmp", filepath.Join(dest, backupStateName), raw, 0o644); err != nil {
		return BackupManifest{}, err
	}

	evs, err := s.ReadEvents(ctx, 0)
	if err != nil {
		return BackupManifest{}, err
	}
	if err := WriteEventsJSONL(filepath.Join(dest, backupEventsName), evs); err != nil {
		return BackupManifest{}, err
	}

	m := BackupManifest{
		Version:   1,
		Key:       StateKey,
		Backend:   s.backend(),
		CreatedAt: time.Now().UTC(),
		Events:    len(evs),
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return BackupManifest{}, err
	}
	if err := atomicWriteFile(dest, backupManifestName+".*.tmp", filepath.Join(dest, backupManifestName), append(b, '\n'), 0o644); err != nil {
		return BackupManifest{}, err
	}
	return m, nil
}

// Restore replaces the stored record and event log with the contents of a
// backup directory. The record must decode; restoring garbage is refused.
func (s Store) Restore(ctx context.Context, src string) (BackupManifest, error) {
	mb, err := os.ReadFile(filepath.Join(src, backupManifestName))
	if err != nil {
		return BackupManifest{}, fmt.Errorf("restore: read manifest: %w", err)
	}
	var m BackupManifest
	if err := json.Unmarshal(mb, &m); err != nil {
		return BackupManifest{}, fmt.Errorf("restore: parse manifest: %w", err)
	}
	if m.Key != StateKey {
		return BackupManifest{}, fmt.Errorf("restore: unsupported key %q", m.Key)
	}

	raw, err := os.ReadFile(filepath.Join(src, backupStateName))
	if err != nil {
		return BackupManifest{}, fmt.Errorf("restore: read state: %w", err)
	}
	st, err := Decode(raw)
	if err != nil {
		return BackupManifest{}, fmt.Errorf("restore: parse state: %w", err)
	}
	evs, err := ReadEventsJSONL(filepath.Join(src, backupEventsName))
	if err != nil {
		return BackupManifest{}, fmt.Errorf("restore: read events: %w", err)
	}

	if err := s.Save(ctx, st); err != nil {
		return BackupManifest{}, err
	}
	if err := s.ReplaceEvents(ctx, evs); err != nil {
		return BackupManifest{}, err
	}
	m.Events = len(evs)
	return m, nil
}
