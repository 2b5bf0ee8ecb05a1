package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// KV persists one opaque record. Load reports ok=false when nothing has been
// saved yet.
type KV interface {
	Load(ctx context.Context) (raw []byte, ok bool, err error)
	Save(ctx context.Context, raw []byte) error
}

// FileKV keeps the record in a single JSON file.
type FileKV struct {
	Path string
}

func (f FileKV) Load(ctx context.Context) ([]byte, bool, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if isNullOrEmpty(b) {
		return nil, false, nil
	}
	return b, true, nil
}

func (f FileKV) Save(ctx context.Context, raw []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Unique temp name + rename so a concurrent CLI and TUI never see a torn file.
	return atomicWriteFile(dir, filepath.Base(f.Path)+".*.tmp", f.Path, raw, 0o644)
}
