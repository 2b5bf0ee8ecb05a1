package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
)

func TestBackupAndRestore_AcrossBackends(t *testing.T) {
	ctx := context.Background()

	src := Store{Dir: t.TempDir(), Backend: BackendSQLite}
	if err := src.Save(ctx, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := src.AppendEvent(ctx, "goal.update", "sub-2025-0-sub-0", 2025, map[string]any{"isCompleted": true}); err != nil {
		t.Fatalf("append: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "bk")
	m, err := src.Backup(ctx, dest)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if m.Key != StateKey || m.Events != 1 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	for _, name := range []string{backupManifestName, backupStateName, backupEventsName} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("expected %s in backup: %v", name, err)
		}
	}

	dst := Store{Dir: t.TempDir(), Backend: BackendJSON}
	if _, err := dst.Restore(ctx, dest); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, err := dst.Load(ctx)
	if err != nil {
		t.Fatalf("load restored: %v", err)
	}
	if got.Language != model.LanguageEnglish {
		t.Fatalf("expected restored language en, got %q", got.Language)
	}
	yd, _ := got.Year(2025)
	if g, _ := goaltree.Locate(yd.RootGoal, "sub-2025-0-sub-0"); g == nil || !g.IsCompleted {
		t.Fatalf("expected restored completed task, got %+v", g)
	}
	evs, err := dst.ReadEvents(ctx, 0)
	if err != nil {
		t.Fatalf("read restored events: %v", err)
	}
	if len(evs) != 1 || evs[0].Type != "goal.update" {
		t.Fatalf("unexpected restored events: %+v", evs)
	}
}

func TestBackup_RefusesNonEmptyDestination(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := Store{Dir: t.TempDir()}
	if _, err := s.Backup(context.Background(), dest); err == nil {
		t.Fatalf("expected error for non-empty destination")
	}
}

func TestRestore_RejectsCorruptState(t *testing.T) {
	ctx := context.Background()
	src := Store{Dir: t.TempDir()}
	dest := filepath.Join(t.TempDir(), "bk")
	if _, err := src.Backup(ctx, dest); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dest, backupStateName), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if _, err := (Store{Dir: t.TempDir()}).Restore(ctx, dest); err == nil {
		t.Fatalf("expected restore to refuse corrupt state")
	}
}
