package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
)

func sampleYear(t *testing.T) model.YearData {
	t.Helper()
	now := time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC)
	yd := goaltree.DefaultYear(2025)
	root := goaltree.UpdateByIDAt(yd.RootGoal, "root-2025", goaltree.Patch{}.WithText("Grow steadily").WithNotes("One step a day."), now)
	root = goaltree.UpdateByIDAt(root, "sub-2025-0-sub-0", goaltree.Patch{}.WithText("Read 20 papers").WithCompleted(true), now)
	root = goaltree.AppendChildAt(root, "sub-2025-0-sub-1", now)
	item, ok := goaltree.LastChild(root, "sub-2025-0-sub-1")
	if !ok {
		t.Fatalf("expected appended checklist item")
	}
	root = goaltree.UpdateByIDAt(root, item.ID, goaltree.Patch{}.WithText("Chapter 1").WithNotes("draft"), now)
	yd.RootGoal = root
	return yd
}

func TestRenderYearMarkdown_IndexAndTimeline(t *testing.T) {
	t.Parallel()

	md, err := RenderYearMarkdown(sampleYear(t), RenderOptions{Language: model.LanguageEnglish})
	if err != nil {
		t.Fatalf("RenderYearMarkdown: %v", err)
	}
	for _, want := range []string{
		"# Grow steadily",
		"One step a day.",
		"](sub-2025-0.md)",
		"- [ ] [연구](sub-2025-0.md)",
		"2025-08-02 Read 20 papers",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestRenderCategoryMarkdown_NestsChecklist(t *testing.T) {
	t.Parallel()

	yd := sampleYear(t)
	cat, _ := goaltree.Locate(yd.RootGoal, "sub-2025-0")
	md, err := RenderCategoryMarkdown(cat, RenderOptions{Language: model.LanguageEnglish})
	if err != nil {
		t.Fatalf("RenderCategoryMarkdown: %v", err)
	}
	for _, want := range []string{
		"# 연구",
		"- [x] Read 20 papers (2025-08-02)",
		"  - [ ] Chapter 1",
		"    > draft",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestWriteYear_WritesPagesAndRespectsOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yd := sampleYear(t)
	res, err := WriteYear(yd, dir, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteYear: %v", err)
	}
	if len(res.Written) != 1+model.GridSize {
		t.Fatalf("expected %d files; got %v", 1+model.GridSize, res.Written)
	}
	for _, p := range res.Written {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "2025", "index.md")); err != nil {
		t.Fatalf("expected index.md: %v", err)
	}

	if _, err := WriteYear(yd, dir, WriteOptions{}); err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Fatalf("expected overwrite error; got %v", err)
	}
	if _, err := WriteYear(yd, dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteYear (overwrite): %v", err)
	}
}

func TestPageName_StaysInsideDir(t *testing.T) {
	t.Parallel()

	if got := pageName("../../etc/passwd"); strings.Contains(got, "/") || strings.Contains(got, "..") {
		t.Fatalf("unsafe page name %q", got)
	}
}
