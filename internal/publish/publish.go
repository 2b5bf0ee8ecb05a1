// Package publish exports a planner year as plain Markdown files. The output
// is derived and never read back.
package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mandalart-cli/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteYear writes <toDir>/<year>/index.md plus one page per category.
func WriteYear(yd model.YearData, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	if yd.RootGoal == nil {
		return WriteResult{}, fmt.Errorf("year %d has no goal tree", yd.Year)
	}
	yearDir := filepath.Join(filepath.Clean(toDir), strconv.Itoa(yd.Year))
	if err := os.MkdirAll(yearDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexMD, err := RenderYearMarkdown(yd, opt.RenderOptions)
	if err != nil {
		return WriteResult{}, err
	}
	indexPath := filepath.Join(yearDir, "index.md")
	if err := writeFile(indexPath, []byte(indexMD), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Stop on first error.
	written := []string{indexPath}
	for _, cat := range yd.RootGoal.SubGoals {
		if cat == nil {
			continue
		}
		md, err := RenderCategoryMarkdown(cat, opt.RenderOptions)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(yearDir, pageName(cat.ID))
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

// pageName keeps imported ids from escaping the year directory.
func pageName(id string) string {
	id = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(strings.TrimSpace(id))
	if id == "" {
		id = "_"
	}
	return id + ".md"
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
