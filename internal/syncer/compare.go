package syncer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"

	"github.com/roach88/workarounds/internal/catalog"
	"github.com/roach88/workarounds/internal/definition"
)

// compare walks the staged definitions and brings each local counterpart up
// to date, recording the outcome in report.
func (m *Manager) compare(logger *slog.Logger, report *Report) error {
	staged, err := stagedDefinitions(m.staging)
	if err != nil {
		return fmt.Errorf("list staged files: %w", err)
	}

	for _, name := range staged {
		rel := filepath.FromSlash(name)
		src := filepath.Join(m.staging, rel)
		dst := filepath.Join(m.root, rel)

		changed, added, err := syncFile(logger, src, dst)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch {
		case added:
			logger.Debug("new workaround", "path", dst)
			report.Added = append(report.Added, name)
		case changed:
			logger.Info("workaround updated", "path", dst)
			report.Replaced = append(report.Replaced, name)
		default:
			report.Unchanged = append(report.Unchanged, name)
		}
	}
	return nil
}

// stagedDefinitions returns the slash-separated paths under dir that match
// definitionPattern, sorted. Only the relative path is matched, so dir may
// contain glob metacharacters.
func stagedDefinitions(dir string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		match, err := doublestar.Match(definitionPattern, rel)
		if err != nil {
			return err
		}
		if match {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// syncFile copies src over dst unless dst already has the same content,
// ignoring the executed flag.
func syncFile(logger *slog.Logger, src, dst string) (changed, added bool, err error) {
	remote, err := os.ReadFile(src)
	if err != nil {
		return false, false, err
	}

	local, err := os.ReadFile(dst)
	if errors.Is(err, os.ErrNotExist) {
		return true, true, catalog.WriteFileAtomic(dst, remote)
	}
	if err != nil {
		return false, false, err
	}

	same, err := definition.SameContent(remote, local)
	if err != nil {
		if _, derr := definition.DecodeDocument(remote); derr != nil {
			return false, false, fmt.Errorf("remote definition: %w", derr)
		}
		logger.Warn("local workaround unreadable, replacing", "path", dst, "error", err)
		same = false
	}
	if same {
		return false, false, nil
	}
	return true, false, catalog.WriteFileAtomic(dst, remote)
}
