// Package discover finds candidate source files for a language in a
// repository tree.
package discover

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/phobologic/symref/internal/lang"
)

// FileEntry represents a discovered source file.
type FileEntry struct {
	Path     string // Relative to repo root
	Language string
}

// IgnoreDirs is the single set of directory names never descended into:
// version control metadata, dependency caches, build output and
// workflow-internal directories.
var IgnoreDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"node_modules":  {},
	".venv":         {},
	"venv":          {},
	"__pycache__":   {},
	".tox":          {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".pytest_cache": {},
	"dist":          {},
	"build":         {},
	"target":        {},
	".metrics":      {},
	".trellis":      {},
	".codex":        {},
	".agents":       {},
	".claude":       {},
}

// Options tune discovery beyond the language's extension allow-list.
type Options struct {
	// ExtraIgnoreDirs are skipped in addition to IgnoreDirs.
	ExtraIgnoreDirs []string

	// RespectGitignore drops files git would ignore.
	RespectGitignore bool

	// MaxFileSize skips files larger than this many bytes; 0 means no limit.
	MaxFileSize int64

	Logger *zap.Logger
}

// Files discovers source files of language l under root, sorted by path.
func Files(root string, l *lang.Language, opts Options) ([]FileEntry, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var gitFiles map[string]struct{}
	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gitFiles = gitLsFiles(root)
		if gitFiles == nil {
			gi = loadGitignore(root)
		}
	}

	var results []FileEntry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := IgnoreDirs[name]; skip || slices.Contains(opts.ExtraIgnoreDirs, name) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks: rewriting one would replace the link with a file.
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if !slices.Contains(l.Extensions, filepath.Ext(name)) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if gitFiles != nil {
			if _, ok := gitFiles[filepath.ToSlash(rel)]; !ok {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		if opts.MaxFileSize > 0 {
			if info, err := d.Info(); err == nil && info.Size() > opts.MaxFileSize {
				log.Warn("skipping large file", zap.String("path", rel), zap.Int64("size", info.Size()))
				return nil
			}
		}

		results = append(results, FileEntry{Path: rel, Language: l.Name})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	log.Debug("discovered files", zap.String("root", root), zap.String("language", l.Name), zap.Int("count", len(results)))
	return results, nil
}

func gitLsFiles(root string) map[string]struct{} {
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[line] = struct{}{}
		}
	}
	return files
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
