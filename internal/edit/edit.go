// Package edit applies planned replacements to files on disk.
package edit

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	symerr "github.com/phobologic/symref/internal/errors"
	"github.com/phobologic/symref/internal/model"
)

// Summary counts what an Apply touched (or would touch, in a dry run).
type Summary struct {
	Files     int
	Locations int
}

// Applier rewrites files. It is safe to reuse across calls.
type Applier struct {
	log *zap.Logger
}

// NewApplier creates an Applier. A nil logger discards output.
func NewApplier(log *zap.Logger) *Applier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Applier{log: log}
}

// Apply replaces every occurrence of symbol with replacement. Each file is
// re-read and every span is checked against symbol before anything is
// written, so a file edited since collection fails with FILE_CHANGED instead
// of being corrupted. With dryRun set nothing is read or written.
func (a *Applier) Apply(occs []model.Occurrence, symbol, replacement string, dryRun bool) (Summary, error) {
	byFile := make(map[string][]model.Edit)
	var order []string
	for _, o := range occs {
		if _, ok := byFile[o.File]; !ok {
			order = append(order, o.File)
		}
		byFile[o.File] = append(byFile[o.File], model.Edit{File: o.File, Start: o.Start, End: o.End})
	}

	sum := Summary{Files: len(order), Locations: len(occs)}
	if dryRun {
		return sum, nil
	}

	// Plan every file before writing any of them.
	planned := make(map[string][]byte, len(order))
	for _, path := range order {
		src, err := os.ReadFile(path)
		if err != nil {
			return Summary{}, symerr.Wrap(symerr.IO, err, "reading %s", path)
		}
		edits := byFile[path]
		for _, e := range edits {
			if e.End > len(src) || string(src[e.Start:e.End]) != symbol {
				return Summary{}, symerr.New(symerr.FileChanged, "%s changed since references were collected", path)
			}
		}
		out, err := Splice(src, edits, replacement)
		if err != nil {
			return Summary{}, err
		}
		planned[path] = out
	}

	for _, path := range order {
		if err := writeAtomic(path, planned[path]); err != nil {
			return Summary{}, err
		}
		a.log.Debug("rewrote file", zap.String("path", path), zap.Int("edits", len(byFile[path])))
	}
	return sum, nil
}

// Splice returns src with each edit's span replaced by replacement. Edits are
// applied from the highest offset down so earlier spans keep their offsets.
// src is not modified.
func Splice(src []byte, edits []model.Edit, replacement string) ([]byte, error) {
	sorted := make([]model.Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return nil, symerr.New(symerr.OutOfRange, "edit [%d, %d) outside content of length %d", e.Start, e.End, len(src))
		}
		if i > 0 && e.End > sorted[i-1].Start {
			return nil, symerr.New(symerr.Validation, "overlapping edits at [%d, %d) and [%d, %d)",
				e.Start, e.End, sorted[i-1].Start, sorted[i-1].End)
		}
	}

	out := bytes.Clone(src)
	for _, e := range sorted {
		tail := out[e.End:]
		next := make([]byte, 0, len(out)-(e.End-e.Start)+len(replacement))
		next = append(next, out[:e.Start]...)
		next = append(next, replacement...)
		next = append(next, tail...)
		out = next
	}
	return out, nil
}

// writeAtomic replaces path with data via a temp file in the same directory,
// keeping the original permissions.
func writeAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return symerr.Wrap(symerr.IO, err, "stat %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return symerr.Wrap(symerr.IO, err, "creating temp file for %s", path)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return symerr.Wrap(symerr.IO, err, "writing %s", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return symerr.Wrap(symerr.IO, err, "writing %s", path)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmpPath)
		return symerr.Wrap(symerr.IO, err, "chmod %s", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return symerr.Wrap(symerr.IO, err, "replacing %s", path)
	}
	return nil
}
