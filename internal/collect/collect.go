// Package collect finds every token-level occurrence of a symbol across a
// set of files.
package collect

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/phobologic/symref/internal/discover"
	"github.com/phobologic/symref/internal/model"
	"github.com/phobologic/symref/internal/offset"
	"github.com/phobologic/symref/internal/token"
)

// Collector scans files with one tokenizer.
type Collector struct {
	tok token.Tokenizer
	log *zap.Logger
}

// New creates a Collector. A nil logger discards output.
func New(tok token.Tokenizer, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{tok: tok, log: log}
}

// Collect reads each entry under root and returns the occurrences of symbol,
// ordered by file path then offset. Files that cannot be read or are not
// valid UTF-8 are skipped.
func (c *Collector) Collect(symbol, root string, entries []discover.FileEntry) []model.Occurrence {
	var occs []model.Occurrence
	for _, e := range entries {
		path := filepath.Join(root, e.Path)
		content, err := os.ReadFile(path)
		if err != nil {
			c.log.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
			continue
		}
		if !utf8.Valid(content) {
			c.log.Debug("skipping non-UTF-8 file", zap.String("path", path))
			continue
		}
		occs = append(occs, c.CollectFile(symbol, model.SourceFile{Path: path, Content: content})...)
	}

	sort.SliceStable(occs, func(i, j int) bool {
		if occs[i].File != occs[j].File {
			return occs[i].File < occs[j].File
		}
		return occs[i].Start < occs[j].Start
	})
	return occs
}

// CollectFile returns the occurrences of symbol in one file, in offset order.
// Only whole tokens match, so "foo" never matches inside "foobar".
func (c *Collector) CollectFile(symbol string, f model.SourceFile) []model.Occurrence {
	tokens, err := c.tok.Tokenize(f)
	if err != nil {
		c.log.Debug("skipping file that failed to tokenize", zap.String("path", f.Path), zap.Error(err))
		return nil
	}

	var lines *offset.Lines
	var occs []model.Occurrence
	for i, tk := range tokens {
		if tk.Kind != model.Name || tk.Text != symbol {
			continue
		}
		if lines == nil {
			lines = offset.New(f.Content)
		}
		line, col := lines.Position(tk.Start)
		occs = append(occs, model.Occurrence{
			File:         f.Path,
			Start:        tk.Start,
			End:          tk.End,
			Line:         line,
			Column:       col + 1,
			IsAttribute:  c.tok.IsAttributeLeaf(tokens, i),
			IsDefinition: tk.Definition,
		})
	}
	return occs
}
