// Package engine runs rename, reference-map and safe-delete-candidates
// requests end to end.
package engine

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/phobologic/symref/internal/collect"
	"github.com/phobologic/symref/internal/discover"
	"github.com/phobologic/symref/internal/edit"
	symerr "github.com/phobologic/symref/internal/errors"
	"github.com/phobologic/symref/internal/lang"
	"github.com/phobologic/symref/internal/model"
	"github.com/phobologic/symref/internal/resolve"
	"github.com/phobologic/symref/internal/token"
)

// DefaultMaxResults caps emitted references when the caller has no opinion.
const DefaultMaxResults = 200

// Request describes one invocation.
type Request struct {
	Operation model.Operation
	// Language may be empty, in which case it is inferred from File.
	Language   string
	File       string
	Line       int
	Column     int
	NewName    string
	Root       string
	DryRun     bool
	MaxResults int
	Discover   discover.Options
}

// Engine executes requests.
type Engine struct {
	log *zap.Logger
}

// New creates an Engine. A nil logger discards output.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// scanResult is the shared front half of every operation.
type scanResult struct {
	lang    *lang.Language
	backend string
	symbol  string
	from    model.Location
	root    string
	occs    []model.Occurrence
}

// Run validates req, resolves the symbol under the cursor, collects its
// occurrences across the root and performs the operation. Nothing is
// written unless the operation is a non-dry-run rename and every check
// has passed.
func (e *Engine) Run(req Request) (*model.Result, error) {
	if req.Operation == "" {
		req.Operation = model.Rename
	}
	if req.Root == "" {
		req.Root = "."
	}

	switch req.Operation {
	case model.Rename, model.ReferenceMap, model.SafeDelete:
	default:
		return nil, symerr.New(symerr.Validation, "unknown operation %q", req.Operation)
	}

	s, err := e.scan(req)
	if err != nil {
		return nil, err
	}

	res := &model.Result{
		Operation: req.Operation,
		Backend:   s.backend,
		Language:  s.lang.Name,
		Symbol:    s.symbol,
		From:      s.from,
	}

	switch req.Operation {
	case model.Rename:
		return e.rename(req, s, res)
	case model.ReferenceMap:
		referenceMap(req, s, res)
		return res, nil
	default:
		referenceMap(req, s, res)
		res.Candidate = candidate(s)
		return res, nil
	}
}

func (e *Engine) scan(req Request) (*scanResult, error) {
	l, err := e.language(req)
	if err != nil {
		return nil, err
	}

	if req.Operation == model.Rename && req.NewName == "" {
		return nil, symerr.New(symerr.Validation, "rename requires --newName")
	}
	if req.NewName != "" {
		if err := l.ValidateNewName(req.NewName); err != nil {
			return nil, err
		}
	}
	if req.MaxResults <= 0 {
		return nil, symerr.New(symerr.Validation, "maxResults must be a positive integer, got %d", req.MaxResults)
	}
	if req.Line < 1 {
		return nil, symerr.New(symerr.Validation, "line must be a positive integer, got %d", req.Line)
	}

	if req.File == "" {
		return nil, symerr.New(symerr.Validation, "--file is required")
	}
	if info, err := os.Stat(req.File); err != nil || info.IsDir() {
		return nil, symerr.New(symerr.Validation, "file not found: %s", req.File)
	}
	if info, err := os.Stat(req.Root); err != nil || !info.IsDir() {
		return nil, symerr.New(symerr.Validation, "targetRepoRoot does not exist: %s", req.Root)
	}

	file, err := filepath.Abs(req.File)
	if err != nil {
		return nil, symerr.Wrap(symerr.Validation, err, "resolving %s", req.File)
	}
	root, err := filepath.Abs(req.Root)
	if err != nil {
		return nil, symerr.Wrap(symerr.Validation, err, "resolving %s", req.Root)
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return nil, symerr.Wrap(symerr.Validation, err, "reading %s", file)
	}

	tok := token.For(l)
	tokens, err := tok.Tokenize(model.SourceFile{Path: file, Content: src})
	if err != nil {
		return nil, symerr.Wrap(symerr.IO, err, "tokenizing %s", file)
	}
	symbol, err := resolve.Resolve(l, tokens, src, model.Position{Line: req.Line, Column: req.Column})
	if err != nil {
		return nil, err
	}
	e.log.Debug("resolved symbol", zap.String("symbol", symbol), zap.String("file", file),
		zap.Int("line", req.Line), zap.Int("column", req.Column))

	opts := req.Discover
	if opts.Logger == nil {
		opts.Logger = e.log
	}
	entries, err := discover.Files(root, l, opts)
	if err != nil {
		return nil, symerr.Wrap(symerr.IO, err, "scanning %s", root)
	}
	if len(entries) == 0 {
		return nil, symerr.New(symerr.NoSourceFiles, "no source files found for language '%s' under %s", l.Name, root)
	}

	occs := collect.New(tok, e.log).Collect(symbol, root, entries)
	if len(occs) == 0 {
		return nil, symerr.New(symerr.NoReferences, "no references found for selected symbol")
	}

	return &scanResult{
		lang:    l,
		backend: tok.Backend(),
		symbol:  symbol,
		from:    model.Location{File: file, Line: req.Line, Column: req.Column},
		root:    root,
		occs:    occs,
	}, nil
}

func (e *Engine) language(req Request) (*lang.Language, error) {
	name := req.Language
	if name == "" {
		name = lang.ForExtension(filepath.Ext(req.File))
		if name == "" {
			return nil, symerr.New(symerr.Validation, "cannot infer language for %q; pass --language (one of %v)", req.File, lang.Names())
		}
		e.log.Debug("inferred language", zap.String("language", name))
	}
	return lang.Lookup(name)
}

func (e *Engine) rename(req Request, s *scanResult, res *model.Result) (*model.Result, error) {
	var occs []model.Occurrence
	for _, o := range s.occs {
		if !o.IsAttribute {
			occs = append(occs, o)
		}
	}
	if len(occs) == 0 {
		return nil, symerr.New(symerr.NoReferences, "no deterministic rename locations found for selected symbol")
	}

	sum, err := edit.NewApplier(e.log).Apply(occs, s.symbol, req.NewName, req.DryRun)
	if err != nil {
		return nil, err
	}

	res.Mode = model.ModeApply
	if req.DryRun {
		res.Mode = model.ModeDryRun
	}
	res.To = req.NewName
	res.TouchedFiles = &sum.Files
	res.TouchedLocations = &sum.Locations
	for _, o := range occs[:min(len(occs), req.MaxResults)] {
		res.Locations = append(res.Locations, model.Location{File: o.File, Line: o.Line, Column: o.Column})
	}
	return res, nil
}

func referenceMap(req Request, s *scanResult, res *model.Result) {
	lexical := s.lang.Lexical()
	emitted := s.occs[:min(len(s.occs), req.MaxResults)]

	files := make(map[string]struct{})
	attrs := 0
	for _, o := range s.occs {
		files[o.File] = struct{}{}
		if o.IsAttribute {
			attrs++
		}
	}

	res.Mode = model.ModeAnalysis
	res.Summary = &model.Summary{
		TotalReferences:   len(s.occs),
		EmittedReferences: len(emitted),
		Truncated:         len(s.occs) > len(emitted),
		TouchedFiles:      len(files),
		RepoRoot:          s.root,
	}
	if lexical {
		res.Summary.AttributeReferences = &attrs
	}

	res.References = make([]model.Reference, 0, len(emitted))
	for _, o := range emitted {
		ref := model.Reference{File: o.File, Line: o.Line, Column: o.Column}
		if lexical {
			isAttr, isDef := o.IsAttribute, o.IsDefinition
			ref.IsAttribute = &isAttr
			ref.IsDefinition = &isDef
		}
		res.References = append(res.References, ref)
	}
}

// candidate scores deletion safety from the non-attribute occurrence count.
// A lone occurrence is normally the definition itself.
func candidate(s *scanResult) *model.Candidate {
	n := 0
	for _, o := range s.occs {
		if !o.IsAttribute {
			n++
		}
	}

	c := &model.Candidate{SafeToDelete: n <= 1}
	switch {
	case n <= 1:
		c.Confidence = "high"
	case n <= 3:
		c.Confidence = "medium"
	default:
		c.Confidence = "low"
	}

	switch {
	case n == 0:
		c.Rationale = "symbol only appears as an attribute access in language index"
	case n == 1:
		c.Rationale = "symbol has a single occurrence in language index"
	default:
		c.Rationale = "symbol has multiple references in language index"
	}
	return c
}
