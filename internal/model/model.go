// Package model defines core data structures for symref.
package model

// TokenKind classifies a token produced by a tokenizer adapter.
type TokenKind string

const (
	Name    TokenKind = "name"
	Keyword TokenKind = "keyword"
	Punct   TokenKind = "punct"
	Comment TokenKind = "comment"
	Trivia  TokenKind = "trivia"
	String  TokenKind = "string"
	Other   TokenKind = "other"
)

// Token is a single lexical unit. Start and End are byte offsets into the
// source, End exclusive.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int

	// Definition is set by lexical tokenizers when the token names a
	// function, class, method or module at its definition site.
	Definition bool
}

// SourceFile is a file's content as read at scan time.
type SourceFile struct {
	Path    string
	Content []byte
}

// Position is a caller-supplied cursor. Line is 1-based; the column base
// depends on the backend (0-based for lexical, 1-based for textual).
type Position struct {
	Line   int
	Column int
}

// Occurrence is one place a resolved symbol appears in source.
type Occurrence struct {
	File         string // absolute path
	Start        int
	End          int
	Line         int // 1-based
	Column       int // 1-based, in runes
	IsAttribute  bool
	IsDefinition bool
}

// Edit is a span to be replaced verbatim.
type Edit struct {
	File  string
	Start int
	End   int
}

// Operation names.
type Operation string

const (
	Rename       Operation = "rename"
	ReferenceMap Operation = "reference-map"
	SafeDelete   Operation = "safe-delete-candidates"
)

// Mode names reported in results.
const (
	ModeApply    = "apply"
	ModeDryRun   = "dry-run"
	ModeAnalysis = "analysis"
)

// Location identifies a cursor or a match in a file.
type Location struct {
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// Reference is an emitted occurrence. IsAttribute and IsDefinition are only
// reported by lexical backends.
type Reference struct {
	File         string `json:"file" yaml:"file"`
	Line         int    `json:"line" yaml:"line"`
	Column       int    `json:"column" yaml:"column"`
	IsAttribute  *bool  `json:"isAttribute,omitempty" yaml:"isAttribute,omitempty"`
	IsDefinition *bool  `json:"isDefinition,omitempty" yaml:"isDefinition,omitempty"`
}

// Summary aggregates a reference scan.
type Summary struct {
	TotalReferences     int    `json:"totalReferences" yaml:"totalReferences"`
	EmittedReferences   int    `json:"emittedReferences" yaml:"emittedReferences"`
	Truncated           bool   `json:"truncated" yaml:"truncated"`
	TouchedFiles        int    `json:"touchedFiles" yaml:"touchedFiles"`
	RepoRoot            string `json:"repoRoot" yaml:"repoRoot"`
	AttributeReferences *int   `json:"attributeReferences,omitempty" yaml:"attributeReferences,omitempty"`
}

// Candidate is the safe-delete verdict.
type Candidate struct {
	SafeToDelete bool   `json:"safeToDelete" yaml:"safeToDelete"`
	Confidence   string `json:"confidence" yaml:"confidence"`
	Rationale    string `json:"rationale" yaml:"rationale"`
}

// Result is the single structured object emitted per invocation.
type Result struct {
	Operation Operation `json:"operation" yaml:"operation"`
	Mode      string    `json:"mode" yaml:"mode"`
	Backend   string    `json:"backend" yaml:"backend"`
	Language  string    `json:"language" yaml:"language"`
	Symbol    string    `json:"symbol" yaml:"symbol"`
	From      Location  `json:"from" yaml:"from"`

	// rename
	To               string     `json:"to,omitempty" yaml:"to,omitempty"`
	TouchedFiles     *int       `json:"touchedFiles,omitempty" yaml:"touchedFiles,omitempty"`
	TouchedLocations *int       `json:"touchedLocations,omitempty" yaml:"touchedLocations,omitempty"`
	Locations        []Location `json:"locations,omitempty" yaml:"locations,omitempty"`

	// reference-map, safe-delete-candidates
	Summary    *Summary    `json:"summary,omitempty" yaml:"summary,omitempty"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty"`
	Candidate  *Candidate  `json:"candidate,omitempty" yaml:"candidate,omitempty"`
}
