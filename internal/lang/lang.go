// Package lang provides a language registry mapping file extensions to
// tokenizer backends, identifier grammars and reserved words.
package lang

import (
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	symerr "github.com/phobologic/symref/internal/errors"
)

// Backend labels reported in every result.
const (
	BackendSymbolIndex = "symbol-index"
	BackendPython      = "python-token-index"
	BackendRuby        = "ruby-token-index"
	BackendTypeScript  = "typescript-token-index"
)

var asciiIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Language holds tokenizer configuration for a supported language.
//
// Languages with a tree-sitter grammar are lexical: they tokenize precisely,
// take 0-based cursor columns and can classify attribute leaves. The rest are
// textual: every identifier-shaped word in the raw text is a candidate and
// cursor columns are 1-based.
type Language struct {
	Name       string
	Extensions []string
	Backend    string

	lang       *sitter.Language
	dialects   map[string]*sitter.Language
	identifier *regexp.Regexp
	keywords   map[string]struct{}

	// IdentifierTypes are the tree-sitter leaf types that name things.
	IdentifierTypes map[string]struct{}

	// MemberAccess lists operator tokens that make the following identifier
	// an attribute leaf.
	MemberAccess []string

	// DefinitionTypes are node types whose "name" field child is a
	// definition site.
	DefinitionTypes map[string]struct{}
}

// GetLanguage returns the tree-sitter Language pointer, nil for textual
// languages.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// Lexical reports whether the language is tokenized by a real grammar.
func (l *Language) Lexical() bool {
	return l.lang != nil
}

// Grammar returns the grammar for a file of this language. Extensions with
// their own dialect (.tsx) get it; everything else gets the base grammar.
func (l *Language) Grammar(path string) *sitter.Language {
	if g, ok := l.dialects[filepath.Ext(path)]; ok {
		return g
	}
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Parsers are not safe for concurrent use.
func (l *Language) NewParser() *sitter.Parser {
	return l.NewParserFor("")
}

// NewParserFor creates a parser for the grammar that handles path.
func (l *Language) NewParserFor(path string) *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.Grammar(path))
	return p
}

// IsIdentifier reports whether s matches the language's identifier grammar.
func (l *Language) IsIdentifier(s string) bool {
	if l.identifier == nil {
		return asciiIdentifier.MatchString(s)
	}
	return l.identifier.MatchString(s)
}

// IsKeyword reports whether s is a reserved word.
func (l *Language) IsKeyword(s string) bool {
	_, ok := l.keywords[s]
	return ok
}

// ValidateNewName checks a rename target against the identifier grammar and
// the reserved words.
func (l *Language) ValidateNewName(name string) error {
	if !l.IsIdentifier(name) {
		return symerr.New(symerr.Validation, "newName %q is not a valid %s identifier", name, l.Name)
	}
	if l.IsKeyword(name) {
		return symerr.New(symerr.Validation, "newName %q cannot be a %s keyword", name, l.Name)
	}
	return nil
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[ext]
}

// Lookup returns the named language or a validation error.
func Lookup(name string) (*Language, error) {
	l, ok := Languages[name]
	if !ok {
		return nil, symerr.New(symerr.Validation, "unsupported language %q (supported: %v)", name, Names())
	}
	return l, nil
}

// Names returns the registered language names, sorted.
func Names() []string {
	names := make([]string, 0, len(Languages))
	for name := range Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
