// Package token produces ordered token streams for source files.
//
// Two strategies share one interface. The lexical tokenizer runs the
// language's tree-sitter grammar and emits the leaves of the syntax tree, so
// strings and comments never produce identifier tokens. The textual
// tokenizer treats every identifier-shaped word in the raw text as a name,
// comments and string literals included.
package token

import (
	"github.com/phobologic/symref/internal/lang"
	"github.com/phobologic/symref/internal/model"
)

// Tokenizer produces tokens for a file and classifies attribute leaves.
type Tokenizer interface {
	// Backend is the label reported to callers in every result.
	Backend() string

	// Tokenize returns the tokens of f in document order. The path picks
	// the grammar dialect where a language has more than one.
	Tokenize(f model.SourceFile) ([]model.Token, error)

	// IsAttributeLeaf reports whether tokens[i] is the member name of an
	// attribute access such as obj.name.
	IsAttributeLeaf(tokens []model.Token, i int) bool
}

// For returns the tokenizer for l. Lexical tokenizers own a parser and are
// not safe for concurrent use.
func For(l *lang.Language) Tokenizer {
	if l.Lexical() {
		return NewLexical(l)
	}
	return NewTextual(l)
}
