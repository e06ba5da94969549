package token

import (
	"regexp"

	"github.com/phobologic/symref/internal/lang"
	"github.com/phobologic/symref/internal/model"
)

// wordRun matches maximal runs of Unicode word characters. A run is a name
// only when the whole run fits the identifier grammar: "1foo" is a number
// and "naïve" is not an ASCII identifier, so neither yields "foo" or "na".
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Textual treats identifier-shaped words in raw text as names. Matches inside
// comments and string literals are included; results carry the symbol-index
// backend label so callers can weight them.
type Textual struct {
	lang *lang.Language
}

// NewTextual creates a textual tokenizer.
func NewTextual(l *lang.Language) *Textual {
	return &Textual{lang: l}
}

// Backend implements Tokenizer.
func (t *Textual) Backend() string {
	return t.lang.Backend
}

// Tokenize implements Tokenizer.
func (t *Textual) Tokenize(f model.SourceFile) ([]model.Token, error) {
	var tokens []model.Token
	for _, m := range wordRun.FindAllIndex(f.Content, -1) {
		text := string(f.Content[m[0]:m[1]])
		if !t.lang.IsIdentifier(text) {
			continue
		}
		tokens = append(tokens, model.Token{
			Kind:  model.Name,
			Text:  text,
			Start: m[0],
			End:   m[1],
		})
	}
	return tokens, nil
}

// IsAttributeLeaf implements Tokenizer. Raw text cannot distinguish member
// access from free identifiers.
func (t *Textual) IsAttributeLeaf([]model.Token, int) bool {
	return false
}
