package token

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/symref/internal/lang"
	"github.com/phobologic/symref/internal/model"
)

// Lexical tokenizes with a tree-sitter grammar.
type Lexical struct {
	lang    *lang.Language
	parsers map[*sitter.Language]*sitter.Parser
}

// NewLexical creates a lexical tokenizer for a language with a grammar.
func NewLexical(l *lang.Language) *Lexical {
	return &Lexical{lang: l, parsers: make(map[*sitter.Language]*sitter.Parser)}
}

// parser returns the cached parser for the dialect that handles path.
func (t *Lexical) parser(path string) *sitter.Parser {
	g := t.lang.Grammar(path)
	p, ok := t.parsers[g]
	if !ok {
		p = t.lang.NewParserFor(path)
		t.parsers[g] = p
	}
	return p
}

// Backend implements Tokenizer.
func (t *Lexical) Backend() string {
	return t.lang.Backend
}

// Tokenize implements Tokenizer.
func (t *Lexical) Tokenize(f model.SourceFile) ([]model.Token, error) {
	src := f.Content
	tree, err := t.parser(f.Path).ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s source: %w", t.lang.Name, err)
	}
	defer tree.Close()

	var tokens []model.Token
	t.walk(tree.RootNode(), src, &tokens)
	return tokens, nil
}

func (t *Lexical) walk(node *sitter.Node, src []byte, tokens *[]model.Token) {
	n := int(node.ChildCount())
	if n > 0 {
		for i := 0; i < n; i++ {
			t.walk(node.Child(i), src, tokens)
		}
		return
	}

	start, end := int(node.StartByte()), int(node.EndByte())
	if start >= end || node.IsMissing() {
		return
	}

	text := lang.NodeText(node, src)
	kind := t.classify(node, text)
	*tokens = append(*tokens, model.Token{
		Kind:       kind,
		Text:       text,
		Start:      start,
		End:        end,
		Definition: kind == model.Name && t.isDefinitionName(node),
	})
}

func (t *Lexical) classify(node *sitter.Node, text string) model.TokenKind {
	typ := node.Type()
	if _, ok := t.lang.IdentifierTypes[typ]; ok && node.IsNamed() {
		return model.Name
	}
	switch {
	case typ == "comment":
		return model.Comment
	case typ == "line_continuation":
		return model.Trivia
	case strings.Contains(typ, "string"), strings.Contains(typ, "heredoc"), typ == "escape_sequence":
		return model.String
	case t.lang.IsIdentifier(text):
		// def, return, True, self: word-shaped but not a binding.
		return model.Keyword
	case !node.IsNamed():
		return model.Punct
	default:
		return model.Other
	}
}

// isDefinitionName reports whether node is the name child of a definition.
func (t *Lexical) isDefinitionName(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	if _, ok := t.lang.DefinitionTypes[parent.Type()]; !ok {
		return false
	}
	name := parent.ChildByFieldName("name")
	return name != nil && name.StartByte() == node.StartByte() && name.EndByte() == node.EndByte()
}

// IsAttributeLeaf implements Tokenizer. It walks back from tokens[i] over
// comments and line continuations and tests the nearest real token against
// the language's member-access operators.
func (t *Lexical) IsAttributeLeaf(tokens []model.Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch tokens[j].Kind {
		case model.Comment, model.Trivia:
			continue
		}
		return slices.Contains(t.lang.MemberAccess, tokens[j].Text)
	}
	return false
}
