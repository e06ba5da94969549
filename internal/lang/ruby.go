package lang

import (
	"regexp"

	"github.com/smacker/go-tree-sitter/ruby"
)

func init() {
	Languages["ruby"] = &Language{
		Name:       "ruby",
		Extensions: []string{".rb"},
		Backend:    BackendRuby,
		lang:       ruby.GetLanguage(),
		// Method names may end in ? or !.
		identifier:      regexp.MustCompile(`^[\p{L}_][\p{L}\p{Nd}_]*[?!]?$`),
		keywords:        rubyKeywords,
		IdentifierTypes: set("identifier", "constant"),
		MemberAccess:    []string{".", "&.", "::"},
		DefinitionTypes: set("method", "singleton_method", "class", "module"),
	}
}

var rubyKeywords = set(
	"BEGIN", "END", "__ENCODING__", "__FILE__", "__LINE__", "alias", "and",
	"begin", "break", "case", "class", "def", "defined?", "do", "else",
	"elsif", "end", "ensure", "false", "for", "if", "in", "module", "next",
	"nil", "not", "or", "redo", "rescue", "retry", "return", "self", "super",
	"then", "true", "undef", "unless", "until", "when", "while", "yield",
)
