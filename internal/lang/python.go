package lang

import (
	"regexp"

	"github.com/smacker/go-tree-sitter/python"
)

func init() {
	Languages["python"] = &Language{
		Name:       "python",
		Extensions: []string{".py", ".pyi"},
		Backend:    BackendPython,
		lang:       python.GetLanguage(),
		// Approximates str.isidentifier: XID_Start then XID_Continue.
		identifier:      regexp.MustCompile(`^[\p{L}\p{Nl}_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}]*$`),
		keywords:        pythonKeywords,
		IdentifierTypes: set("identifier"),
		MemberAccess:    []string{"."},
		DefinitionTypes: set("function_definition", "class_definition"),
	}
}

// keyword.kwlist
var pythonKeywords = set(
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
)
