package lang

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

func init() {
	Languages["typescript"] = &Language{
		Name:       "typescript",
		Extensions: []string{".ts", ".mts", ".cts", ".tsx"},
		Backend:    BackendTypeScript,
		lang:       typescript.GetLanguage(),
		dialects:   map[string]*sitter.Language{".tsx": tsx.GetLanguage()},
		identifier: regexp.MustCompile(`^[\p{L}\p{Nl}$_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$]*$`),
		keywords:   typescriptKeywords,
		IdentifierTypes: set(
			"identifier", "property_identifier", "type_identifier",
			"shorthand_property_identifier", "shorthand_property_identifier_pattern",
		),
		MemberAccess: []string{".", "?."},
		DefinitionTypes: set(
			"function_declaration", "generator_function_declaration",
			"class_declaration", "abstract_class_declaration",
			"interface_declaration", "type_alias_declaration", "enum_declaration",
			"method_definition", "variable_declarator",
		),
	}
}

// Reserved words plus the strict-mode set. Contextual keywords (type, as,
// readonly, declare) are valid names.
var typescriptKeywords = set(
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "enum", "export", "extends", "false",
	"finally", "for", "function", "if", "import", "in", "instanceof", "new",
	"null", "return", "super", "switch", "this", "throw", "true", "try",
	"typeof", "var", "void", "while", "with",
	"implements", "interface", "let", "package", "private", "protected",
	"public", "static", "yield", "await",
)
