package lang

func init() {
	Languages["go"] = &Language{
		Name:       "go",
		Extensions: []string{".go"},
		Backend:    BackendSymbolIndex,
		keywords:   goKeywords,
	}
}

var goKeywords = set(
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
)
