// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/symref/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a Result into TOON format. Field order follows the JSON
// rendering; absent optional fields are omitted.
func Encode(res *model.Result) string {
	var parts []string

	parts = append(parts, field("operation", encodeValue(string(res.Operation))))
	parts = append(parts, field("mode", encodeValue(res.Mode)))
	parts = append(parts, field("backend", encodeValue(res.Backend)))
	parts = append(parts, field("language", encodeValue(res.Language)))
	parts = append(parts, field("symbol", encodeValue(res.Symbol)))
	parts = append(parts, formatObject("from", [][2]string{
		{"file", encodeValue(res.From.File)},
		{"line", strconv.Itoa(res.From.Line)},
		{"column", strconv.Itoa(res.From.Column)},
	}))

	if res.To != "" {
		parts = append(parts, field("to", encodeValue(res.To)))
	}
	if res.TouchedFiles != nil {
		parts = append(parts, field("touchedFiles", strconv.Itoa(*res.TouchedFiles)))
	}
	if res.TouchedLocations != nil {
		parts = append(parts, field("touchedLocations", strconv.Itoa(*res.TouchedLocations)))
	}
	if len(res.Locations) > 0 {
		var rows [][]string
		for _, loc := range res.Locations {
			rows = append(rows, []string{encodeValue(loc.File), strconv.Itoa(loc.Line), strconv.Itoa(loc.Column)})
		}
		parts = append(parts, formatTabular("locations", []string{"file", "line", "column"}, rows))
	}

	if s := res.Summary; s != nil {
		pairs := [][2]string{
			{"totalReferences", strconv.Itoa(s.TotalReferences)},
			{"emittedReferences", strconv.Itoa(s.EmittedReferences)},
			{"truncated", strconv.FormatBool(s.Truncated)},
			{"touchedFiles", strconv.Itoa(s.TouchedFiles)},
			{"repoRoot", encodeValue(s.RepoRoot)},
		}
		if s.AttributeReferences != nil {
			pairs = append(pairs, [2]string{"attributeReferences", strconv.Itoa(*s.AttributeReferences)})
		}
		parts = append(parts, formatObject("summary", pairs))
	}

	if res.References != nil {
		parts = append(parts, formatReferences(res.References))
	}

	if c := res.Candidate; c != nil {
		parts = append(parts, formatObject("candidate", [][2]string{
			{"safeToDelete", strconv.FormatBool(c.SafeToDelete)},
			{"confidence", encodeValue(c.Confidence)},
			{"rationale", encodeValue(c.Rationale)},
		}))
	}

	return strings.Join(parts, "\n")
}

// formatReferences adds the lexical flag columns only when every row has them.
func formatReferences(refs []model.Reference) string {
	flags := len(refs) > 0
	for _, r := range refs {
		if r.IsAttribute == nil || r.IsDefinition == nil {
			flags = false
			break
		}
	}

	columns := []string{"file", "line", "column"}
	if flags {
		columns = append(columns, "isAttribute", "isDefinition")
	}

	var rows [][]string
	for _, r := range refs {
		row := []string{encodeValue(r.File), strconv.Itoa(r.Line), strconv.Itoa(r.Column)}
		if flags {
			row = append(row, strconv.FormatBool(*r.IsAttribute), strconv.FormatBool(*r.IsDefinition))
		}
		rows = append(rows, row)
	}
	return formatTabular("references", columns, rows)
}

// field, formatObject and formatTabular take values that are already
// encoded, so numbers and booleans pass through bare.
func field(key, value string) string {
	return fmt.Sprintf("%s: %s", key, value)
}

func formatObject(name string, pairs [][2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", name)
	for _, p := range pairs {
		fmt.Fprintf(&b, "\n  %s", field(p[0], p[1]))
	}
	return b.String()
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n  %s", strings.Join(row, ","))
	}
	return b.String()
}

// encodeValue renders a string scalar, quoting it when the bare form would
// read as something else.
func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return quote(value)
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
