package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const (
	sentinelStart = "<!-- symref:start -->"
	sentinelEnd   = "<!-- symref:end -->"
)

// newInitCmd builds `symref init`, which writes (or updates) a symref usage
// section in a CLAUDE.md file.
func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path-to-CLAUDE.md]",
		Short: "Write a symref usage section to CLAUDE.md",
		Long: `Write a symref usage section to a CLAUDE.md file. The section is wrapped in
sentinel comments so it can be updated in place on subsequent runs without
touching surrounding content. Creates the file if it does not exist.

path-to-CLAUDE.md defaults to ./CLAUDE.md.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInit(args, dryRun, stdout, stderr)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

func runInit(args []string, dryRun bool, stdout, stderr io.Writer) error {
	section := generateSection()

	// --dry-run with no path: just print the section itself.
	if dryRun && len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, section)
		return nil
	}

	path := "CLAUDE.md"
	if len(args) > 0 {
		path = args[0]
	}

	existing, _ := os.ReadFile(path)
	updated := applySection(string(existing), section)

	if dryRun {
		_, _ = fmt.Fprint(stdout, updated)
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote symref section to %s\n", path)
	return nil
}

// generateSection returns the full sentinel-wrapped symref documentation block.
func generateSection() string {
	body := `## symref: Symbol Rename and References

Use ` + "`symref`" + ` via the Bash tool instead of search-and-replace when renaming an
identifier or checking whether it is still used. It resolves the identifier
under a cursor and matches whole tokens only.

**Availability:** Check with ` + "`symref --version`" + ` first; skip gracefully if
not found.

**Run it:**
` + "```" + `bash
# preview a rename (python/ruby/typescript columns are 0-based)
symref --file pkg/mod.py --line 12 --column 4 --newName fetch_all --dryRun
# apply it (go/java/rust columns are 1-based)
symref --file cmd/app/main.go --line 3 --column 6 --newName greetUser
# list references
symref --operation reference-map --file lib/x.rb --line 5 --column 6
# is it safe to delete?
symref --operation safe-delete-candidates --file src/App.java --line 2 --column 15
` + "```" + `

**All flags:** ` + "`symref --help`" + `

**How to use the output, follow these rules:**

1. **Always dry-run first.** Check ` + "`touchedFiles`" + ` and ` + "`locations`" + ` before
   applying a rename.

2. **Check ` + "`backend`" + `.** ` + "`symbol-index`" + ` matches words inside strings and
   comments too; review those locations by hand.

3. **Attribute accesses are never renamed.** For Python, Ruby and TypeScript,
   ` + "`obj.name`" + ` occurrences are reported with ` + "`isAttribute: true`" + ` and left untouched.

4. **Treat ` + "`safeToDelete`" + ` as a hint.** It counts textual references only;
   dynamic lookups and other languages are invisible to it.`

	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
