package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phobologic/symref/internal/lang"
)

func paths(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestDiscoverPythonFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "main.py", "print('hello')")
	writeFile(t, dir, "lib/util.py", "def helper(): pass")
	// Other languages are ignored
	writeFile(t, dir, "readme.txt", "hello")
	writeFile(t, dir, "tool.go", "package tool")
	// Hidden files are still source
	writeFile(t, dir, ".hidden.py", "secret")

	entries, err := Files(dir, lang.Languages["python"], Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	want := []string{".hidden.py", filepath.Join("lib", "util.py"), "main.py"}
	got := paths(entries)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i], want[i])
		}
	}

	for _, e := range entries {
		if e.Language != "python" {
			t.Errorf("entry %q: language = %q, want python", e.Path, e.Language)
		}
	}
}

func TestDiscoverSkipDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "main.go", "package main")
	writeFile(t, dir, "node_modules/pkg.go", "package pkg")
	writeFile(t, dir, ".git/hooks.go", "package hooks")
	writeFile(t, dir, "target/gen.go", "package gen")
	writeFile(t, dir, ".trellis/wf.go", "package wf")
	writeFile(t, dir, "vendorish/keep.go", "package keep")

	entries, err := Files(dir, lang.Languages["go"], Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	got := paths(entries)
	if len(got) != 2 || got[0] != "main.go" || got[1] != filepath.Join("vendorish", "keep.go") {
		t.Fatalf("unexpected entries: %v", got)
	}
}

func TestDiscoverExtraIgnoreDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "src/Main.java", "class Main {}")
	writeFile(t, dir, "generated/Gen.java", "class Gen {}")

	entries, err := Files(dir, lang.Languages["java"], Options{ExtraIgnoreDirs: []string{"generated"}})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != filepath.Join("src", "Main.java") {
		t.Fatalf("unexpected entries: %v", paths(entries))
	}
}

func TestDiscoverGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "gen/\n")
	writeFile(t, dir, "lib.rs", "fn main() {}")
	writeFile(t, dir, "gen/out.rs", "fn gen() {}")

	entries, err := Files(dir, lang.Languages["rust"], Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("gitignore must be opt-in, got %v", paths(entries))
	}

	entries, err = Files(dir, lang.Languages["rust"], Options{RespectGitignore: true})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "lib.rs" {
		t.Fatalf("expected only lib.rs, got %v", paths(entries))
	}
}

func TestDiscoverMaxFileSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "small.py", "x = 1\n")
	writeFile(t, dir, "large.py", "x = 1\n"+string(make([]byte, 512)))

	entries, err := Files(dir, lang.Languages["python"], Options{MaxFileSize: 100})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "small.py" {
		t.Fatalf("expected only small.py, got %v", paths(entries))
	}
}

func TestDiscoverSymlinksSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "real.py", "pass")

	// Create symlink
	err := os.Symlink(filepath.Join(dir, "real.py"), filepath.Join(dir, "link.py"))
	if err != nil {
		t.Skip("symlinks not supported")
	}

	entries, err := Files(dir, lang.Languages["python"], Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry (no symlink), got %d", len(entries))
	}
	if entries[0].Path != "real.py" {
		t.Errorf("expected real.py, got %q", entries[0].Path)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
