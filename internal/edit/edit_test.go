package edit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symerr "github.com/phobologic/symref/internal/errors"
	"github.com/phobologic/symref/internal/model"
)

func writeFile(t *testing.T, root, rel, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestSpliceReverseOrder(t *testing.T) {
	t.Parallel()

	src := []byte(strings.Repeat(".", 30))
	edits := []model.Edit{{Start: 5, End: 8}, {Start: 20, End: 23}}

	got, err := Splice(src, edits, "ABCDEFGHIJ")
	require.NoError(t, err)

	want := strings.Repeat(".", 5) + "ABCDEFGHIJ" + strings.Repeat(".", 12) + "ABCDEFGHIJ" + strings.Repeat(".", 7)
	assert.Equal(t, want, string(got))
	assert.Equal(t, strings.Repeat(".", 30), string(src), "input must not be modified")

	// Input order does not matter.
	got2, err := Splice(src, []model.Edit{edits[1], edits[0]}, "ABCDEFGHIJ")
	require.NoError(t, err)
	assert.Equal(t, got, got2)
}

func TestSpliceShorterReplacement(t *testing.T) {
	t.Parallel()

	got, err := Splice([]byte("helper(helper)"), []model.Edit{{Start: 0, End: 6}, {Start: 7, End: 13}}, "run")
	require.NoError(t, err)
	assert.Equal(t, "run(run)", string(got))
}

func TestSpliceRejectsBadEdits(t *testing.T) {
	t.Parallel()

	_, err := Splice([]byte("abcdef"), []model.Edit{{Start: 0, End: 3}, {Start: 2, End: 4}}, "x")
	assert.True(t, symerr.Is(err, symerr.Validation), "%v", err)

	_, err = Splice([]byte("abc"), []model.Edit{{Start: 2, End: 9}}, "x")
	assert.True(t, symerr.Is(err, symerr.OutOfRange), "%v", err)
}

func TestApplyRewritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", "def helper(): return 1\n", 0o644)
	b := writeFile(t, dir, "b.py", "from a import helper\nprint(helper())\n", 0o600)

	occs := []model.Occurrence{
		{File: a, Start: 4, End: 10},
		{File: b, Start: 14, End: 20},
		{File: b, Start: 27, End: 33},
	}
	sum, err := NewApplier(nil).Apply(occs, "helper", "run", false)
	require.NoError(t, err)
	assert.Equal(t, Summary{Files: 2, Locations: 3}, sum)

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "def run(): return 1\n", string(got))

	got, err = os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "from a import run\nprint(run())\n", string(got))

	info, err := os.Stat(b)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestApplyDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.go", "func greet() {}\n", 0o644)

	sum, err := NewApplier(nil).Apply([]model.Occurrence{{File: a, Start: 5, End: 10}}, "greet", "hello", true)
	require.NoError(t, err)
	assert.Equal(t, Summary{Files: 1, Locations: 1}, sum)

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "func greet() {}\n", string(got))
}

func TestApplyStaleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.rs", "fn greet() {}\n", 0o644)
	b := writeFile(t, dir, "b.rs", "fn other() {}\n", 0o644)

	occs := []model.Occurrence{
		{File: a, Start: 3, End: 8},
		{File: b, Start: 3, End: 8},
	}
	_, err := NewApplier(nil).Apply(occs, "greet", "hello", false)
	require.Error(t, err)
	assert.Equal(t, symerr.FileChanged, symerr.CodeOf(err))

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "fn greet() {}\n", string(got), "no file is written when any span is stale")
}

func TestApplyMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewApplier(nil).Apply([]model.Occurrence{{File: filepath.Join(t.TempDir(), "gone.java"), Start: 0, End: 1}}, "x", "y", false)
	assert.True(t, symerr.Is(err, symerr.IO), "%v", err)
}
