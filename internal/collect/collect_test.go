package collect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/symref/internal/discover"
	"github.com/phobologic/symref/internal/lang"
	"github.com/phobologic/symref/internal/model"
	"github.com/phobologic/symref/internal/token"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collector(langName string) (*Collector, *lang.Language) {
	l := lang.Languages[langName]
	return New(token.For(l), nil), l
}

func TestCollectWholeWord(t *testing.T) {
	t.Parallel()

	c, _ := collector("go")
	occs := c.CollectFile("foo", model.SourceFile{Path: "/x.go", Content: []byte("foobar := barfoo + foo_1\n")})
	assert.Empty(t, occs)

	occs = c.CollectFile("foo", model.SourceFile{Path: "/x.go", Content: []byte("foo(foobar, foo)\n")})
	require.Len(t, occs, 2)
	assert.Equal(t, 0, occs[0].Start)
	assert.Equal(t, 12, occs[1].Start)
}

func TestCollectOrderAndPositions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.rs", "fn greet() {}\n")
	writeFile(t, dir, "a/main.rs", "fn main() {\n    greet();\n    greet();\n}\n")

	c, l := collector("rust")
	entries, err := discover.Files(dir, l, discover.Options{})
	require.NoError(t, err)

	occs := c.Collect("greet", dir, entries)
	want := []model.Occurrence{
		{File: filepath.Join(dir, "a", "main.rs"), Start: 16, End: 21, Line: 2, Column: 5},
		{File: filepath.Join(dir, "a", "main.rs"), Start: 29, End: 34, Line: 3, Column: 5},
		{File: filepath.Join(dir, "b.rs"), Start: 3, End: 8, Line: 1, Column: 4},
	}
	if diff := cmp.Diff(want, occs); diff != "" {
		t.Errorf("occurrences mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectSkipsBinaryFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "ok.java", "class greet {}\n")
	writeFile(t, dir, "bad.java", "greet \xff\xfe greet\n")

	c, l := collector("java")
	entries, err := discover.Files(dir, l, discover.Options{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	occs := c.Collect("greet", dir, entries)
	require.Len(t, occs, 1)
	assert.Equal(t, filepath.Join(dir, "ok.java"), occs[0].File)
}

func TestCollectSkipsVanishedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "here.go", "var greet = 1\n")

	c, _ := collector("go")
	entries := []discover.FileEntry{{Path: "gone.go", Language: "go"}, {Path: "here.go", Language: "go"}}
	occs := c.Collect("greet", dir, entries)
	require.Len(t, occs, 1)
}

func TestCollectAttributeFlags(t *testing.T) {
	t.Parallel()

	c, _ := collector("python")
	src := "obj.count = count + 1\n"
	occs := c.CollectFile("count", model.SourceFile{Path: "/m.py", Content: []byte(src)})
	require.Len(t, occs, 2)

	assert.True(t, occs[0].IsAttribute)
	assert.Equal(t, 5, occs[0].Column)
	assert.False(t, occs[1].IsAttribute)
	assert.Equal(t, 13, occs[1].Column)
	assert.Equal(t, "count", src[occs[1].Start:occs[1].End])
}

func TestCollectDefinitionFlag(t *testing.T) {
	t.Parallel()

	c, _ := collector("python")
	occs := c.CollectFile("helper", model.SourceFile{
		Path:    "/a.py",
		Content: []byte("def helper(): return 1\n\nhelper()\n"),
	})
	require.Len(t, occs, 2)
	assert.True(t, occs[0].IsDefinition)
	assert.False(t, occs[1].IsDefinition)
}

func TestCollectUnicodeColumns(t *testing.T) {
	t.Parallel()

	c, _ := collector("python")
	occs := c.CollectFile("x", model.SourceFile{Path: "/u.py", Content: []byte("s = 'é'; x = 1\n")})
	require.Len(t, occs, 1)
	assert.Equal(t, 10, occs[0].Column, "columns count runes, not bytes")
}
