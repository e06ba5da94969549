package offset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symerr "github.com/phobologic/symref/internal/errors"
)

func TestOffset(t *testing.T) {
	t.Parallel()

	text := []byte("def helper():\n    return 1\n")
	tests := []struct {
		name      string
		line, col int
		want      int
	}{
		{"start of file", 1, 0, 0},
		{"inside first token", 1, 4, 4},
		{"end of first line", 1, 13, 13},
		{"second line", 2, 4, 18},
		{"end of second line", 2, 12, 26},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := LineColToOffset(text, tt.line, tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffsetOutOfRange(t *testing.T) {
	t.Parallel()

	text := []byte("abc\nde\n")
	tests := []struct {
		name      string
		line, col int
	}{
		{"zero line", 0, 0},
		{"negative column", 1, -1},
		{"line past end", 3, 0},
		{"column past end of line", 2, 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LineColToOffset(text, tt.line, tt.col)
			require.Error(t, err)
			assert.True(t, symerr.Is(err, symerr.OutOfRange), "got %v", err)
		})
	}

	_, err := LineColToOffset(nil, 1, 0)
	assert.True(t, symerr.Is(err, symerr.OutOfRange))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	texts := map[string]string{
		"lf":            "package main\n\nfunc greet() {}\n\nfunc main() { greet() }\n",
		"crlf":          "a = 1\r\nb = a\r\n",
		"no final eol":  "x\nyz",
		"unicode":       "naïve = 'é'\nnaïve\n",
		"blank lines":   "\n\n\n",
		"single letter": "q",
	}
	for name, text := range texts {
		text := text
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			l := New([]byte(text))
			for line := 1; line <= l.LineCount(); line++ {
				for col := 0; ; col++ {
					off, err := l.Offset(line, col)
					if err != nil {
						break
					}
					gotLine, gotCol := l.Position(off)
					assert.Equal(t, []int{line, col}, []int{gotLine, gotCol}, "offset %d", off)
				}
			}
		})
	}
}

func TestPositionClamps(t *testing.T) {
	t.Parallel()

	text := []byte("ab\ncd")
	line, col := OffsetToLineCol(text, -5)
	assert.Equal(t, []int{1, 0}, []int{line, col})

	line, col = OffsetToLineCol(text, 100)
	assert.Equal(t, []int{2, 2}, []int{line, col})

	line, col = OffsetToLineCol([]byte("ab\n"), 3)
	assert.Equal(t, []int{2, 0}, []int{line, col})

	line, col = OffsetToLineCol(nil, 3)
	assert.Equal(t, []int{1, 0}, []int{line, col})
}

func TestUnicodeColumns(t *testing.T) {
	t.Parallel()

	text := []byte("é = naïve\n")
	off, err := LineColToOffset(text, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, off, "é is two bytes")
	assert.Equal(t, "naïve", string(text[off:off+6]))
}
