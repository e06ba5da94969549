// Package offset converts between line/column cursors and byte offsets.
//
// Lines are physical lines of the text; a line's terminator ("\n" or "\r\n")
// belongs to the line but is not counted in its length. Columns are 0-based
// rune indexes within a line. A column equal to the line length addresses the
// end-of-line position.
package offset

import (
	"unicode/utf8"

	symerr "github.com/phobologic/symref/internal/errors"
)

// Lines indexes the line starts of a text.
type Lines struct {
	text   []byte
	starts []int // byte offset of each line start
	ends   []int // byte offset of each line's content end (before terminator)
}

// New indexes text. Empty text has no lines; a trailing terminator does not
// open a new line.
func New(text []byte) *Lines {
	l := &Lines{text: text}
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		end := i
		if end > start && text[end-1] == '\r' {
			end--
		}
		l.starts = append(l.starts, start)
		l.ends = append(l.ends, end)
		start = i + 1
	}
	if start < len(text) {
		l.starts = append(l.starts, start)
		l.ends = append(l.ends, len(text))
	}
	return l
}

// LineCount returns the number of physical lines.
func (l *Lines) LineCount() int {
	return len(l.starts)
}

// Offset returns the byte offset of (line, col). line is 1-based, col a
// 0-based rune index.
func (l *Lines) Offset(line, col int) (int, error) {
	if line < 1 || col < 0 {
		return 0, symerr.New(symerr.OutOfRange, "line must be >= 1 and column must not be negative")
	}
	if line > len(l.starts) {
		return 0, symerr.New(symerr.OutOfRange, "line %d exceeds file line count %d", line, len(l.starts))
	}
	start, end := l.starts[line-1], l.ends[line-1]
	off := start
	for n := 0; n < col; n++ {
		if off >= end {
			return 0, symerr.New(symerr.OutOfRange, "column %d exceeds line length %d",
				col, utf8.RuneCount(l.text[start:end]))
		}
		_, size := utf8.DecodeRune(l.text[off:end])
		off += size
	}
	return off, nil
}

// Position returns the 1-based line and 0-based rune column of offset.
// Out-of-bound offsets are clamped to the text.
func (l *Lines) Position(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.text) {
		offset = len(l.text)
	}
	if len(l.starts) == 0 {
		return 1, 0
	}
	lo, hi := 0, len(l.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == len(l.starts)-1 && offset > l.ends[lo] && offset == len(l.text) && l.text[len(l.text)-1] == '\n' {
		// Past the final terminator: the (empty) line after the last one.
		return lo + 2, 0
	}
	return lo + 1, utf8.RuneCount(l.text[l.starts[lo]:offset])
}

// LineColToOffset is a one-shot Offset.
func LineColToOffset(text []byte, line, col int) (int, error) {
	return New(text).Offset(line, col)
}

// OffsetToLineCol is a one-shot Position.
func OffsetToLineCol(text []byte, offset int) (line, col int) {
	return New(text).Position(offset)
}
