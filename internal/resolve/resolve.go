// Package resolve finds the identifier under a cursor.
package resolve

import (
	"unicode"
	"unicode/utf8"

	symerr "github.com/phobologic/symref/internal/errors"
	"github.com/phobologic/symref/internal/lang"
	"github.com/phobologic/symref/internal/model"
	"github.com/phobologic/symref/internal/offset"
)

// Resolve returns the symbol at pos in src.
//
// Lexical languages take a 0-based column and select the name token whose
// span contains the cursor, end exclusive. Textual languages take a 1-based
// column, expand the surrounding word and tolerate a cursor placed just past
// the end of a word.
func Resolve(l *lang.Language, tokens []model.Token, src []byte, pos model.Position) (string, error) {
	if pos.Line < 1 {
		return "", symerr.New(symerr.Validation, "line must be a positive integer, got %d", pos.Line)
	}

	col := pos.Column
	if l.Lexical() {
		if col < 0 {
			return "", symerr.New(symerr.Validation, "column must not be negative, got %d", col)
		}
	} else {
		if col < 1 {
			return "", symerr.New(symerr.Validation, "column must be a positive integer, got %d", col)
		}
		col--
	}

	off, err := offset.New(src).Offset(pos.Line, col)
	if err != nil {
		return "", err
	}

	var symbol string
	if l.Lexical() {
		symbol, err = Exact(tokens, off)
	} else {
		symbol, err = Snap(src, off)
	}
	if err != nil {
		return "", err
	}

	if !l.IsIdentifier(symbol) {
		return "", symerr.New(symerr.InvalidIdentifier, "identifier %q is invalid", symbol)
	}
	return symbol, nil
}

// Exact returns the text of the name token with Start <= off < End.
func Exact(tokens []model.Token, off int) (string, error) {
	for _, tk := range tokens {
		if tk.Start > off {
			break
		}
		if tk.Kind == model.Name && off < tk.End {
			return tk.Text, nil
		}
	}
	return "", symerr.New(symerr.NoSymbolAtLocation,
		"unable to resolve symbol at target location; place cursor on an identifier")
}

// Snap returns the word run around off. When off is not on a word
// character but the one before it is, the cursor snaps left by one. Word
// characters are Unicode letters, digits and underscore, so a run is never
// cut inside a word such as "naïve".
func Snap(src []byte, off int) (string, error) {
	if len(src) == 0 {
		return "", symerr.New(symerr.NoSymbolAtLocation, "target file is empty")
	}

	pivot := min(max(off, 0), len(src))
	if r, _ := utf8.DecodeRune(src[pivot:]); pivot == len(src) || !isWordRune(r) {
		prev, size := utf8.DecodeLastRune(src[:pivot])
		if pivot == 0 || !isWordRune(prev) {
			return "", symerr.New(symerr.NoSymbolAtLocation, "no identifier found at specified location")
		}
		pivot -= size
	}

	start := pivot
	for start > 0 {
		r, size := utf8.DecodeLastRune(src[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	end := pivot
	for end < len(src) {
		r, size := utf8.DecodeRune(src[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return string(src[start:end]), nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
