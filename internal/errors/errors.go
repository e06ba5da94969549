// Package errors defines the stable error codes surfaced by symref.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code is a stable identifier for a failure mode.
type Code string

const (
	// Validation indicates a bad request: missing or malformed parameters.
	Validation Code = "VALIDATION"
	// OutOfRange indicates a cursor outside the file.
	OutOfRange Code = "OUT_OF_RANGE"
	// NoSymbolAtLocation indicates the cursor is not on an identifier.
	NoSymbolAtLocation Code = "NO_SYMBOL_AT_LOCATION"
	// InvalidIdentifier indicates resolved text outside the identifier grammar.
	InvalidIdentifier Code = "INVALID_IDENTIFIER"
	// NoSourceFiles indicates no files of the language exist under the root.
	NoSourceFiles Code = "NO_SOURCE_FILES"
	// NoReferences indicates the symbol has no usable occurrences.
	NoReferences Code = "NO_REFERENCES"
	// FileChanged indicates a file no longer matches what was collected.
	FileChanged Code = "FILE_CHANGED"
	// IO indicates a read or write failure while applying edits.
	IO Code = "IO"
)

// Error carries a code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates an Error without a cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
