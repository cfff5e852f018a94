package parser

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel every error Parse returns wraps, so callers can
// test with errors.Is(err, parser.ErrParse) without depending on the exact
// message.
var ErrParse = errors.New("parser")

// ParseError reports a JSONPath syntax error at a specific byte offset
// into the query string.
type ParseError struct {
	Msg    string
	Offset int
	Query  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: %s at offset %d in %q", e.Msg, e.Offset, e.Query)
}

// Unwrap lets errors.Is(err, ErrParse) succeed.
func (e *ParseError) Unwrap() error { return ErrParse }

// Message returns the error's human-readable description, without the
// offset/query-string decoration Error adds.
func (e *ParseError) Message() string { return e.Msg }

// Position returns the byte offset at which the error was detected.
func (e *ParseError) Position() int { return e.Offset }
