package ast

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel every tokenizer/parser failure unwraps to.
// Match with errors.Is(err, ast.ErrParse).
var ErrParse = errors.New("ast: expression parse error")

// NoPos marks a ParseError without a usable character position.
const NoPos = -1

// ParseError is a parse failure with an optional character position.
// It unwraps to ErrParse so callers can match the kind without
// inspecting the concrete type.
type ParseError struct {
	Msg string
	Pos int // byte offset into the input, or NoPos
}

// NewParseError builds a ParseError at the given position.
// Pass NoPos when the failure has no single offending character.
func NewParseError(pos int, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func (e *ParseError) Error() string {
	if e.Pos == NoPos {
		return "parse: " + e.Msg
	}
	return fmt.Sprintf("parse: %s (at position %d)", e.Msg, e.Pos)
}

// Unwrap ties every ParseError to the ErrParse sentinel.
func (e *ParseError) Unwrap() error { return ErrParse }
