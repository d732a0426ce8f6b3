package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExpression indicates that a source text could not be parsed.
	ErrInvalidExpression = errors.New("tmplexpr: invalid expression")
	// ErrTooDeep indicates that nesting exceeded the grammar recursion limit.
	ErrTooDeep = errors.New("tmplexpr: expression nested too deeply")
)

// ParseError reports the furthest position the grammar reached before no
// alternative could match. Line and Column are 1-based.
type ParseError struct {
	Offset int
	Line   int
	Column int
	// Near holds a few runes of input starting at Offset; empty at end of input.
	Near string
}

func (e *ParseError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%s: unexpected end of input at line %d, column %d", ErrInvalidExpression, e.Line, e.Column)
	}

	return fmt.Sprintf("%s: syntax error at line %d, column %d near %q", ErrInvalidExpression, e.Line, e.Column, e.Near)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidExpression
}

const nearLength = 12

func newParseError(src []rune, offset int) *ParseError {
	if offset > len(src) {
		offset = len(src)
	}

	line, col := 1, 1

	for _, r := range src[:offset] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	end := min(offset+nearLength, len(src))

	return &ParseError{Offset: offset, Line: line, Column: col, Near: string(src[offset:end])}
}
