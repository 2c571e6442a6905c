package roll

import (
	"errors"
	"fmt"
)

// ParseError reports malformed expression or operator text.
type ParseError struct {
	// Input is the normalized text being parsed.
	Input string

	// Pos is the byte offset into Input where parsing failed.
	Pos int

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at %d: %s", e.Input, e.Pos, e.Message)
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
