package xyz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned when input cannot be viewed as (n, 3).
	ErrInvalidShape = errors.New("structure must have shape (n, 3)")

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("structure must not contain nan or inf")

	// ErrOutOfRange is returned when a rounded coordinate does not fit in a
	// fixed width field.
	ErrOutOfRange = errors.New("structure coordinate out of range")

	// ErrInvalidOffset is returned for a column offset outside [0, 8).
	ErrInvalidOffset = errors.New("invalid column width offset")

	// ErrFormattingInvariant means a formatted field did not come out at the
	// fixed width. It indicates a bug in this package.
	ErrFormattingInvariant = errors.New("formatted coordinate has wrong width")
)

// ParseError describes a malformed line in an xyz file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xyz: line %d: %s", e.Line, e.Msg)
}
