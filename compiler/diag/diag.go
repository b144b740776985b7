package diag

import (
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
)

type (
	// Error is a fatal compile error at a source position.
	// The first one stops the compilation.
	Error struct {
		Line int
		Col  int
		Msg  string

		From loc.PC
	}
)

func New(line, col int, msg string) *Error {
	return &Error{
		Line: line,
		Col:  col,
		Msg:  msg,
		From: loc.Caller(1),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("(%d:%d) %s", e.Line, e.Col, e.Msg)
}

// Listing renders the error the way it goes into the listing.
func (e *Error) Listing() string {
	return fmt.Sprintf("     At (%4d:%3d) %s", e.Line, e.Col, e.Msg)
}

// As extracts a compile error from the chain.
func As(err error) (*Error, bool) {
	var e *Error

	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}
