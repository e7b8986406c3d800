package core

import (
	"errors"
	"fmt"
)

// Load error kinds.
var (
	ErrUnreadableSpreadsheet = errors.New("unreadable spreadsheet")
	ErrAmbiguousDelimiter    = errors.New("could not determine delimiter")
	ErrParseFailure          = errors.New("delimited text parse failure")
)

// Engine error kinds.
var (
	ErrMissingInput           = errors.New("both files A and B are required")
	ErrMissingColumnSelection = errors.New("missing column selection")
)

// LoadError is returned by Load. Kind is one of the load error kinds and
// matches with errors.Is.
type LoadError struct {
	Kind      error
	File      string
	Delimiter string
	Err       error
}

func (e *LoadError) Error() string {
	msg := e.Kind.Error()
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Delimiter != "" {
		msg += fmt.Sprintf(" (delimiter %q)", e.Delimiter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// EngineError is returned by Filter. Input names the side ("A" or "B")
// the problem was found on.
type EngineError struct {
	Kind   error
	Input  string
	Column string
}

func (e *EngineError) Error() string {
	switch {
	case e.Input != "" && e.Column != "":
		return fmt.Sprintf("%s: input %s has no column %q", e.Kind, e.Input, e.Column)
	case e.Input != "":
		return fmt.Sprintf("%s: input %s", e.Kind, e.Input)
	default:
		return e.Kind.Error()
	}
}

func (e *EngineError) Unwrap() error { return e.Kind }
