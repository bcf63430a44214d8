package pdfparse

import "fmt"

// ParseError reports a document that could not be opened at all
// (corrupt or empty bytes). Partial extraction failures never raise it.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing pdf: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
