package tree

import "fmt"

// ParseError reports a document that is not well-formed.
type ParseError struct {
	Source string // file name or other label, may be empty
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse %s %s: %v", e.Format, e.Source, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
