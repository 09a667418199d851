package locale

import "fmt"

// IOError reports a file or directory that could not be read or written.
type IOError struct {
	Op   string // "read", "write", "list", "mkdir", "stat"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
