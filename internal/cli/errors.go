package cli

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"

	"github.com/roach88/transmerge/internal/locale"
	"github.com/roach88/transmerge/internal/tree"
)

// Error code constants - unified across all CLI output.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeConfig      = "E003" // Invalid config file
	ErrCodeParse       = "E004" // Malformed translation document
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeHistory     = "E006" // History database error
	ErrCodeWriteFailed = "E007" // File write error
)

// LoadError represents an error that occurred while loading the config file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// errorCode maps an error to its CLI error code and structured details.
func errorCode(err error) (string, any) {
	var (
		loadErr  *LoadError
		parseErr *tree.ParseError
		ioErr    *locale.IOError
	)
	switch {
	case errors.As(err, &loadErr):
		return loadErr.Code, nil
	case errors.As(err, &parseErr):
		return ErrCodeParse, map[string]string{
			"file":   parseErr.Source,
			"format": parseErr.Format.String(),
		}
	case errors.As(err, &ioErr):
		details := map[string]string{"op": ioErr.Op, "path": ioErr.Path}
		switch ioErr.Op {
		case "stat":
			return ErrCodeNotFound, details
		case "list":
			return ErrCodeScanError, details
		case "write", "mkdir":
			return ErrCodeWriteFailed, details
		}
		return ErrCodeGeneric, details
	}
	return ErrCodeGeneric, nil
}
