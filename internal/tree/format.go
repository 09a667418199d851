package tree

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the serialized form of a document.
type Format int

const (
	// FormatUnknown marks a file that is not a translation document.
	FormatUnknown Format = iota
	// FormatJSON is a JSON object document.
	FormatJSON
	// FormatYAML is a YAML mapping document.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf derives the document format from a file name's extension.
// Matching is case-insensitive; .yml and .yaml are both YAML.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// Parse decodes data in the given format.
func Parse(f Format, data []byte) (*Tree, error) {
	switch f {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	default:
		return nil, &ParseError{Format: f, Err: fmt.Errorf("unsupported document format")}
	}
}

// Marshal encodes t in the given format.
func Marshal(f Format, t *Tree) ([]byte, error) {
	switch f {
	case FormatJSON:
		return MarshalJSON(t)
	case FormatYAML:
		return MarshalYAML(t)
	default:
		return nil, fmt.Errorf("marshal: unsupported document format %s", f)
	}
}
