package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// jsonIndent is the per-level indentation of MarshalJSON output.
const jsonIndent = "  "

// ParseJSON decodes a JSON object document into a Tree, keeping key order.
// Numbers keep their literal text. A duplicate key keeps its first position
// and its last value.
func ParseJSON(data []byte) (*Tree, error) {
	// The tokenizer would silently replace invalid bytes with U+FFFD.
	if !utf8.Valid(data) {
		return nil, &ParseError{Format: FormatJSON, Err: errors.New("invalid UTF-8")}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, jsonParseError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &ParseError{Format: FormatJSON, Err: fmt.Errorf("document root must be an object, got %v", tok)}
	}

	t, err := decodeJSONObject(dec)
	if err != nil {
		return nil, jsonParseError(err)
	}

	// Reject trailing data after the root object
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, jsonParseError(err)
		}
		return nil, &ParseError{Format: FormatJSON, Err: fmt.Errorf("unexpected %v after document root", tok)}
	}

	return t, nil
}

func jsonParseError(err error) *ParseError {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &ParseError{Format: FormatJSON, Err: err}
}

// decodeJSONObject reads members up to and including the closing brace.
// The opening brace has already been consumed.
func decodeJSONObject(dec *json.Decoder) (*Tree, error) {
	t := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		t.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeJSONArray(dec *json.Decoder) (List, error) {
	list := List{}
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", len(list), err)
		}
		list = append(list, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch val := tok.(type) {
	case json.Delim:
		switch val {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", val)
		}
	case string:
		return String(val), nil
	case json.Number:
		return Number(val), nil
	case bool:
		return Bool(val), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// MarshalJSON encodes t as an indented JSON object in insertion order.
//
// Output differs from encoding/json in ways that keep translation files
// readable: non-ASCII text, <, > and & are written verbatim, as are U+2028
// and U+2029. There is no trailing newline.
func MarshalJSON(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, t, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v Value, depth int) error {
	switch val := v.(type) {
	case *Tree:
		return writeJSONObject(buf, val, depth)
	case List:
		return writeJSONArray(buf, val, depth)
	case String:
		return writeJSONString(buf, string(val))
	case Number:
		if !json.Valid([]byte(val)) {
			return fmt.Errorf("number %q is not valid JSON", string(val))
		}
		buf.WriteString(string(val))
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Null:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
	return nil
}

func writeJSONObject(buf *bytes.Buffer, t *Tree, depth int) error {
	if t.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteString("{\n")
	i := 0
	for k, v := range t.All() {
		if i > 0 {
			buf.WriteString(",\n")
		}
		i++
		buf.WriteString(strings.Repeat(jsonIndent, depth+1))
		if err := writeJSONString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteString(": ")
		if err := writeJSONValue(buf, v, depth+1); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(jsonIndent, depth))
	buf.WriteByte('}')
	return nil
}

func writeJSONArray(buf *bytes.Buffer, list List, depth int) error {
	if len(list) == 0 {
		buf.WriteString("[]")
		return nil
	}

	buf.WriteString("[\n")
	for i, elem := range list {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth+1))
		if err := writeJSONValue(buf, elem, depth+1); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(jsonIndent, depth))
	buf.WriteByte(']')
	return nil
}

// writeJSONString writes s as a JSON string literal.
// Only quotes, backslashes and control characters are escaped.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}

	// json.Encoder adds a trailing newline
	out := bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'})
	buf.Write(unescapeLineSeparators(out))
	return nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into literal characters. Escape sequences
// are consumed pairwise, so an escaped backslash followed by the text
// "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+6 <= len(data) {
			switch string(data[i+1 : i+6]) {
			case "u2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "u2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}
