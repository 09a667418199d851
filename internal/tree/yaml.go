package tree

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the per-level indentation of MarshalYAML output.
const yamlIndent = 2

// ParseYAML decodes a YAML mapping document into a Tree, keeping key order.
// An empty document is an empty Tree. Aliases are expanded; mapping keys
// must be scalars.
func ParseYAML(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: FormatYAML, Err: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return New(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return New(), nil
	}

	d := &yamlDecoder{active: make(map[*yaml.Node]bool)}
	v, err := d.decode(root)
	if err != nil {
		return nil, &ParseError{Format: FormatYAML, Err: err}
	}
	t, ok := v.(*Tree)
	if !ok {
		return nil, &ParseError{Format: FormatYAML, Err: fmt.Errorf("line %d: document root must be a mapping", root.Line)}
	}
	return t, nil
}

// yamlDecoder converts yaml.Node graphs to Values.
// active holds alias targets being expanded, so self-referencing anchors
// fail instead of recursing forever.
type yamlDecoder struct {
	active map[*yaml.Node]bool
}

func (d *yamlDecoder) decode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if d.active[n.Alias] {
			return nil, fmt.Errorf("line %d: alias *%s refers to itself", n.Line, n.Value)
		}
		d.active[n.Alias] = true
		defer delete(d.active, n.Alias)
		return d.decode(n.Alias)
	case yaml.MappingNode:
		return d.decodeMapping(n)
	case yaml.SequenceNode:
		list := make(List, 0, len(n.Content))
		for i, elem := range n.Content {
			v, err := d.decode(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func (d *yamlDecoder) decodeMapping(n *yaml.Node) (*Tree, error) {
	t := New()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		if keyNode.ShortTag() == "!!merge" {
			return nil, fmt.Errorf("line %d: merge keys are not supported", keyNode.Line)
		}
		v, err := d.decode(valNode)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		t.Set(keyNode.Value, v)
	}
	return t, nil
}

func decodeYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		return Number(n.Value), nil
	default:
		return String(n.Value), nil
	}
}

// MarshalYAML encodes t as a YAML mapping in insertion order with two-space
// indentation. Strings that would read back as another type are quoted.
func MarshalYAML(t *Tree) ([]byte, error) {
	node, err := yamlNode(t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlNode(v Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case *Tree:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, elem := range val.All() {
			child, err := yamlNode(elem)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
		}
		return n, nil
	case List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, elem := range val {
			child, err := yamlNode(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(val)}, nil
	case Number:
		// Untagged so the literal resolves to int or float on its own
		return &yaml.Node{Kind: yaml.ScalarNode, Value: string(val)}, nil
	case Bool:
		s := "false"
		if val {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}, nil
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}
