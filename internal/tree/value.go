package tree

import "fmt"

// Value is a sealed interface for the values a Tree can hold.
// Only String, Number, Bool, Null, List and *Tree implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// String is a string leaf.
type String string

func (String) value() {}

// Number is a numeric leaf holding the literal text from the source document.
// Keeping the literal avoids float reformatting (1.0 stays 1.0, 1e3 stays 1e3).
type Number string

func (Number) value() {}

// Bool is a boolean leaf.
type Bool bool

func (Bool) value() {}

// Null is the null leaf.
type Null struct{}

func (Null) value() {}

// List is a sequence value. It is a leaf for merge, diff and key extraction.
type List []Value

func (List) value() {}

func (*Tree) value() {}

// Kind classifies a Value as a leaf or a subtree.
type Kind int

const (
	// KindLeaf is any scalar or list value.
	KindLeaf Kind = iota
	// KindTree is a nested mapping.
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindTree:
		return "tree"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf reports whether v is a leaf or a subtree.
// A nil *Tree is still a subtree (an empty one).
func KindOf(v Value) Kind {
	if _, ok := v.(*Tree); ok {
		return KindTree
	}
	return KindLeaf
}

// Pairing is the combination of kinds found at the same key in two trees.
type Pairing int

const (
	// BothLeaves means both sides hold a leaf.
	BothLeaves Pairing = iota
	// BothTrees means both sides hold a subtree.
	BothTrees
	// TreeThenLeaf means the first side is a subtree and the second a leaf.
	TreeThenLeaf
	// LeafThenTree means the first side is a leaf and the second a subtree.
	LeafThenTree
)

func (p Pairing) String() string {
	switch p {
	case BothLeaves:
		return "leaf/leaf"
	case BothTrees:
		return "tree/tree"
	case TreeThenLeaf:
		return "tree/leaf"
	case LeafThenTree:
		return "leaf/tree"
	default:
		return fmt.Sprintf("Pairing(%d)", int(p))
	}
}

// Pair classifies the kinds of a and b.
func Pair(a, b Value) Pairing {
	switch ka, kb := KindOf(a), KindOf(b); {
	case ka == KindTree && kb == KindTree:
		return BothTrees
	case ka == KindTree:
		return TreeThenLeaf
	case kb == KindTree:
		return LeafThenTree
	default:
		return BothLeaves
	}
}

// Clone returns a deep copy of v. Leaves other than List are immutable and
// returned as is.
func Clone(v Value) Value {
	switch val := v.(type) {
	case *Tree:
		return val.Clone()
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	default:
		return v
	}
}
