package tree

import "iter"

// Tree is an ordered mapping from string keys to Values.
// Iteration follows insertion order. The zero value is not usable; use New.
// A nil *Tree reads as empty.
type Tree struct {
	keys   []string
	values map[string]Value
}

// New creates an empty Tree.
func New() *Tree {
	return &Tree{values: make(map[string]Value)}
}

// KV is a key-value pair for ordered Tree construction.
type KV struct {
	Key   string
	Value Value
}

// O is a shorthand for KV.
// Example: FromPairs(O("title", String("Hello")), O("menu", FromPairs(...)))
func O(key string, v Value) KV {
	return KV{Key: key, Value: v}
}

// FromPairs builds a Tree from pairs in order.
func FromPairs(pairs ...KV) *Tree {
	t := New()
	for _, p := range pairs {
		t.Set(p.Key, p.Value)
	}
	return t
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position and takes the new value.
func (t *Tree) Set(key string, v Value) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (Value, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Len returns the number of keys at this level.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys at this level in insertion order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// All iterates over the key-value pairs in insertion order.
func (t *Tree) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if t == nil {
			return
		}
		for _, k := range t.keys {
			if !yield(k, t.values[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	out := New()
	for k, v := range t.All() {
		out.Set(k, Clone(v))
	}
	return out
}
