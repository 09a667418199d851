package tree

// KeySet is an insertion-ordered set of key paths.
// The zero value is an empty set ready to use. Copies of a non-empty set
// share storage, so adding through one copy is seen by all of them; use
// Clone for an independent set.
type KeySet struct {
	data *keySetData
}

type keySetData struct {
	order []string
	index map[string]struct{}
}

// NewKeySet creates a set holding paths in the given order.
func NewKeySet(paths ...string) KeySet {
	var s KeySet
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts path if it is not already present.
func (s *KeySet) Add(path string) {
	if s.data == nil {
		s.data = &keySetData{index: make(map[string]struct{})}
	}
	if _, ok := s.data.index[path]; ok {
		return
	}
	s.data.index[path] = struct{}{}
	s.data.order = append(s.data.order, path)
}

// Has reports whether path is in the set.
func (s KeySet) Has(path string) bool {
	if s.data == nil {
		return false
	}
	_, ok := s.data.index[path]
	return ok
}

// Len returns the number of paths.
func (s KeySet) Len() int {
	return len(s.ordered())
}

// Paths returns the paths in insertion order.
func (s KeySet) Paths() []string {
	out := make([]string, s.Len())
	copy(out, s.ordered())
	return out
}

// Clone returns an independent copy of s.
func (s KeySet) Clone() KeySet {
	return NewKeySet(s.ordered()...)
}

func (s KeySet) ordered() []string {
	if s.data == nil {
		return nil
	}
	return s.data.order
}

// Union returns s followed by the paths of other that s lacks.
func (s KeySet) Union(other KeySet) KeySet {
	out := s.Clone()
	for _, p := range other.ordered() {
		out.Add(p)
	}
	return out
}

// Minus returns the paths of s that other lacks, in s's order.
func (s KeySet) Minus(other KeySet) KeySet {
	var out KeySet
	for _, p := range s.ordered() {
		if !other.Has(p) {
			out.Add(p)
		}
	}
	return out
}

// Equal reports whether both sets hold the same paths, ignoring order.
func (s KeySet) Equal(other KeySet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, p := range s.ordered() {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// JoinPath appends key to a dotted path prefix.
func JoinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// ExtractKeys flattens t into the set of every key path it contains.
// Container nodes are included alongside leaves, in pre-order.
func ExtractKeys(t *Tree) KeySet {
	var s KeySet
	extractInto(&s, t, "")
	return s
}

func extractInto(s *KeySet, t *Tree, prefix string) {
	for k, v := range t.All() {
		path := JoinPath(prefix, k)
		s.Add(path)
		if KindOf(v) == KindTree {
			extractInto(s, v.(*Tree), path)
		}
	}
}
