package tree

// Merge copies values from incoming into base and returns base.
//
// Only keys already in base are touched: keys unique to incoming are
// ignored, subtrees present on both sides are merged recursively, and any
// other pairing (leaf/leaf or a leaf/subtree mismatch) takes incoming's value
// as is. Callers that need the pre-merge document must Clone base first.
func Merge(base, incoming *Tree) *Tree {
	for key, in := range incoming.All() {
		cur, ok := base.Get(key)
		if !ok {
			continue
		}
		switch Pair(cur, in) {
		case BothTrees:
			Merge(cur.(*Tree), in.(*Tree))
		case BothLeaves, TreeThenLeaf, LeafThenTree:
			base.Set(key, in)
		}
	}
	return base
}
