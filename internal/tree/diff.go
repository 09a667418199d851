package tree

// MissingKeyPrefix starts every line produced by MissingKeys.
const MissingKeyPrefix = "Missing key: "

// MissingKeys lists the key paths of reference that candidate lacks, as
// "Missing key: <path>" lines in reference's order. prefix is prepended to
// every path and may be empty.
//
// Recursion only happens where both sides hold a subtree. A key that is a
// leaf on one side and a subtree on the other counts as present, and nothing
// beneath it is reported.
func MissingKeys(reference, candidate *Tree, prefix string) []string {
	var lines []string
	for key, ref := range reference.All() {
		path := JoinPath(prefix, key)
		cand, ok := candidate.Get(key)
		if !ok {
			lines = append(lines, MissingKeyPrefix+path)
			continue
		}
		if Pair(ref, cand) == BothTrees {
			lines = append(lines, MissingKeys(ref.(*Tree), cand.(*Tree), path)...)
		}
	}
	return lines
}
