// Package tree provides the in-memory model of a translation document.
//
// A document is an ordered *Tree of string keys to Values. Value is a sealed
// variant: leaves (String, Number, Bool, Null, List) and subtrees (*Tree).
// Every operation that walks two trees at once dispatches on Pair, so a key
// that is a leaf on one side and a subtree on the other is handled explicitly.
//
// This package imports nothing internal and performs no I/O; the locale and
// pipeline packages own reading and writing files.
//
// Key design constraints:
//   - Key order is document order, preserved through parse, merge and marshal
//   - Number keeps its literal text so values round-trip byte for byte
//   - Lists are opaque leaves: merge replaces them whole, extract never descends
package tree
