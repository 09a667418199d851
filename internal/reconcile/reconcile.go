// Package reconcile compares key sets across translation documents.
//
// Consolidate finds, for each sibling locale file, the keys the others have
// and it lacks. Untranslated and Grouping compare one locale across the
// current and updated snapshots. Everything here is pure; callers load the
// documents.
package reconcile

import (
	"github.com/roach88/transmerge/internal/locale"
	"github.com/roach88/transmerge/internal/tree"
)

// MissingKey is a key path one file lacks, with the files that have it.
type MissingKey struct {
	Key       string   `json:"key"`
	PresentIn []string `json:"present_in"`
}

// Gap lists everything one file lacks relative to its siblings.
type Gap struct {
	File    string       `json:"file"`
	Missing []MissingKey `json:"missing"`
}

// Consolidate computes the union of key paths across files and reports,
// per file, the paths it lacks and which other files contain them.
//
// Files without gaps are omitted. Gaps follow the order of files; missing
// keys follow the order in which the union first saw them. PresentIn is
// never empty and never names the file itself.
func Consolidate(files []*locale.File) []Gap {
	keys := make([]tree.KeySet, len(files))
	var all tree.KeySet
	for i, f := range files {
		keys[i] = tree.ExtractKeys(f.Tree)
		for _, p := range keys[i].Paths() {
			all.Add(p)
		}
	}

	var gaps []Gap
	for i, f := range files {
		missing := all.Minus(keys[i])
		if missing.Len() == 0 {
			continue
		}

		gap := Gap{File: f.Name}
		for _, key := range missing.Paths() {
			var present []string
			for j, other := range files {
				if j != i && keys[j].Has(key) {
					present = append(present, other.Name)
				}
			}
			gap.Missing = append(gap.Missing, MissingKey{Key: key, PresentIn: present})
		}
		gaps = append(gaps, gap)
	}
	return gaps
}

// Untranslated returns the key paths of current that updated lacks.
// Both trees must be as loaded, before any merge.
func Untranslated(current, updated *tree.Tree) tree.KeySet {
	return tree.ExtractKeys(current).Minus(tree.ExtractKeys(updated))
}
