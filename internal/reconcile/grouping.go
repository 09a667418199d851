package reconcile

import "github.com/roach88/transmerge/internal/tree"

// GroupEntry is one untranslated key and the files it is untranslated in.
type GroupEntry struct {
	Key   string   `json:"key"`
	Files []string `json:"files"`
}

// Grouping accumulates untranslated keys across files.
// The zero value is ready to use.
type Grouping struct {
	order []string
	files map[string][]string
}

// Add records that file lacks every key in keys.
func (g *Grouping) Add(file string, keys tree.KeySet) {
	if g.files == nil {
		g.files = make(map[string][]string)
	}
	for _, key := range keys.Paths() {
		if _, ok := g.files[key]; !ok {
			g.order = append(g.order, key)
		}
		g.files[key] = append(g.files[key], file)
	}
}

// Len returns the number of distinct keys recorded.
func (g *Grouping) Len() int {
	return len(g.order)
}

// Entries returns the keys in first-seen order, each with its files in
// the order they were added.
func (g *Grouping) Entries() []GroupEntry {
	entries := make([]GroupEntry, 0, len(g.order))
	for _, key := range g.order {
		files := make([]string, len(g.files[key]))
		copy(files, g.files[key])
		entries = append(entries, GroupEntry{Key: key, Files: files})
	}
	return entries
}
