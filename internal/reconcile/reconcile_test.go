package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/transmerge/internal/locale"
	"github.com/roach88/transmerge/internal/tree"
)

func file(t *testing.T, name, doc string) *locale.File {
	t.Helper()
	tr, err := tree.ParseJSON([]byte(doc))
	require.NoError(t, err)
	return locale.NewFile(name, tr)
}

func TestConsolidate_SiblingMissingKey(t *testing.T) {
	files := []*locale.File{
		file(t, "file1", `{"x": "1", "y": "2"}`),
		file(t, "file2", `{"x": "1"}`),
	}

	gaps := Consolidate(files)

	require.Len(t, gaps, 1)
	assert.Equal(t, Gap{
		File:    "file2",
		Missing: []MissingKey{{Key: "y", PresentIn: []string{"file1"}}},
	}, gaps[0])
}

func TestConsolidate_NestedAndMultipleSources(t *testing.T) {
	files := []*locale.File{
		file(t, "de.json", `{"menu": {"open": "Öffnen"}}`),
		file(t, "en.json", `{"menu": {"open": "Open", "close": "Close"}, "title": "T"}`),
		file(t, "fr.json", `{"menu": {"close": "Fermer"}, "title": "T"}`),
	}

	gaps := Consolidate(files)

	require.Len(t, gaps, 2)
	assert.Equal(t, "de.json", gaps[0].File)
	assert.Equal(t, []MissingKey{
		{Key: "menu.close", PresentIn: []string{"en.json", "fr.json"}},
		{Key: "title", PresentIn: []string{"en.json", "fr.json"}},
	}, gaps[0].Missing)

	assert.Equal(t, "fr.json", gaps[1].File)
	assert.Equal(t, []MissingKey{
		{Key: "menu.open", PresentIn: []string{"de.json", "en.json"}},
	}, gaps[1].Missing)
}

func TestConsolidate_OwnKeysPlusMissingIsUnion(t *testing.T) {
	files := []*locale.File{
		file(t, "a", `{"p": {"q": "1"}, "r": "2"}`),
		file(t, "b", `{"p": "flat", "s": {"t": {"u": "3"}}}`),
		file(t, "c", `{}`),
		file(t, "d", `{"r": "2", "s": {}}`),
	}

	var union tree.KeySet
	for _, f := range files {
		union = union.Union(tree.ExtractKeys(f.Tree))
	}

	missingByFile := map[string][]MissingKey{}
	for _, gap := range Consolidate(files) {
		missingByFile[gap.File] = gap.Missing
	}

	for _, f := range files {
		own := tree.ExtractKeys(f.Tree)
		combined := own
		for _, mk := range missingByFile[f.Name] {
			assert.False(t, own.Has(mk.Key), "%s reported missing its own key %s", f.Name, mk.Key)
			assert.NotEmpty(t, mk.PresentIn)
			assert.NotContains(t, mk.PresentIn, f.Name)
			combined = combined.Union(tree.NewKeySet(mk.Key))
		}
		assert.True(t, combined.Equal(union), "file %s", f.Name)
	}
}

func TestConsolidate_NoGaps(t *testing.T) {
	files := []*locale.File{
		file(t, "a", `{"x": "1"}`),
		file(t, "b", `{"x": "2"}`),
	}

	assert.Empty(t, Consolidate(files))
	assert.Empty(t, Consolidate(nil))
}

func TestUntranslated(t *testing.T) {
	current := file(t, "en.json", `{"a": {"b": "X", "c": "Y"}}`).Tree
	updated := file(t, "en.json", `{"a": {"b": "Z"}}`).Tree

	keys := Untranslated(current, updated)

	assert.Equal(t, []string{"a.c"}, keys.Paths())
}

func TestUntranslated_IgnoresKeysOnlyInUpdated(t *testing.T) {
	current := file(t, "en.json", `{"a": "1"}`).Tree
	updated := file(t, "en.json", `{"a": "1", "b": "2"}`).Tree

	assert.Equal(t, 0, Untranslated(current, updated).Len())
}

func TestGrouping(t *testing.T) {
	var g Grouping
	g.Add("de.json", tree.NewKeySet("menu.close", "title"))
	g.Add("fr.json", tree.NewKeySet("title", "footer"))
	g.Add("it.json", tree.KeySet{})

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []GroupEntry{
		{Key: "menu.close", Files: []string{"de.json"}},
		{Key: "title", Files: []string{"de.json", "fr.json"}},
		{Key: "footer", Files: []string{"fr.json"}},
	}, g.Entries())
}

func TestGrouping_ZeroValue(t *testing.T) {
	var g Grouping
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Entries())
}
