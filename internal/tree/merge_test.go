package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, s string) *Tree {
	t.Helper()
	tr, err := ParseJSON([]byte(s))
	require.NoError(t, err)
	return tr
}

func marshalString(t *testing.T, tr *Tree) string {
	t.Helper()
	data, err := MarshalJSON(tr)
	require.NoError(t, err)
	return string(data)
}

func TestMerge_PropagatesNestedValues(t *testing.T) {
	current := mustJSON(t, `{"a": {"b": "X", "c": "Y"}}`)
	updated := mustJSON(t, `{"a": {"b": "Z"}}`)

	merged := Merge(current, updated)

	expected := mustJSON(t, `{"a": {"b": "Z", "c": "Y"}}`)
	assert.Equal(t, marshalString(t, expected), marshalString(t, merged))
}

func TestMerge_ReturnsBase(t *testing.T) {
	base := mustJSON(t, `{"a": "1"}`)
	merged := Merge(base, mustJSON(t, `{"a": "2"}`))

	assert.Same(t, base, merged)
}

func TestMerge_IgnoresKeysOnlyInIncoming(t *testing.T) {
	base := mustJSON(t, `{"a": {"b": "X"}}`)
	incoming := mustJSON(t, `{"new": "N", "a": {"b": "Y", "extra": "E"}}`)

	merged := Merge(base, incoming)

	assert.Equal(t, []string{"a", "a.b"}, ExtractKeys(merged).Paths())
	assert.False(t, merged.Has("new"))
}

func TestMerge_LeafTakesIncomingValue(t *testing.T) {
	base := mustJSON(t, `{"s": "old", "n": 1, "b": false, "z": "x", "l": ["a"]}`)
	incoming := mustJSON(t, `{"s": "new", "n": 2.50, "b": true, "z": null, "l": ["b", "c"]}`)

	merged := Merge(base, incoming)

	for _, key := range []string{"s", "n", "b", "z", "l"} {
		got, _ := merged.Get(key)
		want, _ := incoming.Get(key)
		assert.Equal(t, want, got, key)
	}
	n, _ := merged.Get("n")
	assert.Equal(t, Number("2.50"), n)
}

func TestMerge_TypeMismatchOverwrites(t *testing.T) {
	t.Run("subtree replaced by leaf", func(t *testing.T) {
		base := mustJSON(t, `{"a": {"b": "X"}, "k": "keep"}`)
		merged := Merge(base, mustJSON(t, `{"a": "flat"}`))

		v, _ := merged.Get("a")
		assert.Equal(t, String("flat"), v)
		assert.Equal(t, []string{"a", "k"}, merged.Keys())
	})

	t.Run("leaf replaced by subtree", func(t *testing.T) {
		base := mustJSON(t, `{"a": "flat"}`)
		merged := Merge(base, mustJSON(t, `{"a": {"b": "X"}}`))

		v, _ := merged.Get("a")
		require.Equal(t, KindTree, KindOf(v))
		assert.Equal(t, []string{"b"}, v.(*Tree).Keys())
	})
}

func TestMerge_PreservesBaseKeySet(t *testing.T) {
	fixtures := []struct {
		name     string
		base     string
		incoming string
	}{
		{"disjoint", `{"a": "1"}`, `{"b": "2"}`},
		{"empty incoming", `{"a": {"b": "1"}}`, `{}`},
		{"empty base", `{}`, `{"a": "1"}`},
		{"deep", `{"a": {"b": {"c": "1", "d": "2"}}, "e": "3"}`, `{"a": {"b": {"c": "9", "x": "0"}}, "y": "1"}`},
		{"reordered incoming", `{"a": "1", "b": "2", "c": "3"}`, `{"c": "C", "a": "A"}`},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			base := mustJSON(t, f.base)
			before := base.Keys()

			merged := Merge(base, mustJSON(t, f.incoming))

			assert.Equal(t, before, merged.Keys())
			assert.Equal(t, ExtractKeys(mustJSON(t, f.base)).Paths(), ExtractKeys(merged).Paths())
		})
	}
}

func TestMerge_KeepsBaseOrder(t *testing.T) {
	base := mustJSON(t, `{"first": "1", "second": "2"}`)
	merged := Merge(base, mustJSON(t, `{"second": "B", "first": "A"}`))

	assert.Equal(t, "{\n  \"first\": \"A\",\n  \"second\": \"B\"\n}", marshalString(t, merged))
}
