package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeys_IncludesContainersAndLeaves(t *testing.T) {
	tr := FromPairs(
		O("a", FromPairs(
			O("b", String("X")),
			O("c", FromPairs(O("d", String("Y")))),
		)),
		O("e", String("Z")),
	)

	keys := ExtractKeys(tr)

	assert.Equal(t, []string{"a", "a.b", "a.c", "a.c.d", "e"}, keys.Paths())
}

func TestExtractKeys_EmptySubtreeIsAKey(t *testing.T) {
	tr := FromPairs(O("section", New()))

	keys := ExtractKeys(tr)

	assert.Equal(t, []string{"section"}, keys.Paths())
}

func TestExtractKeys_ListsAreLeaves(t *testing.T) {
	tr := FromPairs(O("items", List{FromPairs(O("inner", String("x")))}))

	keys := ExtractKeys(tr)

	assert.Equal(t, []string{"items"}, keys.Paths())
}

func TestExtractKeys_StableAcrossRoundTrip(t *testing.T) {
	tr := FromPairs(
		O("nav", FromPairs(O("home", String("Home")), O("about", String("À propos")))),
		O("count", Number("3")),
		O("list", List{String("a")}),
		O("empty", New()),
	)

	data, err := MarshalJSON(tr)
	require.NoError(t, err)
	back, err := ParseJSON(data)
	require.NoError(t, err)

	first := ExtractKeys(tr)
	second := ExtractKeys(back)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Paths(), second.Paths())
}

func TestKeySet_Operations(t *testing.T) {
	a := NewKeySet("x", "y", "z")
	b := NewKeySet("z", "w")

	assert.Equal(t, []string{"x", "y", "z", "w"}, a.Union(b).Paths())
	assert.Equal(t, []string{"x", "y"}, a.Minus(b).Paths())
	assert.Equal(t, []string{"w"}, b.Minus(a).Paths())
	assert.True(t, a.Has("y"))
	assert.False(t, a.Has("w"))
	assert.True(t, NewKeySet("y", "x").Equal(NewKeySet("x", "y")))
	assert.False(t, a.Equal(b))
}

func TestKeySet_ZeroValueUsable(t *testing.T) {
	var s KeySet
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))

	s.Add("a")
	s.Add("a")
	assert.Equal(t, 1, s.Len())
}

func TestKeySet_CopiesStayConsistent(t *testing.T) {
	orig := NewKeySet("a")
	shared := orig
	shared.Add("b")

	assert.True(t, orig.Has("b"))
	assert.Equal(t, 2, orig.Len())
	assert.Equal(t, []string{"a", "b"}, orig.Paths())

	clone := orig.Clone()
	clone.Add("c")

	assert.False(t, orig.Has("c"))
	assert.Equal(t, []string{"a", "b"}, orig.Paths())
	assert.Equal(t, []string{"a", "b", "c"}, clone.Paths())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "a", JoinPath("", "a"))
	assert.Equal(t, "a.b", JoinPath("a", "b"))
}
