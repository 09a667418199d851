package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_SetKeepsInsertionOrder(t *testing.T) {
	tr := New()
	tr.Set("zeta", String("z"))
	tr.Set("alpha", String("a"))
	tr.Set("mid", String("m"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tr.Keys())
	assert.Equal(t, 3, tr.Len())
}

func TestTree_SetExistingKeyKeepsPosition(t *testing.T) {
	tr := FromPairs(O("a", String("1")), O("b", String("2")))
	tr.Set("a", String("updated"))

	assert.Equal(t, []string{"a", "b"}, tr.Keys())
	v, ok := tr.Get("a")
	require.True(t, ok)
	assert.Equal(t, String("updated"), v)
}

func TestTree_NilReadsAsEmpty(t *testing.T) {
	var tr *Tree

	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Keys())
	assert.False(t, tr.Has("anything"))
	for range tr.All() {
		t.Fatal("nil tree should not yield")
	}
}

func TestTree_AllStopsEarly(t *testing.T) {
	tr := FromPairs(O("a", Null{}), O("b", Null{}), O("c", Null{}))

	var seen []string
	for k := range tr.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestTree_CloneIsDeep(t *testing.T) {
	orig := FromPairs(
		O("menu", FromPairs(O("open", String("Open")))),
		O("items", List{String("x"), FromPairs(O("y", String("z")))}),
	)

	cp := orig.Clone()
	menu, _ := cp.Get("menu")
	menu.(*Tree).Set("open", String("changed"))
	items, _ := cp.Get("items")
	items.(List)[0] = String("changed")

	origMenu, _ := orig.Get("menu")
	v, _ := origMenu.(*Tree).Get("open")
	assert.Equal(t, String("Open"), v)
	origItems, _ := orig.Get("items")
	assert.Equal(t, String("x"), origItems.(List)[0])
}

func TestTree_KeysReturnsCopy(t *testing.T) {
	tr := FromPairs(O("a", Null{}))
	keys := tr.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a"}, tr.Keys())
}
