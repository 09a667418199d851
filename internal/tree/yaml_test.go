package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustYAML(t *testing.T, s string) *Tree {
	t.Helper()
	tr, err := ParseYAML([]byte(s))
	require.NoError(t, err)
	return tr
}

func TestParseYAML_KeepsDocumentOrder(t *testing.T) {
	tr := mustYAML(t, `
zebra: Z
apple:
  pear: P
  fig: F
mango: M
`)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, tr.Keys())
	apple, _ := tr.Get("apple")
	assert.Equal(t, []string{"pear", "fig"}, apple.(*Tree).Keys())
}

func TestParseYAML_ScalarTypes(t *testing.T) {
	tr := mustYAML(t, `
s: text
quoted: "42"
i: 42
f: 1.5
t: true
n: null
tilde: ~
l:
  - one
  - 2
`)

	get := func(k string) Value {
		v, ok := tr.Get(k)
		require.True(t, ok, k)
		return v
	}

	assert.Equal(t, String("text"), get("s"))
	assert.Equal(t, String("42"), get("quoted"))
	assert.Equal(t, Number("42"), get("i"))
	assert.Equal(t, Number("1.5"), get("f"))
	assert.Equal(t, Bool(true), get("t"))
	assert.Equal(t, Null{}, get("n"))
	assert.Equal(t, Null{}, get("tilde"))
	assert.Equal(t, List{String("one"), Number("2")}, get("l"))
}

func TestParseYAML_ExpandsAliases(t *testing.T) {
	tr := mustYAML(t, `
base: &common
  ok: OK
  cancel: Cancel
dialog: *common
`)

	dialog, ok := tr.Get("dialog")
	require.True(t, ok)
	require.Equal(t, KindTree, KindOf(dialog))
	assert.Equal(t, []string{"ok", "cancel"}, dialog.(*Tree).Keys())
}

func TestParseYAML_EmptyDocument(t *testing.T) {
	tr := mustYAML(t, "")
	assert.Equal(t, 0, tr.Len())
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", "a: [unclosed\n"},
		{"sequence root", "- a\n- b\n"},
		{"scalar root", "just text\n"},
		{"complex key", "? [a, b]\n: value\n"},
		{"self alias", "a: &x\n  b: *x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.input))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			assert.Equal(t, FormatYAML, perr.Format)
		})
	}
}

func TestMarshalYAML_Layout(t *testing.T) {
	tr := FromPairs(
		O("title", String("Hello")),
		O("menu", FromPairs(
			O("open", String("Open")),
			O("count", Number("3")),
		)),
		O("enabled", Bool(true)),
	)

	data, err := MarshalYAML(tr)
	require.NoError(t, err)

	assert.Equal(t, "title: Hello\nmenu:\n  open: Open\n  count: 3\nenabled: true\n", string(data))
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	tr := FromPairs(
		O("greeting", String("Grüße")),
		O("looks_like_bool", String("true")),
		O("looks_like_number", String("12")),
		O("empty_string", String("")),
		O("none", Null{}),
		O("items", List{String("a"), Number("1.5")}),
		O("nested", FromPairs(O("deep", FromPairs(O("k", String("v")))))),
	)

	data, err := MarshalYAML(tr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "greeting: Grüße")

	back, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, tr, back)
}
