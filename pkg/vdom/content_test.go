package vdom

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceholder(t *testing.T) {
	_, err := NewPlaceholder("")
	assert.ErrorIs(t, err, ErrInvalidPlaceholder)

	ph, err := NewPlaceholder("", WithFixed("fixed"))
	require.NoError(t, err)
	assert.Equal(t, KindPlaceholder, ph.Kind())

	ph = Placeholder("rows", WithTemplate(nil))
	assert.Nil(t, ph.PlaceholderTemplate())
	assert.Equal(t, "rows", ph.PlaceholderKey())

	assert.Panics(t, func() { Placeholder("") })
}

func TestLookupWalksAncestors(t *testing.T) {
	ph := Placeholder("title")
	inner := Section(ph)
	root := Div(inner)
	root.InjectValue("title", "outer")

	assert.Equal(t, []any{"outer"}, ph.Resolve())

	inner.InjectValue("title", "inner")
	assert.Equal(t, []any{"inner"}, ph.Resolve(), "nearest store wins")

	inner.Inject(map[string]any{"title": "again"})
	v, ok := inner.Content("title")
	require.True(t, ok)
	assert.Equal(t, "again", v)

	_, ok = ph.Content("title")
	assert.False(t, ok, "Content only reads the own store")
}

func TestResolve(t *testing.T) {
	node := P("x")
	tests := []struct {
		name  string
		value any
		want  []any
	}{
		{"missing", nil, nil},
		{"empty string", "", nil},
		{"empty slice", []string{}, nil},
		{"zero is content", 0, []any{0}},
		{"false is content", false, []any{false}},
		{"string", "a", []any{"a"}},
		{"node", node, []any{node}},
		{"slice expands", []any{"a", nil, 2}, []any{"a", 2}},
		{"typed slice expands", []string{"a", "b"}, []any{"a", "b"}},
		{"record is one item", map[string]int{"a": 1}, []any{map[string]int{"a": 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph := Placeholder("k")
			root := Div(ph)
			if tt.value != nil {
				root.InjectValue("k", tt.value)
			}
			assert.Equal(t, tt.want, ph.Resolve())
		})
	}

	t.Run("iter.Seq expands", func(t *testing.T) {
		ph := Placeholder("k")
		Div(ph).InjectValue("k", slices.Values([]any{"a", "b"}))
		assert.Equal(t, []any{"a", "b"}, ph.Resolve())
	})

	t.Run("missing ancestor content", func(t *testing.T) {
		ph := Placeholder("nothing")
		Div(Section(ph))
		assert.Empty(t, ph.Resolve())
	})

	t.Run("fixed bypasses lookup", func(t *testing.T) {
		ph := Placeholder("k", WithFixed("fixed"))
		Div(ph).InjectValue("k", "injected")
		assert.Equal(t, []any{"fixed"}, ph.Resolve())
	})
}

func TestInstantiate(t *testing.T) {
	row := Tr(Td(Placeholder("name")), Td(Placeholder("age")))
	ph := Placeholder("people", WithTemplate(row))
	table := Table(ph)
	table.InjectValue("people", []map[string]any{{"name": "Ada", "age": 36}})

	items := ph.Resolve()
	require.Len(t, items, 1)

	clone := ph.Instantiate(items[0])
	require.NotNil(t, clone)
	assert.NotSame(t, row, clone)
	assert.Same(t, table, clone.Root(), "template clones reach the tree through their host")

	name := clone.FindByType("placeholder")[0]
	assert.Equal(t, []any{"Ada"}, name.Resolve())

	scalar := Placeholder("tag", WithTemplate(Span(Placeholder("tag")))).Instantiate("go")
	v, ok := scalar.Content("tag")
	require.True(t, ok)
	assert.Equal(t, "go", v)

	assert.Nil(t, Placeholder("x").Instantiate("y"))
}

func TestInjectRecord(t *testing.T) {
	div := Div()
	require.NoError(t, div.InjectRecord(map[string]int{"a": 1}))
	v, _ := div.Content("a")
	assert.Equal(t, 1, v)

	err := div.InjectRecord([]int{1})
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestRecordValues(t *testing.T) {
	got, ok := RecordValues(map[string]any{"b": []any{"x", nil, "y"}, "a": 1, "c": nil})
	require.True(t, ok)
	assert.Equal(t, []any{1, "x", "y"}, got)

	_, ok = RecordValues("scalar")
	assert.False(t, ok)
}
