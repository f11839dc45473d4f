package vdom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(v any) any {
	if s, ok := v.(string); ok {
		return strings.ToUpper(s)
	}
	return v
}

func TestApply(t *testing.T) {
	stamp := CacheStamp{Renderer: 1, Version: 1}

	t.Run("children and content", func(t *testing.T) {
		fixed := Placeholder("f", WithFixed("c"))
		p := P("world", 7)
		root := Div("hello", p, Placeholder("k"), fixed)
		root.Inject(map[string]any{
			"k":    []any{"a", map[string]any{"x": "b"}},
			"tags": []string{"t"},
		})
		for n := range root.DFSPreorder(false) {
			n.SetRenderCache(stamp, "cached")
		}

		assert.Same(t, root, root.Apply(upper))

		assert.Equal(t, "HELLO", root.Contents()[0])
		assert.Equal(t, []any{"WORLD", 7}, p.Contents())
		k, _ := root.Content("k")
		assert.Equal(t, []any{"A", map[string]any{"x": "B"}}, k)
		tags, _ := root.Content("tags")
		assert.Equal(t, []any{"T"}, tags)
		assert.Equal(t, "C", fixed.PlaceholderFixed())

		assert.False(t, root.Stable())
		assert.False(t, p.Stable())
	})

	t.Run("content nodes and templates are walked", func(t *testing.T) {
		embedded := Span("x")
		tmpl := Li("row")
		root := Ul(Placeholder("rows", WithTemplate(tmpl)))
		root.InjectValue("node", embedded)

		root.Apply(upper)
		assert.Equal(t, []any{"X"}, embedded.Contents())
		assert.Equal(t, []any{"ROW"}, tmpl.Contents())
		v, _ := root.Content("node")
		assert.Same(t, embedded, v)
	})

	t.Run("nodes returned for children are attached", func(t *testing.T) {
		root := Div("x", Span())
		root.Apply(func(v any) any { return B(v) })

		children := root.Children()
		require.Len(t, children, 2)
		assert.Equal(t, "b", children[0].Tag())
		assert.Same(t, root, children[0].Parent())
		assertParents(t, root)
	})

	t.Run("nil function", func(t *testing.T) {
		root := Div("x")
		root.Apply(nil)
		assert.Equal(t, []any{"x"}, root.Contents())
	})
}
