package vdom

import (
	"slices"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertParents checks that every node child points back at its parent.
func assertParents(t *testing.T, n *Node) {
	t.Helper()
	for i, c := range n.Contents() {
		child, ok := c.(*Node)
		if !ok {
			continue
		}
		assert.Same(t, n, child.Parent(), "child %d of %s", i, n)
		assert.Equal(t, i, child.Index())
		assertParents(t, child)
	}
}

func tags(nodes []any) []string {
	out := make([]string, 0, len(nodes))
	for _, c := range nodes {
		if n, ok := c.(*Node); ok {
			out = append(out, n.Tag())
			continue
		}
		out = append(out, c.(string))
	}
	return out
}

func TestInsert(t *testing.T) {
	t.Run("appends by default", func(t *testing.T) {
		ul := Ul(Li(), Li())
		require.NoError(t, ul.Insert(Span()))
		assert.Equal(t, []string{"li", "li", "span"}, tags(ul.Contents()))
		assertParents(t, ul)
	})

	t.Run("negative index prepends", func(t *testing.T) {
		ul := Ul(Li(), Li())
		require.NoError(t, ul.Insert(Span(), At(-1)))
		assert.Equal(t, []string{"span", "li", "li"}, tags(ul.Contents()))
		assertParents(t, ul)
	})

	t.Run("index past end appends", func(t *testing.T) {
		ul := Ul(Li())
		require.NoError(t, ul.Insert(Span(), At(10)))
		assert.Equal(t, []string{"li", "span"}, tags(ul.Contents()))
	})

	t.Run("at index", func(t *testing.T) {
		ul := Ul(Li(), Li())
		require.NoError(t, ul.Insert([]any{Span(), B()}, At(1)))
		assert.Equal(t, []string{"li", "span", "b", "li"}, tags(ul.Contents()))
		assertParents(t, ul)
	})

	t.Run("flattens recursively", func(t *testing.T) {
		div := Div()
		require.NoError(t, div.Insert([]any{"a", []any{"b", []string{"c"}, [][]*Node{{P()}}}}))
		assert.Equal(t, []string{"a", "b", "c", "p"}, tags(div.Contents()))
		assertParents(t, div)
	})

	t.Run("flattens iterators", func(t *testing.T) {
		div := Div()
		require.NoError(t, div.Insert(slices.Values([]*Node{P(), Span()})))
		assert.Equal(t, []string{"p", "span"}, tags(div.Contents()))
	})

	t.Run("nil and empty are no-ops", func(t *testing.T) {
		div := Div()
		require.NoError(t, div.Insert(nil))
		require.NoError(t, div.Insert([]any{}))
		require.NoError(t, div.Insert(""))
		require.NoError(t, div.Insert((*Node)(nil)))
		assert.Equal(t, 0, div.Len())
	})

	t.Run("void element rejects children", func(t *testing.T) {
		br := Br()
		err := br.Insert("x")
		assert.ErrorIs(t, err, ErrVoidElement)
		assert.True(t, IsStructural(err))
		assert.Equal(t, 0, br.Len())
	})

	t.Run("placeholder rejects children", func(t *testing.T) {
		err := Placeholder("body").Insert(P())
		assert.ErrorIs(t, err, ErrNotContainer)
	})

	t.Run("cycle is rejected", func(t *testing.T) {
		inner := Span()
		outer := Div(P(inner))
		err := inner.Insert(outer)
		assert.ErrorIs(t, err, ErrCycle)
		err = outer.Insert(outer)
		assert.ErrorIs(t, err, ErrCycle)
		assertParents(t, outer)
	})

	t.Run("re-parenting detaches first", func(t *testing.T) {
		p := P()
		a, b := Div(p), Div()
		require.NoError(t, b.Insert(p))
		assert.Equal(t, 0, a.Len())
		assert.Same(t, b, p.Parent())
	})

	t.Run("reorders within the same parent", func(t *testing.T) {
		first, second, third := P(), Span(), B()
		div := Div(first, second, third)
		require.NoError(t, div.Insert(first, At(2)))
		assert.Equal(t, []string{"span", "p", "b"}, tags(div.Contents()))
		assertParents(t, div)
	})

	t.Run("named children", func(t *testing.T) {
		footer := Footer()
		page := Div(Named("footer", footer))
		got, err := page.Named("footer")
		require.NoError(t, err)
		assert.Same(t, footer, got)
		assert.Equal(t, "footer", footer.Name())

		_, err = page.Named("header")
		assert.ErrorIs(t, err, ErrNameNotFound)
		assert.True(t, IsLookup(err))
	})
}

func TestInsertInvariantRandomized(t *testing.T) {
	faker := gofakeit.New(42)
	root := Div()
	for i := 0; i < 200; i++ {
		nodes := root.Find(func(*Node) bool { return true })
		nodes = append(nodes, root)
		target := nodes[faker.IntN(len(nodes))]
		if target.IsVoid() {
			continue
		}
		var child any = Span()
		if faker.Bool() {
			child = faker.Word()
		}
		require.NoError(t, target.Insert(child, At(faker.IntRange(-2, target.Len()+2))))
	}
	assertParents(t, root)
}

func TestWrappers(t *testing.T) {
	t.Run("prepend keeps argument order", func(t *testing.T) {
		div := Div("c")
		require.NoError(t, div.Prepend("a", "b"))
		assert.Equal(t, []string{"a", "b", "c"}, tags(div.Contents()))
	})

	t.Run("append to and prepend to", func(t *testing.T) {
		div := Div("x")
		require.NoError(t, P().AppendTo(div))
		require.NoError(t, Span().PrependTo(div))
		assert.Equal(t, []string{"span", "x", "p"}, tags(div.Contents()))
	})

	t.Run("before and after", func(t *testing.T) {
		mid := P()
		div := Div(mid)
		require.NoError(t, mid.Before(Span()))
		require.NoError(t, mid.After(B(), I()))
		assert.Equal(t, []string{"span", "p", "b", "i"}, tags(div.Contents()))
		assertParents(t, div)
	})

	t.Run("before without parent", func(t *testing.T) {
		err := P().Before(Span())
		assert.ErrorIs(t, err, ErrNoParent)
		err = P().After(Span())
		assert.ErrorIs(t, err, ErrNoParent)
	})
}

func TestRemoveAndPop(t *testing.T) {
	p := P()
	div := Div("a", Named("p", p), "b")

	p.Remove()
	assert.Nil(t, p.Parent())
	assert.Equal(t, []string{"a", "b"}, tags(div.Contents()))
	_, err := div.Named("p")
	assert.ErrorIs(t, err, ErrNameNotFound)

	got, err := div.Pop(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	_, err = div.Pop(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = div.Pop(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	last, err := div.PopLast()
	require.NoError(t, err)
	assert.Equal(t, "b", last)
	_, err = div.PopLast()
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPopNamed(t *testing.T) {
	header, footer := Header(), Footer()
	page := Div(Named("header", header), P(), Named("footer", footer))

	_, err := page.PopNamed("header", "missing")
	assert.ErrorIs(t, err, ErrNameNotFound)
	assert.Equal(t, 3, page.Len(), "failed pop must not remove anything")

	got, err := page.PopNamed("header", "footer")
	require.NoError(t, err)
	assert.Equal(t, []any{header, footer}, got)
	assert.Equal(t, []string{"p"}, tags(page.Contents()))
	assert.Empty(t, page.Names())
}

func TestEmpty(t *testing.T) {
	p := P()
	div := Div(p, "x")
	removed := div.Empty()
	assert.Len(t, removed, 2)
	assert.Equal(t, 0, div.Len())
	assert.Nil(t, p.Parent())
}

func TestWrap(t *testing.T) {
	t.Run("into empty target", func(t *testing.T) {
		p := P()
		div := Div("a", p, "b")
		wrapper := Section()
		require.NoError(t, p.Wrap(wrapper))

		assert.Equal(t, []string{"a", "section", "b"}, tags(div.Contents()))
		assert.Equal(t, []*Node{p}, wrapper.Children())
		assert.Equal(t, 1, wrapper.Len())
		assertParents(t, div)
	})

	t.Run("into non-empty target", func(t *testing.T) {
		p := P()
		div := Div(p)
		err := p.Wrap(Section("existing"))
		assert.ErrorIs(t, err, ErrWrapNonEmpty)
		assert.True(t, IsStructural(err))
		assert.Same(t, div, p.Parent())
	})

	t.Run("detached node", func(t *testing.T) {
		p := P()
		wrapper := Div()
		require.NoError(t, p.Wrap(wrapper))
		assert.Same(t, wrapper, p.Parent())
		assert.Nil(t, wrapper.Parent())
	})

	t.Run("wrap inner", func(t *testing.T) {
		div := Div("a", P())
		inner := Section()
		require.NoError(t, div.WrapInner(inner))
		assert.Equal(t, []*Node{inner}, div.Children())
		assert.Equal(t, []string{"a", "p"}, tags(inner.Contents()))
		assertParents(t, div)
	})

	t.Run("wrap many", func(t *testing.T) {
		targets := []*Node{Div(), Div("busy"), Div()}
		clones, err := Span("x").WrapMany(false, targets...)
		require.NoError(t, err)
		require.Len(t, clones, 3)
		assert.Same(t, targets[0], clones[0].Parent())
		assert.Nil(t, clones[1].Parent())
		assert.Same(t, targets[2], clones[2].Parent())

		_, err = Span().WrapMany(true, Div("busy"))
		assert.ErrorIs(t, err, ErrWrapNonEmpty)
	})
}

func TestReplaceWith(t *testing.T) {
	p := P()
	div := Div("a", p, "b")
	require.NoError(t, p.ReplaceWith(Span()))
	assert.Equal(t, []string{"a", "span", "b"}, tags(div.Contents()))
	assert.Nil(t, p.Parent())

	assert.ErrorIs(t, P().ReplaceWith(Span()), ErrNoParent)
}

func TestMove(t *testing.T) {
	t.Run("old parent loses the node", func(t *testing.T) {
		p := P()
		oldParent, newParent := Div(p), Section("x")
		require.NoError(t, p.Move(newParent, AtStart(), WithName("moved")))

		assert.NotContains(t, oldParent.Contents(), p)
		assert.Equal(t, []string{"p", "x"}, tags(newParent.Contents()))
		assert.Same(t, newParent, p.Parent())
		assert.Same(t, p, newParent.NamedNode("moved"))
	})

	t.Run("failed move leaves node in place", func(t *testing.T) {
		p := P()
		oldParent := Div(p)
		err := p.Move(Br())
		assert.ErrorIs(t, err, ErrVoidElement)
		assert.Same(t, oldParent, p.Parent())
		assert.Equal(t, 0, p.Index())
	})

	t.Run("move children", func(t *testing.T) {
		src := Div("a", "b", "c", "d")
		dst := Div()
		require.NoError(t, src.MoveChildren(dst, 1, 3))
		assert.Equal(t, []string{"a", "d"}, tags(src.Contents()))
		assert.Equal(t, []string{"b", "c"}, tags(dst.Contents()))

		require.NoError(t, src.MoveChildren(dst, 0, -1))
		assert.Equal(t, 0, src.Len())
		assert.Equal(t, []string{"b", "c", "a", "d"}, tags(dst.Contents()))
	})
}

func TestClone(t *testing.T) {
	inner := Span(Class("inner"), "text")
	orig := Div(ID("root"), Named("inner", inner), P())
	orig.InjectValue("k", "v")

	c := orig.Clone()
	assert.Nil(t, c.Parent())
	assertParents(t, c)

	clonedInner := c.NamedNode("inner")
	require.NotNil(t, clonedInner)
	assert.NotSame(t, inner, clonedInner)
	assert.Same(t, c, clonedInner.Parent())

	require.NoError(t, clonedInner.AddClass("changed"))
	require.NoError(t, clonedInner.Append("more"))
	require.NoError(t, c.SetID("other"))
	c.InjectValue("k", "w")

	assert.Equal(t, []string{"inner"}, inner.Attrs().Classes())
	assert.Equal(t, 1, inner.Len())
	assert.Equal(t, "root", orig.ID())
	v, _ := orig.Content("k")
	assert.Equal(t, "v", v)
}

func TestCloneDetachesState(t *testing.T) {
	t.Run("name is reset on the clone root", func(t *testing.T) {
		inner := Span()
		orig := Div(Named("inner", inner))
		assert.Equal(t, "inner", inner.Name())

		assert.Empty(t, inner.Clone().Name())
		assert.Equal(t, "inner", orig.Clone().NamedNode("inner").Name())
	})

	t.Run("collection content is copied", func(t *testing.T) {
		rows := []any{map[string]any{"name": "a"}}
		orig := Div()
		orig.Inject(map[string]any{
			"rows":  rows,
			"meta":  map[string]any{"tags": []any{"x"}},
			"items": []map[string]any{{"id": 1}},
		})

		c := orig.Clone()
		v, _ := c.Content("rows")
		v.([]any)[0].(map[string]any)["name"] = "changed"
		m, _ := c.Content("meta")
		m.(map[string]any)["tags"].([]any)[0] = "y"
		it, _ := c.Content("items")
		it.([]map[string]any)[0]["id"] = 2

		assert.Equal(t, "a", rows[0].(map[string]any)["name"])
		m, _ = orig.Content("meta")
		assert.Equal(t, "x", m.(map[string]any)["tags"].([]any)[0])
		it, _ = orig.Content("items")
		assert.Equal(t, 1, it.([]map[string]any)[0]["id"])
	})
}

func TestInsertByteSequences(t *testing.T) {
	type word [3]byte

	n := Div()
	require.NotPanics(t, func() {
		require.NoError(t, n.Insert([4]byte{'a', 'b', 'c', 'd'}))
	})
	require.NoError(t, n.Insert([]byte("ef")))
	require.NoError(t, n.Insert(word{'g', 'h', 'i'}))
	assert.Equal(t, []any{"abcd", "ef", "ghi"}, n.Contents())
}

func TestTimesAndMultiply(t *testing.T) {
	clones, err := Li("x").Times(3)
	require.NoError(t, err)
	assert.Len(t, clones, 3)

	_, err = Li().Times(-1)
	assert.ErrorIs(t, err, ErrInvalidContent)

	li := Li("x")
	ul := Ul(li, P())
	require.NoError(t, li.Multiply(3))
	assert.Equal(t, []string{"li", "li", "li", "p"}, tags(ul.Contents()))
	assertParents(t, ul)

	require.NoError(t, li.Multiply(0))
	assert.Equal(t, 3, ul.Len())

	assert.ErrorIs(t, Li().Multiply(2), ErrNoParent)
}

func TestElementAttrMutators(t *testing.T) {
	div := Div()
	require.NoError(t, div.SetAttr("data-x", 1))
	require.NoError(t, div.Attr(ID("main"), Class("a"), ClassIf(false, "b")))
	require.NoError(t, div.AddClass("c"))
	require.NoError(t, div.ToggleClass("a"))
	assert.True(t, div.IsID("main"))
	assert.True(t, div.HasClass("c"))
	assert.False(t, div.HasClass("a"))

	require.NoError(t, div.CSS(map[string]string{"color": "red"}))
	require.NoError(t, div.Hide())
	v, _ := div.Attrs().StyleValue("display")
	assert.Equal(t, "none", v)
	require.NoError(t, div.Toggle())
	v, _ = div.Attrs().StyleValue("display")
	assert.Equal(t, "block", v)

	require.NoError(t, div.RemoveAttr("data-x"))
	_, ok := div.GetAttr("data-x")
	assert.False(t, ok)

	err := Placeholder("x").SetAttr("id", "y")
	assert.ErrorIs(t, err, ErrNotElement)
}

func TestConstructorsPanicOnVoidChildren(t *testing.T) {
	assert.Panics(t, func() { Br("text") })
	assert.NotPanics(t, func() { Img(Src("/a.png"), Alt("a")) })
}
