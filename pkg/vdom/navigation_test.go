package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(seq func(func(*Node) bool)) []string {
	var out []string
	for n := range seq {
		out = append(out, n.Tag())
	}
	return out
}

// tree builds
//
//	div
//	├── p
//	│   ├── b
//	│   └── i
//	└── ul
//	    └── li
func tree() *Node {
	return Div(P(B(), I()), Ul(Li()))
}

func TestTraversals(t *testing.T) {
	tests := []struct {
		name    string
		seq     func(*Node, bool) func(func(*Node) bool)
		forward []string
		reverse []string
	}{
		{
			name:    "bfs",
			seq:     func(n *Node, r bool) func(func(*Node) bool) { return n.BFS(r) },
			forward: []string{"div", "p", "ul", "b", "i", "li"},
			reverse: []string{"div", "ul", "p", "li", "i", "b"},
		},
		{
			name:    "preorder",
			seq:     func(n *Node, r bool) func(func(*Node) bool) { return n.DFSPreorder(r) },
			forward: []string{"div", "p", "b", "i", "ul", "li"},
			reverse: []string{"div", "ul", "li", "p", "i", "b"},
		},
		{
			name:    "inorder",
			seq:     func(n *Node, r bool) func(func(*Node) bool) { return n.DFSInorder(r) },
			forward: []string{"b", "p", "i", "div", "li", "ul"},
			reverse: []string{"li", "ul", "div", "i", "p", "b"},
		},
		{
			name:    "postorder",
			seq:     func(n *Node, r bool) func(func(*Node) bool) { return n.DFSPostorder(r) },
			forward: []string{"b", "i", "p", "li", "ul", "div"},
			reverse: []string{"li", "ul", "i", "b", "p", "div"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tree()
			assert.Equal(t, tt.forward, collect(tt.seq(root, false)))
			assert.Equal(t, tt.reverse, collect(tt.seq(root, true)))
		})
	}
}

func TestTraversalStopsEarly(t *testing.T) {
	count := 0
	for range tree().DFSPreorder(false) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestNavigation(t *testing.T) {
	b, i := B(), I()
	p := P("text", b, i)
	root := Div(p, Ul(Li()))

	assert.Same(t, root, i.Root())
	assert.Equal(t, 2, i.Depth())
	assert.Equal(t, 2, i.Index())
	assert.Equal(t, -1, root.Index())
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []*Node{b, i}, p.Children())

	assert.Equal(t, "text", p.First())
	assert.Equal(t, i, p.Last())
	assert.Equal(t, i, b.Next())
	assert.Equal(t, "text", b.Prev())
	assert.Nil(t, i.Next())
	assert.Nil(t, root.Prev())
	assert.Equal(t, []any{i}, b.NextAll())
	assert.Equal(t, []any{"text"}, b.PrevAll())
	assert.Equal(t, []any{"text", i}, b.Siblings())
	assert.Equal(t, []any{b}, p.Slice(1, 2))
	assert.Nil(t, p.Slice(2, 1))

	c, err := p.Child(-1)
	require.NoError(t, err)
	assert.Equal(t, i, c)
	_, err = p.Child(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestFind(t *testing.T) {
	card := Custom("Card", "div", Named("title", H2("Hi")))
	root := Div(Section(card), P())

	assert.Equal(t, []*Node{card}, root.FindByType("card"))
	assert.Len(t, root.FindByType("div"), 1, "the root itself is not a descendant")
	assert.Len(t, root.FindByName("title"), 1)
	assert.Empty(t, root.FindByType("table"))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Div", Div().TypeName())
	assert.Equal(t, "Card", Custom("Card", "div").TypeName())
	assert.True(t, Custom("Card", "div").IsA("div"))
	assert.True(t, Custom("Card", "div").IsA("CARD"))
	assert.False(t, Div().IsA(""))
	assert.Equal(t, "Placeholder", Placeholder("x").TypeName())

	n := Div()
	n.WithType("Panel")
	assert.True(t, n.IsA("panel"))
}

func TestText(t *testing.T) {
	root := Div("Hello", P(B("big"), " world "), 42)
	assert.Equal(t, "Hello big world 42", root.Text())
}
