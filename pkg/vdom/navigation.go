package vdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/domtree/internal/errors"
)

// Parent returns the node holding n as a child, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Host returns the node a view instance or template clone renders for.
func (n *Node) Host() *Node { return n.host }

// up returns the next node on the lookup chain: the parent, or the host of
// a detached view instance or template clone.
func (n *Node) up() *Node {
	if n.parent != nil {
		return n.parent
	}
	return n.host
}

// Root returns the topmost node above n, following hosts of view instances.
func (n *Node) Root() *Node {
	cur := n
	for next := cur.up(); next != nil; next = cur.up() {
		cur = next
	}
	return cur
}

// Depth returns the number of parents above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Index returns the position of n in its parent, or -1 for a root.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return n.parent.indexOf(n)
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if cn, ok := c.(*Node); ok && cn == child {
			return i
		}
	}
	return -1
}

func (n *Node) indexOfValue(v any) int {
	for i, c := range n.children {
		if sameChild(c, v) {
			return i
		}
	}
	return -1
}

func (n *Node) indexOfChild(v any) int {
	if node, ok := v.(*Node); ok {
		return n.indexOf(node)
	}
	return n.indexOfValue(v)
}

// Len returns the number of children, nodes and plain values alike.
func (n *Node) Len() int { return len(n.children) }

// Contents returns a copy of all children.
func (n *Node) Contents() []any {
	return append([]any(nil), n.children...)
}

// Children returns the node children, skipping plain values.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// Child returns the child at index i. Negative indexes count from the end.
func (n *Node) Child(i int) (any, error) {
	if i < 0 {
		i += len(n.children)
	}
	if i < 0 || i >= len(n.children) {
		return nil, errors.New("E120").WithDetailf("index %d, %d children", i, len(n.children))
	}
	return n.children[i], nil
}

// Named returns the child inserted under name.
func (n *Node) Named(name string) (any, error) {
	v, ok := n.named[name]
	if !ok {
		return nil, errors.New("E121").WithDetailf("name %q in %s", name, n.TypeName())
	}
	return v, nil
}

// NamedNode returns the node child inserted under name, or nil.
func (n *Node) NamedNode(name string) *Node {
	v, _ := n.named[name].(*Node)
	return v
}

// Names returns the names of the named children, sorted.
func (n *Node) Names() []string {
	return sortedKeys(n.named)
}

// First returns the first child, or nil.
func (n *Node) First() any {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Last returns the last child, or nil.
func (n *Node) Last() any {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Next returns the sibling after n, or nil.
func (n *Node) Next() any {
	i := n.Index()
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// Prev returns the sibling before n, or nil.
func (n *Node) Prev() any {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// NextAll returns every sibling after n.
func (n *Node) NextAll() []any {
	i := n.Index()
	if i < 0 {
		return nil
	}
	return append([]any(nil), n.parent.children[i+1:]...)
}

// PrevAll returns every sibling before n, nearest last.
func (n *Node) PrevAll() []any {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return append([]any(nil), n.parent.children[:i]...)
}

// Siblings returns the other children of n's parent.
func (n *Node) Siblings() []any {
	i := n.Index()
	if i < 0 {
		return nil
	}
	out := make([]any, 0, len(n.parent.children)-1)
	out = append(out, n.parent.children[:i]...)
	return append(out, n.parent.children[i+1:]...)
}

// Slice returns a copy of children[start:end], clamped to the valid range.
func (n *Node) Slice(start, end int) []any {
	if start < 0 {
		start = 0
	}
	if end < 0 || end > len(n.children) {
		end = len(n.children)
	}
	if start >= end {
		return nil
	}
	return append([]any(nil), n.children[start:end]...)
}

// Find returns the descendants matching pred in preorder.
func (n *Node) Find(pred func(*Node) bool) []*Node {
	var out []*Node
	for d := range n.DFSPreorder(false) {
		if d != n && pred(d) {
			out = append(out, d)
		}
	}
	return out
}

// FindByType returns the descendants that are instances of typeName.
func (n *Node) FindByType(typeName string) []*Node {
	return n.Find(func(d *Node) bool { return d.IsA(typeName) })
}

// FindByName returns the descendants inserted under name.
func (n *Node) FindByName(name string) []*Node {
	return n.Find(func(d *Node) bool { return d.name == name })
}

// Text returns the text of the subtree without markup, words of adjacent
// children separated by a space.
func (n *Node) Text() string {
	parts := make([]string, 0, len(n.children))
	for _, c := range n.children {
		var s string
		switch v := c.(type) {
		case *Node:
			s = v.Text()
		case string:
			s = v
		case RawHTML:
			s = string(v)
		case nil:
		default:
			s = fmt.Sprint(v)
		}
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
