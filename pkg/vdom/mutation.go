package vdom

import (
	"iter"
	"reflect"
	"strconv"
	"strings"

	"github.com/vango-dev/domtree/internal/errors"
)

// InsertOption configures Insert.
type InsertOption func(*insertOptions)

type insertOptions struct {
	index    int
	hasIndex bool
	prepend  bool
	name     string
}

// At inserts at position i. Negative positions prepend, positions past the
// end append.
func At(i int) InsertOption {
	return func(o *insertOptions) {
		o.index = i
		o.hasIndex = true
	}
}

// AtStart inserts before the existing children.
func AtStart() InsertOption {
	return func(o *insertOptions) {
		o.prepend = true
	}
}

// WithName exposes the inserted children under name (see Named). When
// several children are inserted at once the last one wins.
func WithName(name string) InsertOption {
	return func(o *insertOptions) {
		o.name = name
	}
}

// Insert adds children to the node. Nested slices, arrays and iterators are
// flattened recursively; nil and empty values are skipped. Node children
// are detached from their previous parent first.
//
// Validation happens before anything is detached: a failing Insert leaves
// the tree untouched.
func (n *Node) Insert(children any, opts ...InsertOption) error {
	items := flatten(children, nil)
	if len(items) == 0 {
		return nil
	}

	var o insertOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := n.canAccept(items); err != nil {
		return err
	}

	pos := len(n.children)
	switch {
	case o.prepend:
		pos = 0
	case o.hasIndex && o.index < 0:
		pos = 0
	case o.hasIndex && o.index < len(n.children):
		pos = o.index
	}

	for _, item := range items {
		if child, ok := item.(*Node); ok && child.parent != nil {
			if child.parent == n && child.Index() < pos {
				pos--
			}
			child.detach()
		}
		if pos > len(n.children) {
			pos = len(n.children)
		}
		n.children = append(n.children, nil)
		copy(n.children[pos+1:], n.children[pos:])
		n.children[pos] = item
		pos++

		if child, ok := item.(*Node); ok {
			child.parent = n
			child.host = nil
			child.invalidateSubtree()
		}
		if o.name != "" {
			if n.named == nil {
				n.named = make(map[string]any)
			}
			n.named[o.name] = item
			if child, ok := item.(*Node); ok {
				child.name = o.name
			}
		}
	}
	n.markDirty()
	return nil
}

// canAccept validates an insertion of items into n.
func (n *Node) canAccept(items []any) error {
	switch {
	case n.kind == KindPlaceholder:
		return errors.New("E105").WithDetailf("placeholder %q", n.key)
	case n.void:
		return errors.New("E101").WithDetailf("<%s> cannot hold %d children", n.tag, len(items))
	}
	for _, item := range items {
		child, ok := item.(*Node)
		if !ok {
			continue
		}
		if child == n || child.isAncestorOf(n) {
			return errors.New("E104").WithDetailf("%s into %s", child.TypeName(), n.TypeName())
		}
	}
	return nil
}

// isAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// detach removes n from its parent's children.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.removeAt(i)
		return
	}
	n.parent = nil
}

// removeAt removes the child at i and clears its back reference.
func (n *Node) removeAt(i int) any {
	item := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	n.forget(item)
	if child, ok := item.(*Node); ok {
		child.parent = nil
		child.name = ""
	}
	n.markDirty()
	return item
}

// forget drops named entries pointing at a removed child, unless an equal
// plain value is still among the children.
func (n *Node) forget(item any) {
	if len(n.named) == 0 {
		return
	}
	if _, isNode := item.(*Node); !isNode && n.indexOfValue(item) >= 0 {
		return
	}
	for name, v := range n.named {
		if sameChild(v, item) {
			delete(n.named, name)
		}
	}
}

// Append adds children after the existing ones.
func (n *Node) Append(children ...any) error {
	return n.Insert(children)
}

// Prepend adds children before the existing ones, keeping their order.
func (n *Node) Prepend(children ...any) error {
	return n.Insert(children, AtStart())
}

// AppendTo appends n to parent.
func (n *Node) AppendTo(parent *Node) error {
	if parent == nil {
		return errors.New("E132").WithDetail("nil parent")
	}
	return parent.Insert(n)
}

// PrependTo prepends n to parent.
func (n *Node) PrependTo(parent *Node) error {
	if parent == nil {
		return errors.New("E132").WithDetail("nil parent")
	}
	return parent.Insert(n, AtStart())
}

// Before inserts siblings right before n in its parent.
func (n *Node) Before(siblings ...any) error {
	if n.parent == nil {
		return errors.New("E102").WithDetailf("Before on %s", n.TypeName())
	}
	return n.parent.Insert(siblings, At(n.Index()))
}

// After inserts siblings right after n in its parent.
func (n *Node) After(siblings ...any) error {
	if n.parent == nil {
		return errors.New("E102").WithDetailf("After on %s", n.TypeName())
	}
	return n.parent.Insert(siblings, At(n.Index()+1))
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() *Node {
	n.detach()
	return n
}

// Pop removes and returns the child at index i.
func (n *Node) Pop(i int) (any, error) {
	if i < 0 || i >= len(n.children) {
		return nil, errors.New("E120").WithDetailf("index %d, %d children", i, len(n.children))
	}
	return n.removeAt(i), nil
}

// PopLast removes and returns the last child.
func (n *Node) PopLast() (any, error) {
	return n.Pop(len(n.children) - 1)
}

// PopNamed removes the children inserted under the given names. Every name
// must resolve before anything is removed.
func (n *Node) PopNamed(names ...string) ([]any, error) {
	found := make([]any, 0, len(names))
	for _, name := range names {
		v, ok := n.named[name]
		if !ok {
			return nil, errors.New("E121").WithDetailf("name %q in %s", name, n.TypeName())
		}
		found = append(found, v)
	}
	for _, v := range found {
		if i := n.indexOfChild(v); i >= 0 {
			n.removeAt(i)
		}
	}
	return found, nil
}

// Empty removes all children and returns them.
func (n *Node) Empty() []any {
	return n.detachRange(0, len(n.children))
}

// detachRange removes children[from:to] and clears their back references.
func (n *Node) detachRange(from, to int) []any {
	if from < 0 {
		from = 0
	}
	if to > len(n.children) {
		to = len(n.children)
	}
	if from >= to {
		return nil
	}
	removed := append([]any(nil), n.children[from:to]...)
	n.children = append(n.children[:from], n.children[to:]...)
	for _, item := range removed {
		n.forget(item)
		if child, ok := item.(*Node); ok {
			child.parent = nil
			child.name = ""
		}
	}
	n.markDirty()
	return removed
}

// Wrap places n inside other, taking n's position in its parent. other
// must be empty: wrapping into a non empty element would silently move
// the existing children around.
func (n *Node) Wrap(other *Node) error {
	if other == nil {
		return errors.New("E132").WithDetail("nil wrapper")
	}
	if len(other.children) > 0 {
		return errors.New("E103").WithDetailf("%s has %d children", other.TypeName(), len(other.children))
	}
	if err := other.canAccept([]any{n}); err != nil {
		return err
	}
	if p := n.parent; p != nil {
		if other == p || other.isAncestorOf(p) {
			return errors.New("E104").WithDetailf("%s into %s", other.TypeName(), p.TypeName())
		}
		i := n.Index()
		n.detach()
		if err := p.Insert(other, At(i)); err != nil {
			return err
		}
	}
	return other.Insert(n)
}

// WrapInner moves all children of n into other and makes other the only
// child of n.
func (n *Node) WrapInner(other *Node) error {
	if other == nil {
		return errors.New("E132").WithDetail("nil wrapper")
	}
	if other == n || n.isAncestorOf(other) {
		return errors.New("E104").WithDetailf("%s inside %s", other.TypeName(), n.TypeName())
	}
	if len(n.children) > 0 {
		if err := other.canAccept(n.children); err != nil {
			return err
		}
	}
	if err := n.canAccept([]any{other}); err != nil {
		return err
	}
	moved := n.detachRange(0, len(n.children))
	if err := other.Insert(moved); err != nil {
		return err
	}
	return n.Insert(other)
}

// WrapMany wraps a clone of n into each target. Targets that already have
// children are skipped and reported; with strict the failures are returned
// as a single structural error, otherwise the unwrapped clone is returned
// in their place.
func (n *Node) WrapMany(strict bool, targets ...*Node) ([]*Node, error) {
	clones := make([]*Node, len(targets))
	var failed []string
	for i, t := range targets {
		c := n.Clone()
		clones[i] = c
		if err := c.Wrap(t); err != nil {
			failed = append(failed, strconv.Itoa(i))
		}
	}
	if strict && len(failed) > 0 {
		return clones, errors.New("E103").WithDetailf("failed on targets %s", strings.Join(failed, ", "))
	}
	return clones, nil
}

// ReplaceWith puts replacement in n's position and detaches n.
func (n *Node) ReplaceWith(replacement any) error {
	p := n.parent
	if p == nil {
		return errors.New("E102").WithDetailf("ReplaceWith on %s", n.TypeName())
	}
	if err := p.Insert(replacement, At(n.Index()+1)); err != nil {
		return err
	}
	n.detach()
	return nil
}

// Move detaches n and inserts it into newParent. The move is atomic: if
// newParent cannot accept n, n stays where it was.
func (n *Node) Move(newParent *Node, opts ...InsertOption) error {
	if newParent == nil {
		return errors.New("E132").WithDetail("nil parent")
	}
	return newParent.Insert(n, opts...)
}

// MoveChildren moves children[from:to] of n to the end of newParent. A
// negative to means up to the last child.
func (n *Node) MoveChildren(newParent *Node, from, to int) error {
	if newParent == nil {
		return errors.New("E132").WithDetail("nil parent")
	}
	if to < 0 || to > len(n.children) {
		to = len(n.children)
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return nil
	}
	if err := newParent.canAccept(n.children[from:to]); err != nil {
		return err
	}
	removed := n.detachRange(from, to)
	return newParent.Insert(removed)
}

// Clone returns a deep copy of n and its subtree. The clone is detached and
// unnamed. It shares no nodes, attributes or content stores with the
// original; []any and map[string]any content values are copied recursively
// and other plain values are copied as values.
func (n *Node) Clone() *Node {
	c := n.clone()
	c.name = ""
	return c
}

func (n *Node) clone() *Node {
	c := &Node{
		kind:     n.kind,
		tag:      n.tag,
		typeName: n.typeName,
		void:     n.void,
		name:     n.name,
		key:      n.key,
		fixed:    cloneValue(n.fixed),
	}
	if n.attrs != nil {
		c.attrs = n.attrs.Clone()
	}
	if n.template != nil {
		c.template = n.template.Clone()
	}
	if n.content != nil {
		c.content = make(map[string]any, len(n.content))
		for k, v := range n.content {
			c.content[k] = cloneValue(v)
		}
	}

	mapped := make(map[*Node]*Node)
	if len(n.children) > 0 {
		c.children = make([]any, len(n.children))
		for i, item := range n.children {
			if child, ok := item.(*Node); ok {
				cc := child.clone()
				cc.parent = c
				mapped[child] = cc
				c.children[i] = cc
				continue
			}
			c.children[i] = item
		}
	}
	if len(n.named) > 0 {
		c.named = make(map[string]any, len(n.named))
		for name, v := range n.named {
			if child, ok := v.(*Node); ok {
				c.named[name] = mapped[child]
				continue
			}
			c.named[name] = v
		}
	}
	return c
}

// cloneValue deep copies nodes and generic collections; other values are
// returned as is.
func cloneValue(v any) any {
	switch x := v.(type) {
	case *Node:
		if x != nil {
			return x.Clone()
		}
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item).(map[string]any)
		}
		return out
	}
	return v
}

// Times returns count clones of n.
func (n *Node) Times(count int) ([]*Node, error) {
	if count < 0 {
		return nil, errors.New("E132").WithDetailf("negative count %d", count)
	}
	out := make([]*Node, count)
	for i := range out {
		out[i] = n.Clone()
	}
	return out, nil
}

// Multiply makes n appear count times in its parent by inserting clones
// right after it. A count of zero removes n. Multiplying a detached node
// is a structural error.
func (n *Node) Multiply(count int) error {
	if count < 0 {
		return errors.New("E132").WithDetailf("negative count %d", count)
	}
	if n.parent == nil {
		return errors.New("E102").WithDetailf("Multiply on %s", n.TypeName())
	}
	if count == 0 {
		n.detach()
		return nil
	}
	clones, _ := n.Times(count - 1)
	return n.After(clones)
}

// flatten expands nested collections into concrete items.
func flatten(v any, out []any) []any {
	switch x := v.(type) {
	case nil:
		return out
	case *Node:
		if x == nil {
			return out
		}
		return append(out, x)
	case string:
		if x == "" {
			return out
		}
		return append(out, x)
	case RawHTML:
		if x == "" {
			return out
		}
		return append(out, x)
	case []any:
		for _, item := range x {
			out = flatten(item, out)
		}
		return out
	case []*Node:
		for _, item := range x {
			out = flatten(item, out)
		}
		return out
	case []string:
		for _, item := range x {
			out = flatten(item, out)
		}
		return out
	case iter.Seq[any]:
		for item := range x {
			out = flatten(item, out)
		}
		return out
	case iter.Seq[*Node]:
		for item := range x {
			out = flatten(item, out)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// byte sequences are text, not collections of children
			if rv.Kind() == reflect.Array {
				cp := reflect.New(rv.Type()).Elem()
				cp.Set(rv)
				rv = cp.Slice(0, cp.Len())
			}
			return append(out, string(rv.Bytes()))
		}
		for i := 0; i < rv.Len(); i++ {
			out = flatten(rv.Index(i).Interface(), out)
		}
		return out
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return out
		}
	}
	return append(out, v)
}

// sameChild reports whether a and b denote the same child: identical nodes
// or equal comparable plain values.
func sameChild(a, b any) bool {
	an, aNode := a.(*Node)
	bn, bNode := b.(*Node)
	if aNode || bNode {
		return aNode && bNode && an == bn
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

