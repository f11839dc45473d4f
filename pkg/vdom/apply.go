package vdom

import "reflect"

// Apply formats the text of the subtree with fn and returns n.
//
// fn receives every plain child value, every value of the content stores
// in the subtree and the fixed content of placeholders. Collections are
// walked item by item; nodes, including nodes held as content and
// placeholder templates, are walked instead of being passed to fn. Generic
// maps and slices are updated in place; other slices are replaced by []any.
// nil values are skipped. A node returned by fn for a child is attached in
// place of the value; an already attached node is cloned first.
//
// The subtree is invalidated, as are the renders embedding formatted
// content nodes.
func (n *Node) Apply(fn func(any) any) *Node {
	if fn == nil {
		return n
	}
	n.apply(fn)
	n.invalidateSubtree()
	return n
}

func (n *Node) apply(fn func(any) any) {
	for i, item := range n.children {
		switch x := item.(type) {
		case nil:
		case *Node:
			x.apply(fn)
		default:
			n.children[i] = n.adopt(fn(item))
		}
	}
	for name, v := range n.named {
		if _, ok := v.(*Node); !ok && v != nil {
			n.named[name] = fn(v)
		}
	}
	for k, v := range n.content {
		n.content[k] = applyValue(v, fn)
	}
	if n.fixed != nil {
		n.fixed = applyValue(n.fixed, fn)
	}
	if n.template != nil {
		n.template.apply(fn)
	}
}

// adopt attaches a node produced for a child slot of n.
func (n *Node) adopt(v any) any {
	child, ok := v.(*Node)
	if !ok || child == nil {
		return v
	}
	if child.parent != nil {
		child = child.Clone()
	}
	child.parent = n
	child.host = nil
	return child
}

// applyValue formats a content value, walking collections and nodes.
func applyValue(v any, fn func(any) any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *Node:
		if x != nil {
			x.Apply(fn)
		}
		return x
	case string, RawHTML:
		return fn(v)
	case map[string]any:
		for k, item := range x {
			x[k] = applyValue(item, fn)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = applyValue(item, fn)
		}
		return x
	case []map[string]any:
		for _, m := range x {
			applyValue(m, fn)
		}
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return fn(v)
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = applyValue(rv.Index(i).Interface(), fn)
		}
		return out
	}
	return fn(v)
}
