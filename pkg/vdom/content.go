package vdom

import (
	"iter"
	"reflect"
	"sort"

	"github.com/vango-dev/domtree/internal/errors"
)

// PlaceholderOption configures a placeholder node.
type PlaceholderOption func(*Node)

// WithFixed gives the placeholder a value that bypasses the content lookup.
func WithFixed(value any) PlaceholderOption {
	return func(n *Node) {
		n.fixed = value
	}
}

// WithTemplate renders every resolved item through a fresh clone of tmpl.
// A nil template is ignored.
func WithTemplate(tmpl *Node) PlaceholderOption {
	return func(n *Node) {
		if tmpl != nil {
			n.template = tmpl
		}
	}
}

// NewPlaceholder creates a placeholder resolving key from the content stores
// of its ancestors at render time. A placeholder needs a key or a fixed value.
func NewPlaceholder(key string, opts ...PlaceholderOption) (*Node, error) {
	n := &Node{kind: KindPlaceholder, key: key, typeName: "Placeholder"}
	for _, opt := range opts {
		opt(n)
	}
	if key == "" && isEmptyContent(n.fixed) {
		return nil, errors.New("E131").WithDetail("a key or a fixed value is required")
	}
	return n, nil
}

// Placeholder is like NewPlaceholder but panics on an invalid definition.
// It is meant for tree literals built at init time.
func Placeholder(key string, opts ...PlaceholderOption) *Node {
	n, err := NewPlaceholder(key, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// PlaceholderKey returns the lookup key of a placeholder.
func (n *Node) PlaceholderKey() string { return n.key }

// PlaceholderTemplate returns the item template of a placeholder, or nil.
func (n *Node) PlaceholderTemplate() *Node { return n.template }

// PlaceholderFixed returns the fixed content of a placeholder, or nil.
func (n *Node) PlaceholderFixed() any { return n.fixed }

// Inject merges values into the content store of n. Later writes win.
func (n *Node) Inject(values map[string]any) *Node {
	if len(values) == 0 {
		return n
	}
	if n.content == nil {
		n.content = make(map[string]any, len(values))
	}
	for k, v := range values {
		n.content[k] = v
	}
	n.invalidateSubtree()
	return n
}

// InjectValue stores a single value in the content store of n.
func (n *Node) InjectValue(key string, value any) *Node {
	return n.Inject(map[string]any{key: value})
}

// InjectRecord injects every entry of a map with string keys. Any other
// value is a content error.
func (n *Node) InjectRecord(record any) error {
	values, ok := recordEntries(record)
	if !ok {
		return errors.New("E132").WithDetailf("cannot inject a value of type %T", record)
	}
	n.Inject(values)
	return nil
}

// Content returns the value stored under key in n's own content store.
func (n *Node) Content(key string) (any, bool) {
	v, ok := n.content[key]
	return v, ok
}

// Lookup searches key in the content store of n, then of each ancestor.
// View instances and template clones continue the search at their host.
func (n *Node) Lookup(key string) (any, bool) {
	for cur := n; cur != nil; cur = cur.up() {
		if v, ok := cur.content[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve returns the items a placeholder renders: its fixed value if set,
// otherwise the nearest injected content for its key. Slices, arrays and
// iterators expand to their elements; nodes, records and scalars are one
// item each. Missing content resolves to no items.
func (n *Node) Resolve() []any {
	if n.kind != KindPlaceholder {
		return nil
	}
	v := n.fixed
	if isEmptyContent(v) {
		if up := n.up(); up != nil {
			v, _ = up.Lookup(n.key)
		}
	}
	if isEmptyContent(v) {
		return nil
	}
	return expandContent(v)
}

// Instantiate returns a fresh clone of the placeholder template with item
// injected: a record's entries under their own keys, anything else under
// the placeholder key. The clone is hosted by the placeholder so that its
// own placeholders can still reach outer content.
func (n *Node) Instantiate(item any) *Node {
	if n.template == nil {
		return nil
	}
	c := n.template.Clone()
	if values, ok := recordEntries(item); ok {
		c.Inject(values)
	} else if n.key != "" {
		c.InjectValue(n.key, item)
	}
	c.host = n
	return c
}

// RecordValues returns the values of a record in lexical key order. Slice
// values are expanded and nil values skipped.
func RecordValues(record any) ([]any, bool) {
	values, ok := recordEntries(record)
	if !ok {
		return nil, false
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		v := values[k]
		if isNil(v) {
			continue
		}
		if isList(v) {
			for _, item := range expandContent(v) {
				if !isNil(item) {
					out = append(out, item)
				}
			}
			continue
		}
		out = append(out, v)
	}
	return out, true
}

// recordEntries converts a map with string keys into map[string]any.
func recordEntries(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[it.Key().String()] = it.Value().Interface()
	}
	return out, true
}

// expandContent turns resolved content into render items.
func expandContent(v any) []any {
	switch x := v.(type) {
	case *Node:
		return []any{x}
	case string, RawHTML:
		return []any{x}
	case []any:
		return compact(x)
	case iter.Seq[any]:
		var out []any
		for item := range x {
			if !isNil(item) {
				out = append(out, item)
			}
		}
		return out
	}
	if isList(v) {
		rv := reflect.ValueOf(v)
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if item := rv.Index(i).Interface(); !isNil(item) {
				out = append(out, item)
			}
		}
		return out
	}
	return []any{v}
}

func compact(items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if !isNil(item) {
			out = append(out, item)
		}
	}
	return out
}

// isList reports whether v is a slice or array other than []byte.
func isList(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isEmptyContent reports whether v counts as missing content: nil, an empty
// string or an empty collection. Zero numbers and false are content.
func isEmptyContent(v any) bool {
	if isNil(v) {
		return true
	}
	switch x := v.(type) {
	case *Node:
		return false
	case string:
		return x == ""
	case RawHTML:
		return x == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
