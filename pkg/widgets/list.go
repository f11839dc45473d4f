package widgets

import (
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// Item is one entry of a list. A non-empty Sub becomes a nested list
// inside the entry, or definitions in a description list.
type Item struct {
	Label any
	Sub   any
}

// Sublist sets the kind of a nested list ("ul", "ol" or "dl").
type Sublist struct {
	Kind  string
	Items any
}

// List builds a list of the given kind, "ul" when empty. Items may be a
// slice of labels, a []Item, a map of label to sub items (sorted by key)
// or a Sublist.
//
//	List("ul", []Item{
//	    {Label: "one"},
//	    {Label: "two", Sub: []string{"a", "b"}},
//	    {Label: "three", Sub: Sublist{Kind: "ol", Items: []string{"x"}}},
//	})
func List(kind string, items any) (*vdom.Node, error) {
	if sub, ok := items.(Sublist); ok {
		kind, items = sub.Kind, sub.Items
	}
	kind = strings.ToLower(kind)
	if kind == "" {
		kind = "ul"
	}

	var list *vdom.Node
	switch kind {
	case "ul":
		list = vdom.Ul()
	case "ol":
		list = vdom.Ol()
	case "dl":
		list = vdom.Dl()
	default:
		return nil, errors.New("E132").WithDetailf("unknown list kind %q", kind)
	}

	entries, err := toItems(items)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if kind == "dl" {
			err = addDefinition(list, e)
		} else {
			err = addEntry(list, kind, e)
		}
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

func addEntry(list *vdom.Node, kind string, e Item) error {
	li := vdom.Li(e.Label)
	if !isEmpty(e.Sub) {
		nested, err := List(kind, e.Sub)
		if err != nil {
			return err
		}
		if err := li.Append(nested); err != nil {
			return err
		}
	}
	return list.Append(li)
}

func addDefinition(list *vdom.Node, e Item) error {
	if err := list.Append(vdom.Dt(e.Label)); err != nil {
		return err
	}
	if isEmpty(e.Sub) {
		return nil
	}
	if isCollection(e.Sub) {
		defs, err := toItems(e.Sub)
		if err != nil {
			return err
		}
		for _, d := range defs {
			if err := list.Append(vdom.Dd(d.Label)); err != nil {
				return err
			}
		}
		return nil
	}
	return list.Append(vdom.Dd(e.Sub))
}

// toItems normalizes the supported item shapes.
func toItems(items any) ([]Item, error) {
	switch v := items.(type) {
	case nil:
		return nil, nil
	case []Item:
		return v, nil
	case Sublist:
		return toItems(v.Items)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Item, 0, len(keys))
		for _, k := range keys {
			out = append(out, Item{Label: k, Sub: v[k]})
		}
		return out, nil
	}

	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.New("E132").WithDetailf("list items must be a slice or a map, got %T", items)
	}
	out := make([]Item, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if it, ok := elem.(Item); ok {
			out = append(out, it)
			continue
		}
		out = append(out, Item{Label: elem})
	}
	return out, nil
}

func isCollection(v any) bool {
	switch v.(type) {
	case []Item, map[string]any, Sublist:
		return true
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}
