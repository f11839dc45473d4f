package vdom

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/internal/htmlesc"
)

const (
	classKey = "class"
	styleKey = "style"
)

// aliases maps alternative spellings to the attribute name that is rendered.
var aliases = map[string]string{
	"klass":     "class",
	"className": "class",
	"typ":       "type",
	"for_":      "for",
	"htmlFor":   "for",
	"async_":    "async",
}

// Alias returns the rendered attribute name for key.
func Alias(key string) string {
	if a, ok := aliases[key]; ok {
		return a
	}
	return key
}

// StyleProp is a single inline style declaration.
type StyleProp struct {
	Property string
	Value    string
}

// Attrs is the attribute container of an element.
//
// Keys keep their first insertion order. "class" is multi-valued: every
// write adds tokens to an ordered set. "style" is mapping-valued: writes
// merge declarations. A value of true renders as a bare attribute.
type Attrs struct {
	order  []string
	values map[string]any

	classes []string

	styleOrder []string
	style      map[string]string
}

// NewAttrs returns an empty attribute container.
func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]any)}
}

// Len returns the number of keys that would render.
func (a *Attrs) Len() int {
	n := 0
	for _, k := range a.order {
		if a.renders(k) {
			n++
		}
	}
	return n
}

// Keys returns the present keys in insertion order.
func (a *Attrs) Keys() []string {
	out := make([]string, 0, len(a.order))
	for _, k := range a.order {
		if a.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Has reports whether key is present (and non empty for class and style).
func (a *Attrs) Has(key string) bool {
	key = Alias(key)
	switch key {
	case classKey:
		return len(a.classes) > 0
	case styleKey:
		return len(a.style) > 0
	}
	_, ok := a.values[key]
	return ok
}

// Get returns the value stored for key. Class returns a []string copy and
// style a map copy.
func (a *Attrs) Get(key string) (any, bool) {
	key = Alias(key)
	switch key {
	case classKey:
		if len(a.classes) == 0 {
			return nil, false
		}
		return a.Classes(), true
	case styleKey:
		if len(a.style) == 0 {
			return nil, false
		}
		m := make(map[string]string, len(a.style))
		for k, v := range a.style {
			m[k] = v
		}
		return m, true
	}
	v, ok := a.values[key]
	return v, ok
}

// Set stores value under key following the merge rules of the key.
func (a *Attrs) Set(key string, value any) error {
	key = Alias(strings.TrimSpace(key))
	if key == "" {
		return errors.New("E130").WithDetail("empty attribute name")
	}
	switch key {
	case classKey:
		return a.setClass(value)
	case styleKey:
		return a.setStyle(value)
	}
	if !validAttrValue(value) {
		return errors.New("E130").WithDetailf("%s: unsupported value of type %T", key, value)
	}
	a.touch(key)
	a.values[key] = value
	return nil
}

// SetAll sets every entry of attrs, in lexical key order.
func (a *Attrs) SetAll(attrs map[string]any) error {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := a.Set(k, attrs[k]); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes key. Removing class or style clears the whole set/map.
func (a *Attrs) Remove(key string) {
	key = Alias(key)
	switch key {
	case classKey:
		a.classes = nil
	case styleKey:
		a.style = nil
		a.styleOrder = nil
	default:
		delete(a.values, key)
	}
	for i, k := range a.order {
		if k == key {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Classes returns the class tokens in insertion order.
func (a *Attrs) Classes() []string {
	return append([]string(nil), a.classes...)
}

// HasClass reports whether the class token is present.
func (a *Attrs) HasClass(class string) bool {
	for _, c := range a.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class tokens; duplicates are ignored.
func (a *Attrs) AddClass(classes ...string) {
	for _, c := range classes {
		for _, tok := range strings.Fields(c) {
			if a.HasClass(tok) {
				continue
			}
			a.touch(classKey)
			a.classes = append(a.classes, tok)
		}
	}
}

// RemoveClass removes class tokens.
func (a *Attrs) RemoveClass(classes ...string) {
	for _, c := range classes {
		for i, have := range a.classes {
			if have == c {
				a.classes = append(a.classes[:i], a.classes[i+1:]...)
				break
			}
		}
	}
}

// ToggleClass removes the class if present, adds it otherwise.
func (a *Attrs) ToggleClass(class string) {
	if a.HasClass(class) {
		a.RemoveClass(class)
		return
	}
	a.AddClass(class)
}

// StyleValue returns the value of an inline style property.
func (a *Attrs) StyleValue(property string) (string, bool) {
	v, ok := a.style[property]
	return v, ok
}

// SetStyle sets one inline style property.
func (a *Attrs) SetStyle(property, value string) {
	property = strings.TrimSpace(property)
	if property == "" {
		return
	}
	if a.style == nil {
		a.style = make(map[string]string)
	}
	if _, ok := a.style[property]; !ok {
		a.styleOrder = append(a.styleOrder, property)
	}
	a.touch(styleKey)
	a.style[property] = strings.TrimSpace(value)
}

// RemoveStyle deletes one inline style property.
func (a *Attrs) RemoveStyle(property string) {
	if _, ok := a.style[property]; !ok {
		return
	}
	delete(a.style, property)
	for i, p := range a.styleOrder {
		if p == property {
			a.styleOrder = append(a.styleOrder[:i], a.styleOrder[i+1:]...)
			break
		}
	}
}

// Style returns the inline style declarations in insertion order.
func (a *Attrs) Style() []StyleProp {
	out := make([]StyleProp, 0, len(a.styleOrder))
	for _, p := range a.styleOrder {
		out = append(out, StyleProp{Property: p, Value: a.style[p]})
	}
	return out
}

// Clone returns an independent copy of the container.
func (a *Attrs) Clone() *Attrs {
	c := &Attrs{
		order:      append([]string(nil), a.order...),
		values:     make(map[string]any, len(a.values)),
		classes:    append([]string(nil), a.classes...),
		styleOrder: append([]string(nil), a.styleOrder...),
	}
	for k, v := range a.values {
		c.values[k] = v
	}
	if a.style != nil {
		c.style = make(map[string]string, len(a.style))
		for k, v := range a.style {
			c.style[k] = v
		}
	}
	return c
}

// Render formats the attributes as markup, each one preceded by a space.
// Empty values, false and nil are omitted.
func (a *Attrs) Render() string {
	var b strings.Builder
	for _, key := range a.order {
		switch key {
		case classKey:
			if len(a.classes) > 0 {
				fmt.Fprintf(&b, ` class="%s"`, htmlesc.Attr(strings.Join(a.classes, " ")))
			}
			continue
		case styleKey:
			if len(a.style) > 0 {
				fmt.Fprintf(&b, ` style="%s"`, htmlesc.Attr(a.styleString()))
			}
			continue
		}
		v, ok := a.values[key]
		if !ok {
			continue
		}
		if flag, isBool := v.(bool); isBool {
			if flag {
				b.WriteString(" ")
				b.WriteString(key)
			}
			continue
		}
		s := attrToString(v)
		if s == "" {
			continue
		}
		fmt.Fprintf(&b, ` %s="%s"`, key, htmlesc.Attr(s))
	}
	return b.String()
}

func (a *Attrs) styleString() string {
	parts := make([]string, 0, len(a.styleOrder))
	for _, p := range a.styleOrder {
		parts = append(parts, p+": "+a.style[p]+";")
	}
	return strings.Join(parts, " ")
}

func (a *Attrs) renders(key string) bool {
	switch key {
	case classKey:
		return len(a.classes) > 0
	case styleKey:
		return len(a.style) > 0
	}
	v, ok := a.values[key]
	if !ok {
		return false
	}
	if flag, isBool := v.(bool); isBool {
		return flag
	}
	return attrToString(v) != ""
}

// touch records the first insertion position of key.
func (a *Attrs) touch(key string) {
	for _, k := range a.order {
		if k == key {
			return
		}
	}
	a.order = append(a.order, key)
}

func (a *Attrs) setClass(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		a.AddClass(v)
	case []string:
		a.AddClass(v...)
	default:
		return errors.New("E130").WithDetailf("class: unsupported value of type %T", value)
	}
	return nil
}

func (a *Attrs) setStyle(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		for _, decl := range strings.Split(v, ";") {
			prop, val, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			a.SetStyle(prop, val)
		}
	case StyleProp:
		a.SetStyle(v.Property, v.Value)
	case []StyleProp:
		for _, p := range v {
			a.SetStyle(p.Property, p.Value)
		}
	case map[string]string:
		for _, k := range sortedKeys(v) {
			a.SetStyle(k, v[k])
		}
	case map[string]any:
		for _, k := range sortedKeys(v) {
			if !validAttrValue(v[k]) {
				return errors.New("E130").WithDetailf("style %s: unsupported value of type %T", k, v[k])
			}
			a.SetStyle(k, attrToString(v[k]))
		}
	default:
		return errors.New("E130").WithDetailf("style: unsupported value of type %T", value)
	}
	return nil
}

// validAttrValue reports whether v can be rendered as an attribute value.
func validAttrValue(v any) bool {
	switch v.(type) {
	case nil, string, bool, RawHTML, fmt.Stringer, []string:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	}
	return false
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case RawHTML:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, " ")
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
