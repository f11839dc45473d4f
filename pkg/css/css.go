// Package css builds stylesheets from nested selector rules.
//
// A rule maps a selector either to a declaration value or to nested
// rules. Nested selectors are combined with their parents as descendant
// selectors, and "&" refers to the parent selector:
//
//	sheet := css.New().
//	    Set("nav", css.New().
//	        Set("color", "red").
//	        Set("a", css.New().Set("color", "blue")).
//	        Set("&:hover", css.New().Set("color", "green")))
//
// renders as
//
//	nav { color: red; } nav a { color: blue; } nav:hover { color: green; }
package css

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// ErrInvalidStylesheet is returned for values that are neither
// declarations nor nested rules, and for paths that do not exist.
var ErrInvalidStylesheet = errors.New("E133")

// rootSelector holds declarations set on the top level of a sheet.
const rootSelector = ":root"

// Rules is an ordered mapping of selectors and properties. Values are
// strings, func() string evaluated at render time, or nested *Rules.
// The zero value is not usable, create rules with New.
type Rules struct {
	keys   []string
	values map[string]any
}

// New returns empty rules.
func New() *Rules {
	return &Rules{values: make(map[string]any)}
}

// Set stores value under key, keeping the position of an existing key.
// Invalid values panic, use Put to get the error back.
func (r *Rules) Set(key string, value any) *Rules {
	if err := r.Put(key, value); err != nil {
		panic(err)
	}
	return r
}

// Put stores value under key, keeping the position of an existing key.
func (r *Rules) Put(key string, value any) error {
	if key == "" {
		return errors.New("E133").WithDetail("empty selector")
	}
	v, err := normalize(value)
	if err != nil {
		return err
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
	return nil
}

func normalize(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case func() string:
		if v == nil {
			break
		}
		return v, nil
	case *Rules:
		if v == nil {
			break
		}
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case map[string]string:
		return FromStrings(v), nil
	case map[string]any:
		return FromMap(v)
	}
	return nil, errors.New("E133").WithDetailf("%T is neither a value nor rules", value)
}

// FromMap converts a nested map into rules. Map keys are sorted, since
// Go maps carry no order; use FromYAML or Set when order matters.
func FromMap(m map[string]any) (*Rules, error) {
	r := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := r.Put(k, m[k]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// FromStrings converts a flat property map into rules in key order.
func FromStrings(m map[string]string) *Rules {
	r := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.keys = append(r.keys, k)
		r.values[k] = m[k]
	}
	return r
}

// FromYAML parses a YAML mapping into rules, keeping document order.
func FromYAML(data []byte) (*Rules, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E133").WithDetail("yaml").Wrap(err)
	}
	if doc.Kind == 0 {
		return New(), nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errors.New("E133").WithDetail("expected a single yaml document")
	}
	return fromNode(doc.Content[0])
}

func fromNode(n *yaml.Node) (*Rules, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errors.New("E133").WithDetailf("line %d: expected a mapping", n.Line)
	}
	r := New()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			if err := r.Put(key.Value, value.Value); err != nil {
				return nil, err
			}
		case yaml.MappingNode:
			nested, err := fromNode(value)
			if err != nil {
				return nil, err
			}
			if err := r.Put(key.Value, nested); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New("E133").WithDetailf("line %d: %s must be a value or a mapping", value.Line, key.Value)
		}
	}
	return r, nil
}

// Len returns the number of keys on this level.
func (r *Rules) Len() int { return len(r.keys) }

// Keys returns the keys of this level in order.
func (r *Rules) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Get returns the value stored under key on this level.
func (r *Rules) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Update merges other into r. Keys of other replace existing keys on the
// top level, new keys are appended.
func (r *Rules) Update(other *Rules) *Rules {
	if other == nil {
		return r
	}
	for _, k := range other.keys {
		if _, ok := r.values[k]; !ok {
			r.keys = append(r.keys, k)
		}
		r.values[k] = other.values[k]
	}
	return r
}

// Find returns the value at path, a list of keys from the top level down.
func (r *Rules) Find(path ...string) (any, bool) {
	parent, key, ok := r.lookup(path)
	if !ok {
		return nil, false
	}
	return parent.values[key], true
}

// Replace stores value at an existing path.
func (r *Rules) Replace(path []string, value any) error {
	parent, key, ok := r.lookup(path)
	if !ok {
		return errors.New("E133").WithDetailf("no rule at %s", strings.Join(path, " > "))
	}
	if s, isString := value.(string); isString && s == "" {
		return errors.New("E133").WithDetail("empty replacement")
	}
	return parent.Put(key, value)
}

// Clear removes the value at path, or everything when path is empty.
// Missing paths are ignored.
func (r *Rules) Clear(path ...string) {
	if len(path) == 0 {
		r.keys = nil
		r.values = make(map[string]any)
		return
	}
	parent, key, ok := r.lookup(path)
	if !ok {
		return
	}
	delete(parent.values, key)
	for i, k := range parent.keys {
		if k == key {
			parent.keys = append(parent.keys[:i], parent.keys[i+1:]...)
			break
		}
	}
}

func (r *Rules) lookup(path []string) (*Rules, string, bool) {
	if len(path) == 0 {
		return nil, "", false
	}
	cur := r
	for _, k := range path[:len(path)-1] {
		next, ok := cur.values[k].(*Rules)
		if !ok {
			return nil, "", false
		}
		cur = next
	}
	last := path[len(path)-1]
	if _, ok := cur.values[last]; !ok {
		return nil, "", false
	}
	return cur, last, true
}

// Clone returns a deep copy of r. Function values are shared.
func (r *Rules) Clone() *Rules {
	c := New()
	for _, k := range r.keys {
		v := r.values[k]
		if nested, ok := v.(*Rules); ok {
			v = nested.Clone()
		}
		c.keys = append(c.keys, k)
		c.values[k] = v
	}
	return c
}

// Selector returns a selector for an element: its id, else its classes,
// else its tag.
func Selector(n *vdom.Node) string {
	if id := n.ID(); id != "" {
		return "#" + id
	}
	if classes := n.Attrs().Classes(); len(classes) > 0 {
		return "." + strings.Join(classes, ".")
	}
	return n.Tag()
}

// block is one selector with its declarations.
type block struct {
	selector string
	decls    [][2]string
}

// blocks flattens the rules depth first: a selector's own declarations
// come before the blocks of its nested rules.
func (r *Rules) blocks(selector string, out []block) []block {
	own := block{selector: selector}
	var nested []*Rules
	var nestedSel []string
	for _, k := range r.keys {
		switch v := r.values[k].(type) {
		case string:
			own.decls = append(own.decls, [2]string{k, v})
		case func() string:
			own.decls = append(own.decls, [2]string{k, v()})
		case *Rules:
			nested = append(nested, v)
			nestedSel = append(nestedSel, combine(selector, k))
		}
	}
	if len(own.decls) > 0 {
		if own.selector == "" {
			own.selector = rootSelector
		}
		out = append(out, own)
	}
	for i, n := range nested {
		out = n.blocks(nestedSel[i], out)
	}
	return out
}

// combine joins a parent and a child selector, expanding selector lists.
func combine(parent, child string) string {
	if parent == "" {
		return child
	}
	var out []string
	for _, p := range strings.Split(parent, ",") {
		p = strings.TrimSpace(p)
		for _, c := range strings.Split(child, ",") {
			c = strings.TrimSpace(c)
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return strings.Join(out, ", ")
}

// Render returns the stylesheet text. Compact output puts every block on
// one line; pretty output puts every declaration on its own line.
func (r *Rules) Render(pretty bool) string {
	var b strings.Builder
	for i, blk := range r.blocks("", nil) {
		if pretty {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(blk.selector)
			b.WriteString(" {\n")
			for _, d := range blk.decls {
				fmt.Fprintf(&b, "  %s: %s;\n", d[0], d[1])
			}
			b.WriteString("}\n")
			continue
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(blk.selector)
		b.WriteString(" {")
		for _, d := range blk.decls {
			fmt.Fprintf(&b, " %s: %s;", d[0], d[1])
		}
		b.WriteString(" }")
	}
	return b.String()
}

// Dump writes the stylesheet text to w.
func (r *Rules) Dump(w io.Writer, pretty bool) error {
	_, err := io.WriteString(w, r.Render(pretty))
	return err
}

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

// Minify renders the stylesheet and minifies it.
func (r *Rules) Minify() (string, error) {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/css", mincss.Minify)
	})
	out, err := minifier.String("text/css", r.Render(false))
	if err != nil {
		return "", errors.New("E133").WithDetail("minify").Wrap(err)
	}
	return out, nil
}

// Element returns a style element holding the current rendering of r.
// Later changes to r are not reflected in the element.
func (r *Rules) Element() *vdom.Node {
	return vdom.Style(vdom.RawHTML(r.Render(false)))
}
