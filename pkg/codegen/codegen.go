// Package codegen turns trees back into Go source built from the vdom
// constructors, e.g. to convert parsed markup into code.
package codegen

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// ErrCodegen is returned for trees that cannot be expressed as source.
var ErrCodegen = errors.New("E152")

const importPath = "github.com/vango-dev/domtree/pkg/vdom"

// constructors lists the tags with a dedicated vdom constructor. The
// constructor name is the title-cased tag unless mapped otherwise.
var constructors = map[string]string{}

func init() {
	tags := strings.Fields(`a abbr address area article aside audio b base bdi bdo
		blockquote body br button canvas caption cite code col colgroup datalist dd
		details dfn dialog div dl dt em embed fieldset figcaption figure footer form
		h1 h2 h3 h4 h5 h6 head header hgroup hr html i iframe img input kbd label
		legend li link main mark math menu meta meter nav noscript object ol optgroup
		option output p param picture pre progress q rp rt ruby s samp script section
		select slot small source span strong style sub summary sup svg table tbody td
		template textarea tfoot th thead title tr track u ul var video wbr`)
	for _, tag := range tags {
		constructors[tag] = title(tag)
	}
	constructors["data"] = "DataElement"
}

var titler = cases.Title(language.Und, cases.NoLower)

func title(s string) string { return titler.String(s) }

// ToCode returns a Go expression building node. With pretty set every
// argument goes on its own line.
func ToCode(node *vdom.Node, pretty bool) (string, error) {
	var g generator
	g.pretty = pretty
	if err := g.node(node); err != nil {
		return "", err
	}
	return formatExpr(g.b.String())
}

// File returns a formatted Go source file declaring a package-level
// variable holding the trees.
func File(pkg, name string, nodes []*vdom.Node) ([]byte, error) {
	g := generator{pretty: true}
	fmt.Fprintf(&g.b, "package %s\n\nimport \"%s\"\n\nvar %s = []*vdom.Node{\n", pkg, importPath, name)
	for _, n := range nodes {
		if err := g.node(n); err != nil {
			return nil, err
		}
		g.b.WriteString(",\n")
	}
	g.b.WriteString("}\n")

	out, err := format.Source([]byte(g.b.String()))
	if err != nil {
		return nil, errors.New("E152").WithDetail("format file").Wrap(err)
	}
	return out, nil
}

func formatExpr(expr string) (string, error) {
	const prefix = "package p\n\nvar x = "
	out, err := format.Source([]byte(prefix + expr + "\n"))
	if err != nil {
		return "", errors.New("E152").WithDetail("format expression").Wrap(err)
	}
	return strings.TrimSpace(strings.TrimPrefix(string(out), prefix)), nil
}

type generator struct {
	b      strings.Builder
	pretty bool
}

// call writes fn(args...), generating each argument with gen.
func (g *generator) call(fn string, args []func() error) error {
	g.b.WriteString(fn)
	g.b.WriteByte('(')
	multiline := g.pretty && len(args) > 0
	if multiline {
		g.b.WriteByte('\n')
	}
	for i, arg := range args {
		if err := arg(); err != nil {
			return err
		}
		switch {
		case multiline:
			g.b.WriteString(",\n")
		case i < len(args)-1:
			g.b.WriteString(", ")
		}
	}
	g.b.WriteByte(')')
	return nil
}

func (g *generator) lit(s string) func() error {
	return func() error {
		g.b.WriteString(s)
		return nil
	}
}

func (g *generator) node(n *vdom.Node) error {
	if n == nil {
		g.b.WriteString("nil")
		return nil
	}

	switch n.Kind() {
	case vdom.KindPlaceholder:
		args := []func() error{g.lit(strconv.Quote(n.PlaceholderKey()))}
		if fixed := n.PlaceholderFixed(); fixed != nil {
			args = append(args, func() error {
				return g.call("vdom.WithFixed", []func() error{func() error { return g.value(fixed) }})
			})
		}
		if tmpl := n.PlaceholderTemplate(); tmpl != nil {
			args = append(args, func() error {
				return g.call("vdom.WithTemplate", []func() error{func() error { return g.node(tmpl) }})
			})
		}
		return g.call("vdom.Placeholder", args)
	case vdom.KindView:
		return g.call("vdom.Fragment", g.children(n))
	}

	tag := n.Tag()
	var fn string
	var args []func() error
	switch ctor, known := constructors[tag]; {
	case n.TypeName() != title(tag):
		fn = "vdom.Custom"
		args = append(args, g.lit(strconv.Quote(n.TypeName())), g.lit(strconv.Quote(tag)))
	case known:
		fn = "vdom." + ctor
	case n.IsVoid():
		fn = "vdom.VoidElement"
		args = append(args, g.lit(strconv.Quote(tag)))
	default:
		fn = "vdom.Element"
		args = append(args, g.lit(strconv.Quote(tag)))
	}

	args = append(args, g.attrs(n)...)
	args = append(args, g.children(n)...)
	return g.call(fn, args)
}

func (g *generator) attrs(n *vdom.Node) []func() error {
	attrs := n.Attrs()
	var out []func() error
	for _, key := range attrs.Keys() {
		switch key {
		case "class":
			classes := attrs.Classes()
			quoted := make([]string, len(classes))
			for i, c := range classes {
				quoted[i] = strconv.Quote(c)
			}
			out = append(out, g.lit("vdom.Class("+strings.Join(quoted, ", ")+")"))
			continue
		case "style":
			var decls []string
			for _, p := range attrs.Style() {
				decls = append(decls, p.Property+": "+p.Value+";")
			}
			out = append(out, g.lit("vdom.StyleAttr("+strconv.Quote(strings.Join(decls, " "))+")"))
			continue
		}

		v, _ := attrs.Get(key)
		switch x := v.(type) {
		case nil:
		case bool:
			if x {
				out = append(out, g.lit("vdom.Flag("+strconv.Quote(key)+")"))
			}
		case string:
			if key == "id" {
				out = append(out, g.lit("vdom.ID("+strconv.Quote(x)+")"))
				break
			}
			out = append(out, g.lit("vdom.Attribute("+strconv.Quote(key)+", "+strconv.Quote(x)+")"))
		default:
			out = append(out, func() error {
				g.b.WriteString("vdom.Attribute(" + strconv.Quote(key) + ", ")
				if err := g.value(v); err != nil {
					return err
				}
				g.b.WriteByte(')')
				return nil
			})
		}
	}
	return out
}

func (g *generator) children(n *vdom.Node) []func() error {
	contents := n.Contents()
	out := make([]func() error, 0, len(contents))
	for _, c := range contents {
		child, isNode := c.(*vdom.Node)
		if isNode && child.Name() != "" && n.NamedNode(child.Name()) == child {
			out = append(out, func() error {
				g.b.WriteString("vdom.Named(" + strconv.Quote(child.Name()) + ", ")
				if err := g.node(child); err != nil {
					return err
				}
				g.b.WriteByte(')')
				return nil
			})
			continue
		}
		out = append(out, func() error { return g.value(c) })
	}
	return out
}

// value writes a child or attribute value literal.
func (g *generator) value(v any) error {
	switch x := v.(type) {
	case *vdom.Node:
		return g.node(x)
	case string:
		g.b.WriteString(strconv.Quote(x))
	case vdom.RawHTML:
		g.b.WriteString("vdom.Raw(" + strconv.Quote(string(x)) + ")")
	case bool:
		g.b.WriteString(strconv.FormatBool(x))
	case int:
		g.b.WriteString(strconv.Itoa(x))
	case int64:
		fmt.Fprintf(&g.b, "int64(%d)", x)
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		g.b.WriteString(s)
	default:
		return errors.New("E152").WithDetailf("no literal for %T", v)
	}
	return nil
}
