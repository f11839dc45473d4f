package vdom

import (
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// NamedChild is a constructor argument inserting Child under Name, so the
// element exposes it through Named.
type NamedChild struct {
	Name  string
	Child any
}

// Named creates a NamedChild argument.
func Named(name string, child any) NamedChild {
	return NamedChild{Name: name, Child: child}
}

// createElement creates a new element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, NamedChild, or anything Insert
// accepts as children. Contract violations panic: constructors are builder
// helpers, use the Node methods to get errors back.
func createElement(tag string, args []any) *Node {
	return build(newElement(tag, IsVoidElement(tag)), args)
}

// createVoid creates a void element.
func createVoid(tag string, args []any) *Node {
	return build(newElement(tag, true), args)
}

func build(node *Node, args []any) *Node {
	for _, arg := range args {
		var err error
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional arguments)
			continue

		case Attr:
			if v.Key != "" {
				err = node.attrs.Set(v.Key, v.Value)
			}

		case []Attr:
			for _, a := range v {
				if a.Key == "" {
					continue
				}
				if err = node.attrs.Set(a.Key, a.Value); err != nil {
					break
				}
			}

		case NamedChild:
			err = node.Insert(v.Child, WithName(v.Name))

		default:
			err = node.Insert(v)
		}
		if err != nil {
			panic(err)
		}
	}
	return node
}

// Element creates an element with an arbitrary tag. Known void tags are
// created void.
func Element(tag string, args ...any) *Node {
	return createElement(tag, args)
}

// VoidElement creates a void element with an arbitrary tag.
func VoidElement(tag string, args ...any) *Node {
	return createVoid(tag, args)
}

// Custom creates an element whose type name differs from its tag, e.g. a
// "UserCard" rendered as a div. View dispatch matches on the type name.
func Custom(typeName, tag string, args ...any) *Node {
	node := createElement(tag, args)
	node.typeName = typeName
	return node
}

// Document structure elements

func Html(args ...any) *Node  { return createElement("html", args) }
func Head(args ...any) *Node  { return createElement("head", args) }
func Body(args ...any) *Node  { return createElement("body", args) }
func Title(args ...any) *Node { return createElement("title", args) }
func Meta(args ...any) *Node  { return createVoid("meta", args) }
func Link(args ...any) *Node  { return createVoid("link", args) }
func Base(args ...any) *Node  { return createVoid("base", args) }

// Content sectioning elements

func Header(args ...any) *Node  { return createElement("header", args) }
func Footer(args ...any) *Node  { return createElement("footer", args) }
func Main(args ...any) *Node    { return createElement("main", args) }
func Nav(args ...any) *Node     { return createElement("nav", args) }
func Section(args ...any) *Node { return createElement("section", args) }
func Article(args ...any) *Node { return createElement("article", args) }
func Aside(args ...any) *Node   { return createElement("aside", args) }
func Address(args ...any) *Node { return createElement("address", args) }
func H1(args ...any) *Node      { return createElement("h1", args) }
func H2(args ...any) *Node      { return createElement("h2", args) }
func H3(args ...any) *Node      { return createElement("h3", args) }
func H4(args ...any) *Node      { return createElement("h4", args) }
func H5(args ...any) *Node      { return createElement("h5", args) }
func H6(args ...any) *Node      { return createElement("h6", args) }
func Hgroup(args ...any) *Node  { return createElement("hgroup", args) }

// Text content elements

func Div(args ...any) *Node        { return createElement("div", args) }
func P(args ...any) *Node          { return createElement("p", args) }
func Span(args ...any) *Node       { return createElement("span", args) }
func Pre(args ...any) *Node        { return createElement("pre", args) }
func Blockquote(args ...any) *Node { return createElement("blockquote", args) }
func Ul(args ...any) *Node         { return createElement("ul", args) }
func Ol(args ...any) *Node         { return createElement("ol", args) }
func Li(args ...any) *Node         { return createElement("li", args) }
func Dl(args ...any) *Node         { return createElement("dl", args) }
func Dt(args ...any) *Node         { return createElement("dt", args) }
func Dd(args ...any) *Node         { return createElement("dd", args) }
func Hr(args ...any) *Node         { return createVoid("hr", args) }
func Figure(args ...any) *Node     { return createElement("figure", args) }
func Figcaption(args ...any) *Node { return createElement("figcaption", args) }

// Inline text semantics

func A(args ...any) *Node      { return createElement("a", args) }
func Strong(args ...any) *Node { return createElement("strong", args) }
func Em(args ...any) *Node     { return createElement("em", args) }
func B(args ...any) *Node      { return createElement("b", args) }
func I(args ...any) *Node      { return createElement("i", args) }
func U(args ...any) *Node      { return createElement("u", args) }
func S(args ...any) *Node      { return createElement("s", args) }
func Small(args ...any) *Node  { return createElement("small", args) }
func Mark(args ...any) *Node   { return createElement("mark", args) }
func Sub(args ...any) *Node    { return createElement("sub", args) }
func Sup(args ...any) *Node    { return createElement("sup", args) }
func Code(args ...any) *Node   { return createElement("code", args) }
func Kbd(args ...any) *Node    { return createElement("kbd", args) }
func Samp(args ...any) *Node   { return createElement("samp", args) }
func Var(args ...any) *Node    { return createElement("var", args) }
func Abbr(args ...any) *Node   { return createElement("abbr", args) }
func Time_(args ...any) *Node  { return createElement("time", args) }
func Cite(args ...any) *Node   { return createElement("cite", args) }
func Q(args ...any) *Node      { return createElement("q", args) }
func Dfn(args ...any) *Node    { return createElement("dfn", args) }
func Ruby(args ...any) *Node   { return createElement("ruby", args) }
func Rt(args ...any) *Node     { return createElement("rt", args) }
func Rp(args ...any) *Node     { return createElement("rp", args) }
func Bdi(args ...any) *Node    { return createElement("bdi", args) }
func Bdo(args ...any) *Node    { return createElement("bdo", args) }

// DataElement creates a <data> HTML element.
// Note: For data-* attributes, use Data(key, value) from attributes.go instead.
func DataElement(args ...any) *Node { return createElement("data", args) }
func Br(args ...any) *Node          { return createVoid("br", args) }
func Wbr(args ...any) *Node         { return createVoid("wbr", args) }

// Form elements

func Form(args ...any) *Node     { return createElement("form", args) }
func Input(args ...any) *Node    { return createVoid("input", args) }
func Textarea(args ...any) *Node { return createElement("textarea", args) }
func Select(args ...any) *Node   { return createElement("select", args) }
func Option(args ...any) *Node   { return createElement("option", args) }
func Optgroup(args ...any) *Node { return createElement("optgroup", args) }
func Button(args ...any) *Node   { return createElement("button", args) }
func Label(args ...any) *Node    { return createElement("label", args) }
func Fieldset(args ...any) *Node { return createElement("fieldset", args) }
func Legend(args ...any) *Node   { return createElement("legend", args) }
func Datalist(args ...any) *Node { return createElement("datalist", args) }
func Output(args ...any) *Node   { return createElement("output", args) }
func Progress(args ...any) *Node { return createElement("progress", args) }
func Meter(args ...any) *Node    { return createElement("meter", args) }

// Table elements

func Table(args ...any) *Node    { return createElement("table", args) }
func Thead(args ...any) *Node    { return createElement("thead", args) }
func Tbody(args ...any) *Node    { return createElement("tbody", args) }
func Tfoot(args ...any) *Node    { return createElement("tfoot", args) }
func Tr(args ...any) *Node       { return createElement("tr", args) }
func Th(args ...any) *Node       { return createElement("th", args) }
func Td(args ...any) *Node       { return createElement("td", args) }
func Caption(args ...any) *Node  { return createElement("caption", args) }
func Colgroup(args ...any) *Node { return createElement("colgroup", args) }
func Col(args ...any) *Node      { return createVoid("col", args) }

// Media elements

func Img(args ...any) *Node     { return createVoid("img", args) }
func Picture(args ...any) *Node { return createElement("picture", args) }
func Source(args ...any) *Node  { return createVoid("source", args) }
func Video(args ...any) *Node   { return createElement("video", args) }
func Audio(args ...any) *Node   { return createElement("audio", args) }
func Track(args ...any) *Node   { return createVoid("track", args) }
func Iframe(args ...any) *Node  { return createElement("iframe", args) }
func Embed(args ...any) *Node   { return createVoid("embed", args) }
func Object(args ...any) *Node  { return createElement("object", args) }
func Param(args ...any) *Node   { return createVoid("param", args) }
func Canvas(args ...any) *Node  { return createElement("canvas", args) }
func Svg(args ...any) *Node     { return createElement("svg", args) }
func Math(args ...any) *Node    { return createElement("math", args) }
func Map_(args ...any) *Node    { return createElement("map", args) }
func Area(args ...any) *Node    { return createVoid("area", args) }

// Interactive elements

func Details(args ...any) *Node { return createElement("details", args) }
func Summary(args ...any) *Node { return createElement("summary", args) }
func Dialog(args ...any) *Node  { return createElement("dialog", args) }
func Menu(args ...any) *Node    { return createElement("menu", args) }

// Scripting elements

func Script(args ...any) *Node   { return createElement("script", args) }
func Noscript(args ...any) *Node { return createElement("noscript", args) }
func Template(args ...any) *Node { return createElement("template", args) }
func Slot(args ...any) *Node     { return createElement("slot", args) }
func Style(args ...any) *Node    { return createElement("style", args) }
