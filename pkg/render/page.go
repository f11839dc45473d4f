package render

import (
	"io"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

const doctype = "<!DOCTYPE html>\n"

// PageData describes a complete HTML document around a body tree.
type PageData struct {
	// Body is the content of the body element. A body element is used
	// as is, anything else is wrapped.
	Body *vdom.Node

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.)
	Links []LinkTag

	// Scripts contains script tags. Deferred and async scripts go in the
	// head, the others at the end of the body.
	Scripts []ScriptTag

	// Styles contains inline CSS, one style element each
	Styles []string

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Content   string
	Property  string // OpenGraph
	HTTPEquiv string
	Charset   string
}

func (m MetaTag) node() *vdom.Node {
	return vdom.Meta(
		vdom.Charset(m.Charset),
		vdom.NameAttr(m.Name),
		vdom.Attribute("property", m.Property),
		vdom.HTTPEquiv(m.HTTPEquiv),
		vdom.MetaContent(m.Content),
	)
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string
	Href        string
	Type        string
	Sizes       string
	CrossOrigin string
	Media       string
}

func (l LinkTag) node() *vdom.Node {
	return vdom.Link(
		vdom.Rel(l.Rel),
		vdom.Href(l.Href),
		vdom.Type(l.Type),
		vdom.Attribute("sizes", l.Sizes),
		vdom.Attribute("crossorigin", l.CrossOrigin),
		vdom.Attribute("media", l.Media),
	)
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Type   string
	Defer  bool
	Async  bool
	Module bool   // type="module", overrides Type
	Inline string // emitted verbatim
}

func (s ScriptTag) node() *vdom.Node {
	typ := s.Type
	if s.Module {
		typ = "module"
	}
	var inline any
	if s.Inline != "" {
		inline = vdom.RawHTML(s.Inline)
	}
	return vdom.Script(
		vdom.Src(s.Src),
		vdom.Type(typ),
		vdom.AttrIf(s.Defer, vdom.Defer()),
		vdom.AttrIf(s.Async, vdom.Async()),
		inline,
	)
}

// Document assembles the html element of page. The body tree is adopted
// by the document, so it is detached from any previous parent.
func Document(page PageData) (*vdom.Node, error) {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.NameAttr("viewport"), vdom.MetaContent("width=device-width, initial-scale=1")),
	)
	if page.Title != "" {
		head.Append(vdom.Title(page.Title))
	}
	for _, m := range page.Meta {
		head.Append(m.node())
	}
	for _, l := range page.Links {
		head.Append(l.node())
	}
	for _, href := range page.StyleSheets {
		head.Append(LinkTag{Rel: "stylesheet", Href: href}.node())
	}
	for _, css := range page.Styles {
		head.Append(vdom.Style(vdom.RawHTML(css)))
	}

	body := page.Body
	if body == nil || !body.IsA("body") {
		body = vdom.Body()
		if page.Body != nil {
			if err := body.Append(page.Body); err != nil {
				return nil, err
			}
		}
	}

	for _, s := range page.Scripts {
		target := body
		if s.Defer || s.Async {
			target = head
		}
		if err := target.Append(s.node()); err != nil {
			return nil, err
		}
	}

	return vdom.Html(vdom.Lang(lang), head, body), nil
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	doc, err := Document(page)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, doctype); err != nil {
		return errors.New("E150").WithDetail("write doctype").Wrap(err)
	}
	return r.RenderToWriter(w, doc)
}
