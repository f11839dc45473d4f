package widgets

import (
	"io"
	"strings"

	"github.com/vango-dev/domtree/pkg/render"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// PageOptions configures NewPage.
type PageOptions struct {
	Title       string
	Charset     string // defaults to "UTF-8"
	Description string
	Keywords    []string
	Lang        string
}

// Page is an html element with a head holding the common meta tags and
// an empty body. The parts are named children reachable through Named.
type Page struct {
	node *vdom.Node
	head *vdom.Node
	body *vdom.Node
}

// NewPage builds a page skeleton.
func NewPage(opts PageOptions) *Page {
	p := &Page{
		head: vdom.Head(
			vdom.Named("charset", vdom.Meta()),
			vdom.Named("title", vdom.Title()),
			vdom.Named("description", vdom.Meta(vdom.NameAttr("description"))),
			vdom.Named("keywords", vdom.Meta(vdom.NameAttr("keywords"))),
		),
		body: vdom.Body(),
	}
	p.node = vdom.Html(vdom.Named("head", p.head), vdom.Named("body", p.body))

	charset := opts.Charset
	if charset == "" {
		charset = "UTF-8"
	}
	p.SetCharset(charset)
	p.SetTitle(opts.Title)
	p.SetDescription(opts.Description)
	p.SetKeywords(opts.Keywords...)
	if opts.Lang != "" {
		p.node.SetAttr("lang", opts.Lang)
	}
	return p
}

// Node returns the html element.
func (p *Page) Node() *vdom.Node { return p.node }

// Head returns the head element.
func (p *Page) Head() *vdom.Node { return p.head }

// Body returns the body element.
func (p *Page) Body() *vdom.Node { return p.body }

// SetTitle replaces the title text.
func (p *Page) SetTitle(title string) *Page {
	t := p.head.NamedNode("title")
	t.Empty()
	t.Append(title)
	return p
}

// SetCharset changes the charset meta tag.
func (p *Page) SetCharset(charset string) *Page {
	p.head.NamedNode("charset").SetAttr("charset", charset)
	return p
}

// SetDescription changes the description meta tag.
func (p *Page) SetDescription(description string) *Page {
	p.head.NamedNode("description").SetAttr("content", description)
	return p
}

// SetKeywords changes the keywords meta tag.
func (p *Page) SetKeywords(keywords ...string) *Page {
	p.head.NamedNode("keywords").SetAttr("content", strings.Join(keywords, ", "))
	return p
}

// Render writes the page with a doctype through r.
func (p *Page) Render(w io.Writer, r *render.Renderer) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return r.RenderToWriter(w, p.node)
}
