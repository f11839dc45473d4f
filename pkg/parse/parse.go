// Package parse builds domtree nodes from HTML markup.
package parse

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// ErrParse is returned when the markup cannot be read or converted.
var ErrParse = errors.New("E151")

// rawText elements keep their text verbatim.
var rawText = map[string]bool{
	"script":   true,
	"style":    true,
	"xmp":      true,
	"iframe":   true,
	"noembed":  true,
	"noframes": true,
}

// Marker attributes recognized when Options.Placeholders is set.
const (
	// ContentAttr replaces the children of an element with a placeholder
	// for the named content.
	ContentAttr = "data-content"

	// EachAttr turns an element into the template of a placeholder
	// repeated for every item of the named content.
	EachAttr = "data-each"
)

// Options configures parsing.
type Options struct {
	// Placeholders converts ContentAttr and EachAttr markers into
	// placeholders.
	Placeholders bool
}

// ParseString parses markup into trees. See Parse.
func ParseString(s string) ([]*vdom.Node, error) {
	return parse([]byte(s), Options{})
}

// Parse reads markup from r and returns one tree per top-level element.
//
// Input starting with a doctype or an html tag is parsed as a complete
// document and yields the html element. Anything else is parsed as the
// content of a body element; top-level text is dropped. Comments,
// doctypes and whitespace-only text are dropped everywhere.
func Parse(r io.Reader) ([]*vdom.Node, error) {
	return ParseWith(r, Options{})
}

// ParseWith is Parse with options.
func ParseWith(r io.Reader, opts Options) ([]*vdom.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("E151").WithDetail("read input").Wrap(err)
	}
	return parse(data, opts)
}

func parse(data []byte, opts Options) ([]*vdom.Node, error) {
	if isDocument(data) {
		doc, err := html.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, errors.New("E151").Wrap(err)
		}
		var out []*vdom.Node
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			n, err := convert(c, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(data), context)
	if err != nil {
		return nil, errors.New("E151").Wrap(err)
	}
	out := make([]*vdom.Node, 0, len(nodes))
	for _, c := range nodes {
		if c.Type != html.ElementNode {
			continue
		}
		n, err := convert(c, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func isDocument(data []byte) bool {
	head := strings.ToLower(strings.TrimSpace(string(data[:min(len(data), 256)])))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// convert builds the element for n through the mutation API.
func convert(n *html.Node, opts Options) (*vdom.Node, error) {
	el := vdom.Element(n.Data)
	var content, each string
	for _, a := range n.Attr {
		key := a.Key
		if opts.Placeholders && a.Namespace == "" {
			switch key {
			case ContentAttr:
				content = a.Val
				continue
			case EachAttr:
				each = a.Val
				continue
			}
		}
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		var value any = a.Val
		if a.Val == "" {
			value = true
		}
		if err := el.SetAttr(key, value); err != nil {
			return nil, errors.New("E151").WithDetailf("<%s %s>", n.Data, key).Wrap(err)
		}
	}
	if el.IsVoid() {
		return wrapEach(el, each)
	}
	if content != "" {
		if err := el.Append(vdom.Placeholder(content)); err != nil {
			return nil, errors.New("E151").WithDetailf("<%s %s>", n.Data, ContentAttr).Wrap(err)
		}
		return wrapEach(el, each)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		var child any
		switch c.Type {
		case html.ElementNode:
			converted, err := convert(c, opts)
			if err != nil {
				return nil, err
			}
			child = converted
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			if rawText[n.Data] {
				child = vdom.RawHTML(c.Data)
			} else {
				child = c.Data
			}
		default:
			continue
		}
		if err := el.Insert(child); err != nil {
			return nil, errors.New("E151").WithDetailf("<%s>", n.Data).Wrap(err)
		}
	}
	return wrapEach(el, each)
}

// wrapEach returns a placeholder repeating el for key, or el itself.
func wrapEach(el *vdom.Node, key string) (*vdom.Node, error) {
	if key == "" {
		return el, nil
	}
	ph, err := vdom.NewPlaceholder(key, vdom.WithTemplate(el))
	if err != nil {
		return nil, errors.New("E151").WithDetailf("%s=%q", EachAttr, key).Wrap(err)
	}
	return ph, nil
}
