package parse

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// FromMarkdown converts CommonMark (with GitHub tables, strikethrough and
// task lists) into one tree per top-level block. HTML blocks are parsed
// as markup; inline HTML is kept as RawHTML.
func FromMarkdown(src []byte) ([]*vdom.Node, error) {
	doc := markdown.Parser().Parse(text.NewReader(src))

	out := []*vdom.Node{}
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if block, ok := c.(*gmast.HTMLBlock); ok {
			nodes, err := parse(htmlBlock(block, src), Options{})
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
			continue
		}
		n, err := markdownNode(c, src)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// markdownNode builds the element for a block or inline container.
func markdownNode(n gmast.Node, src []byte) (*vdom.Node, error) {
	var el *vdom.Node
	switch x := n.(type) {
	case *gmast.Heading:
		el = vdom.Element("h" + strconv.Itoa(x.Level))
	case *gmast.Paragraph, *gmast.TextBlock:
		el = vdom.Element("p")
	case *gmast.Blockquote:
		el = vdom.Element("blockquote")
	case *gmast.ThematicBreak:
		return vdom.Element("hr"), nil
	case *gmast.List:
		if !x.IsOrdered() {
			el = vdom.Element("ul")
			break
		}
		el = vdom.Element("ol")
		if x.Start != 1 {
			if err := el.SetAttr("start", strconv.Itoa(x.Start)); err != nil {
				return nil, markdownError("ol", err)
			}
		}
	case *gmast.ListItem:
		el = vdom.Element("li")
	case *gmast.CodeBlock, *gmast.FencedCodeBlock:
		return codeBlock(x, src)
	case *gmast.Emphasis:
		el = vdom.Element("em")
		if x.Level > 1 {
			el = vdom.Element("strong")
		}
	case *gmast.CodeSpan:
		return vdom.Element("code", plainText(x, src)), nil
	case *gmast.Link:
		el = vdom.Element("a")
		if err := linkAttrs(el, "href", x.Destination, x.Title); err != nil {
			return nil, err
		}
	case *gmast.Image:
		img := vdom.Element("img")
		if err := linkAttrs(img, "src", x.Destination, x.Title); err != nil {
			return nil, err
		}
		if err := img.SetAttr("alt", plainText(x, src)); err != nil {
			return nil, markdownError("img", err)
		}
		return img, nil
	case *gmast.AutoLink:
		url := string(x.URL(src))
		href := url
		if x.AutoLinkType == gmast.AutoLinkEmail {
			href = "mailto:" + url
		}
		return vdom.Element("a", vdom.Href(href), string(x.Label(src))), nil
	case *extast.Strikethrough:
		el = vdom.Element("del")
	case *extast.TaskCheckBox:
		box := vdom.Element("input", vdom.Type("checkbox"))
		if x.IsChecked {
			if err := box.SetAttr("checked", true); err != nil {
				return nil, markdownError("input", err)
			}
		}
		if err := box.SetAttr("disabled", true); err != nil {
			return nil, markdownError("input", err)
		}
		return box, nil
	case *extast.Table:
		return table(x, src)
	case *extast.TableRow, *extast.TableHeader:
		el = vdom.Element("tr")
	case *extast.TableCell:
		el = vdom.Element("td")
		if _, header := x.Parent().(*extast.TableHeader); header {
			el = vdom.Element("th")
		}
		if x.Alignment != extast.AlignNone {
			if err := el.SetAttr("style", "text-align: "+x.Alignment.String()); err != nil {
				return nil, markdownError(el.Tag(), err)
			}
		}
	default:
		return nil, nil
	}
	return el, markdownChildren(el, n, src)
}

// markdownChildren inserts the converted children of n into el.
func markdownChildren(el *vdom.Node, n gmast.Node, src []byte) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var child any
		switch x := c.(type) {
		case *gmast.Text:
			if err := insertText(el, x, src); err != nil {
				return err
			}
			continue
		case *gmast.String:
			child = string(x.Value)
		case *gmast.RawHTML:
			var b bytes.Buffer
			for i := 0; i < x.Segments.Len(); i++ {
				seg := x.Segments.At(i)
				b.Write(seg.Value(src))
			}
			child = vdom.RawHTML(b.String())
		case *gmast.HTMLBlock:
			child = vdom.RawHTML(htmlBlock(x, src))
		case *gmast.TextBlock:
			if _, inItem := n.(*gmast.ListItem); !inItem {
				converted, err := markdownNode(c, src)
				if err != nil {
					return err
				}
				child = converted
				break
			}
			// items of tight lists hold their text directly
			if err := markdownChildren(el, x, src); err != nil {
				return err
			}
			continue
		default:
			converted, err := markdownNode(c, src)
			if err != nil {
				return err
			}
			if converted == nil {
				continue
			}
			child = converted
		}
		if err := el.Insert(child); err != nil {
			return markdownError(el.Tag(), err)
		}
	}
	return nil
}

// insertText inserts a text segment followed by its line break.
func insertText(el *vdom.Node, t *gmast.Text, src []byte) error {
	var items []any
	if seg := t.Segment.Value(src); len(seg) > 0 {
		items = append(items, string(seg))
	}
	switch {
	case t.HardLineBreak():
		items = append(items, vdom.Element("br"))
	case t.SoftLineBreak():
		items = append(items, "\n")
	}
	if err := el.Insert(items); err != nil {
		return markdownError(el.Tag(), err)
	}
	return nil
}

// codeBlock builds pre > code, classing the code with its fence language.
func codeBlock(n gmast.Node, src []byte) (*vdom.Node, error) {
	code := vdom.Element("code")
	if fenced, ok := n.(*gmast.FencedCodeBlock); ok {
		if lang := fenced.Language(src); len(lang) > 0 {
			if err := code.SetAttr("class", "lang-"+string(lang)); err != nil {
				return nil, markdownError("code", err)
			}
		}
	}
	if err := code.Insert(string(blockLines(n, src))); err != nil {
		return nil, markdownError("code", err)
	}
	pre := vdom.Element("pre")
	if err := pre.Insert(code); err != nil {
		return nil, markdownError("pre", err)
	}
	return pre, nil
}

// table builds a table with a thead for the header row and a tbody for the
// remaining rows.
func table(n *extast.Table, src []byte) (*vdom.Node, error) {
	el := vdom.Element("table")
	var body *vdom.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		row, err := markdownNode(c, src)
		if err != nil {
			return nil, err
		}
		section := body
		if _, header := c.(*extast.TableHeader); header {
			section = vdom.Element("thead")
			if err := el.Insert(section); err != nil {
				return nil, markdownError("table", err)
			}
		} else if body == nil {
			body = vdom.Element("tbody")
			if err := el.Insert(body); err != nil {
				return nil, markdownError("table", err)
			}
			section = body
		}
		if err := section.Insert(row); err != nil {
			return nil, markdownError(section.Tag(), err)
		}
	}
	return el, nil
}

func linkAttrs(el *vdom.Node, key string, dest, title []byte) error {
	if err := el.SetAttr(key, string(dest)); err != nil {
		return markdownError(el.Tag(), err)
	}
	if len(title) > 0 {
		if err := el.SetAttr("title", string(title)); err != nil {
			return markdownError(el.Tag(), err)
		}
	}
	return nil
}

// plainText concatenates the text below n.
func plainText(n gmast.Node, src []byte) string {
	var b bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch x := c.(type) {
		case *gmast.Text:
			b.Write(x.Segment.Value(src))
			if x.SoftLineBreak() || x.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(x.Value)
		default:
			b.WriteString(plainText(c, src))
		}
	}
	return b.String()
}

// blockLines joins the raw lines of a block node.
func blockLines(n gmast.Node, src []byte) []byte {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.Bytes()
}

// htmlBlock returns the markup of an HTML block including its closing line.
func htmlBlock(n *gmast.HTMLBlock, src []byte) []byte {
	b := blockLines(n, src)
	if n.HasClosure() {
		b = append(b, n.ClosureLine.Value(src)...)
	}
	return b
}

func markdownError(tag string, err error) error {
	return errors.New("E151").WithDetailf("markdown <%s>", tag).Wrap(err)
}
