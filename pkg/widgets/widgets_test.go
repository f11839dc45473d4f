package widgets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/domtree/pkg/render"
	"github.com/vango-dev/domtree/pkg/vdom"
	"github.com/vango-dev/domtree/pkg/view"
	"github.com/vango-dev/domtree/pkg/vtest"
)

func html(t *testing.T, n *vdom.Node) string {
	t.Helper()
	return vtest.New(t, view.NewRegistry(nil)).Render(n)
}

func TestNewTable(t *testing.T) {
	table, err := NewTable([][]any{{"h1", "h2"}, {1, 2}, {3}, {"f1", "f2"}}, TableOptions{
		Head:    true,
		Foot:    true,
		Caption: "Cap",
	})
	require.NoError(t, err)

	assert.Equal(t, "<table>"+
		"<caption>Cap</caption>"+
		"<thead><tr><th>h1</th><th>h2</th></tr></thead>"+
		"<tbody><tr><td>1</td><td>2</td></tr><tr><td>3</td><td></td></tr></tbody>"+
		"<tfoot><tr><td>f1</td><td>f2</td></tr></tfoot>"+
		"</table>", html(t, table.Node()))
	assert.NotNil(t, table.Header())
	assert.NotNil(t, table.Footer())
	assert.Equal(t, 2, table.Rows())

	table.SetCaption("New")
	assert.Equal(t, "New", table.Node().NamedNode("caption").Text())
}

func TestEmptyTable(t *testing.T) {
	table, err := NewTable(nil, TableOptions{Rows: 2, Cols: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, "<tr><td></td><td></td><td></td></tr>", html(t, table.Body().Children()[0]))
	assert.Nil(t, table.Header())
}

func TestTableEditing(t *testing.T) {
	faker := gofakeit.New(11)
	names := []any{faker.FirstName(), faker.FirstName()}
	table, err := NewTable([][]any{names, {1, 2}}, TableOptions{})
	require.NoError(t, err)

	require.NoError(t, table.AddRow("a", "b"))
	assert.Equal(t, 3, table.Rows())

	row, err := table.PopRow(-1)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, row)

	_, err = table.PopRow(5)
	assert.ErrorIs(t, err, vdom.ErrIndexOutOfRange)

	require.NoError(t, table.RowClass("odd", 0))
	require.NoError(t, table.ColClass("num", 1))
	assert.True(t, table.Body().Children()[0].HasClass("odd"))
	assert.True(t, table.Body().Children()[1].Children()[1].HasClass("num"))

	require.NoError(t, table.MapCells(func(v any) any { return fmt.Sprint(v, "!") }))
	assert.Equal(t, "<tr><td>1!</td><td class=\"num\">2!</td></tr>", html(t, table.Body().Children()[1]))

	require.NoError(t, table.Scope("row", [2]int{1, 1}))
	assert.Equal(t, `<tr><td>1!</td><th class="num" scope="row">2!</th></tr>`, html(t, table.Body().Children()[1]))

	v, err := table.PopCell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, names[0].(string)+"!", v)

	assert.ErrorIs(t, table.Populate(nil), ErrWidgetData)
	table.Clear()
	assert.Equal(t, 0, table.Rows())
}

func TestList(t *testing.T) {
	ul, err := List("", []Item{
		{Label: "one"},
		{Label: "two", Sub: []string{"a", "b"}},
		{Label: "three", Sub: Sublist{Kind: "ol", Items: []string{"x"}}},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"<ul><li>one</li><li>two<ul><li>a</li><li>b</li></ul></li><li>three<ol><li>x</li></ol></li></ul>",
		html(t, ul))

	ol, err := List("OL", map[string]any{"b": nil, "a": []int{1}})
	require.NoError(t, err)
	assert.Equal(t, "<ol><li>a<ol><li>1</li></ol></li><li>b</li></ol>", html(t, ol))

	dl, err := List("dl", []Item{{Label: "term", Sub: []string{"d1", "d2"}}, {Label: "x", Sub: "def"}})
	require.NoError(t, err)
	assert.Equal(t, "<dl><dt>term</dt><dd>d1</dd><dd>d2</dd><dt>x</dt><dd>def</dd></dl>", html(t, dl))

	_, err = List("menu", nil)
	assert.ErrorIs(t, err, ErrWidgetData)
	_, err = List("ul", 42)
	assert.ErrorIs(t, err, ErrWidgetData)
}

func TestPage(t *testing.T) {
	p := NewPage(PageOptions{Title: "Home", Description: "d", Keywords: []string{"a", "b"}, Lang: "it"})
	require.NoError(t, p.Body().Append(vdom.P("hi")))

	var b strings.Builder
	require.NoError(t, p.Render(&b, render.NewRenderer(render.RendererConfig{Views: view.NewRegistry(nil)})))
	assert.Equal(t, "<!DOCTYPE html>\n"+
		`<html lang="it"><head>`+
		`<meta charset="UTF-8">`+
		`<title>Home</title>`+
		`<meta name="description" content="d">`+
		`<meta name="keywords" content="a, b">`+
		`</head><body><p>hi</p></body></html>`, b.String())

	p.SetTitle("Other")
	assert.Equal(t, "Other", p.Head().NamedNode("title").Text())
	assert.Same(t, p.Head(), p.Node().NamedNode("head"))
}
