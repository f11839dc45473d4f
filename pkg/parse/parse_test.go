package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/domtree/pkg/render"
	"github.com/vango-dev/domtree/pkg/vdom"
	"github.com/vango-dev/domtree/pkg/view"
)

func renderAll(t *testing.T, nodes []*vdom.Node) []string {
	t.Helper()
	r := render.NewRenderer(render.RendererConfig{Views: view.NewRegistry(nil)})
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, err := r.RenderToString(n)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func TestParseFragments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single element", "<div></div>", []string{"<div></div>"}},
		{
			"nested with attributes",
			`<div class="a b" id="x"><p>Hello <b>world</b></p>  <br></div>`,
			[]string{`<div class="a b" id="x"><p>Hello <b>world</b></p><br></div>`},
		},
		{"top-level text is dropped", "<p>a</p> text <span>b</span>", []string{"<p>a</p>", "<span>b</span>"}},
		{"comments are dropped", "<div><!-- c -->x</div>", []string{"<div>x</div>"}},
		{"boolean attribute", "<input disabled>", []string{"<input disabled>"}},
		{"entities are decoded and re-escaped", "<p>a &amp; b</p>", []string{"<p>a &amp; b</p>"}},
		{"raw text", "<div><script>if (a < b) {}</script></div>", []string{"<div><script>if (a < b) {}</script></div>"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, renderAll(t, nodes))
		})
	}
}

func TestParseTypes(t *testing.T) {
	nodes, err := ParseString("<custom><a href=/x>y</a></custom>")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Custom", nodes[0].TypeName())

	link := nodes[0].Children()[0]
	assert.Same(t, nodes[0], link.Parent())
	href, ok := link.GetAttr("href")
	require.True(t, ok)
	assert.Equal(t, "/x", href)
}

func TestParseDocument(t *testing.T) {
	nodes, err := ParseString(`<!DOCTYPE html>
<html lang="en">
  <head><title>T</title></head>
  <body><p>x</p></body>
</html>`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	doc := nodes[0]
	assert.Equal(t, "html", doc.Tag())
	require.Len(t, doc.Children(), 2)
	assert.Equal(t, "head", doc.Children()[0].Tag())
	assert.Equal(t, "body", doc.Children()[1].Tag())
	assert.Equal(t, `<html lang="en"><head><title>T</title></head><body><p>x</p></body></html>`, renderAll(t, nodes)[0])
}

func TestRoundTrip(t *testing.T) {
	tree := vdom.Section(vdom.ID("s"),
		vdom.H2("Title"),
		vdom.Ul(vdom.Li("one & two"), vdom.Li(vdom.Em("three"))),
		vdom.Img(vdom.Src("/a.png"), vdom.Alt("a")),
	)
	want := renderAll(t, []*vdom.Node{tree})

	nodes, err := ParseString(want[0])
	require.NoError(t, err)
	assert.Equal(t, want, renderAll(t, nodes))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReadError(t *testing.T) {
	_, err := Parse(failingReader{})
	assert.ErrorIs(t, err, ErrParse)
}

func TestParsePlaceholders(t *testing.T) {
	input := `<h1 data-content="title">ignored</h1>` +
		`<table><tbody><tr data-each="people"><td data-content="name"></td></tr></tbody></table>`

	nodes, err := ParseWith(strings.NewReader(input), Options{Placeholders: true})
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	ph := nodes[0].Children()[0]
	assert.Equal(t, vdom.KindPlaceholder, ph.Kind())
	assert.Equal(t, "title", ph.PlaceholderKey())

	for _, n := range nodes {
		n.Inject(map[string]any{
			"title":  "People",
			"people": []map[string]any{{"name": "Ada"}, {"name": "Bob"}},
		})
	}
	assert.Equal(t, []string{
		"<h1>People</h1>",
		"<table><tbody><tr><td>Ada</td></tr> <tr><td>Bob</td></tr></tbody></table>",
	}, renderAll(t, nodes))

	t.Run("markers are plain attributes by default", func(t *testing.T) {
		nodes, err := ParseString(`<p data-content="x">y</p>`)
		require.NoError(t, err)
		assert.Equal(t, []string{`<p data-content="x">y</p>`}, renderAll(t, nodes))
	})
}
