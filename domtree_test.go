package domtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/domtree/pkg/vdom"
)

type badge struct {
	Label string
}

func TestRender(t *testing.T) {
	root := vdom.Div(vdom.Class("card"), vdom.H1(Placeholder("title")))
	root.InjectValue("title", "Hello")

	out, err := Render(root)
	require.NoError(t, err)
	assert.Equal(t, `<div class="card"><h1>Hello</h1></div>`, out)
	assert.Equal(t, out, MustRender(root))

	out, err = RenderPretty(vdom.Ul(vdom.Li("a")))
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n  <li>a</li>\n</ul>\n", out)
}

func TestRegisterView(t *testing.T) {
	require.NoError(t, RegisterView("Badge", func(b badge, v *Node) error {
		return v.Append(vdom.Span(vdom.Class("badge"), b.Label))
	}))
	assert.Equal(t, `<p><span class="badge">new</span></p>`, MustRender(vdom.P(badge{Label: "new"})))
}

func TestParse(t *testing.T) {
	nodes, err := Parse(`<p id="x">a</p>`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, `<p id="x">a</p>`, MustRender(nodes[0]))
	assert.NotEmpty(t, Version)
}
