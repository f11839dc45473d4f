package css

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/domtree/pkg/vdom"
)

func sample() *Rules {
	return New().
		Set("html", New().Set("background-color", "lightblue")).
		Set("h1", New().
			Set("color", "white").
			Set("text-align", "center"))
}

func TestRender(t *testing.T) {
	assert.Equal(t,
		"html { background-color: lightblue; } h1 { color: white; text-align: center; }",
		sample().Render(false))

	want := strings.Join([]string{
		"html {",
		"  background-color: lightblue;",
		"}",
		"",
		"h1 {",
		"  color: white;",
		"  text-align: center;",
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, sample().Render(true))
	assert.Empty(t, New().Render(false))
}

func TestNesting(t *testing.T) {
	r := New().Set("nav", New().
		Set("color", "red").
		Set("a", New().Set("color", "blue")).
		Set("&:hover", New().Set("color", "green"))).
		Set("#id", New().Set("margin", 0))

	assert.Equal(t,
		"nav { color: red; } nav a { color: blue; } nav:hover { color: green; } #id { margin: 0; }",
		r.Render(false))

	lists := New().Set("h1, h2", New().Set("a, b", New().Set("x", "y")))
	assert.Equal(t, "h1 a, h1 b, h2 a, h2 b { x: y; }", lists.Render(false))

	top := New().Set("--accent", "red")
	assert.Equal(t, ":root { --accent: red; }", top.Render(false))
}

func TestFunctionValues(t *testing.T) {
	color := "TEST"
	r := New().Set("h1", New().Set("color", func() string { return color }))
	assert.Contains(t, r.Render(false), "color: TEST;")
	color = "OTHER"
	assert.Contains(t, r.Render(false), "color: OTHER;")
}

func TestFromMap(t *testing.T) {
	r, err := FromMap(map[string]any{
		"p":   map[string]string{"margin": "0", "color": "red"},
		"div": map[string]any{"span": map[string]any{"color": "blue"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "div span { color: blue; } p { color: red; margin: 0; }", r.Render(false))

	_, err = FromMap(map[string]any{"p": []int{1}})
	assert.ErrorIs(t, err, ErrInvalidStylesheet)
	assert.Panics(t, func() { New().Set("p", true) })
}

func TestFromYAML(t *testing.T) {
	r, err := FromYAML([]byte(`
body:
  margin: 0
  nav:
    display: flex
"#main":
  width: 80%
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"body", "#main"}, r.Keys())
	assert.Equal(t,
		"body { margin: 0; } body nav { display: flex; } #main { width: 80%; }",
		r.Render(false))

	_, err = FromYAML([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrInvalidStylesheet)

	_, err = FromYAML([]byte("p: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrInvalidStylesheet)

	empty, err := FromYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestEditing(t *testing.T) {
	r := sample()

	v, ok := r.Find("h1", "color")
	require.True(t, ok)
	assert.Equal(t, "white", v)
	_, ok = r.Find("h1", "nope")
	assert.False(t, ok)
	_, ok = r.Find()
	assert.False(t, ok)

	require.NoError(t, r.Replace([]string{"h1", "color"}, "black"))
	v, _ = r.Find("h1", "color")
	assert.Equal(t, "black", v)
	assert.ErrorIs(t, r.Replace([]string{"h2"}, "x"), ErrInvalidStylesheet)
	assert.ErrorIs(t, r.Replace([]string{"h1", "color"}, ""), ErrInvalidStylesheet)

	r.Update(New().Set("html", New().Set("color", "red")).Set("p", New().Set("margin", "0")))
	assert.Equal(t, []string{"html", "h1", "p"}, r.Keys())
	assert.Equal(t, "html { color: red; } h1 { color: black; text-align: center; } p { margin: 0; }", r.Render(false))

	r.Clear("h1", "text-align")
	assert.Equal(t, "html { color: red; } h1 { color: black; } p { margin: 0; }", r.Render(false))
	r.Clear("missing", "path")
	r.Clear()
	assert.Equal(t, 0, r.Len())
}

func TestClone(t *testing.T) {
	r := sample()
	c := r.Clone()
	c.Clear("h1", "color")
	_, ok := r.Find("h1", "color")
	assert.True(t, ok)
}

func TestSelector(t *testing.T) {
	assert.Equal(t, "#main", Selector(vdom.Div(vdom.ID("main"), vdom.Class("x"))))
	assert.Equal(t, ".a.b", Selector(vdom.Div(vdom.Class("a", "b"))))
	assert.Equal(t, "section", Selector(vdom.Section()))
}

func TestElementAndOutput(t *testing.T) {
	style := sample().Element()
	assert.Equal(t, "style", style.Tag())
	assert.Equal(t, []any{vdom.RawHTML(sample().Render(false))}, style.Contents())

	var b strings.Builder
	require.NoError(t, sample().Dump(&b, false))
	assert.Equal(t, sample().Render(false), b.String())

	out, err := sample().Minify()
	require.NoError(t, err)
	assert.NotContains(t, out, "; }")
	assert.Contains(t, out, "h1{")
}
