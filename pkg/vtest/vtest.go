package vtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/domtree/pkg/render"
	"github.com/vango-dev/domtree/pkg/vdom"
	"github.com/vango-dev/domtree/pkg/view"
)

// ContentBuilder allows fluent construction of content to inject.
type ContentBuilder struct {
	values map[string]any
}

// NewContent creates a new content builder.
//
// Example:
//
//	vtest.NewContent().
//	    With("title", "Hello").
//	    With("rows", rows).
//	    Into(table)
func NewContent() *ContentBuilder {
	return &ContentBuilder{values: make(map[string]any)}
}

// With stores a value under key.
func (b *ContentBuilder) With(key string, value any) *ContentBuilder {
	b.values[key] = value
	return b
}

// Build returns the collected values.
func (b *ContentBuilder) Build() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// Into injects the collected values into node and returns it.
func (b *ContentBuilder) Into(node *vdom.Node) *vdom.Node {
	return node.Inject(b.Build())
}

// Tester renders with a fixed view registry.
type Tester struct {
	t        testing.TB
	renderer *render.Renderer
}

// New creates a Tester rendering with views, or view.Default when nil.
func New(t testing.TB, views *view.Registry) *Tester {
	return &Tester{
		t:        t,
		renderer: render.NewRenderer(render.RendererConfig{Views: views}),
	}
}

// Render renders node and fails the test on error.
func (vt *Tester) Render(node *vdom.Node) string {
	vt.t.Helper()
	html, err := vt.renderer.RenderToString(node)
	require.NoError(vt.t, err, "render %s", node)
	return html
}

// ExpectHTML asserts that node renders exactly to want.
func (vt *Tester) ExpectHTML(node *vdom.Node, want string) {
	vt.t.Helper()
	assert.Equal(vt.t, want, vt.Render(node))
}

// ExpectContains asserts that the rendered output contains expected.
func (vt *Tester) ExpectContains(node *vdom.Node, expected string) {
	vt.t.Helper()
	html := vt.Render(node)
	assert.Contains(vt.t, html, expected, "rendered:\n%s", truncate(html, 500))
}

// ExpectNotContains asserts that the rendered output does not contain
// unexpected.
func (vt *Tester) ExpectNotContains(node *vdom.Node, unexpected string) {
	vt.t.Helper()
	html := vt.Render(node)
	assert.NotContains(vt.t, html, unexpected, "rendered:\n%s", truncate(html, 500))
}

// RenderToString renders node with view.Default.
//
// Example:
//
//	html := vtest.RenderToString(t, Card())
func RenderToString(t testing.TB, node *vdom.Node) string {
	t.Helper()
	return New(t, nil).Render(node)
}

// ExpectHTML asserts that node renders exactly to want.
func ExpectHTML(t testing.TB, node *vdom.Node, want string) {
	t.Helper()
	New(t, nil).ExpectHTML(node, want)
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, card, "Welcome")
func ExpectContains(t testing.TB, node *vdom.Node, expected string) {
	t.Helper()
	New(t, nil).ExpectContains(node, expected)
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.Node, unexpected string) {
	t.Helper()
	New(t, nil).ExpectNotContains(node, unexpected)
}

// ExpectElement asserts that the tree holds an element with tag.
//
// Example:
//
//	vtest.ExpectElement(t, form, "button")
func ExpectElement(t testing.TB, node *vdom.Node, tag string) *vdom.Node {
	t.Helper()
	if node.Tag() == tag {
		return node
	}
	found := node.Find(func(n *vdom.Node) bool { return n.Tag() == tag })
	if len(found) == 0 {
		assert.Fail(t, "element not found", "no <%s> in %s", tag, truncate(node.String(), 500))
		return nil
	}
	return found[0]
}

// ExpectAttribute asserts that node carries attr with the given rendered
// value.
//
// Example:
//
//	vtest.ExpectAttribute(t, button, "class", "btn primary")
func ExpectAttribute(t testing.TB, node *vdom.Node, attr, value string) {
	t.Helper()
	_, ok := node.GetAttr(attr)
	if !assert.True(t, ok, "%s has no %s attribute", node.TypeName(), attr) {
		return
	}
	assert.Contains(t, node.Attrs().Render(), " "+attr+`="`+value+`"`)
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
