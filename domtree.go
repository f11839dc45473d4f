// Package domtree provides the public API for building and rendering HTML
// trees.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/domtree"
//
// Usage:
//
//	page := vdom.Div(vdom.Class("card"), vdom.H1(vdom.Placeholder("title")))
//	page.InjectValue("title", "Hello")
//	html, err := domtree.Render(page)
package domtree

import (
	"github.com/vango-dev/domtree/pkg/parse"
	"github.com/vango-dev/domtree/pkg/render"
	"github.com/vango-dev/domtree/pkg/vdom"
	"github.com/vango-dev/domtree/pkg/view"
)

// Version is the library version.
const Version = "0.1.0"

// =============================================================================
// Trees
// =============================================================================

// Node is a tree node: an element, a placeholder or a view instance.
type Node = vdom.Node

// RawHTML is markup emitted without escaping.
type RawHTML = vdom.RawHTML

// Placeholder creates a placeholder resolving key at render time.
var Placeholder = vdom.Placeholder

// Parse converts HTML markup into trees.
var Parse = parse.ParseString

// =============================================================================
// Views
// =============================================================================

// Registry holds the views used to render data objects.
type Registry = view.Registry

// Place is a placement constraint of a view.
type Place = view.Place

// NewRegistry creates an empty view registry.
var NewRegistry = view.NewRegistry

// RegisterView adds a view for data of type T to the default registry.
func RegisterView[T any](name string, build func(T, *Node) error, places ...Place) error {
	return view.Register(view.Default, name, build, places...)
}

// =============================================================================
// Rendering
// =============================================================================

// Renderer turns trees into markup.
type Renderer = render.Renderer

// RendererConfig configures a Renderer.
type RendererConfig = render.RendererConfig

// NewRenderer creates a renderer.
var NewRenderer = render.NewRenderer

var (
	compact = render.NewRenderer(render.RendererConfig{})
	pretty  = render.NewRenderer(render.RendererConfig{Pretty: true})
)

// Render renders node with the default views. Output of unchanged nodes is
// reused across calls.
func Render(node *Node) (string, error) {
	return compact.RenderToString(node)
}

// RenderPretty renders node with one element per line.
func RenderPretty(node *Node) (string, error) {
	return pretty.RenderToString(node)
}

// MustRender is like Render but panics on error.
func MustRender(node *Node) string {
	out, err := Render(node)
	if err != nil {
		panic(err)
	}
	return out
}
