// Package render turns domtree node trees into HTML.
//
// A Renderer writes elements with their attributes and children, escapes
// text, and hands data objects to a view registry to pick their
// representation. Placeholders resolve their content at render time.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// # Caching
//
// The compact output of every node is memoized on the node together with
// a stamp of the renderer and the registry version. Mutating a node clears
// the cache of the node and its ancestors, so rendering an unchanged tree
// twice does no work for the second call. Pretty output is never cached,
// neither are placeholders and the nodes built for views.
//
// # Pretty output
//
// With Pretty set, block elements put each child on its own indented line.
// Inline elements and elements without element children stay on one line.
//
// # Pages
//
// RenderPage wraps a body tree in a complete document:
//
//	err := r.RenderPage(w, render.PageData{
//	    Title: "Report",
//	    Body:  body,
//	})
//
// StreamingRenderer writes the same markup child by child and flushes in
// between.
//
// # Observability
//
// Renderers log through zap, count renders with Prometheus collectors
// created by NewMetrics, and open an OpenTelemetry span in RenderContext.
package render
