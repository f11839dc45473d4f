// Package vtest provides testing helpers for domtree trees.
//
// The vtest package reduces boilerplate when testing code that builds
// trees by providing render assertions and a fluent content builder.
//
// # Quick Start
//
//	func TestCard(t *testing.T) {
//	    card := Card()
//	    vtest.NewContent().With("title", "Hello").Into(card)
//	    vtest.ExpectContains(t, card, "<h2>Hello</h2>")
//	    vtest.ExpectElement(t, card, "h2")
//	}
//
// # Views
//
// Assertions render with view.Default. Use a Tester to render with
// another registry:
//
//	vt := vtest.New(t, views)
//	vt.ExpectHTML(node, "<ul><li>a</li></ul>")
package vtest
