// Package vdom provides the in-memory document tree of domtree.
//
// A tree is made of *Node values. Elements carry a tag and an attribute
// container; placeholders resolve named content from their ancestors at
// render time; view nodes hold the instantiated representation of a data
// object (see package view). Children are either nodes or plain values:
// strings (escaped when rendered), numbers, RawHTML or arbitrary data
// objects handed to the view registry.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P(Placeholder("body")),
//	    Named("footer", Footer()),
//	)
//
// Constructors panic on contract violations such as children given to a
// void element. The Node methods report the same violations as errors.
//
// # Mutation
//
// Insert and its wrappers (Append, Prepend, Before, After, Wrap, Move, ...)
// keep the single parent invariant: a node is detached from its previous
// parent before being inserted elsewhere, and validation happens before
// anything is detached.
//
// # Content
//
// Inject stores values in a node's content store. A placeholder looks its
// key up in the nearest ancestor store holding it; missing content renders
// as nothing.
//
// # Render cache
//
// Every mutation marks the node and its ancestors dirty. Renderers store
// their output with SetRenderCache and reuse it while the node stays
// stable. Values the tree cannot observe (a data object or injected slice
// changed in place) need an explicit Invalidate.
package vdom
