// Package view selects how data objects are rendered inside a tree.
//
// A data object that is not a *vdom.Node can still be inserted as a child.
// At render time the renderer asks a Registry for the view definitions
// registered for the object's type, scores each one against the place the
// object occupies and builds the best one into a view node that renders in
// the object's place.
//
// # Scoring
//
// A definition scores one point when its name matches the type of the
// immediate container, one point when it matches the type of the tree root,
// and one point for each satisfied Place:
//
//	view.Register(nil, "Ul", func(u User, v *vdom.Node) error {
//	    return v.Append(vdom.Li(u.Name))
//	})
//	view.Register(nil, "Card", buildCard, view.Inside("section"), view.Near("h2"))
//
// Ties are broken by lexical name order, then by registration order. When
// no definition is registered the object renders as its escaped text.
package view
