// Package widgets builds common structures on top of the vdom mutation
// API: data tables, nested lists and page skeletons. Every widget exposes
// its root node, so the result can be edited like any other tree.
package widgets

import (
	"github.com/vango-dev/domtree/internal/errors"
)

// ErrWidgetData is returned for data a widget cannot lay out.
var ErrWidgetData = errors.New("E132")
