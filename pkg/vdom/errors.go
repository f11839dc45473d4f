package vdom

import (
	"github.com/vango-dev/domtree/internal/errors"
)

// Structural errors.
var (
	ErrStructural   = errors.New("E100")
	ErrVoidElement  = errors.New("E101")
	ErrNoParent     = errors.New("E102")
	ErrWrapNonEmpty = errors.New("E103")
	ErrCycle        = errors.New("E104")
	ErrNotContainer = errors.New("E105")
	ErrNotElement   = errors.New("E106")
)

// Lookup errors.
var (
	ErrIndexOutOfRange = errors.New("E120")
	ErrNameNotFound    = errors.New("E121")
)

// Content and argument errors.
var (
	ErrInvalidAttr        = errors.New("E130")
	ErrInvalidPlaceholder = errors.New("E131")
	ErrInvalidContent     = errors.New("E132")
)

// IsStructural reports whether err is a structural tree error.
func IsStructural(err error) bool {
	cat, ok := errors.CategoryOf(err)
	return ok && cat == errors.CategoryStructural
}

// IsLookup reports whether err is a lookup error (missing index or name).
func IsLookup(err error) bool {
	cat, ok := errors.CategoryOf(err)
	return ok && cat == errors.CategoryLookup
}
