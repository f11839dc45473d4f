package view

import (
	"github.com/vango-dev/domtree/internal/errors"
)

// View authoring errors.
var (
	ErrIncompleteView    = errors.New("E140")
	ErrViewBuild         = errors.New("E141")
	ErrInvalidDefinition = errors.New("E142")
)
