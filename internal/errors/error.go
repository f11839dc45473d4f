package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryLookup     Category = "lookup"
	CategoryContent    Category = "content"
	CategoryView       Category = "view"
	CategoryRender     Category = "render"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// DomError is a structured error with a stable code, a category and an
// optional suggestion on how to fix the offending call.
type DomError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error family (structural, lookup, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail describes this particular occurrence (offending key, index, tag).
	Detail string

	// Explanation is the registered long-form description of the code.
	Explanation string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DomError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DomError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DomError carrying the same code.
// Registered codes are used as sentinels, so a fresh error created with
// New("E101") matches a package-level variable created the same way.
func (e *DomError) Is(target error) bool {
	t, ok := target.(*DomError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DomError) WithSuggestion(s string) *DomError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *DomError) WithExample(ex string) *DomError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *DomError) WithDetail(d string) *DomError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *DomError) WithDetailf(format string, args ...any) *DomError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *DomError) Wrap(err error) *DomError {
	e.Wrapped = err
	return e
}

// New creates a DomError from a registered error code.
func New(code string) *DomError {
	template, ok := registry[code]
	if !ok {
		return &DomError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DomError{
		Code:        code,
		Category:    template.Category,
		Message:     template.Message,
		Explanation: template.Detail,
		DocURL:      template.DocURL,
	}
}

// Newf creates a new DomError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DomError {
	return &DomError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DomError.
func FromError(err error, code string) *DomError {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DomError); ok {
		return de
	}
	return New(code).Wrap(err)
}

// CategoryOf returns the category of the first DomError in err's chain.
func CategoryOf(err error) (Category, bool) {
	for err != nil {
		if de, ok := err.(*DomError); ok {
			return de.Category, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}
