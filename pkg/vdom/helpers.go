package vdom

import "fmt"

// Text returns content as a text child. Strings are escaped at render time.
func Text(content string) string {
	return content
}

// Textf returns a formatted text child.
func Textf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// Raw marks html as trusted markup rendered verbatim.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) RawHTML {
	return RawHTML(html)
}

// Fragment groups children without a wrapper element. The slice is
// flattened when inserted.
func Fragment(children ...any) []any {
	return children
}

// If returns the child if condition is true, nil otherwise.
func If(condition bool, child any) any {
	if condition {
		return child
	}
	return nil
}

// IfElse returns the first child if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse any) any {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() any) any {
	if condition {
		return fn()
	}
	return nil
}

// Unless is the inverse of If.
func Unless(condition bool, child any) any {
	if !condition {
		return child
	}
	return nil
}

// Range maps a slice to nodes. Nil results are skipped.
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	result := make([]*Node, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *Node) []*Node {
	if n <= 0 {
		return nil
	}
	result := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		node := fn(i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Either returns first if it's not nil, otherwise second.
func Either(first, second *Node) *Node {
	if first != nil {
		return first
	}
	return second
}
