// Package errors provides structured, coded errors for domtree.
//
// Every failure raised by the tree engine carries a stable code that maps
// to a registered template:
//   - structural (E100-E119): void element insertion, wrap into a non empty
//     element, operations that need a parent on a detached node, cycles
//   - lookup (E120-E129): pop by missing index or name
//   - content (E130-E139): wrong values handed to attribute/content APIs
//   - view (E140-E149): incomplete or failing view definitions
//   - render, config, cli: outer layers
//
// Codes double as sentinels: DomError implements Is by comparing codes, so
// packages export values such as
//
//	var ErrVoidElement = errors.New("E101")
//
// and raise fresh, detailed copies that still satisfy errors.Is:
//
//	return errors.New("E101").WithDetailf("<%s> got a child", tag)
//
// Format renders an error for terminal display; FormatCompact and
// FormatJSON are meant for logs and tooling.
package errors
