package view

import (
	"fmt"

	"github.com/vango-dev/domtree/pkg/vdom"
)

// NearWindow is the number of siblings checked on each side by Near.
const NearWindow = 2

// PlaceKind is the structural relation a Place checks.
type PlaceKind uint8

const (
	PlaceInside PlaceKind = iota // the container is a T
	PlaceNear                    // a sibling within NearWindow is a T
	PlaceBefore                  // the next sibling is a T
	PlaceAfter                   // the previous sibling is a T
)

func (k PlaceKind) String() string {
	switch k {
	case PlaceInside:
		return "Inside"
	case PlaceNear:
		return "Near"
	case PlaceBefore:
		return "Before"
	case PlaceAfter:
		return "After"
	default:
		return "Unknown"
	}
}

// Place qualifies a definition with a structural affinity to an element
// type. Type matches a node type name or tag, case-insensitively.
type Place struct {
	Kind PlaceKind
	Type string
}

// Inside is satisfied when the container is a typeName.
func Inside(typeName string) Place { return Place{Kind: PlaceInside, Type: typeName} }

// Near is satisfied when a sibling within NearWindow positions is a typeName.
func Near(typeName string) Place { return Place{Kind: PlaceNear, Type: typeName} }

// Before is satisfied when the object sits right before a typeName.
func Before(typeName string) Place { return Place{Kind: PlaceBefore, Type: typeName} }

// After is satisfied when the object sits right after a typeName.
func After(typeName string) Place { return Place{Kind: PlaceAfter, Type: typeName} }

func (p Place) String() string {
	return fmt.Sprintf("%s(%s)", p.Kind, p.Type)
}

// Satisfied reports whether the place holds for the child at index of
// container.
func (p Place) Satisfied(container *vdom.Node, index int) bool {
	if container == nil {
		return false
	}
	switch p.Kind {
	case PlaceInside:
		return container.IsA(p.Type)
	case PlaceNear:
		siblings := container.Contents()
		for i := index - NearWindow; i <= index+NearWindow; i++ {
			if i != index && isA(siblings, i, p.Type) {
				return true
			}
		}
	case PlaceBefore:
		return isA(container.Contents(), index+1, p.Type)
	case PlaceAfter:
		return isA(container.Contents(), index-1, p.Type)
	}
	return false
}

func isA(siblings []any, i int, typeName string) bool {
	if i < 0 || i >= len(siblings) {
		return false
	}
	n, ok := siblings[i].(*vdom.Node)
	return ok && n.IsA(typeName)
}
