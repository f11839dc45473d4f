package vdom

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement     Kind = iota // <div>, <br>, custom tags
	KindPlaceholder             // Resolves named content at render time
	KindView                    // Instantiated view of a data object
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindPlaceholder:
		return "Placeholder"
	case KindView:
		return "View"
	default:
		return "Unknown"
	}
}

// RawHTML is trusted markup that renderers emit verbatim.
// Use with caution: user provided content must go through plain strings.
type RawHTML string

// CacheStamp identifies who produced a cached render. A cached string is
// only reused by the renderer (and view registry version) that stored it.
type CacheStamp struct {
	Renderer uint64
	Version  uint64
}

// Node is the structural unit of a document tree.
//
// Children are either *Node values or plain values (strings, numbers,
// RawHTML or arbitrary data objects rendered through a view registry).
// The parent pointer is a back reference only: the parent's child list is
// the single ownership record.
type Node struct {
	kind     Kind
	tag      string
	typeName string
	void     bool
	attrs    *Attrs

	children []any
	parent   *Node
	host     *Node // render-time owner of view instances and template clones
	name     string
	named    map[string]any

	content map[string]any

	stable bool
	cache  string
	stamp  CacheStamp

	// placeholders whose render embeds this node without owning it
	dependents []*Node

	// Placeholder state
	key      string
	fixed    any
	template *Node
}

// newElement allocates an empty element node.
func newElement(tag string, void bool) *Node {
	tag = strings.ToLower(tag)
	return &Node{
		kind:     KindElement,
		tag:      tag,
		typeName: titleCase(tag),
		void:     void,
		attrs:    NewAttrs(),
	}
}

// titleCase turns a tag name into its default type name ("div" -> "Div").
func titleCase(tag string) string {
	if tag == "" {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(tag)
}

// NewView creates an empty view node hosted by container. The view is not a
// child of container; the host link only serves content lookups and root
// resolution while the view renders in a data object's place.
func NewView(container *Node, typeName string) *Node {
	return &Node{
		kind:     KindView,
		typeName: typeName,
		host:     container,
		attrs:    NewAttrs(),
	}
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element tag name ("" for placeholders and views).
func (n *Node) Tag() string { return n.tag }

// IsVoid reports whether the node is a void element.
func (n *Node) IsVoid() bool { return n.void }

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool { return n.kind == KindElement }

// TypeName returns the structural type name used by view dispatch. It
// defaults to the title-cased tag and can be overridden with WithType or
// Custom.
func (n *Node) TypeName() string {
	if n.typeName != "" {
		return n.typeName
	}
	return n.kind.String()
}

// IsA reports whether the node is an instance of the named type: its type
// name or its tag matches, case-insensitively.
func (n *Node) IsA(typeName string) bool {
	if typeName == "" {
		return false
	}
	return strings.EqualFold(n.TypeName(), typeName) || (n.tag != "" && strings.EqualFold(n.tag, typeName))
}

// WithType overrides the type name of the node and returns it.
// The subtree is invalidated since view selection depends on type names.
func (n *Node) WithType(typeName string) *Node {
	n.typeName = typeName
	n.invalidateSubtree()
	return n
}

// Name returns the name under which the node was inserted, if any.
func (n *Node) Name() string { return n.name }

// String returns a short debug representation of the node.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.TypeName())
	if n.tag != "" && !strings.EqualFold(n.tag, n.TypeName()) {
		fmt.Fprintf(&b, " tag=%s", n.tag)
	}
	if n.kind == KindPlaceholder && n.key != "" {
		fmt.Fprintf(&b, " key=%s", n.key)
	}
	if n.attrs != nil {
		if id, ok := n.attrs.Get("id"); ok {
			fmt.Fprintf(&b, " #%v", id)
		}
		if cls := n.attrs.Classes(); len(cls) > 0 {
			fmt.Fprintf(&b, " .%s", strings.Join(cls, "."))
		}
	}
	if n.parent != nil {
		fmt.Fprintf(&b, " child of %s", n.parent.TypeName())
	}
	if len(n.children) > 0 {
		fmt.Fprintf(&b, " %d children", len(n.children))
	}
	if n.name != "" {
		fmt.Fprintf(&b, " named %s", n.name)
	}
	b.WriteString(">")
	return b.String()
}

// Stable reports whether the node holds a valid cached render.
func (n *Node) Stable() bool { return n.stable }

// RenderCache returns the cached render if the node is stable and the cache
// was stored with the given stamp.
func (n *Node) RenderCache(stamp CacheStamp) (string, bool) {
	if !n.stable || n.stamp != stamp {
		return "", false
	}
	return n.cache, true
}

// SetRenderCache stores a render result and marks the node stable.
// It is meant for renderers; tree code never calls it.
func (n *Node) SetRenderCache(stamp CacheStamp, html string) {
	n.cache = html
	n.stamp = stamp
	n.stable = true
}

// Invalidate marks the node and its ancestors dirty. Call it after mutating
// a data object or a content value the tree cannot observe.
func (n *Node) Invalidate() {
	n.markDirty()
}

// AddDependent records that dep renders the output of n without being an
// ancestor of it, as a placeholder does for injected nodes and templates.
// Invalidating n or any node below it then also invalidates dep and its
// ancestors. It is meant for renderers.
func (n *Node) AddDependent(dep *Node) {
	if dep == nil || dep == n || slices.Contains(n.dependents, dep) {
		return
	}
	n.dependents = append(n.dependents, dep)
}

// markDirty marks the node, every ancestor and every dependent dirty.
func (n *Node) markDirty() {
	pending := []*Node{n}
	var seen map[*Node]bool
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for ; p != nil; p = p.parent {
			if len(p.dependents) > 0 {
				if seen[p] {
					break
				}
				if seen == nil {
					seen = make(map[*Node]bool)
				}
				seen[p] = true
				pending = append(pending, p.dependents...)
			}
			p.stable = false
			p.cache = ""
		}
	}
}

// invalidateSubtree marks every node of the subtree and every ancestor
// dirty. Used when the context of a subtree changes (re-parenting, content
// injection, type renames): placeholders and views below depend on it.
func (n *Node) invalidateSubtree() {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.stable = false
		cur.cache = ""
		for _, c := range cur.children {
			if cn, ok := c.(*Node); ok {
				stack = append(stack, cn)
			}
		}
	}
	n.markDirty()
}
