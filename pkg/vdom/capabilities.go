package vdom

import "iter"

// Mutator is the structural mutation capability of a tree node.
type Mutator interface {
	Insert(children any, opts ...InsertOption) error
	Append(children ...any) error
	Prepend(children ...any) error
	Before(siblings ...any) error
	After(siblings ...any) error
	Remove() *Node
	Pop(i int) (any, error)
	PopNamed(names ...string) ([]any, error)
	Empty() []any
	Wrap(other *Node) error
	Move(newParent *Node, opts ...InsertOption) error
	Clone() *Node
}

// Navigator is the read access to the position of a node in its tree.
type Navigator interface {
	Parent() *Node
	Root() *Node
	Index() int
	Depth() int
	Contents() []any
	Children() []*Node
	Named(name string) (any, error)
	Next() any
	Prev() any
}

// Traverser exposes lazy walks over a subtree.
type Traverser interface {
	BFS(reverse bool) iter.Seq[*Node]
	DFSPreorder(reverse bool) iter.Seq[*Node]
	DFSInorder(reverse bool) iter.Seq[*Node]
	DFSPostorder(reverse bool) iter.Seq[*Node]
}

// ContentHolder is the content store used by placeholder resolution.
type ContentHolder interface {
	Inject(values map[string]any) *Node
	InjectValue(key string, value any) *Node
	Content(key string) (any, bool)
	Lookup(key string) (any, bool)
}

// Cacheable is the render memo of a node.
type Cacheable interface {
	Stable() bool
	RenderCache(stamp CacheStamp) (string, bool)
	SetRenderCache(stamp CacheStamp, html string)
	Invalidate()
}

var (
	_ Mutator       = (*Node)(nil)
	_ Navigator     = (*Node)(nil)
	_ Traverser     = (*Node)(nil)
	_ ContentHolder = (*Node)(nil)
	_ Cacheable     = (*Node)(nil)
)
