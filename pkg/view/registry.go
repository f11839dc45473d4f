package view

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// BuildFunc populates a view node for obj through the mutation API.
type BuildFunc func(obj any, v *vdom.Node) error

// Definition is one candidate representation of a data type.
type Definition struct {
	// Name is matched against the type names of the container and the root.
	// An unnamed definition only scores through its places.
	Name string

	// Places are the structural qualifiers; each satisfied one scores a point.
	Places []Place

	// Build fills the view node. It must add at least one child.
	Build BuildFunc
}

type entry struct {
	def Definition
	seq int
}

// Registry maps Go types to their view definitions.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	defs    map[reflect.Type][]entry
	seq     int
	version atomic.Uint64
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		defs:   make(map[reflect.Type][]entry),
		logger: logger,
	}
}

// Default is the registry used when none is configured.
var Default = NewRegistry(nil)

// Register adds a typed definition for T to r, or to Default when r is nil.
func Register[T any](r *Registry, name string, build func(T, *vdom.Node) error, places ...Place) error {
	if r == nil {
		r = Default
	}
	if build == nil {
		return errors.New("E142").WithDetailf("%s: nil build function", name)
	}
	return r.Add(reflect.TypeFor[T](), Definition{
		Name:   name,
		Places: places,
		Build: func(obj any, v *vdom.Node) error {
			typed, ok := obj.(T)
			if !ok {
				if p, isPtr := derefTo[T](obj); isPtr {
					typed = p
				} else {
					return fmt.Errorf("view %s: got %T", name, obj)
				}
			}
			return build(typed, v)
		},
	})
}

// MustRegister is like Register but panics on error.
func MustRegister[T any](r *Registry, name string, build func(T, *vdom.Node) error, places ...Place) {
	if err := Register(r, name, build, places...); err != nil {
		panic(err)
	}
}

func derefTo[T any](obj any) (T, bool) {
	var zero T
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return zero, false
	}
	v, ok := rv.Elem().Interface().(T)
	return v, ok
}

// Add registers def for values of type t. Names must be unique per type.
func (r *Registry) Add(t reflect.Type, def Definition) error {
	if t == nil {
		return errors.New("E142").WithDetail("nil type")
	}
	if def.Build == nil {
		return errors.New("E142").WithDetailf("%s.%s: nil build function", t, def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.defs[t] {
		if def.Name != "" && e.def.Name == def.Name {
			return errors.New("E142").WithDetailf("%s.%s registered twice", t, def.Name)
		}
	}
	r.seq++
	r.defs[t] = append(r.defs[t], entry{def: def, seq: r.seq})
	r.version.Add(1)

	r.logger.Debug("view registered",
		zap.Stringer("type", t),
		zap.String("view", def.Name),
		zap.Int("places", len(def.Places)),
	)
	return nil
}

// Version changes whenever a definition is added. Renderers include it in
// their cache stamps.
func (r *Registry) Version() uint64 {
	return r.version.Load()
}

// Definitions returns the definitions registered for obj's dynamic type,
// falling back to the element type of a pointer.
func (r *Registry) Definitions(obj any) []Definition {
	entries := r.entries(obj)
	out := make([]Definition, len(entries))
	for i, e := range entries {
		out[i] = e.def
	}
	return out
}

// Has reports whether any definition applies to obj.
func (r *Registry) Has(obj any) bool {
	return len(r.entries(obj)) > 0
}

// Types returns the registered types, sorted by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reflect.Type, 0, len(r.defs))
	for t := range r.defs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (r *Registry) entries(obj any) []entry {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if es, ok := r.defs[t]; ok {
		return append([]entry(nil), es...)
	}
	if t.Kind() == reflect.Pointer {
		if es, ok := r.defs[t.Elem()]; ok {
			return append([]entry(nil), es...)
		}
	}
	return nil
}

// Score returns the affinity of def to the child at index of container.
func Score(def Definition, container *vdom.Node, index int) int {
	if container == nil {
		return 0
	}
	score := 0
	if def.Name != "" {
		if container.IsA(def.Name) {
			score++
		}
		if container.Root().IsA(def.Name) {
			score++
		}
	}
	for _, p := range def.Places {
		if p.Satisfied(container, index) {
			score++
		}
	}
	return score
}

// Select picks the definition for obj as the child at index of container.
// It reports false when no definition is registered for obj's type.
func (r *Registry) Select(obj any, container *vdom.Node, index int) (Definition, bool) {
	entries := r.entries(obj)
	if len(entries) == 0 {
		return Definition{}, false
	}

	best, bestScore := entries[0], Score(entries[0].def, container, index)
	for _, e := range entries[1:] {
		s := Score(e.def, container, index)
		if s > bestScore || (s == bestScore && before(e, best)) {
			best, bestScore = e, s
		}
	}

	r.logger.Debug("view selected",
		zap.String("type", fmt.Sprintf("%T", obj)),
		zap.String("view", best.def.Name),
		zap.Int("score", bestScore),
		zap.Int("candidates", len(entries)),
	)
	return best.def, true
}

// before orders candidates with equal scores.
func before(a, b entry) bool {
	if c := strings.Compare(a.def.Name, b.def.Name); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

// Instantiate builds def for obj into a view node hosted by container.
func (r *Registry) Instantiate(def Definition, obj any, container *vdom.Node) (*vdom.Node, error) {
	if def.Build == nil {
		return nil, errors.New("E142").WithDetailf("%s: nil build function", def.Name)
	}
	v := vdom.NewView(container, def.Name)
	if err := def.Build(obj, v); err != nil {
		return nil, errors.New("E141").WithDetailf("view %q for %T", def.Name, obj).Wrap(err)
	}
	if v.Len() == 0 {
		return nil, errors.New("E140").WithDetailf("view %q for %T added no children", def.Name, obj)
	}
	return v, nil
}

// Dispatch selects and builds the view of obj as the child at index of
// container. It returns nil without error when obj has no definitions.
func (r *Registry) Dispatch(obj any, container *vdom.Node, index int) (*vdom.Node, error) {
	def, ok := r.Select(obj, container, index)
	if !ok {
		return nil, nil
	}
	return r.Instantiate(def, obj, container)
}
