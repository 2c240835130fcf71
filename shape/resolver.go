// Package shape computes the ordered attribute list ("shape") of a type.
//
// For structs the shape is the type's public instance attributes in
// declaration order. For interface contracts it is gathered breadth-first
// across every contract the interface extends, deduplicated by attribute
// identity, with the most derived contract's attributes first.
package shape

import (
	"reflect"

	"go.uber.org/zap"

	"typemeta/meta"
	"typemeta/typecache"
)

// View is the cache view name under which shapes are stored.
const View = "shape"

// Resolver computes and caches shapes.
type Resolver struct {
	cache     *typecache.Cache
	reflector *meta.Reflector
	logger    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReflector sets the reflector used by ResolveType.
func WithReflector(r *meta.Reflector) Option {
	return func(res *Resolver) { res.reflector = r }
}

// WithLogger sets the resolver's logger.
func WithLogger(l *zap.Logger) Option {
	return func(res *Resolver) { res.logger = l }
}

// NewResolver creates a Resolver storing its results in cache.
func NewResolver(cache *typecache.Cache, opts ...Option) *Resolver {
	r := &Resolver{
		cache:     cache,
		reflector: meta.Default,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the shape of t. The result is a fresh copy of the cached
// sequence; ordinals are positions within it. A nil t or a type without
// attributes yields an empty shape.
func (r *Resolver) Resolve(t meta.Type) []meta.Attribute {
	if t == nil {
		return nil
	}

	key := typecache.Key{View: View, Type: t.ID()}
	attrs := typecache.Get(r.cache, key, func() []meta.Attribute {
		return r.compute(t)
	})

	return cloneAttributes(attrs)
}

// ResolveType resolves a runtime type through the resolver's reflector.
func (r *Resolver) ResolveType(rt reflect.Type) []meta.Attribute {
	return r.Resolve(r.reflector.Of(rt))
}

// Names returns the attribute names of t's shape in order.
func (r *Resolver) Names(t meta.Type) []string {
	attrs := r.Resolve(t)
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}

	return names
}

func (r *Resolver) compute(t meta.Type) []meta.Attribute {
	var attrs []meta.Attribute

	switch t.Kind() {
	case meta.KindConcrete:
		attrs = cloneAttributes(t.Attributes())
	case meta.KindContract:
		attrs = hierarchicalAttributes(t)
	default:
		attrs = []meta.Attribute{}
	}

	for i := range attrs {
		attrs[i].Ordinal = i
	}

	r.logger.Debug("resolved shape",
		zap.Stringer("type", t.ID()),
		zap.Stringer("kind", t.Kind()),
		zap.Int("attributes", len(attrs)))

	return attrs
}

// hierarchicalAttributes walks the contract graph breadth-first from root.
// Each contract is visited once; each attribute identity is collected once.
// Attributes keep the order in which their contracts were dequeued, so the
// root's own attributes come before those of its ancestors and siblings
// follow the order of the extends list.
func hierarchicalAttributes(root meta.Type) []meta.Attribute {
	visited := map[meta.TypeID]struct{}{root.ID(): {}}
	seen := make(map[meta.AttributeID]struct{})
	queue := []meta.Type{root}

	attrs := []meta.Attribute{}
	for len(queue) > 0 {
		contract := queue[0]
		queue = queue[1:]

		for _, parent := range contract.Extends() {
			if parent == nil {
				continue
			}

			if _, ok := visited[parent.ID()]; ok {
				continue
			}

			visited[parent.ID()] = struct{}{}
			queue = append(queue, parent)
		}

		for _, a := range contract.Attributes() {
			id := a.Identity()
			if _, ok := seen[id]; ok {
				continue
			}

			seen[id] = struct{}{}
			attrs = append(attrs, a)
		}
	}

	return attrs
}

func cloneAttributes(attrs []meta.Attribute) []meta.Attribute {
	if attrs == nil {
		return nil
	}

	out := make([]meta.Attribute, len(attrs))
	for i, a := range attrs {
		if a.Index != nil {
			a.Index = append([]int(nil), a.Index...)
		}

		out[i] = a
	}

	return out
}
