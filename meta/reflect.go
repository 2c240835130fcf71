package meta

import (
	"reflect"

	"typemeta/primitive"
)

// Reflector describes runtime types using package reflect, consulting a
// Registry for enum members and contract parents.
type Reflector struct {
	registry *Registry
}

// NewReflector creates a Reflector backed by r. A nil r means DefaultRegistry.
func NewReflector(r *Registry) *Reflector {
	if r == nil {
		r = DefaultRegistry
	}

	return &Reflector{registry: r}
}

// Default is the Reflector over DefaultRegistry.
var Default = NewReflector(nil)

// Of describes rt using the default Reflector.
func Of(rt reflect.Type) Type {
	return Default.Of(rt)
}

// TypeOf describes T using the default Reflector.
func TypeOf[T any]() Type {
	return Default.Of(reflect.TypeFor[T]())
}

// Of describes rt. Pointers to structs are described as the struct itself.
// It returns nil for a nil rt.
func (r *Reflector) Of(rt reflect.Type) Type {
	if rt == nil {
		return nil
	}

	if rt.Kind() == reflect.Pointer && rt.Elem().Kind() == reflect.Struct {
		rt = rt.Elem()
	}

	base := reflectType{rt: rt, r: r}
	if decl, ok := r.registry.enum(rt); ok {
		return reflectEnum{reflectType: base, decl: decl}
	}

	return base
}

type reflectType struct {
	rt reflect.Type
	r  *Reflector
}

func (t reflectType) ID() TypeID { return IDOf(t.rt) }

func (t reflectType) Kind() Kind {
	switch t.rt.Kind() {
	case reflect.Struct:
		return KindConcrete
	case reflect.Interface:
		return KindContract
	default:
		return KindOther
	}
}

func (t reflectType) Attributes() []Attribute {
	switch t.rt.Kind() {
	case reflect.Struct:
		return structAttributes(t.rt)
	case reflect.Interface:
		return t.contractAttributes()
	default:
		return nil
	}
}

func (t reflectType) Extends() []Type {
	if t.rt.Kind() != reflect.Interface {
		return nil
	}

	parents := t.r.registry.parents(t.rt)
	if len(parents) == 0 {
		return nil
	}

	result := make([]Type, len(parents))
	for i, p := range parents {
		result[i] = t.r.Of(p)
	}

	return result
}

// structAttributes lists exported fields in reflect.VisibleFields order.
// Embedded structs contribute their promoted fields instead of themselves.
func structAttributes(rt reflect.Type) []Attribute {
	var attrs []Attribute

	for _, f := range reflect.VisibleFields(rt) {
		if !f.IsExported() {
			continue
		}

		if f.Anonymous && indirect(f.Type).Kind() == reflect.Struct {
			continue
		}

		attrs = append(attrs, Attribute{
			Name:    f.Name,
			Type:    f.Type.String(),
			Kind:    primitive.FromReflectType(f.Type),
			Ordinal: len(attrs),
			Owner:   IDOf(declaringStruct(rt, f.Index)),
			Index:   f.Index,
		})
	}

	return attrs
}

// declaringStruct follows all but the last step of a field index path.
func declaringStruct(rt reflect.Type, index []int) reflect.Type {
	owner := rt
	for _, i := range index[:len(index)-1] {
		owner = indirect(owner.Field(i).Type)
	}

	return owner
}

// contractAttributes lists the getters of an interface that none of its
// declared parents provide. reflect orders interface methods by name.
func (t reflectType) contractAttributes() []Attribute {
	inherited := make(map[string]struct{})
	for _, p := range t.r.registry.parents(t.rt) {
		for i := range p.NumMethod() {
			inherited[p.Method(i).Name] = struct{}{}
		}
	}

	var attrs []Attribute

	for i := range t.rt.NumMethod() {
		m := t.rt.Method(i)
		if !m.IsExported() || !isGetter(m.Type) {
			continue
		}

		if _, ok := inherited[m.Name]; ok {
			continue
		}

		out := m.Type.Out(0)
		attrs = append(attrs, Attribute{
			Name:    m.Name,
			Type:    out.String(),
			Kind:    primitive.FromReflectType(out),
			Ordinal: len(attrs),
			Owner:   IDOf(t.rt),
			Getter:  true,
		})
	}

	return attrs
}

// isGetter reports whether an interface method type looks like `func() T`.
func isGetter(ft reflect.Type) bool {
	return ft.NumIn() == 0 && ft.NumOut() == 1 && !ft.IsVariadic()
}

func indirect(rt reflect.Type) reflect.Type {
	if rt.Kind() == reflect.Pointer {
		return rt.Elem()
	}

	return rt
}

type reflectEnum struct {
	reflectType
	decl *enumDecl
}

func (e reflectEnum) Kind() Kind { return KindEnum }

func (e reflectEnum) Attributes() []Attribute { return nil }

func (e reflectEnum) Underlying() primitive.KindEnum { return e.decl.kind }

func (e reflectEnum) IsFlags() bool { return e.decl.flags }

func (e reflectEnum) Members() []EnumMember {
	return append([]EnumMember(nil), e.decl.members...)
}

// FromBits returns a value of the enum's own Go type.
func (e reflectEnum) FromBits(u uint64) any {
	v := reflect.New(e.rt).Elem()
	if e.decl.kind.IsSigned() {
		v.SetInt(int64(u))
	} else {
		v.SetUint(u)
	}

	return v.Interface()
}
