package analyze

import (
	"go/types"
	"slices"

	"typemeta/meta"
	"typemeta/primitive"
)

// Describe exposes info through the meta abstraction. Enum types also
// implement meta.Enum.
func (g *TypeGraph) Describe(info *TypeInfo) meta.Type {
	if info == nil {
		return nil
	}

	base := staticType{info: info, graph: g}
	if info.Kind == TypeKindEnum && info.Enum != nil {
		return staticEnum{staticType: base}
	}

	return base
}

type staticType struct {
	info  *TypeInfo
	graph *TypeGraph
}

func (t staticType) ID() meta.TypeID {
	if t.info.IsNamed() {
		return t.info.ID
	}

	return meta.TypeID{Name: typeString(t.info.GoType)}
}

func (t staticType) Kind() meta.Kind {
	switch t.info.Kind {
	case TypeKindStruct:
		return meta.KindConcrete
	case TypeKindInterface:
		return meta.KindContract
	case TypeKindEnum:
		return meta.KindEnum
	case TypeKindExternal:
		switch t.info.GoType.Underlying().(type) {
		case *types.Struct:
			return meta.KindConcrete
		case *types.Interface:
			return meta.KindContract
		}
	}

	return meta.KindOther
}

func (t staticType) Attributes() []meta.Attribute {
	switch t.Kind() {
	case meta.KindConcrete:
		return t.structAttributes()
	case meta.KindContract:
		return t.contractAttributes()
	default:
		return nil
	}
}

func (t staticType) Extends() []meta.Type {
	if t.Kind() != meta.KindContract || len(t.info.Embeds) == 0 {
		return nil
	}

	parents := make([]meta.Type, len(t.info.Embeds))
	for i, e := range t.info.Embeds {
		parents[i] = t.graph.Describe(e)
	}

	return parents
}

// structAttributes lists the exported fields visible on the struct, in the
// order reflect.VisibleFields would report them: promoted fields appear at
// the position of the embedding field, and fields hidden by a shallower
// field of the same name (or ambiguous at equal depth) are left out.
func (t staticType) structAttributes() []meta.Attribute {
	root := t.info.GoType

	var (
		attrs []meta.Attribute
		walk  func(info *TypeInfo, path []int, active map[*TypeInfo]bool)
	)

	walk = func(info *TypeInfo, path []int, active map[*TypeInfo]bool) {
		for _, f := range info.Fields {
			index := append(slices.Clone(path), f.Index)

			if f.Embedded {
				if inner := embeddedStruct(f.Type); inner != nil {
					if !active[inner] {
						active[inner] = true
						walk(inner, index, active)
						delete(active, inner)
					}

					continue
				}
			}

			if !f.Exported || !visible(root, f.Name, index) {
				continue
			}

			attrs = append(attrs, meta.Attribute{
				Name:    f.Name,
				Type:    typeString(f.Type.GoType),
				Kind:    primitive.FromGoType(f.Type.GoType),
				Ordinal: len(attrs),
				Owner:   info.ID,
				Index:   index,
			})
		}
	}

	walk(t.info, nil, map[*TypeInfo]bool{t.info: true})

	return attrs
}

// embeddedStruct returns the struct an embedded field promotes from, looking
// through one pointer.
func embeddedStruct(info *TypeInfo) *TypeInfo {
	if info.Kind == TypeKindPointer && info.ElemType != nil {
		info = info.ElemType
	}

	if _, ok := info.GoType.Underlying().(*types.Struct); ok {
		return info
	}

	return nil
}

// visible reports whether selecting name on root reaches the field at index.
func visible(root types.Type, name string, index []int) bool {
	obj, found, _ := types.LookupFieldOrMethod(root, false, nil, name)

	v, ok := obj.(*types.Var)

	return ok && v.IsField() && slices.Equal(found, index)
}

func (t staticType) contractAttributes() []meta.Attribute {
	var attrs []meta.Attribute

	for _, m := range t.info.Methods {
		if !m.Getter {
			continue
		}

		attrs = append(attrs, meta.Attribute{
			Name:    m.Name,
			Type:    typeString(m.Result),
			Kind:    primitive.FromGoType(m.Result),
			Ordinal: len(attrs),
			Owner:   t.ID(),
			Getter:  true,
		})
	}

	return attrs
}

type staticEnum struct {
	staticType
}

func (e staticEnum) Kind() meta.Kind { return meta.KindEnum }

func (e staticEnum) Attributes() []meta.Attribute { return nil }

func (e staticEnum) Extends() []meta.Type { return nil }

func (e staticEnum) Underlying() primitive.KindEnum { return e.info.Enum.Basic }

func (e staticEnum) IsFlags() bool { return e.info.Enum.Flags }

func (e staticEnum) Members() []meta.EnumMember {
	return slices.Clone(e.info.Enum.Members)
}

// FromBits returns a value of the enum's underlying basic type; the named
// type only exists in the analyzed source.
func (e staticEnum) FromBits(u uint64) any {
	return primitive.FromBits(e.info.Enum.Basic, u)
}

// typeString renders t the way reflect.Type.String does, qualifying named
// types with their package name.
func typeString(t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string { return p.Name() })
}
