package meta

import "reflect"

// TypeID uniquely identifies a type by its package path and name.
//
// IDs produced by the runtime Reflector also carry the reflect.Type, so two
// distinct runtime types never collide even when they share a package and a
// name (function-local types, for example).
type TypeID struct {
	PkgPath string // e.g., "typemeta/store"
	Name    string // e.g., "Order"

	rtype reflect.Type
}

// IDOf returns the identity of a runtime type.
// Unnamed types use their type literal as the name.
func IDOf(rt reflect.Type) TypeID {
	if rt == nil {
		return TypeID{}
	}

	name := rt.Name()
	if name == "" {
		name = rt.String()
	}

	return TypeID{PkgPath: rt.PkgPath(), Name: name, rtype: rt}
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Runtime returns the reflect.Type the ID was derived from, or nil for IDs
// of statically analyzed types.
func (t TypeID) Runtime() reflect.Type {
	return t.rtype
}

// IsZero reports whether the ID identifies nothing.
func (t TypeID) IsZero() bool {
	return t == TypeID{}
}
