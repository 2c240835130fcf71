// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// in-memory model of the structs, interfaces and enums declared in source,
// and exposes each named type through the meta.Type abstraction.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/interface/enum/basic/alias/pointer/slice/external)
//   - FieldInfo, MethodInfo, EnumInfo: fields, interface getters and enum members
//
// Source conventions:
//   - an enum is a named integer type with at least one exported constant of
//     that type in the same package; members keep declaration order
//   - a member's description is the trailing line comment of its constant
//   - a "//typemeta:flags" line in the type's doc comment marks a flags enum
//   - interface getters and embedded interfaces keep declaration order
package analyze
