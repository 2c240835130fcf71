// Package meta defines the introspection model shared by the shape resolver
// and the enum metadata engine.
//
// A Type describes one Go type through an introspector-neutral contract:
// its identity, its kind, the attributes it declares and the contracts it
// extends. Enumerated types additionally implement Enum.
//
// Two introspectors produce these descriptions:
//   - Reflector: runtime reflection over reflect.Type, with enums and
//     contract parents declared in a Registry
//   - internal/analyze: static analysis of source packages via go/types
package meta
