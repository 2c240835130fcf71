package meta

import (
	"errors"
	"fmt"

	"typemeta/primitive"
)

// ErrInvalidArgument is returned when an operation receives a type it cannot
// work with, such as an enum operation invoked on a struct.
var ErrInvalidArgument = errors.New("invalid argument")

// Type is an introspector-neutral description of a Go type.
type Type interface {
	// ID returns the identity used to cache everything derived from the type.
	ID() TypeID
	// Kind returns the shape category.
	Kind() Kind
	// Attributes returns, for concrete types, every public instance attribute
	// in declaration order (promoted fields included, shadowed ones excluded)
	// and, for contracts, only the attributes the contract declares itself.
	Attributes() []Attribute
	// Extends returns the contracts a contract directly extends, in
	// declaration order. Empty for every other kind.
	Extends() []Type
}

// Enum is a Type whose values form a fixed set of named members.
type Enum interface {
	Type
	// Underlying returns the width and signedness of the member values.
	Underlying() primitive.KindEnum
	// IsFlags reports whether members are meant to be combined as a bitmask.
	IsFlags() bool
	// Members returns the members in declaration order.
	Members() []EnumMember
	// FromBits reinterprets a normalized value as a value of the enum.
	FromBits(u uint64) any
}

// Attribute describes one attribute slot of a type.
type Attribute struct {
	Name    string             // Go field or getter name
	Type    string             // Declared type, e.g. "string" or "[]store.OrderItem"
	Kind    primitive.KindEnum // Primitive classification of Type (0 for composites)
	Ordinal int                // Position in the sequence it was returned in
	Owner   TypeID             // Type that declares the attribute
	Index   []int              // reflect field index path; nil for getters and static types
	Getter  bool               // True if the attribute is a method `Name() T`
}

// AttributeID identifies an attribute independently of where it was reached from.
type AttributeID struct {
	Owner TypeID
	Name  string
}

// Identity returns the attribute's identity.
func (a Attribute) Identity() AttributeID {
	return AttributeID{Owner: a.Owner, Name: a.Name}
}

// EnumMember is a single named value of an enumerated type.
type EnumMember struct {
	Name        string
	Value       any    // Native width: int8, uint16, a named integer type, ...
	Description string // Empty when the member has none
}

// HasDescription reports whether a description is attached to the member.
func (m EnumMember) HasDescription() bool {
	return m.Description != ""
}

// AsEnum returns t as an Enum, or an error wrapping ErrInvalidArgument.
func AsEnum(t Type) (Enum, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type is not an enumerated type", ErrInvalidArgument)
	}

	e, ok := t.(Enum)
	if !ok || t.Kind() != KindEnum {
		return nil, fmt.Errorf("%w: %s is not an enumerated type", ErrInvalidArgument, t.ID())
	}

	return e, nil
}
