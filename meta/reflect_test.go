package meta

import (
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemeta/primitive"
)

type audit struct {
	CreatedBy string
	Version   int
}

type Base struct {
	ID   int64
	Name string
}

type Product struct {
	Base
	*audit
	Name  string // shadows Base.Name
	Price float64
	note  string
}

type Entity interface{ ID() int64 }

type Named interface {
	Entity
	Name() string
	Rename(string)
}

type Level int8

func attributeNames(attrs []Attribute) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}

	return names
}

func TestReflector_StructPromotionAndShadowing(t *testing.T) {
	typ := NewReflector(NewRegistry()).Of(reflect.TypeOf(Product{}))
	require.NotNil(t, typ)
	assert.Equal(t, KindConcrete, typ.Kind())

	attrs := typ.Attributes()
	assert.Equal(t, []string{"ID", "CreatedBy", "Version", "Name", "Price"}, attributeNames(attrs), spew.Sdump(attrs))

	for i, a := range attrs {
		assert.Equal(t, i, a.Ordinal)
	}

	assert.Equal(t, IDOf(reflect.TypeOf(Base{})), attrs[0].Owner)
	assert.Equal(t, []int{0, 0}, attrs[0].Index)
	assert.Equal(t, IDOf(reflect.TypeOf(audit{})), attrs[1].Owner)
	assert.Equal(t, IDOf(reflect.TypeOf(Product{})), attrs[3].Owner)
	assert.Equal(t, "float64", attrs[4].Type)
	assert.Equal(t, primitive.KindFloat64, attrs[4].Kind)
}

func TestReflector_PointerToStruct(t *testing.T) {
	r := NewReflector(NewRegistry())
	assert.Equal(t, r.Of(reflect.TypeOf(Base{})).ID(), r.Of(reflect.TypeOf(&Base{})).ID())
}

func TestReflector_ContractWithoutDeclaration(t *testing.T) {
	typ := NewReflector(NewRegistry()).Of(reflect.TypeFor[Named]())
	assert.Equal(t, KindContract, typ.Kind())
	assert.Empty(t, typ.Extends())

	// Rename is not a getter; ID is flattened in by reflect.
	assert.Equal(t, []string{"ID", "Name"}, attributeNames(typ.Attributes()))
}

func TestReflector_ContractWithDeclaredParents(t *testing.T) {
	reg := NewRegistry()
	typ := DeclareContract[Named]([]reflect.Type{reflect.TypeFor[Entity]()}, InRegistry(reg))

	assert.Equal(t, []string{"Name"}, attributeNames(typ.Attributes()))

	parents := typ.Extends()
	require.Len(t, parents, 1)
	assert.Equal(t, "Entity", parents[0].ID().Name)
	assert.Equal(t, []string{"ID"}, attributeNames(parents[0].Attributes()))
	assert.True(t, typ.Attributes()[0].Getter)
}

func TestRegistry_DeclareContractRejectsNonParents(t *testing.T) {
	reg := NewRegistry()
	err := reg.DeclareContract(reflect.TypeFor[Entity](), reflect.TypeFor[Named]())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = reg.DeclareContract(reflect.TypeOf(Base{}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterEnum(t *testing.T) {
	reg := NewRegistry()
	enum := RegisterEnum([]EnumValue[Level]{
		{Name: "Low", Value: -1, Description: "Low level"},
		{Name: "High", Value: 1},
	}, InRegistry(reg))

	assert.Equal(t, KindEnum, enum.Kind())
	assert.Equal(t, primitive.KindInt8, enum.Underlying())
	assert.False(t, enum.IsFlags())
	assert.Empty(t, enum.Attributes())

	members := enum.Members()
	require.Len(t, members, 2)
	assert.Equal(t, Level(-1), members[0].Value)
	assert.True(t, members[0].HasDescription())
	assert.False(t, members[1].HasDescription())

	assert.Equal(t, Level(-1), enum.FromBits(255))
	assert.Equal(t, Level(0), enum.FromBits(0))

	// Members returns a copy.
	members[0].Name = "changed"
	assert.Equal(t, "Low", enum.Members()[0].Name)

	assert.Panics(t, func() {
		RegisterEnum([]EnumValue[Level]{{Name: "Again", Value: 2}}, InRegistry(reg))
	})
}

func TestRegistry_RegisterEnumValidation(t *testing.T) {
	reg := NewRegistry()

	err := reg.RegisterEnum(reflect.TypeOf(""), false, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = reg.RegisterEnum(reflect.TypeFor[Level](), false, []EnumMember{{Name: "Bad", Value: 3}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, reg.RegisterEnum(reflect.TypeFor[Level](), true, nil))
	err = reg.RegisterEnum(reflect.TypeFor[Level](), true, nil)
	assert.True(t, errors.Is(err, ErrAlreadyRegistered))
	assert.Equal(t, 1, reg.Count())
}

func TestAsEnum(t *testing.T) {
	r := NewReflector(NewRegistry())

	_, err := AsEnum(r.Of(reflect.TypeFor[Level]()))
	assert.ErrorIs(t, err, ErrInvalidArgument, "unregistered integer types are not enums")

	_, err = AsEnum(r.Of(reflect.TypeOf(Base{})))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = AsEnum(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTypeID_LocalTypesDoNotCollide(t *testing.T) {
	first := func() reflect.Type {
		type Local struct{ A int }
		return reflect.TypeOf(Local{})
	}()
	second := func() reflect.Type {
		type Local struct{ A int }
		return reflect.TypeOf(Local{})
	}()

	a, b := IDOf(first), IDOf(second)
	assert.Equal(t, a.String(), b.String())
	assert.False(t, a == b)
	assert.True(t, IDOf(first) == IDOf(first))
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: "typemeta/store", Name: "Order"}
	assert.Equal(t, "typemeta/store.Order", id.String())
	assert.Nil(t, id.Runtime())

	assert.Equal(t, "int", IDOf(reflect.TypeOf(0)).String())
	assert.Equal(t, "[]string", IDOf(reflect.TypeOf([]string{})).String())
	assert.True(t, TypeID{}.IsZero())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "KindContract", KindContract.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
