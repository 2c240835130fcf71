package primitive

import (
	"go/types"
	"reflect"
	"strconv"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies the primitive representation of a value: the declared
// type of an attribute, or the underlying width and signedness of an enum.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named integer or string type

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

type kindTraits struct {
	bits    int
	integer bool
	signed  bool
	float   bool
}

var traits = [KindTotal]kindTraits{
	KindInt:     {bits: strconv.IntSize, integer: true, signed: true},
	KindInt8:    {bits: 8, integer: true, signed: true},
	KindInt16:   {bits: 16, integer: true, signed: true},
	KindInt32:   {bits: 32, integer: true, signed: true},
	KindInt64:   {bits: 64, integer: true, signed: true},
	KindUint:    {bits: strconv.IntSize, integer: true},
	KindUint8:   {bits: 8, integer: true},
	KindUint16:  {bits: 16, integer: true},
	KindUint32:  {bits: 32, integer: true},
	KindUint64:  {bits: 64, integer: true},
	KindFloat32: {bits: 32, float: true},
	KindFloat64: {bits: 64, float: true},
}

func (k KindEnum) traits() kindTraits {
	if k <= 0 || int(k) >= KindTotal {
		return kindTraits{}
	}

	return traits[k]
}

func (k KindEnum) IsNumber() bool { return k.IsInteger() || k.IsFloat() }

func (k KindEnum) IsInteger() bool { return k.traits().integer }

func (k KindEnum) IsFloat() bool { return k.traits().float }

func (k KindEnum) IsSigned() bool { return k.traits().signed }

func (k KindEnum) IsUnsigned() bool { return k.IsInteger() && !k.IsSigned() }

// Bits returns the width of a numeric kind, or 0 for everything else.
// KindInt and KindUint report the platform word size.
func (k KindEnum) Bits() int { return k.traits().bits }

// FromReflectType classifies a reflect.Type. Named integer and string types
// other than the well-known ones are reported as KindPrimitiveEnum.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	switch rtype {
	case reflect.TypeOf(time.Time{}):
		return KindTime
	case reflect.TypeOf(time.Duration(0)):
		return KindDuration
	}

	kind := FromReflectKind(rtype.Kind())
	if kind == 0 {
		return 0
	}

	if rtype.PkgPath() != "" && (kind.IsInteger() || kind == KindString) {
		return KindPrimitiveEnum
	}

	return kind
}

// FromReflectKind maps a reflect.Kind to its representation kind, ignoring
// any type name.
func FromReflectKind(k reflect.Kind) KindEnum {
	switch k {
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	default:
		return 0
	}
}

// FromBasicKind maps a go/types basic kind to its representation kind.
func FromBasicKind(k types.BasicKind) KindEnum {
	switch k {
	case types.Int:
		return KindInt
	case types.Int8:
		return KindInt8
	case types.Int16:
		return KindInt16
	case types.Int32:
		return KindInt32
	case types.Int64:
		return KindInt64
	case types.Uint:
		return KindUint
	case types.Uint8:
		return KindUint8
	case types.Uint16:
		return KindUint16
	case types.Uint32:
		return KindUint32
	case types.Uint64:
		return KindUint64
	case types.Float32:
		return KindFloat32
	case types.Float64:
		return KindFloat64
	case types.Bool:
		return KindBool
	case types.String:
		return KindString
	default:
		return 0
	}
}

// FromGoType classifies a go/types type the way FromReflectType classifies
// its runtime counterpart.
func FromGoType(t types.Type) KindEnum {
	if t == nil {
		return 0
	}

	named, isNamed := types.Unalias(t).(*types.Named)
	if isNamed {
		if obj := named.Obj(); obj.Pkg() != nil && obj.Pkg().Path() == "time" {
			switch obj.Name() {
			case "Time":
				return KindTime
			case "Duration":
				return KindDuration
			}
		}
	}

	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return 0
	}

	kind := FromBasicKind(basic.Kind())
	if isNamed && (kind.IsInteger() || kind == KindString) {
		return KindPrimitiveEnum
	}

	return kind
}

// IsNumeric reports whether values of rtype are integers or floats,
// looking through type names to the underlying representation.
func IsNumeric(rtype reflect.Type) bool {
	if rtype == nil {
		return false
	}

	return FromReflectKind(rtype.Kind()).IsNumber()
}
