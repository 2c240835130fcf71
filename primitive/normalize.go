package primitive

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Normalize reinterprets an integer value as uint64 without changing its
// bit pattern. Signed values are zero-extended from their own width, so
// int8(-1) becomes 255 and int32(-1) becomes 4294967295. Named integer types
// are handled through their underlying kind.
//
// Values that are not integers fall back to a generic unsigned conversion,
// which is not bit-exact (negative floats, for example, are rejected).
func Normalize(raw any) (uint64, error) {
	switch v := raw.(type) {
	case int8:
		return uint64(uint8(v)), nil
	case int16:
		return uint64(uint16(v)), nil
	case int32:
		return uint64(uint32(v)), nil
	case int64:
		return uint64(v), nil
	case int:
		return uint64(uint(v)), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.IsValid() {
		if kind := FromReflectKind(rv.Kind()); kind.IsInteger() {
			if kind.IsSigned() {
				return truncate(uint64(rv.Int()), kind), nil
			}

			return rv.Uint(), nil
		}
	}

	u, err := cast.ToUint64E(raw)
	if err != nil {
		return 0, fmt.Errorf("cannot normalize %T: %w", raw, err)
	}

	return u, nil
}

// NormalizeAs converts raw to the width and signedness described by kind and
// then normalizes it. It is used when a value was produced at a wider type
// than the one it was declared with, e.g. an int64 constant of an int8 enum.
func NormalizeAs(kind KindEnum, raw any) (uint64, error) {
	if !kind.IsInteger() {
		return Normalize(raw)
	}

	u, err := Normalize(raw)
	if err != nil {
		return 0, err
	}

	return truncate(u, kind), nil
}

// FromBits reinterprets a normalized value as a value of the given kind.
// Bits above the kind's width are discarded.
func FromBits(kind KindEnum, u uint64) any {
	switch kind {
	case KindInt:
		return int(u)
	case KindInt8:
		return int8(u)
	case KindInt16:
		return int16(u)
	case KindInt32:
		return int32(u)
	case KindInt64:
		return int64(u)
	case KindUint:
		return uint(u)
	case KindUint8:
		return uint8(u)
	case KindUint16:
		return uint16(u)
	case KindUint32:
		return uint32(u)
	default:
		return u
	}
}

// ParseUnderlying parses a numeric literal into a value of the given integer
// kind. Base prefixes (0x, 0o, 0b) and underscores are accepted; values
// outside the kind's range are rejected.
func ParseUnderlying(kind KindEnum, s string) (any, error) {
	if !kind.IsInteger() {
		return nil, fmt.Errorf("kind %s is not an integer kind", kind)
	}

	s = strings.TrimSpace(s)

	if kind.IsSigned() {
		n, err := strconv.ParseInt(s, 0, kind.Bits())
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q as %s: %w", s, kind, err)
		}

		return FromBits(kind, uint64(n)), nil
	}

	n, err := strconv.ParseUint(s, 0, kind.Bits())
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q as %s: %w", s, kind, err)
	}

	return FromBits(kind, n), nil
}

func truncate(u uint64, kind KindEnum) uint64 {
	bits := kind.Bits()
	if bits <= 0 || bits >= 64 {
		return u
	}

	return u & (1<<uint(bits) - 1)
}
