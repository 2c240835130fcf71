package enummeta

import (
	"fmt"
	"iter"
	"reflect"

	"typemeta/meta"
)

// DescribeOf is Describe for a value of a registered enum type.
func DescribeOf[T meta.Integer](e *Engine, value T, sep string) (string, error) {
	return e.Describe(e.typeFor(reflect.TypeFor[T]()), value, sep)
}

// NameOf is Name for a value of a registered enum type.
func NameOf[T meta.Integer](e *Engine, value T, sep string) (string, error) {
	return e.Name(e.typeFor(reflect.TypeFor[T]()), value, sep)
}

// ParseAs is ParseDelimited returning the enum's own type.
func ParseAs[T meta.Integer](e *Engine, s, delimiter string, opts ...ParseOption) (T, error) {
	var zero T

	v, err := e.ParseDelimited(e.typeFor(reflect.TypeFor[T]()), s, delimiter, opts...)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: parsed %T, want %T", meta.ErrInvalidArgument, v, zero)
	}

	return typed, nil
}

// UniqueFlagsOf is UniqueFlags yielding typed member values.
func UniqueFlagsOf[T meta.Integer](e *Engine, composite T) (iter.Seq[T], error) {
	seq, err := e.UniqueFlags(e.typeFor(reflect.TypeFor[T]()), composite)
	if err != nil {
		return nil, err
	}

	return func(yield func(T) bool) {
		for m := range seq {
			if v, ok := m.Value.(T); ok && !yield(v) {
				return
			}
		}
	}, nil
}
