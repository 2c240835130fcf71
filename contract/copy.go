// Package contract copies the attributes of an interface contract from one
// implementation onto another.
//
// Attributes are the contract's getters, gathered across every interface it
// embeds (see package shape). The destination receives each value through a
// setter named after the getter: attribute Name is written with SetName.
package contract

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"typemeta/meta"
	"typemeta/shape"
	"typemeta/typecache"
)

// ErrNoSetter is returned when the destination lacks a usable setter for
// some attribute of the contract. Nothing is copied in that case.
var ErrNoSetter = errors.New("no setter")

// SetterPrefix is prepended to an attribute name to find its setter.
const SetterPrefix = "Set"

// Mapper copies contracts using shapes from a shape.Resolver.
type Mapper struct {
	resolver *shape.Resolver
	logger   *zap.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the mapper's logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mapper) { m.logger = l }
}

// NewMapper creates a Mapper.
func NewMapper(resolver *shape.Resolver, opts ...Option) *Mapper {
	m := &Mapper{resolver: resolver, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Default is a Mapper with its own cache over meta.Default.
var Default = NewMapper(shape.NewResolver(typecache.New()))

// Copy copies using the Default mapper.
func Copy(contract reflect.Type, src, dst any) error {
	return Default.Copy(contract, src, dst)
}

// CopyAs copies the attributes of contract C from src to dst using the
// Default mapper.
func CopyAs[C any](src, dst C) error {
	return Default.Copy(reflect.TypeFor[C](), src, dst)
}

type assignment struct {
	name   string
	getter reflect.Value
	setter reflect.Value
}

// Copy reads every attribute of contract from src and writes it to dst.
// Both must implement contract. All setters are checked before the first
// write, so dst is left untouched when any is missing.
func (m *Mapper) Copy(contract reflect.Type, src, dst any) error {
	if contract == nil || contract.Kind() != reflect.Interface {
		return fmt.Errorf("%w: contract %v is not an interface", meta.ErrInvalidArgument, contract)
	}

	srcV, dstV := reflect.ValueOf(src), reflect.ValueOf(dst)
	for _, v := range []reflect.Value{srcV, dstV} {
		if !v.IsValid() || !v.Type().Implements(contract) {
			return fmt.Errorf("%w: %v does not implement %s", meta.ErrInvalidArgument, typeOf(v), contract)
		}
	}

	attrs := m.resolver.ResolveType(contract)
	plan := make([]assignment, 0, len(attrs))

	var missing []string

	for _, a := range attrs {
		getter := srcV.MethodByName(a.Name)
		setter := dstV.MethodByName(SetterPrefix + a.Name)

		if !getter.IsValid() || !accepts(setter, getter.Type().Out(0)) {
			missing = append(missing, SetterPrefix+a.Name)

			continue
		}

		plan = append(plan, assignment{name: a.Name, getter: getter, setter: setter})
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrNoSetter, dstV.Type(), strings.Join(missing, ", "))
	}

	for _, p := range plan {
		p.setter.Call(p.getter.Call(nil))
	}

	m.logger.Debug("copied contract",
		zap.Stringer("contract", contract),
		zap.Stringer("from", srcV.Type()),
		zap.Stringer("to", dstV.Type()),
		zap.Int("attributes", len(plan)))

	return nil
}

// accepts reports whether setter is a method taking exactly one value of
// type t and returning nothing.
func accepts(setter reflect.Value, t reflect.Type) bool {
	if !setter.IsValid() {
		return false
	}

	st := setter.Type()

	return st.NumIn() == 1 && st.NumOut() == 0 && !st.IsVariadic() && t.AssignableTo(st.In(0))
}

func typeOf(v reflect.Value) any {
	if !v.IsValid() {
		return "nil"
	}

	return v.Type()
}
