package meta

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"typemeta/primitive"
)

// ErrAlreadyRegistered is returned when a type is declared twice.
var ErrAlreadyRegistered = errors.New("already registered")

// Integer is the set of types an enumerated type can be declared with.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EnumValue declares one member of an enumerated type.
type EnumValue[T Integer] struct {
	Name        string
	Value       T
	Description string
}

// Registry holds the declarations runtime reflection cannot recover on its
// own: the members of enumerated types and the parents of contracts.
// Declarations are immutable once made. A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	enums     map[reflect.Type]*enumDecl
	contracts map[reflect.Type][]reflect.Type
}

type enumDecl struct {
	kind    primitive.KindEnum
	flags   bool
	members []EnumMember
}

// DefaultRegistry is used by RegisterEnum and DeclareContract unless an
// InRegistry option says otherwise.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		enums:     make(map[reflect.Type]*enumDecl),
		contracts: make(map[reflect.Type][]reflect.Type),
	}
}

// RegisterEnum declares rt as an enumerated type with the given members.
// The members' values must have type rt.
func (r *Registry) RegisterEnum(rt reflect.Type, flags bool, members []EnumMember) error {
	if rt == nil {
		return fmt.Errorf("%w: nil enum type", ErrInvalidArgument)
	}

	kind := primitive.FromReflectKind(rt.Kind())
	if !kind.IsInteger() {
		return fmt.Errorf("%w: %s is not an integer type", ErrInvalidArgument, rt)
	}

	for _, m := range members {
		if reflect.TypeOf(m.Value) != rt {
			return fmt.Errorf("%w: member %s of %s has type %T", ErrInvalidArgument, m.Name, rt, m.Value)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.enums[rt]; ok {
		return fmt.Errorf("enum %s: %w", rt, ErrAlreadyRegistered)
	}

	r.enums[rt] = &enumDecl{
		kind:    kind,
		flags:   flags,
		members: append([]EnumMember(nil), members...),
	}

	return nil
}

// DeclareContract records the interfaces rt directly embeds, in declaration
// order. Runtime reflection flattens embedded interfaces, so without a
// declaration every getter of rt is treated as its own.
func (r *Registry) DeclareContract(rt reflect.Type, parents ...reflect.Type) error {
	if rt == nil || rt.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %v is not an interface", ErrInvalidArgument, rt)
	}

	for _, p := range parents {
		if p == nil || p.Kind() != reflect.Interface {
			return fmt.Errorf("%w: parent %v of %s is not an interface", ErrInvalidArgument, p, rt)
		}

		if !rt.Implements(p) {
			return fmt.Errorf("%w: %s does not embed %s", ErrInvalidArgument, rt, p)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contracts[rt]; ok {
		return fmt.Errorf("contract %s: %w", rt, ErrAlreadyRegistered)
	}

	r.contracts[rt] = append([]reflect.Type(nil), parents...)

	return nil
}

// Count returns the number of declared enums and contracts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.enums) + len(r.contracts)
}

func (r *Registry) enum(rt reflect.Type) (*enumDecl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.enums[rt]

	return d, ok
}

func (r *Registry) parents(rt reflect.Type) []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.contracts[rt]
}

// Option configures a registration.
type Option func(*options)

type options struct {
	registry *Registry
	flags    bool
}

// Flags marks an enumerated type as a bitmask type.
func Flags() Option {
	return func(o *options) { o.flags = true }
}

// InRegistry directs a registration to r instead of DefaultRegistry.
func InRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

func applyOptions(opts []Option) options {
	o := options{registry: DefaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// RegisterEnum declares T as an enumerated type and returns its description.
// It panics if T was already registered in the target registry; it is meant
// to be called from package-level variable declarations.
func RegisterEnum[T Integer](values []EnumValue[T], opts ...Option) Enum {
	o := applyOptions(opts)
	rt := reflect.TypeFor[T]()

	members := make([]EnumMember, len(values))
	for i, v := range values {
		members[i] = EnumMember{Name: v.Name, Value: v.Value, Description: v.Description}
	}

	if err := o.registry.RegisterEnum(rt, o.flags, members); err != nil {
		panic(err)
	}

	enum, err := AsEnum(NewReflector(o.registry).Of(rt))
	if err != nil {
		panic(err)
	}

	return enum
}

// DeclareContract records the interfaces that contract C directly embeds.
// It panics on invalid declarations.
func DeclareContract[C any](parents []reflect.Type, opts ...Option) Type {
	o := applyOptions(opts)
	rt := reflect.TypeFor[C]()

	if err := o.registry.DeclareContract(rt, parents...); err != nil {
		panic(err)
	}

	return NewReflector(o.registry).Of(rt)
}
