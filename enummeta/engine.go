// Package enummeta derives cached metadata from enumerated types and
// converts their values to and from strings.
//
// Every member value is normalized to a uint64 with its bit pattern intact
// (see primitive.Normalize), which lets the engine treat enums of any width
// and signedness uniformly. Bitmask ("flags") enums are decomposed into their
// canonical single-bit members for rendering and are rebuilt from delimited
// member lists when parsing.
//
// Parsing is lenient by default: unknown tokens are dropped and an
// unparseable non-flags string yields the enum's zero value. Pass Strict to
// turn unknown tokens into errors.
package enummeta

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"typemeta/meta"
	"typemeta/primitive"
	"typemeta/typecache"
)

const (
	// DefaultSeparator joins rendered flag members.
	DefaultSeparator = ", "
	// DefaultDelimiter splits flag member lists when parsing.
	DefaultDelimiter = ","
)

// Cache view names.
const (
	ViewMembers            = "enum.members"
	ViewSortedMembers      = "enum.sorted_members"
	ViewDescriptions       = "enum.descriptions"
	ViewValueDescriptions  = "enum.value_descriptions"
	ViewValueNames         = "enum.value_names"
	ViewOptions            = "enum.options"
	ViewDescriptionOptions = "enum.description_options"
	ViewLookup             = "enum.lookup"
)

var (
	// ErrNotFlags is returned by flag operations on enums that are not bitmask types.
	ErrNotFlags = fmt.Errorf("%w: not a flags enum", meta.ErrInvalidArgument)
	// ErrUnknownMember is returned in strict mode for tokens that name no member.
	ErrUnknownMember = errors.New("unknown enum member")
)

// Option is a presentation entry pairing a label with the member's ordinal.
type Option struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Engine computes enum metadata and caches it in a typecache.Cache.
// It is safe for concurrent use.
type Engine struct {
	cache     *typecache.Cache
	reflector *meta.Reflector
	logger    *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithReflector sets the reflector used by the typed helpers.
func WithReflector(r *meta.Reflector) EngineOption {
	return func(e *Engine) { e.reflector = r }
}

// WithLogger sets the engine's logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine storing its views in cache.
func NewEngine(cache *typecache.Cache, opts ...EngineOption) *Engine {
	e := &Engine{
		cache:     cache,
		reflector: meta.Default,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// member is an EnumMember with its normalized value.
type member struct {
	meta.EnumMember
	bits uint64
}

// members returns the enum's members in declaration order, normalized.
func (e *Engine) members(enum meta.Enum) []member {
	key := typecache.Key{View: ViewMembers, Type: enum.ID()}

	return typecache.Get(e.cache, key, func() []member {
		kind := enum.Underlying()
		result := make([]member, 0, len(enum.Members()))

		for _, m := range enum.Members() {
			bits, err := primitive.NormalizeAs(kind, m.Value)
			if err != nil {
				e.logger.Warn("skipping enum member with unusable value",
					zap.Stringer("type", enum.ID()),
					zap.String("member", m.Name),
					zap.Error(err))

				continue
			}

			result = append(result, member{EnumMember: m, bits: bits})
		}

		e.logger.Debug("normalized enum members",
			zap.Stringer("type", enum.ID()),
			zap.Int("members", len(result)))

		return result
	})
}

// DescriptionList returns the descriptions of description-bearing members
// in declaration order.
func (e *Engine) DescriptionList(t meta.Type) ([]string, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	key := typecache.Key{View: ViewDescriptions, Type: enum.ID()}
	list := typecache.Get(e.cache, key, func() []string {
		result := []string{}
		for _, m := range e.members(enum) {
			if m.HasDescription() {
				result = append(result, m.Description)
			}
		}

		return result
	})

	return slices.Clone(list), nil
}

// ValueDescriptions maps normalized values to descriptions. Only members with
// a description appear; when several share a value the last one wins.
func (e *Engine) ValueDescriptions(t meta.Type) (map[uint64]string, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	return maps.Clone(e.valueDescriptions(enum)), nil
}

func (e *Engine) valueDescriptions(enum meta.Enum) map[uint64]string {
	key := typecache.Key{View: ViewValueDescriptions, Type: enum.ID()}

	return typecache.Get(e.cache, key, func() map[uint64]string {
		result := make(map[uint64]string)
		for _, m := range e.members(enum) {
			if m.HasDescription() {
				result[m.bits] = m.Description
			}
		}

		return result
	})
}

// ValueNames maps normalized values to member names. When several members
// share a value the last one wins.
func (e *Engine) ValueNames(t meta.Type) (map[uint64]string, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	return maps.Clone(e.valueNames(enum)), nil
}

func (e *Engine) valueNames(enum meta.Enum) map[uint64]string {
	key := typecache.Key{View: ViewValueNames, Type: enum.ID()}

	return typecache.Get(e.cache, key, func() map[uint64]string {
		result := make(map[uint64]string)
		for _, m := range e.members(enum) {
			result[m.bits] = m.Name
		}

		return result
	})
}

// Options returns a name/ordinal pair per member in declaration order.
// Ordinals are rendered in the enum's own width and signedness.
func (e *Engine) Options(t meta.Type) ([]Option, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	key := typecache.Key{View: ViewOptions, Type: enum.ID()}
	opts := typecache.Get(e.cache, key, func() []Option {
		members := e.members(enum)
		result := make([]Option, len(members))
		for i, m := range members {
			result[i] = Option{Name: m.Name, Value: ordinal(enum.Underlying(), m.bits)}
		}

		return result
	})

	return slices.Clone(opts), nil
}

// DescriptionOptions returns a description/ordinal pair per distinct
// described value, ordered by normalized value.
func (e *Engine) DescriptionOptions(t meta.Type) ([]Option, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	key := typecache.Key{View: ViewDescriptionOptions, Type: enum.ID()}
	opts := typecache.Get(e.cache, key, func() []Option {
		descriptions := e.valueDescriptions(enum)
		values := slices.Sorted(maps.Keys(descriptions))

		result := make([]Option, len(values))
		for i, v := range values {
			result[i] = Option{Name: descriptions[v], Value: ordinal(enum.Underlying(), v)}
		}

		return result
	})

	return slices.Clone(opts), nil
}

// ParseUnderlying converts a numeric literal into the enum's underlying
// representation. Membership is not checked; see IsDefined.
func (e *Engine) ParseUnderlying(t meta.Type, s string) (any, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	return primitive.ParseUnderlying(enum.Underlying(), s)
}

// IsDefined reports whether value equals the value of some member.
func (e *Engine) IsDefined(t meta.Type, value any) (bool, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return false, err
	}

	bits, err := primitive.NormalizeAs(enum.Underlying(), value)
	if err != nil {
		return false, fmt.Errorf("%w: %w", meta.ErrInvalidArgument, err)
	}

	_, ok := e.valueNames(enum)[bits]

	return ok, nil
}

// Normalize returns value's normalized representation for enum t.
func (e *Engine) Normalize(t meta.Type, value any) (uint64, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return 0, err
	}

	return e.normalize(enum, value)
}

func (e *Engine) normalize(enum meta.Enum, value any) (uint64, error) {
	bits, err := primitive.NormalizeAs(enum.Underlying(), value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s value: %w", meta.ErrInvalidArgument, enum.ID(), err)
	}

	return bits, nil
}

// Zero returns the zero value of enum t.
func (e *Engine) Zero(t meta.Type) (any, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	return enum.FromBits(0), nil
}

func (e *Engine) typeFor(rt reflect.Type) meta.Type {
	return e.reflector.Of(rt)
}

// ordinal renders a normalized value as a decimal in the given kind.
func ordinal(kind primitive.KindEnum, bits uint64) string {
	return fmt.Sprint(primitive.FromBits(kind, bits))
}
