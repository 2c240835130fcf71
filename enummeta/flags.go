package enummeta

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"typemeta/meta"
	"typemeta/typecache"
)

const highBit = uint64(1) << 63

// sortedMembers returns the members ordered by normalized value, keeping
// declaration order between equal values.
func (e *Engine) sortedMembers(enum meta.Enum) []member {
	key := typecache.Key{View: ViewSortedMembers, Type: enum.ID()}

	return typecache.Get(e.cache, key, func() []member {
		sorted := slices.Clone(e.members(enum))
		slices.SortStableFunc(sorted, func(a, b member) int {
			return cmp.Compare(a.bits, b.bits)
		})

		return sorted
	})
}

func asFlags(t meta.Type) (meta.Enum, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	if !enum.IsFlags() {
		return nil, fmt.Errorf("%w: %s", ErrNotFlags, enum.ID())
	}

	return enum, nil
}

// UniqueFlags yields the canonical single-bit members whose bit is set in
// composite, in ascending value order whatever the declaration order.
// Aggregate members (several bits) and zero-valued members are never yielded.
// Aliases are collapsed: of several members with the same single-bit value
// only the first declared is yielded, so Read = 1 and View = 1 yield Read
// alone. The sequence is lazy and may be iterated any number of times.
func (e *Engine) UniqueFlags(t meta.Type, composite any) (iter.Seq[meta.EnumMember], error) {
	enum, err := asFlags(t)
	if err != nil {
		return nil, err
	}

	bits, err := e.normalize(enum, composite)
	if err != nil {
		return nil, err
	}

	sorted := e.sortedMembers(enum)

	return func(yield func(meta.EnumMember) bool) {
		for m := range uniqueFlags(sorted, bits) {
			if !yield(m.EnumMember) {
				return
			}
		}
	}, nil
}

// uniqueFlags walks members sorted by value with a probe bit that only moves
// forward: a member is canonical exactly when the probe, shifted up to the
// member's value, lands on it.
func uniqueFlags(sorted []member, composite uint64) iter.Seq[member] {
	return func(yield func(member) bool) {
		probe := uint64(1)
		var last uint64

		emitted := false
		for _, m := range sorted {
			for probe < m.bits && probe != highBit {
				probe <<= 1
			}

			if probe != m.bits || composite&m.bits == 0 {
				continue
			}

			if emitted && m.bits == last {
				continue
			}

			last, emitted = m.bits, true
			if !yield(m) {
				return
			}
		}
	}
}

// Decomposes reports whether composite is exactly the union of canonical
// single-bit members, i.e. it carries no undeclared bits.
func (e *Engine) Decomposes(t meta.Type, composite any) (bool, error) {
	enum, err := asFlags(t)
	if err != nil {
		return false, err
	}

	bits, err := e.normalize(enum, composite)
	if err != nil {
		return false, err
	}

	var union uint64
	for m := range uniqueFlags(e.sortedMembers(enum), bits) {
		union |= m.bits
	}

	return union == bits, nil
}

// Describe renders value using member descriptions. Flags values are
// decomposed and the descriptions of their constituents joined with sep;
// constituents without a description are skipped. Other values are looked up
// exactly and yield "" when no described member matches. Callers wanting the
// usual ", " pass DefaultSeparator; an empty sep joins with nothing.
func (e *Engine) Describe(t meta.Type, value any, sep string) (string, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return "", err
	}

	return e.render(enum, value, sep, e.valueDescriptions(enum))
}

// Name renders value using member names, in the same manner as Describe.
func (e *Engine) Name(t meta.Type, value any, sep string) (string, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return "", err
	}

	return e.render(enum, value, sep, e.valueNames(enum))
}

func (e *Engine) render(enum meta.Enum, value any, sep string, labels map[uint64]string) (string, error) {
	bits, err := e.normalize(enum, value)
	if err != nil {
		return "", err
	}

	if !enum.IsFlags() {
		return labels[bits], nil
	}

	var parts []string
	for m := range uniqueFlags(e.sortedMembers(enum), bits) {
		if label, ok := labels[m.bits]; ok {
			parts = append(parts, label)
		}
	}

	return strings.Join(parts, sep), nil
}
