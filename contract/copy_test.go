package contract

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemeta/meta"
	"typemeta/store"
)

// pinned is a Listing that can only be renamed.
type pinned struct {
	name string
}

func (p *pinned) ID() int64                   { return 7 }
func (p *pinned) Name() string                { return p.name }
func (p *pinned) Price() int64                { return 100 }
func (p *pinned) SKU() string                 { return "PIN-7" }
func (p *pinned) Featured() bool              { return true }
func (p *pinned) Describe(lang string) string { return p.name }
func (p *pinned) SetName(name string)         { p.name = name }

// mistyped takes a price in a different unit than Priced reports it.
type mistyped struct {
	price float64
}

func (m *mistyped) ID() int64              { return 1 }
func (m *mistyped) Price() int64           { return int64(m.price) }
func (m *mistyped) SetID(int64)            {}
func (m *mistyped) SetPrice(price float64) { m.price = price }

func TestCopyAs_Listing(t *testing.T) {
	src := store.NewCatalogEntry(9, "Desk", 25000, "D-9", true)
	dst := &store.CatalogEntry{}

	require.NoError(t, CopyAs[store.Listing](src, dst))
	assert.Equal(t, src, dst, spew.Sdump(dst))
}

func TestCopy_ParentContractOnly(t *testing.T) {
	src := store.NewCatalogEntry(9, "Desk", 25000, "D-9", true)
	dst := store.NewCatalogEntry(1, "Chair", 4000, "C-1", false)

	require.NoError(t, Copy(reflect.TypeFor[store.Named](), src, dst))

	assert.Equal(t, int64(9), dst.ID())
	assert.Equal(t, "Desk", dst.Name())
	assert.Equal(t, int64(4000), dst.Price())
	assert.Equal(t, "C-1", dst.SKU())
	assert.False(t, dst.Featured())
}

func TestCopy_MissingSettersCopyNothing(t *testing.T) {
	src := store.NewCatalogEntry(9, "Desk", 25000, "D-9", true)
	dst := &pinned{name: "Pin"}

	err := CopyAs[store.Listing](src, dst)
	require.ErrorIs(t, err, ErrNoSetter)
	assert.Contains(t, err.Error(), "SetFeatured")
	assert.Contains(t, err.Error(), "SetID")
	assert.NotContains(t, err.Error(), "SetName")
	assert.Equal(t, "Pin", dst.name)
}

func TestCopy_SetterTypeMustMatch(t *testing.T) {
	err := CopyAs[store.Priced](store.NewCatalogEntry(1, "A", 5, "S", false), &mistyped{})
	require.ErrorIs(t, err, ErrNoSetter)
	assert.Contains(t, err.Error(), "SetPrice")
	assert.NotContains(t, err.Error(), "SetID")
}

func TestCopy_InvalidArguments(t *testing.T) {
	entry := store.NewCatalogEntry(1, "A", 5, "S", false)

	tests := []struct {
		name     string
		contract reflect.Type
		src, dst any
	}{
		{"struct contract", reflect.TypeFor[store.CatalogEntry](), entry, entry},
		{"nil contract", nil, entry, entry},
		{"nil source", reflect.TypeFor[store.Named](), nil, entry},
		{"nil destination", reflect.TypeFor[store.Named](), entry, nil},
		{"source does not implement", reflect.TypeFor[store.Named](), store.CatalogEntry{}, entry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Copy(tt.contract, tt.src, tt.dst)
			require.ErrorIs(t, err, meta.ErrInvalidArgument)
		})
	}
}
