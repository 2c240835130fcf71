package shape

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemeta/meta"
	"typemeta/typecache"
)

// contract is a hand-built meta.Type used to model interface hierarchies
// that runtime reflection cannot express.
type contract struct {
	name    string
	own     []string
	extends []*contract
	calls   *int
}

func (c *contract) ID() meta.TypeID { return meta.TypeID{PkgPath: "test/contracts", Name: c.name} }

func (c *contract) Kind() meta.Kind { return meta.KindContract }

func (c *contract) Attributes() []meta.Attribute {
	if c.calls != nil {
		*c.calls++
	}

	attrs := make([]meta.Attribute, len(c.own))
	for i, name := range c.own {
		attrs[i] = meta.Attribute{Name: name, Type: "string", Ordinal: i, Owner: c.ID(), Getter: true}
	}

	return attrs
}

func (c *contract) Extends() []meta.Type {
	parents := make([]meta.Type, len(c.extends))
	for i, p := range c.extends {
		parents[i] = p
	}

	return parents
}

func newResolver() *Resolver {
	return NewResolver(typecache.New())
}

func TestResolve_RootBeforeParents(t *testing.T) {
	b := &contract{name: "B", own: []string{"BeeField"}}
	c := &contract{name: "C", own: []string{"SeeField"}}
	a := &contract{name: "A", own: []string{"AyField"}, extends: []*contract{b, c}}

	got := newResolver().Names(a)
	assert.Equal(t, []string{"AyField", "BeeField", "SeeField"}, got)
}

func TestResolve_ExtendsOrderDecidesSiblings(t *testing.T) {
	b := &contract{name: "B", own: []string{"BeeField"}}
	c := &contract{name: "C", own: []string{"SeeField"}}
	a := &contract{name: "A", own: []string{"AyField"}, extends: []*contract{c, b}}

	assert.Equal(t, []string{"AyField", "SeeField", "BeeField"}, newResolver().Names(a))
}

func TestResolve_DiamondVisitsSharedAncestorOnce(t *testing.T) {
	calls := 0
	entity := &contract{name: "Entity", own: []string{"ID"}, calls: &calls}
	named := &contract{name: "Named", own: []string{"Name"}, extends: []*contract{entity}}
	priced := &contract{name: "Priced", own: []string{"Price"}, extends: []*contract{entity}}
	listing := &contract{name: "Listing", own: []string{"SKU"}, extends: []*contract{named, priced}}

	got := newResolver().Resolve(listing)

	names := make([]string, len(got))
	for i, a := range got {
		names[i] = a.Name
		assert.Equal(t, i, a.Ordinal)
	}

	assert.Equal(t, []string{"SKU", "Name", "Price", "ID"}, names)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Entity", got[3].Owner.Name)
}

func TestResolve_CycleTerminates(t *testing.T) {
	a := &contract{name: "A", own: []string{"X"}}
	b := &contract{name: "B", own: []string{"Y"}, extends: []*contract{a}}
	a.extends = []*contract{b}

	assert.Equal(t, []string{"X", "Y"}, newResolver().Names(a))
}

func TestResolve_SameNameFromDifferentContractsIsKept(t *testing.T) {
	b := &contract{name: "B", own: []string{"Name"}}
	a := &contract{name: "A", own: []string{"Name"}, extends: []*contract{b}}

	got := newResolver().Resolve(a)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Owner.Name)
	assert.Equal(t, "B", got[1].Owner.Name)
}

func TestResolve_Idempotent(t *testing.T) {
	calls := 0
	b := &contract{name: "B", own: []string{"Two"}}
	a := &contract{name: "A", own: []string{"One"}, extends: []*contract{b}, calls: &calls}

	cache := typecache.New()
	r := NewResolver(cache)

	first := r.Resolve(a)
	for range 5 {
		assert.Equal(t, first, r.Resolve(a))
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestResolve_ResultIsACopy(t *testing.T) {
	a := &contract{name: "A", own: []string{"One"}}
	r := newResolver()

	got := r.Resolve(a)
	got[0].Name = "mutated"

	assert.Equal(t, []string{"One"}, r.Names(a))
}

func TestResolve_EmptyAndNil(t *testing.T) {
	r := newResolver()

	assert.Empty(t, r.Resolve(&contract{name: "Empty"}))
	assert.Nil(t, r.Resolve(nil))
	assert.Empty(t, r.ResolveType(reflect.TypeOf(0)))
}

type Address struct {
	Street string
	City   string
}

type Customer struct {
	Address
	Name  string
	Email string
	City  string // shadows Address.City
}

type Identified interface{ ID() int64 }

type Titled interface {
	Identified
	Title() string
}

func TestResolveType_Struct(t *testing.T) {
	r := NewResolver(typecache.New(), WithReflector(meta.NewReflector(meta.NewRegistry())))

	got := r.ResolveType(reflect.TypeOf(Customer{}))
	names := make([]string, len(got))
	for i, a := range got {
		names[i] = a.Name
	}

	assert.Equal(t, []string{"Street", "Name", "Email", "City"}, names)
	assert.Equal(t, []int{0, 0}, got[0].Index)
}

func TestResolveType_DeclaredContract(t *testing.T) {
	reg := meta.NewRegistry()
	require.NoError(t, reg.DeclareContract(reflect.TypeFor[Titled](), reflect.TypeFor[Identified]()))

	r := NewResolver(typecache.New(), WithReflector(meta.NewReflector(reg)))
	assert.Equal(t, []string{"Title", "ID"}, r.Names(meta.NewReflector(reg).Of(reflect.TypeFor[Titled]())))
}
