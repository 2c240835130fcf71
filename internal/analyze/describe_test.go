package analyze

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemeta/enummeta"
	"typemeta/meta"
	"typemeta/primitive"
	"typemeta/shape"
	"typemeta/store"
	"typemeta/typecache"
)

func names(attrs []meta.Attribute) []string {
	result := make([]string, len(attrs))
	for i, a := range attrs {
		result[i] = a.Name
	}

	return result
}

func TestDescribe_StructPromotionAndShadowing(t *testing.T) {
	graph := loadGraph(t, storePkg)

	product := graph.Lookup(storePkg, "Product")
	require.NotNil(t, product)
	assert.Equal(t, meta.KindConcrete, product.Kind())
	assert.Empty(t, product.Extends())

	attrs := product.Attributes()
	assert.Equal(t,
		[]string{"ID", "CreatedAt", "UpdatedBy", "Revision", "SKU", "Name", "PriceCents", "Inventory", "Colors"},
		names(attrs), spew.Sdump(attrs))

	assert.Equal(t, "Base", attrs[0].Owner.Name)
	assert.Equal(t, "audit", attrs[2].Owner.Name)
	assert.Equal(t, []int{1, 0}, attrs[2].Index)
	assert.Equal(t, "store.Color", attrs[8].Type)
	assert.Equal(t, primitive.KindPrimitiveEnum, attrs[8].Kind)
	assert.Equal(t, primitive.KindTime, attrs[1].Kind)

	order := graph.Lookup(storePkg, "Order")
	require.NotNil(t, order)

	attrs = order.Attributes()
	assert.Equal(t, []string{"CreatedAt", "ID", "CustomerID", "Status", "TotalCents", "Items"}, names(attrs))
	assert.Equal(t, "string", attrs[1].Type)
	assert.Equal(t, "[]store.OrderItem", attrs[5].Type)
}

func TestDescribe_MatchesRuntimeReflection(t *testing.T) {
	graph := loadGraph(t, storePkg)

	for name, rt := range map[string]reflect.Type{
		"Product":   reflect.TypeFor[store.Product](),
		"Customer":  reflect.TypeFor[store.Customer](),
		"Order":     reflect.TypeFor[store.Order](),
		"OrderItem": reflect.TypeFor[store.OrderItem](),
	} {
		t.Run(name, func(t *testing.T) {
			static := graph.Lookup(storePkg, name).Attributes()
			runtime := meta.Of(rt).Attributes()
			require.Len(t, static, len(runtime))

			for i := range runtime {
				assert.Equal(t, runtime[i].Name, static[i].Name)
				assert.Equal(t, runtime[i].Type, static[i].Type)
				assert.Equal(t, runtime[i].Kind, static[i].Kind)
				assert.Equal(t, runtime[i].Index, static[i].Index)
				assert.Equal(t, runtime[i].Owner.String(), static[i].Owner.String())
			}
		})
	}
}

func TestDescribe_Contracts(t *testing.T) {
	graph := loadGraph(t, storePkg)

	listing := graph.Lookup(storePkg, "Listing")
	require.NotNil(t, listing)
	assert.Equal(t, meta.KindContract, listing.Kind())
	assert.Equal(t, []string{"SKU", "Featured"}, names(listing.Attributes()))
	assert.True(t, listing.Attributes()[0].Getter)

	parents := listing.Extends()
	require.Len(t, parents, 2)
	assert.Equal(t, []string{"Name"}, names(parents[0].Attributes()))
	assert.Equal(t, []string{"Price"}, names(parents[1].Attributes()))
	assert.Equal(t, "Entity", parents[0].Extends()[0].ID().Name)

	resolver := shape.NewResolver(typecache.New())
	assert.Equal(t, []string{"SKU", "Featured", "Name", "Price", "ID"}, resolver.Names(listing))

	// Runtime reflection orders a contract's own getters by name.
	assert.Equal(t, []string{"Featured", "SKU", "Name", "Price", "ID"}, resolver.Names(store.ListingContract))
}

func TestDescribe_Enums(t *testing.T) {
	graph := loadGraph(t, storePkg)

	color, err := meta.AsEnum(graph.Lookup(storePkg, "Color"))
	require.NoError(t, err)
	assert.Equal(t, primitive.KindUint8, color.Underlying())
	assert.True(t, color.IsFlags())
	assert.Equal(t, uint8(5), color.FromBits(5))
	assert.Empty(t, color.Attributes())

	engine := enummeta.NewEngine(typecache.New())

	desc, err := engine.Describe(color, uint8(5), enummeta.DefaultSeparator)
	require.NoError(t, err)
	assert.Equal(t, "Red color, Blue color", desc)

	v, err := engine.ParseDelimited(color, "Red,Blue", enummeta.DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), v)

	// The static and runtime descriptions agree.
	runtimeNames, err := engine.ValueNames(store.ColorEnum)
	require.NoError(t, err)
	staticNames, err := engine.ValueNames(color)
	require.NoError(t, err)
	assert.Equal(t, runtimeNames, staticNames)

	_, err = meta.AsEnum(graph.Lookup(storePkg, "Product"))
	assert.ErrorIs(t, err, meta.ErrInvalidArgument)
}

func TestDescribe_Missing(t *testing.T) {
	graph := loadGraph(t, storePkg)

	assert.Nil(t, graph.Lookup(storePkg, "Missing"))
	assert.Nil(t, graph.Describe(nil))
}
