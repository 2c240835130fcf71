package store

// Entity is anything with a stable identifier.
type Entity interface {
	ID() int64
}

// Named is an entity with a display name.
type Named interface {
	Entity
	Name() string
}

// Priced is an entity with a price in cents.
type Priced interface {
	Entity
	Price() int64
}

// Listing is a product as shown in the catalogue.
type Listing interface {
	Named
	Priced
	SKU() string
	Featured() bool
	Describe(lang string) string
}

// CatalogEntry is a mutable Listing.
type CatalogEntry struct {
	id       int64
	name     string
	price    int64
	sku      string
	featured bool
}

func (e *CatalogEntry) ID() int64      { return e.id }
func (e *CatalogEntry) Name() string   { return e.name }
func (e *CatalogEntry) Price() int64   { return e.price }
func (e *CatalogEntry) SKU() string    { return e.sku }
func (e *CatalogEntry) Featured() bool { return e.featured }

func (e *CatalogEntry) Describe(lang string) string {
	if lang == "de" {
		return e.name + " (" + e.sku + ", Katalog)"
	}

	return e.name + " (" + e.sku + ")"
}

func (e *CatalogEntry) SetID(id int64)       { e.id = id }
func (e *CatalogEntry) SetName(name string)  { e.name = name }
func (e *CatalogEntry) SetPrice(price int64) { e.price = price }
func (e *CatalogEntry) SetSKU(sku string)    { e.sku = sku }
func (e *CatalogEntry) SetFeatured(f bool)   { e.featured = f }

// NewCatalogEntry creates a CatalogEntry.
func NewCatalogEntry(id int64, name string, price int64, sku string, featured bool) *CatalogEntry {
	return &CatalogEntry{id: id, name: name, price: price, sku: sku, featured: featured}
}
