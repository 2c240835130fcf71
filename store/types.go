// Package store is a small order-management model. Its structs, enums and
// contracts are declared both in source, for the static analyzer, and in the
// runtime registry, so either introspector can describe them.
package store

import (
	"time"
)

// Base carries the fields every stored record has.
type Base struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type audit struct {
	UpdatedBy string `json:"updated_by"`
	Revision  int    `json:"revision"`
}

// Product is an item available for sale. Prices are in cents.
type Product struct {
	Base
	*audit
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Inventory  int    `json:"inventory_count"`
	Colors     Color  `json:"colors"`
	internal   string
}

// Customer places orders.
type Customer struct {
	Base
	Email    string     `json:"email"`
	FullName string     `json:"full_name"`
	Address  *string    `json:"address"`
	Perms    Permission `json:"perms"`
}

// Order is a transaction made by a customer.
type Order struct {
	Base
	ID         string      `json:"order_number"` // shadows Base.ID
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"`
}

// OrderItem snapshots a product line at the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}
