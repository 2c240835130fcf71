// Package warehouse models stock movements between sites. It is a second,
// source-only fixture: nothing here is registered at runtime.
package warehouse

import (
	"time"
)

// Address is a physical site address.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// Shipment moves stock from one site to another.
type Shipment struct {
	ID          uint
	Carrier     Carrier
	Origin      Address
	Destination Address
	WeightGrams float64
	ShippedAt   *time.Time
	Handling    Handling
}

// Carrier names the company moving a shipment.
type Carrier uint8

const (
	CarrierUnknown Carrier = iota
	CarrierPost            // National post
	CarrierCourier         // Express courier
	CarrierFreight
)

// Handling lists special handling instructions.
//
//typemeta:flags
type Handling uint32

const (
	HandlingFragile   Handling = 1 << iota // Fragile
	HandlingCold                           // Keep cold
	HandlingUpright                        // This side up
	HandlingHazardous                      // Hazardous goods
)

// Tracked is anything with a tracking code.
type Tracked interface {
	TrackingCode() string
}
