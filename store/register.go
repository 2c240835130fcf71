package store

import (
	"reflect"

	"typemeta/meta"
)

// Runtime declarations mirroring the source-level metadata above.
var (
	ColorEnum = meta.RegisterEnum([]meta.EnumValue[Color]{
		{Name: "Red", Value: Red, Description: "Red color"},
		{Name: "Green", Value: Green, Description: "Green color"},
		{Name: "Blue", Value: Blue, Description: "Blue color"},
	}, meta.Flags())

	OrderStatusEnum = meta.RegisterEnum([]meta.EnumValue[OrderStatus]{
		{Name: "StatusCancelled", Value: StatusCancelled, Description: "Cancelled"},
		{Name: "StatusPending", Value: StatusPending, Description: "Pending payment"},
		{Name: "StatusPaid", Value: StatusPaid, Description: "Paid"},
		{Name: "StatusShipped", Value: StatusShipped, Description: "Shipped"},
		{Name: "StatusDelivered", Value: StatusDelivered},
	})

	PermissionEnum = meta.RegisterEnum([]meta.EnumValue[Permission]{
		{Name: "PermNone", Value: PermNone},
		{Name: "PermRead", Value: PermRead, Description: "Read access"},
		{Name: "PermWrite", Value: PermWrite, Description: "Write access"},
		{Name: "PermDelete", Value: PermDelete, Description: "Delete access"},
		{Name: "PermReadWrite", Value: PermReadWrite, Description: "Read and write"},
		{Name: "PermAdmin", Value: PermAdmin, Description: "Administrator"},
	}, meta.Flags())

	EntityContract = meta.DeclareContract[Entity](nil)
	NamedContract  = meta.DeclareContract[Named]([]reflect.Type{reflect.TypeFor[Entity]()})
	PricedContract = meta.DeclareContract[Priced]([]reflect.Type{reflect.TypeFor[Entity]()})

	ListingContract = meta.DeclareContract[Listing]([]reflect.Type{
		reflect.TypeFor[Named](),
		reflect.TypeFor[Priced](),
	})
)
