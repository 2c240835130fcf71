package store

// Color lists the colours a product ships in.
//
//typemeta:flags
type Color uint8

const (
	Red   Color = 1 << iota // Red color
	Green                   // Green color
	Blue                    // Blue color
)

// OrderStatus tracks an order through fulfilment.
type OrderStatus int8

const (
	StatusCancelled OrderStatus = -1 // Cancelled
	StatusPending   OrderStatus = 0  // Pending payment
	StatusPaid      OrderStatus = 1  // Paid
	StatusShipped   OrderStatus = 2  // Shipped
	StatusDelivered OrderStatus = 3
)

// Permission is a customer's access mask.
//
//typemeta:flags
type Permission uint16

const (
	PermNone      Permission = 0
	PermRead      Permission = 1                    // Read access
	PermWrite     Permission = 2                    // Write access
	PermDelete    Permission = 4                    // Delete access
	PermReadWrite Permission = PermRead | PermWrite // Read and write
	PermAdmin     Permission = 1 << 15              // Administrator
)
