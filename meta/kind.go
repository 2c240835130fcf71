package meta

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the coarse shape category of a Type.
type Kind int

const (
	KindOther    Kind = iota // anything without attributes or members
	KindConcrete             // struct
	KindContract             // interface
	KindEnum                 // enumerated integer type
)
