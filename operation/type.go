package operation

// Type represents the type of a write operation.
type Type int

const (
	// TypePut stores a value.
	TypePut Type = iota
	// TypeDelete removes a key.
	TypeDelete
)

func (t Type) String() string {
	switch t {
	case TypePut:
		return "Put"
	case TypeDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}
