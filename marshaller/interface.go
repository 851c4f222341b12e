// Package marshaller converts overlay values to and from the bytes drivers
// store.
package marshaller

// TypedMarshaller serializes values of one type.
type TypedMarshaller[T any] interface {
	Marshal(data T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

func zero[T any]() T {
	var out T
	return out
}
