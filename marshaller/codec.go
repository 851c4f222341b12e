package marshaller

// codec adapts an untyped encode/decode pair to TypedMarshaller.
type codec[T any] struct {
	format    string
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

// Marshal serializes data, wrapping failures in MarshalError.
func (c codec[T]) Marshal(data T) ([]byte, error) {
	marshalled, err := c.marshal(data)
	if err != nil {
		return []byte{}, errMarshal(c.format, err)
	}

	return marshalled, nil
}

// Unmarshal deserializes data, wrapping failures in UnmarshalError.
func (c codec[T]) Unmarshal(data []byte) (T, error) {
	var out T

	err := c.unmarshal(data, &out)
	if err != nil {
		return zero[T](), errUnmarshal(c.format, err)
	}

	return out, nil
}
