package marshaller

import (
	"gopkg.in/yaml.v3"
)

// TypedYamlMarshaller encodes values as YAML documents. Use
// NewTypedYamlMarshaller, the zero value has no codec attached.
type TypedYamlMarshaller[T any] struct {
	codec[T]
}

var _ TypedMarshaller[int] = NewTypedYamlMarshaller[int]()

// NewTypedYamlMarshaller creates a YAML marshaller for T.
func NewTypedYamlMarshaller[T any]() TypedYamlMarshaller[T] {
	return TypedYamlMarshaller[T]{
		codec: codec[T]{
			format:    "yaml",
			marshal:   yaml.Marshal,
			unmarshal: yaml.Unmarshal,
		},
	}
}
