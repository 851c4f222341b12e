package marshaller

import (
	"github.com/vmihailenco/msgpack/v5"
)

// TypedMsgpackMarshaller encodes values as MessagePack. It is the default
// codec of overlay flushes and digests. Use NewTypedMsgpackMarshaller, the
// zero value has no codec attached.
type TypedMsgpackMarshaller[T any] struct {
	codec[T]
}

var _ TypedMarshaller[int] = NewTypedMsgpackMarshaller[int]()

// NewTypedMsgpackMarshaller creates a MessagePack marshaller for T.
func NewTypedMsgpackMarshaller[T any]() TypedMsgpackMarshaller[T] {
	return TypedMsgpackMarshaller[T]{
		codec: codec[T]{
			format:    "msgpack",
			marshal:   msgpack.Marshal,
			unmarshal: msgpack.Unmarshal,
		},
	}
}
