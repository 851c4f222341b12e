package tkv

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jiangjkd/historied/operation"
)

var (
	// ErrUnknownOperation is returned when the operation is unknown.
	ErrUnknownOperation = errors.New("unknown operation")

	_ msgpack.CustomEncoder = tkvOperation{} //nolint:exhaustruct
)

const (
	// putOperationArrayLen is the length of the array that is used to encode a put operation.
	putOperationArrayLen = 3
	// deleteOperationArrayLen is the length of the array that is used to encode a delete operation.
	deleteOperationArrayLen = 2
)

// tkvOperation encodes an operation as ["put", key, value] or ["delete", key].
type tkvOperation struct {
	operation.Operation
}

// newTKVOperations returns a slice of TKV operations from a slice of operations.
func newTKVOperations(operations []operation.Operation) []tkvOperation {
	tkvOperations := make([]tkvOperation, 0, len(operations))
	for _, o := range operations {
		tkvOperations = append(tkvOperations, tkvOperation{o})
	}

	return tkvOperations
}

func (o tkvOperation) EncodeMsgpack(encoder *msgpack.Encoder) error {
	switch o.Type() {
	case operation.TypePut:
		if err := encoder.EncodeArrayLen(putOperationArrayLen); err != nil {
			return NewOperationEncodingError("encode put operation array length", err)
		}

		if err := encoder.EncodeString("put"); err != nil {
			return NewOperationEncodingError("encode put operation", err)
		}

		// MsgPack API has no way to write a byte array as a string.
		if err := encoder.EncodeString(string(o.Key())); err != nil {
			return NewOperationEncodingError("encode put operation key", err)
		}

		if err := encoder.EncodeString(string(o.Value())); err != nil {
			return NewOperationEncodingError("encode put operation value", err)
		}
	case operation.TypeDelete:
		if err := encoder.EncodeArrayLen(deleteOperationArrayLen); err != nil {
			return NewOperationEncodingError("encode delete operation array length", err)
		}

		if err := encoder.EncodeString("delete"); err != nil {
			return NewOperationEncodingError("encode delete operation", err)
		}

		if err := encoder.EncodeString(string(o.Key())); err != nil {
			return NewOperationEncodingError("encode delete operation key", err)
		}
	default:
		return ErrUnknownOperation
	}

	return nil
}
