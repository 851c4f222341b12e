// Package operation describes the writes a driver applies when an overlay
// flushes its committed changes.
package operation

// Operation is a single write executed by a driver.
type Operation struct {
	typ   Type
	key   []byte
	value []byte
}

// Put creates an operation storing value under key.
func Put(key, value []byte) Operation {
	return Operation{
		typ:   TypePut,
		key:   key,
		value: value,
	}
}

// Delete creates an operation removing key.
func Delete(key []byte) Operation {
	return Operation{
		typ:   TypeDelete,
		key:   key,
		value: nil,
	}
}

// Type returns the operation type.
func (o Operation) Type() Type {
	return o.typ
}

// Key returns the target key.
func (o Operation) Key() []byte {
	return o.key
}

// Value returns the value of a put operation, nil for deletes.
func (o Operation) Value() []byte {
	return o.value
}
