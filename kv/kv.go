// Package kv defines the record kept by drivers for every flushed key.
package kv

// KeyValue is a stored key with its value and revision metadata.
type KeyValue struct {
	// Key is the serialized key.
	Key []byte
	// Value is the serialized value.
	Value []byte

	// ModRevision is the driver revision of the last modification to this key.
	ModRevision int64
}
