package historied

import (
	"github.com/tarantool/go-option"
)

// Change is the visible state of one key. An absent Value means the key was
// deleted.
type Change[V any] struct {
	Key   string
	Value option.Generic[V]
}

// IsDelete reports whether the change removes the key.
func (c Change[V]) IsDelete() bool {
	return !c.Value.IsSome()
}
