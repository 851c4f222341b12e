// Package driver defines the interface of the backends an overlay flushes its
// committed changes to.
package driver

import (
	"context"

	"github.com/jiangjkd/historied/operation"
)

// Driver is the interface storage drivers must implement.
type Driver interface {
	// Execute applies all operations atomically: either every operation is
	// visible afterwards or none is.
	Execute(ctx context.Context, ops []operation.Operation) error
}
