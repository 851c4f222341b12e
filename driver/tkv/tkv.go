// Package tkv provides a Tarantool config storage implementation of the
// driver interface. A flush is sent as one config.storage.txn call.
package tkv

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarantool/go-tarantool/v2"

	"github.com/jiangjkd/historied/driver"
	"github.com/jiangjkd/historied/operation"
)

const txnFunction = "config.storage.txn"

// Driver is a Tarantool implementation of the driver interface.
type Driver struct {
	conn tarantool.Doer // Tarantool connection or connection pool adapter.
}

var (
	_ driver.Driver = &Driver{} //nolint:exhaustruct

	// ErrUnexpectedResponse is returned when the response from tarantool has unexpected format.
	ErrUnexpectedResponse = errors.New("unexpected response from tarantool")
	// ErrTxnRejected is returned when tarantool reports an unsuccessful transaction.
	ErrTxnRejected = errors.New("tarantool transaction rejected")
)

// New creates a driver on top of a tarantool.Connection or a
// pool.ConnectionAdapter.
func New(doer tarantool.Doer) *Driver {
	return &Driver{conn: doer}
}

// Execute applies all operations in one unconditional transaction.
func (d Driver) Execute(ctx context.Context, ops []operation.Operation) error {
	req := tarantool.NewCallRequest(txnFunction).
		Args([]any{newTxnRequest(ops)}).Context(ctx)

	var result []txnResponse

	switch err := d.conn.Do(req).GetTyped(&result); {
	case err != nil:
		return fmt.Errorf("failed to execute transaction: %w", err)
	case len(result) != 1:
		return fmt.Errorf("%w: expected 1 response, got %d", ErrUnexpectedResponse, len(result))
	case !result[0].Data.IsSuccess:
		return fmt.Errorf("%w at revision %d", ErrTxnRejected, result[0].Revision)
	}

	return nil
}
