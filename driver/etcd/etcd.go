// Package etcd provides an etcd implementation of the driver interface.
// Every flush is executed as a single etcd transaction.
package etcd

import (
	"context"
	"errors"
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/jiangjkd/historied/driver"
	"github.com/jiangjkd/historied/operation"
)

// Client defines the minimal interface needed for etcd operations.
// This allows for easier testing and mock implementations.
type Client interface {
	// Txn creates a new transaction.
	Txn(ctx context.Context) etcd.Txn
}

// Driver is an etcd implementation of the driver interface.
type Driver struct {
	client Client
}

var (
	_ driver.Driver = &Driver{} //nolint:exhaustruct

	errUnsupportedOperationType = errors.New("unsupported operation type")
	// ErrTxnRejected is returned when etcd reports an unsuccessful transaction.
	ErrTxnRejected = errors.New("etcd transaction rejected")
)

// New creates a driver on top of a configured and connected etcd client.
func New(client *etcd.Client) *Driver {
	return &Driver{client: client}
}

// NewWithClient creates a driver on top of any Client implementation.
func NewWithClient(client Client) *Driver {
	return &Driver{client: client}
}

// Execute applies all operations in one unconditional etcd transaction.
func (d Driver) Execute(ctx context.Context, ops []operation.Operation) error {
	etcdOps, err := operationsToEtcdOps(ops)
	if err != nil {
		return fmt.Errorf("failed to convert operations: %w", err)
	}

	resp, err := d.client.Txn(ctx).Then(etcdOps...).Commit()
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	if !resp.Succeeded {
		return fmt.Errorf("%w at revision %d", ErrTxnRejected, resp.Header.GetRevision())
	}

	return nil
}
