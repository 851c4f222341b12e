// Package dummy provides an in-memory implementation of the driver interface
// for demonstration and tests.
package dummy

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jiangjkd/historied/driver"
	"github.com/jiangjkd/historied/internal/options"
	"github.com/jiangjkd/historied/kv"
	"github.com/jiangjkd/historied/operation"
)

type driverOptions struct {
	revision int64
}

// WithRevision sets the revision the driver starts counting from.
func WithRevision(revision int64) options.OptionCallback[driverOptions] {
	return func(opts *driverOptions) {
		opts.revision = revision
	}
}

// Driver keeps flushed keys in a map. It is safe for concurrent use.
type Driver struct {
	mu       sync.RWMutex
	storage  map[string]kv.KeyValue
	revision int64
}

var (
	_ driver.Driver = &Driver{} //nolint:exhaustruct
)

// New creates an empty in-memory driver.
func New(opts ...options.OptionCallback[driverOptions]) *Driver {
	cfg := options.Apply(func() driverOptions { return driverOptions{revision: 1} }, opts)

	return &Driver{
		mu:       sync.RWMutex{},
		storage:  make(map[string]kv.KeyValue),
		revision: cfg.revision,
	}
}

// Execute applies all operations under one revision. A batch that changes
// nothing does not bump the revision.
func (d *Driver) Execute(ctx context.Context, ops []operation.Operation) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	// The mutex makes the whole batch atomic for readers.
	d.mu.Lock()
	defer d.mu.Unlock()

	mutated := false

	for _, op := range ops {
		switch op.Type() {
		case operation.TypePut:
			d.storage[string(op.Key())] = kv.KeyValue{
				Key:         bytes.Clone(op.Key()),
				Value:       bytes.Clone(op.Value()),
				ModRevision: d.revision,
			}
			mutated = true
		case operation.TypeDelete:
			if _, ok := d.storage[string(op.Key())]; ok {
				delete(d.storage, string(op.Key()))
				mutated = true
			}
		}
	}

	if mutated {
		d.revision++
	}

	return nil
}

// Get returns the stored record for key.
func (d *Driver) Get(key []byte) (kv.KeyValue, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	val, ok := d.storage[string(key)]

	return val, ok
}

// Range returns every record whose key starts with prefix, sorted by key.
func (d *Driver) Range(prefix []byte) []kv.KeyValue {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var values []kv.KeyValue

	for k, v := range d.storage {
		if strings.HasPrefix(k, string(prefix)) {
			values = append(values, v)
		}
	}

	sort.Slice(values, func(i, j int) bool {
		return bytes.Compare(values[i].Key, values[j].Key) < 0
	})

	return values
}

// Revision returns the revision the next mutating batch will be stored at.
func (d *Driver) Revision() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.revision
}
