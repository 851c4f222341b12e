package historied

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/tarantool/go-option"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/jiangjkd/historied/driver"
	"github.com/jiangjkd/historied/hasher"
	"github.com/jiangjkd/historied/internal/options"
	"github.com/jiangjkd/historied/layer"
	"github.com/jiangjkd/historied/linear"
	"github.com/jiangjkd/historied/marshaller"
	"github.com/jiangjkd/historied/operation"
)

// Overlay is a set of key histories sharing one layer stack. A deleted key is
// kept as an absent value so that flushing can remove it downstream.
//
// An Overlay is not safe for concurrent use.
type Overlay[V any] struct {
	stack     *layer.Stack
	histories map[string]*linear.History[option.Generic[V]]

	logger       *zap.Logger
	eagerPruning bool
	keyPrefix    string
}

// CompactStats reports the outcome of Overlay.Compact.
type CompactStats struct {
	Keys    int // Keys still tracked.
	Removed int // Keys whose history became empty.
	Entries int // Entries released across all keys.
}

// New creates an empty overlay with nothing committed.
func New[V any](opts ...Option) *Overlay[V] {
	cfg := options.Apply(defaultOverlayOptions, opts)

	return &Overlay[V]{
		stack:        layer.New(),
		histories:    make(map[string]*linear.History[option.Generic[V]]),
		logger:       cfg.logger,
		eagerPruning: cfg.eagerPruning,
		keyPrefix:    cfg.keyPrefix,
	}
}

func (o *Overlay[V]) history(key string) *linear.History[option.Generic[V]] {
	h, ok := o.histories[key]
	if !ok {
		h = &linear.History[option.Generic[V]]{}
		o.histories[key] = h
	}

	return h
}

// Set writes value under key at the current layer.
func (o *Overlay[V]) Set(key string, value V) {
	o.history(key).Set(o.stack.View(), option.Some(value))
}

// Delete marks key as deleted at the current layer.
func (o *Overlay[V]) Delete(key string) {
	o.history(key).Set(o.stack.View(), option.None[V]())
}

// Get returns the visible state of key. The boolean is false when the overlay
// holds no live change for key; otherwise an absent value means the key was
// deleted.
func (o *Overlay[V]) Get(key string) (option.Generic[V], bool) {
	h, ok := o.histories[key]
	if !ok {
		return option.None[V](), false
	}

	value, ok := h.Get(o.stack.States()).Get()
	if !ok {
		return option.None[V](), false
	}

	return value, true
}

// Len returns the number of tracked keys, including keys whose changes were
// discarded but not compacted yet.
func (o *Overlay[V]) Len() int {
	return len(o.histories)
}

// Committed returns the committed boundary of the layer stack.
func (o *Overlay[V]) Committed() int {
	return o.stack.Committed()
}

// Depth returns the number of open transactions.
func (o *Overlay[V]) Depth() int {
	return o.stack.Depth()
}

// Layers returns the current view of the layer stack.
func (o *Overlay[V]) Layers() layer.View {
	return o.stack.View()
}

func (o *Overlay[V]) logBoundary(msg string) {
	o.logger.Debug(msg,
		zap.Int("layer", o.stack.Top()),
		zap.Int("committed", o.stack.Committed()),
		zap.Int("depth", o.stack.Depth()),
	)
}

// StartTransaction opens a nested transaction.
func (o *Overlay[V]) StartTransaction() {
	o.stack.StartTransaction()
	o.logBoundary("transaction started")
}

// CommitTransaction folds the innermost transaction into its parent.
func (o *Overlay[V]) CommitTransaction() {
	o.stack.CommitTransaction()
	o.logBoundary("transaction committed")
}

// DiscardTransaction reverts every change of the innermost transaction. With
// no transaction open, all prospective changes are reverted.
func (o *Overlay[V]) DiscardTransaction() {
	o.stack.DiscardTransaction()
	o.logBoundary("transaction discarded")
}

// CommitProspective makes every live change committed and closes all open
// transactions.
func (o *Overlay[V]) CommitProspective() {
	o.stack.CommitProspective()
	o.logBoundary("prospective changes committed")
}

// DiscardProspective reverts every change above the committed boundary.
func (o *Overlay[V]) DiscardProspective() {
	o.stack.DiscardProspective()
	o.logBoundary("prospective changes discarded")
}

// UncheckedRollbackCommitted moves the committed boundary back to an earlier
// value returned by Committed and discards everything above it. Changes
// pruned by Compact with eager pruning are not restored.
func (o *Overlay[V]) UncheckedRollbackCommitted(oldCommitted int) {
	o.stack.UncheckedRollbackCommitted(oldCommitted)
	o.logBoundary("committed boundary rolled back")
}

// Compact reconciles every history with the layer stack and forgets keys
// with no live change left.
func (o *Overlay[V]) Compact() CompactStats {
	var (
		view  = o.stack.View()
		stats CompactStats
	)

	for key, h := range o.histories {
		before := h.Len()

		h.GetMutPruning(view, o.eagerPruning)

		stats.Entries += before - h.Len()

		if h.Len() == 0 {
			delete(o.histories, key)
			stats.Removed++
		}
	}

	stats.Keys = len(o.histories)

	o.logger.Debug("overlay compacted",
		zap.Int("layer", view.Top()),
		zap.Int("committed", view.Committed),
		zap.Int("keys", stats.Keys),
		zap.Int("removed", stats.Removed),
		zap.Int("pruned", stats.Entries),
		zap.Bool("eager", o.eagerPruning),
	)

	return stats
}

func (o *Overlay[V]) sortedKeys() []string {
	keys := make([]string, 0, len(o.histories))
	for key := range o.histories {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func (o *Overlay[V]) collect(read func(h *linear.History[option.Generic[V]]) option.Generic[option.Generic[V]]) []Change[V] {
	changes := make([]Change[V], 0, len(o.histories))

	for _, key := range o.sortedKeys() {
		value, ok := read(o.histories[key]).Get()
		if !ok {
			continue
		}

		changes = append(changes, Change[V]{Key: key, Value: value})
	}

	return changes
}

// CommittedChanges returns the committed state of every key, sorted by key.
func (o *Overlay[V]) CommittedChanges() []Change[V] {
	view := o.stack.View()

	return o.collect(func(h *linear.History[option.Generic[V]]) option.Generic[option.Generic[V]] {
		return h.GetCommitted(view)
	})
}

// PendingChanges returns the visible state of every key, committed or not,
// sorted by key.
func (o *Overlay[V]) PendingChanges() []Change[V] {
	states := o.stack.States()

	return o.collect(func(h *linear.History[option.Generic[V]]) option.Generic[option.Generic[V]] {
		return h.Get(states)
	})
}

// DrainCommitted returns the committed changes and resets the overlay.
func (o *Overlay[V]) DrainCommitted() []Change[V] {
	view := o.stack.View()

	changes := o.collect(func(h *linear.History[option.Generic[V]]) option.Generic[option.Generic[V]] {
		return h.IntoCommitted(view)
	})

	o.reset()

	return changes
}

// DrainPending returns the visible changes and resets the overlay.
func (o *Overlay[V]) DrainPending() []Change[V] {
	states := o.stack.States()

	changes := o.collect(func(h *linear.History[option.Generic[V]]) option.Generic[option.Generic[V]] {
		return h.IntoPending(states)
	})

	o.reset()

	return changes
}

func (o *Overlay[V]) reset() {
	o.stack = layer.New()
	o.histories = make(map[string]*linear.History[option.Generic[V]])

	o.logger.Debug("overlay drained")
}

func (o *Overlay[V]) marshallerOrDefault(m marshaller.TypedMarshaller[V]) marshaller.TypedMarshaller[V] {
	if m == nil {
		return marshaller.NewTypedMsgpackMarshaller[V]()
	}

	return m
}

// Flush writes the committed changes to d in one batch: a put for every set
// key and a delete for every deleted one. The overlay itself is not modified.
// A nil marshaller means MessagePack.
func (o *Overlay[V]) Flush(ctx context.Context, d driver.Driver, m marshaller.TypedMarshaller[V]) error {
	if d == nil {
		return ErrNilDriver
	}

	m = o.marshallerOrDefault(m)
	changes := o.CommittedChanges()

	if len(changes) == 0 {
		o.logger.Debug("nothing to flush", zap.Int("committed", o.stack.Committed()))
		return nil
	}

	ops := make([]operation.Operation, 0, len(changes))

	for _, change := range changes {
		key := []byte(o.keyPrefix + change.Key)

		value, ok := change.Value.Get()
		if !ok {
			ops = append(ops, operation.Delete(key))
			continue
		}

		data, err := m.Marshal(value)
		if err != nil {
			return errFlush(len(changes), fmt.Errorf("key %q: %w", change.Key, err))
		}

		ops = append(ops, operation.Put(key, data))
	}

	err := d.Execute(ctx, ops)
	if err != nil {
		return errFlush(len(changes), err)
	}

	o.logger.Debug("committed changes flushed",
		zap.Int("committed", o.stack.Committed()),
		zap.Int("keys", len(changes)),
	)

	return nil
}

// Digest returns a fingerprint of the committed changes. Keys are visited in
// sorted order and framed with MessagePack, so two overlays with the same
// committed state produce the same digest however they got there. A nil
// hasher means SHA-256 and a nil marshaller means MessagePack.
func (o *Overlay[V]) Digest(h hasher.Hasher, m marshaller.TypedMarshaller[V]) ([]byte, error) {
	if h == nil {
		h = hasher.NewSHA256Hasher()
	}

	m = o.marshallerOrDefault(m)
	changes := o.CommittedChanges()

	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)

	err := enc.EncodeArrayLen(len(changes))
	if err != nil {
		return nil, fmt.Errorf("failed to encode digest header: %w", err)
	}

	for _, change := range changes {
		err = o.encodeChange(enc, m, change)
		if err != nil {
			return nil, err
		}
	}

	sum, err := h.Hash(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s digest: %w", h.Name(), err)
	}

	return sum, nil
}

func (o *Overlay[V]) encodeChange(enc *msgpack.Encoder, m marshaller.TypedMarshaller[V], change Change[V]) error {
	err := enc.EncodeArrayLen(2) //nolint:mnd
	if err != nil {
		return fmt.Errorf("failed to encode change %q: %w", change.Key, err)
	}

	err = enc.EncodeString(o.keyPrefix + change.Key)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", change.Key, err)
	}

	value, ok := change.Value.Get()
	if !ok {
		err = enc.EncodeNil()
	} else {
		var data []byte

		data, err = m.Marshal(value)
		if err != nil {
			return fmt.Errorf("key %q: %w", change.Key, err)
		}

		err = enc.EncodeBytes(data)
	}

	if err != nil {
		return fmt.Errorf("failed to encode value of %q: %w", change.Key, err)
	}

	return nil
}
