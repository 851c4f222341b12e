// Package historied keeps a transactional in-memory overlay of key-value
// changes on top of a durable store.
//
// Every key owns a [linear.History] of its values; all histories share one
// [layer.Stack] that records which writes are live, which were discarded and
// which are already committed. Transactions nest without copying any data:
// opening, committing or discarding one only appends to or flips states in
// the stack, and histories are reconciled lazily when their key is touched
// again.
//
// Committed changes can be flushed to any [driver.Driver] (in-memory, etcd or
// Tarantool) or fingerprinted with [Overlay.Digest].
package historied
