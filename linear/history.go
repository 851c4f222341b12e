// Package linear implements a transactional, non-branching history of a single
// value. Every entry is tagged with the index of the layer it was written at;
// the meaning of that index is looked up in a layer.Stack supplied on every
// call, the history itself never keeps a reference to the stack.
package linear

import (
	"github.com/tarantool/go-option"

	"github.com/jiangjkd/historied/internal/contract"
	"github.com/jiangjkd/historied/layer"
)

// allocatedHistory is the capacity reserved on first write: one slot for the
// committed value and one for the prospective one. Using transactions costs
// an allocation.
const allocatedHistory = 2

// Entry is a value together with the layer at which it became current.
type Entry[V any] struct {
	Value V
	Layer int
}

// History is the ordered list of versions of one value. Entries are kept in
// non-decreasing layer order. The zero value is an empty history.
//
// A History is owned by a single key and is not safe for concurrent use.
type History[V any] struct {
	entries []Entry[V]
}

// FromEntries builds a history from explicit entries, without any
// compaction. It is meant for tests and debugging.
func FromEntries[V any](entries ...Entry[V]) History[V] {
	var h History[V]

	for _, e := range entries {
		h.push(e)
	}

	return h
}

// Len returns the number of stored entries, dropped ones included.
func (h *History[V]) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the stored entries, oldest first.
func (h *History[V]) Entries() []Entry[V] {
	if len(h.entries) == 0 {
		return nil
	}

	out := make([]Entry[V], len(h.entries))
	copy(out, h.entries)

	return out
}

func (h *History[V]) push(e Entry[V]) {
	if h.entries == nil {
		h.entries = make([]Entry[V], 0, allocatedHistory)
	}

	if contract.Enabled {
		contract.Require(len(h.entries) == 0 || h.entries[len(h.entries)-1].Layer <= e.Layer,
			"entry at layer %d appended after layer %d", e.Layer, h.lastLayer())
	}

	h.entries = append(h.entries, e)
}

func (h *History[V]) lastLayer() int {
	if len(h.entries) == 0 {
		return -1
	}

	return h.entries[len(h.entries)-1].Layer
}

// truncate keeps the first n entries. Released slots are zeroed so that they
// do not pin old values.
func (h *History[V]) truncate(n int) {
	if n >= len(h.entries) {
		return
	}

	clear(h.entries[n:])
	h.entries = h.entries[:n]
}

// truncateUntil removes the first n entries, shifting the rest to the front.
func (h *History[V]) truncateUntil(n int) {
	if n <= 0 {
		return
	}

	kept := copy(h.entries, h.entries[n:])
	clear(h.entries[kept:])
	h.entries = h.entries[:kept]
}

func (h *History[V]) pop() Entry[V] {
	last := len(h.entries) - 1
	e := h.entries[last]
	h.truncate(last)

	return e
}

func (h *History[V]) reset() {
	h.entries = nil
}

// checkView panics when states is too short for the layers recorded in h.
func (h *History[V]) checkView(states layer.States) {
	if !contract.Enabled || len(h.entries) == 0 {
		return
	}

	contract.Require(h.lastLayer() < len(states),
		"history recorded layer %d, view has %d layers", h.lastLayer(), len(states))
}

// liveIndex returns the position of the newest entry whose layer is live and
// accepted by filter, or -1.
func (h *History[V]) liveIndex(states layer.States, filter func(layerIndex int) bool) int {
	h.checkView(states)

	for i := len(h.entries) - 1; i >= 0; i-- {
		l := h.entries[i].Layer
		if filter != nil && !filter(l) {
			continue
		}

		if states[l].IsLive() {
			return i
		}
	}

	return -1
}

// Get returns the most recent value written at a live layer, whatever the
// transaction nesting depth. It never modifies the history.
func (h *History[V]) Get(states layer.States) option.Generic[V] {
	idx := h.liveIndex(states, nil)
	if idx < 0 {
		return option.None[V]()
	}

	return option.Some(h.entries[idx].Value)
}

// GetCommitted returns the most recent live value written below the
// committed boundary.
func (h *History[V]) GetCommitted(view layer.View) option.Generic[V] {
	idx := h.liveIndex(view.States, func(l int) bool { return l < view.Committed })
	if idx < 0 {
		return option.None[V]()
	}

	return option.Some(h.entries[idx].Value)
}

// GetProspective returns the current value only if it was written at or
// above the committed boundary, i.e. if it is not yet durable.
func (h *History[V]) GetProspective(view layer.View) option.Generic[V] {
	idx := h.liveIndex(view.States, nil)
	if idx < 0 || h.entries[idx].Layer < view.Committed {
		return option.None[V]()
	}

	return option.Some(h.entries[idx].Value)
}

// IntoPending extracts the current value and empties the history.
func (h *History[V]) IntoPending(states layer.States) option.Generic[V] {
	return h.into(states, nil)
}

// IntoCommitted extracts the most recent live value written below the
// committed boundary, ignoring prospective writes, and empties the history.
func (h *History[V]) IntoCommitted(view layer.View) option.Generic[V] {
	return h.into(view.States, func(l int) bool { return l < view.Committed })
}

func (h *History[V]) into(states layer.States, filter func(layerIndex int) bool) option.Generic[V] {
	idx := h.liveIndex(states, filter)
	defer h.reset()

	if idx < 0 {
		return option.None[V]()
	}

	return option.Some(h.entries[idx].Value)
}

// Set writes value at the top layer of view. A value already written at the
// top layer is overwritten in place, otherwise a new entry is appended. The
// history is compacted first, see GetMut.
func (h *History[V]) Set(view layer.View, value V) {
	top := view.Top()

	if ref, ok := h.GetMut(view).Get(); ok && ref.Layer == top {
		*ref.Value = value
		return
	}

	h.push(Entry[V]{Value: value, Layer: top})
}
