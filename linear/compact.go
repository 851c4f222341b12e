package linear

import (
	"math"

	"github.com/tarantool/go-option"

	"github.com/jiangjkd/historied/layer"
)

// Ref is a mutable handle on the live entry of a history. Value points into
// the history storage and is only valid until the history is modified again.
type Ref[V any] struct {
	Value *V
	Layer int
}

// slot identifies an entry by its position and layer.
type slot struct {
	index int
	layer int
}

var noSlot = slot{index: -1, layer: -1}

func (s slot) found() bool {
	return s.index >= 0
}

// GetMut returns a handle on the entry Get would currently return, compacting
// the history on the way:
//
//   - dropped entries above the live one are removed;
//   - live entries that share the live entry's open transaction scope are
//     merged into one slot holding the newest value, placed at the oldest of
//     them and tagged with its layer;
//   - a history without any live entry is cleared.
//
// Dropped entries below the live one are left for a later call.
func (h *History[V]) GetMut(view layer.View) option.Generic[Ref[V]] {
	return h.GetMutPruning(view, false)
}

// GetMutPruning behaves like GetMut and, when pruneToCommit is set, also
// removes every entry older than the newest live entry below the committed
// boundary. Pruning is irreversible: a later
// layer.Stack.UncheckedRollbackCommitted cannot bring the removed values back.
func (h *History[V]) GetMutPruning(view layer.View, pruneToCommit bool) option.Generic[Ref[V]] {
	if len(h.entries) == 0 {
		return option.None[Ref[V]]()
	}

	h.checkView(view.States)

	var (
		result     = noSlot
		merge      = noSlot
		scopeStart = math.MaxInt
		pruneUntil = 0
	)

	// stop reports whether the scan may end once the live entry and its
	// scope are settled. Pruning keeps scanning until a committed entry
	// has been seen.
	stop := func(l int) bool {
		return !pruneToCommit || l < view.Committed
	}

scan:
	for i := len(h.entries) - 1; i >= 0; i-- {
		l := h.entries[i].Layer

		switch view.States[l] {
		case layer.Dropped:
			continue
		case layer.TxPending:
			if l < view.Committed && pruneUntil == 0 {
				pruneUntil = i
			}

			switch {
			case l >= scopeStart:
				merge = slot{index: i, layer: l}
			case !result.found():
				result = slot{index: i, layer: l}
			}

			// A transaction start closes the scope of anything older.
			if stop(l) {
				break scan
			}
		case layer.Pending:
			if l < view.Committed && pruneUntil == 0 {
				pruneUntil = i
			}

			switch {
			case l >= scopeStart:
				merge = slot{index: i, layer: l}
			case !result.found():
				result = slot{index: i, layer: l}
				scopeStart = layer.FindScopeStart(view, l)
			case stop(l):
				break scan
			}
		}
	}

	if !result.found() {
		h.reset()
		return option.None[Ref[V]]()
	}

	deleted := 0
	if pruneToCommit && pruneUntil > 0 {
		h.truncateUntil(pruneUntil)
		deleted = pruneUntil
	}

	h.truncate(result.index + 1 - deleted)

	if !merge.found() {
		return option.Some(h.ref(result.index-deleted, result.layer))
	}

	newest := h.pop()
	h.truncate(merge.index - deleted)
	newest.Layer = merge.layer
	h.push(newest)

	return option.Some(h.ref(merge.index-deleted, merge.layer))
}

func (h *History[V]) ref(index, layerIndex int) Ref[V] {
	return Ref[V]{Value: &h.entries[index].Value, Layer: layerIndex}
}
