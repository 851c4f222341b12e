package layer

import "github.com/jiangjkd/historied/internal/contract"

// FindScopeStart returns the greatest index in [view.Committed, from) whose
// state is TxPending, or view.Committed if there is none. Dropped layers are
// not skipped: compaction relies on exactly this boundary.
func FindScopeStart(view View, from int) int {
	if contract.Enabled {
		contract.Require(from <= len(view.States),
			"scope lookup from layer %d on a view of %d layers", from, len(view.States))
	}

	for i := from - 1; i >= view.Committed; i-- {
		if view.States[i] == TxPending {
			return i
		}
	}

	return view.Committed
}
