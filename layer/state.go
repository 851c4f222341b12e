// Package layer implements the transaction layer stack shared by every value
// history of an overlay.
//
// The stack is append-only: closing a transaction never removes layers, it
// flips their state. Any layer index ever recorded by a history therefore
// stays valid for the lifetime of the stack.
package layer

// State is the state of a single transaction layer.
type State uint8

const (
	// Pending marks a live layer whose data can still be dropped.
	Pending State = iota
	// TxPending is a live layer that additionally opens a transaction frame.
	TxPending
	// Dropped marks a reverted layer. Values tagged with it are invisible
	// and may be physically removed by the next compaction.
	Dropped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case TxPending:
		return "TxPending"
	case Dropped:
		return "Dropped"
	default:
		return "Unknown"
	}
}

// IsLive reports whether values written at a layer in this state are visible.
func (s State) IsLive() bool {
	return s == Pending || s == TxPending
}

// States is a read-only view of the layer states, enough to query a history.
type States []State

// Top returns the index of the current top layer, which receives new writes.
func (s States) Top() int {
	return len(s) - 1
}

// View pairs the layer states with the committed boundary. Histories need it
// whenever they mutate themselves.
type View struct {
	States    States
	Committed int
}

// Top returns the index of the current top layer.
func (v View) Top() int {
	return v.States.Top()
}
