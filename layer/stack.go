package layer

import (
	"slices"

	"github.com/jiangjkd/historied/internal/contract"
)

// Stack is the ordered record of transaction layers plus the committed
// boundary. Layers below Committed are durable, layers at or above it are
// prospective. There is always at least one layer and the last one is where
// writes go.
//
// A Stack is not safe for concurrent use.
type Stack struct {
	states    []State
	committed int
}

// New creates a stack with a single Pending layer and nothing committed.
func New() *Stack {
	return &Stack{
		states:    []State{Pending},
		committed: 0,
	}
}

// Literal builds a stack from explicit states. It is meant for tests and
// debugging; the states must be non-empty and committed must not exceed
// their count.
func Literal(states []State, committed int) *Stack {
	contract.Require(len(states) > 0, "stack needs at least one layer")
	contract.Require(committed >= 0 && committed <= len(states),
		"committed %d outside of [0, %d]", committed, len(states))

	return &Stack{
		states:    slices.Clone(states),
		committed: committed,
	}
}

// Clone returns an independent copy of the stack.
func (s *Stack) Clone() *Stack {
	return &Stack{
		states:    slices.Clone(s.states),
		committed: s.committed,
	}
}

// States returns the read view used to query histories. The slice is shared
// with the stack and must not be modified.
func (s *Stack) States() States {
	return s.states
}

// View returns the states paired with the committed boundary.
func (s *Stack) View() View {
	return View{States: s.states, Committed: s.committed}
}

// Committed returns the committed boundary. Zero means nothing is committed.
func (s *Stack) Committed() int {
	return s.committed
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.states)
}

// Top returns the index of the layer that receives writes.
func (s *Stack) Top() int {
	return len(s.states) - 1
}

// Depth returns the number of open transaction frames above the committed
// boundary.
func (s *Stack) Depth() int {
	depth := 0

	for _, st := range s.states[s.committed:] {
		if st == TxPending {
			depth++
		}
	}

	return depth
}

// StartTransaction opens a nested transaction frame.
func (s *Stack) StartTransaction() {
	s.states = append(s.states, TxPending)
}

// CommitTransaction folds the innermost open frame into its enclosing scope.
// Without an open frame above the committed boundary nothing is folded.
func (s *Stack) CommitTransaction() {
	for i := len(s.states) - 1; i >= s.committed; i-- {
		if s.states[i] == TxPending {
			s.states[i] = Pending
			break
		}
	}

	s.states = append(s.states, Pending)
}

// DiscardTransaction drops the innermost open frame together with every
// layer stacked on top of it. Without an open frame everything down to the
// committed boundary is dropped.
func (s *Stack) DiscardTransaction() {
scan:
	for i := len(s.states) - 1; i >= s.committed; i-- {
		switch s.states[i] {
		case Dropped:
		case Pending:
			s.states[i] = Dropped
		case TxPending:
			s.states[i] = Dropped
			break scan
		}
	}

	s.states = append(s.states, Pending)
}

// CommitProspective makes everything written so far durable.
func (s *Stack) CommitProspective() {
	s.committed = len(s.states)
	s.states = append(s.states, Pending)
}

// DiscardProspective abandons all uncommitted work.
func (s *Stack) DiscardProspective() {
	for i := s.committed; i < len(s.states); i++ {
		s.states[i] = Dropped
	}

	s.states = append(s.states, Pending)
}

// UncheckedRollbackCommitted moves the committed boundary back to
// oldCommitted and discards everything above it.
//
// It is only correct if no history was pruned with GetMutPruning while the
// boundary was above oldCommitted. Values removed by pruning are gone, and
// this call has no way to notice it.
func (s *Stack) UncheckedRollbackCommitted(oldCommitted int) {
	contract.Require(oldCommitted >= 0 && oldCommitted <= len(s.states),
		"rollback to %d on a stack of %d layers", oldCommitted, len(s.states))

	s.committed = oldCommitted
	s.DiscardProspective()
}
