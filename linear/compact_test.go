package linear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiangjkd/historied/layer"
	"github.com/jiangjkd/historied/linear"
)

func TestHistory_GetMutPruning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		entries   []linear.Entry[int]
		states    layer.States
		committed int
		prune     bool

		found         bool
		expectedValue int
		expectedLayer int
		expected      []linear.Entry[int]
	}{
		{
			name:          "dropped tail is trimmed",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2)},
			states:        layer.States{p, d, d},
			found:         true,
			expectedValue: 1,
			expectedLayer: 0,
			expected:      []linear.Entry[int]{e(1, 0)},
		},
		{
			name:          "dropped entries below the live one are kept",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2)},
			states:        layer.States{p, d, tx},
			found:         true,
			expectedValue: 3,
			expectedLayer: 2,
			expected:      []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2)},
		},
		{
			name:          "live entries of one scope collapse into the oldest slot",
			entries:       []linear.Entry[int]{e(1, 1), e(2, 2), e(3, 3)},
			states:        layer.States{p, tx, p, p},
			found:         true,
			expectedValue: 3,
			expectedLayer: 1,
			expected:      []linear.Entry[int]{e(3, 1)},
		},
		{
			name:          "outer scope entry survives the collapse",
			entries:       []linear.Entry[int]{e(9, 0), e(1, 1), e(2, 2), e(3, 3)},
			states:        layer.States{p, tx, p, p},
			found:         true,
			expectedValue: 3,
			expectedLayer: 1,
			expected:      []linear.Entry[int]{e(9, 0), e(3, 1)},
		},
		{
			name:          "collapse across a discarded inner frame",
			entries:       []linear.Entry[int]{e(1, 1), e(2, 2), e(3, 3)},
			states:        layer.States{p, tx, d, p},
			found:         true,
			expectedValue: 3,
			expectedLayer: 1,
			expected:      []linear.Entry[int]{e(3, 1)},
		},
		{
			name:          "no collapse across the committed boundary",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1)},
			states:        layer.States{p, p},
			committed:     1,
			found:         true,
			expectedValue: 2,
			expectedLayer: 1,
			expected:      []linear.Entry[int]{e(1, 0), e(2, 1)},
		},
		{
			name:     "no live entry clears the history",
			entries:  []linear.Entry[int]{e(1, 1), e(2, 2)},
			states:   layer.States{p, d, d},
			found:    false,
			expected: nil,
		},
		{
			name:          "pruning removes entries older than the committed value",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2)},
			states:        layer.States{p, p, p},
			committed:     2,
			prune:         true,
			found:         true,
			expectedValue: 3,
			expectedLayer: 2,
			expected:      []linear.Entry[int]{e(2, 1), e(3, 2)},
		},
		{
			name:          "without the flag nothing is pruned",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2)},
			states:        layer.States{p, p, p},
			committed:     2,
			prune:         false,
			found:         true,
			expectedValue: 3,
			expectedLayer: 2,
			expected:      []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2)},
		},
		{
			name:          "pruning combined with a scope collapse",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2), e(4, 3)},
			states:        layer.States{p, p, tx, p},
			committed:     2,
			prune:         true,
			found:         true,
			expectedValue: 4,
			expectedLayer: 2,
			expected:      []linear.Entry[int]{e(2, 1), e(4, 2)},
		},
		{
			name:          "scope collapse without pruning",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2), e(4, 3)},
			states:        layer.States{p, p, tx, p},
			committed:     2,
			prune:         false,
			found:         true,
			expectedValue: 4,
			expectedLayer: 2,
			expected:      []linear.Entry[int]{e(1, 0), e(2, 1), e(4, 2)},
		},
		{
			name:          "committed value already first",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1)},
			states:        layer.States{p, p},
			committed:     1,
			prune:         true,
			found:         true,
			expectedValue: 2,
			expectedLayer: 1,
			expected:      []linear.Entry[int]{e(1, 0), e(2, 1)},
		},
		{
			name:          "live value below committed",
			entries:       []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2)},
			states:        layer.States{p, p, d},
			committed:     2,
			prune:         true,
			found:         true,
			expectedValue: 2,
			expectedLayer: 1,
			expected:      []linear.Entry[int]{e(2, 1)},
		},
		{
			name:      "pruning without live entry clears the history",
			entries:   []linear.Entry[int]{e(1, 1)},
			states:    layer.States{p, d},
			committed: 1,
			prune:     true,
			found:     false,
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := linear.FromEntries(tt.entries...)
			view := layer.View{States: tt.states, Committed: tt.committed}

			ref, ok := h.GetMutPruning(view, tt.prune).Get()
			require.Equal(t, tt.found, ok)

			if ok {
				assert.Equal(t, tt.expectedValue, *ref.Value)
				assert.Equal(t, tt.expectedLayer, ref.Layer)
			}

			assert.Equal(t, tt.expected, h.Entries())
		})
	}
}

func TestHistory_GetMutMatchesPruningWithoutFlag(t *testing.T) {
	t.Parallel()

	entries := []linear.Entry[int]{e(1, 0), e(2, 1), e(3, 2), e(4, 3), e(5, 5)}
	view := layer.View{States: layer.States{p, p, tx, p, d, p}, Committed: 2}

	plain := linear.FromEntries(entries...)
	pruning := linear.FromEntries(entries...)

	plainRef, plainOk := plain.GetMut(view).Get()
	pruningRef, pruningOk := pruning.GetMutPruning(view, false).Get()

	require.True(t, plainOk)
	require.True(t, pruningOk)
	assert.Equal(t, *plainRef.Value, *pruningRef.Value)
	assert.Equal(t, plainRef.Layer, pruningRef.Layer)
	assert.Equal(t, plain.Entries(), pruning.Entries())
}

func TestHistory_GetMutHandleWritesThrough(t *testing.T) {
	t.Parallel()

	stack := layer.New()

	var h linear.History[int]

	h.Set(stack.View(), 1)
	stack.StartTransaction()
	h.Set(stack.View(), 2)

	ref, ok := h.GetMut(stack.View()).Get()
	require.True(t, ok)
	assert.Equal(t, 1, ref.Layer)

	*ref.Value = 42

	requireValue(t, 42, h.Get(stack.States()))

	stack.DiscardTransaction()
	requireValue(t, 1, h.Get(stack.States()))
}

func TestHistory_GetMutAgreesWithGet(t *testing.T) {
	t.Parallel()

	h := linear.FromEntries(e(1, 0), e(2, 1), e(3, 2), e(4, 3), e(5, 4))
	states := layer.States{p, tx, d, tx, d}
	view := layer.View{States: states, Committed: 0}

	want := h.Get(states)

	ref, ok := h.GetMut(view).Get()
	require.True(t, ok)
	requireValue(t, *ref.Value, want)
	assert.Equal(t, want, h.Get(states))
}

// Pruning is irreversible: rolling the committed boundary back below pruned
// entries cannot bring their values back.
func TestHistory_PruningDefeatsRollback(t *testing.T) {
	t.Parallel()

	run := func(prune bool) *linear.History[int] {
		stack := layer.New()

		var h linear.History[int]

		h.Set(stack.View(), 10)

		stack.CommitProspective()
		oldCommitted := stack.Committed()

		h.Set(stack.View(), 20)
		stack.CommitProspective()

		h.GetMutPruning(stack.View(), prune)

		stack.UncheckedRollbackCommitted(oldCommitted)

		got := h.Get(stack.States())

		if prune {
			requireNone(t, got)
		} else {
			requireValue(t, 10, got)
		}

		return &h
	}

	assert.Equal(t, 1, run(true).Len())
	assert.Equal(t, 2, run(false).Len())
}
