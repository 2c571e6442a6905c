package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dicerules/internal/ir"
	"github.com/roach88/dicerules/internal/testutil"
)

func TestRoller_PlainDie(t *testing.T) {
	src := testutil.NewScriptedSource(4)
	r := NewRoller(src)

	out, err := r.Roll(6, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, out.Final)
	assert.Equal(t, 4, out.Subtotal)
	assert.Empty(t, out.Discarded)
	assert.Empty(t, out.Exploded)
	assert.Equal(t, 1, out.Index)
	assert.Equal(t, 1, out.Sign)
	assert.NoError(t, src.Err())
}

func TestRoller_Reroll(t *testing.T) {
	tests := []struct {
		name          string
		policy        ir.RerollPolicy
		draws         []int
		wantFinal     int
		wantDiscarded []int
	}{
		{
			name:          "no match keeps first draw",
			policy:        ir.RerollPolicy{Op: ir.Eq(1)},
			draws:         []int{3},
			wantFinal:     3,
			wantDiscarded: nil,
		},
		{
			name:          "one reroll replaces match",
			policy:        ir.RerollPolicy{Op: ir.Eq(1)},
			draws:         []int{1, 4},
			wantFinal:     4,
			wantDiscarded: []int{1},
		},
		{
			name:          "non-recursive keeps a matching reroll",
			policy:        ir.RerollPolicy{Op: ir.Eq(1)},
			draws:         []int{1, 1},
			wantFinal:     1,
			wantDiscarded: []int{1},
		},
		{
			name:          "recursive rerolls until no match",
			policy:        ir.RerollPolicy{Op: ir.Lte(2), Recursive: true},
			draws:         []int{1, 2, 1, 5},
			wantFinal:     5,
			wantDiscarded: []int{1, 2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewScriptedSource(tt.draws...)
			r := NewRoller(src)

			out, err := r.Roll(6, &tt.policy, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFinal, out.Final)
			assert.Equal(t, tt.wantDiscarded, out.Discarded)
			assert.Equal(t, tt.wantFinal, out.Subtotal)
			assert.Equal(t, 0, src.Remaining())
			assert.NoError(t, src.Err())
		})
	}
}

func TestRoller_Explode(t *testing.T) {
	tests := []struct {
		name         string
		policy       ir.ExplodePolicy
		draws        []int
		wantFinal    int
		wantExploded []int
		wantSubtotal int
	}{
		{
			name:         "no match",
			policy:       ir.ExplodePolicy{Op: ir.Eq(6)},
			draws:        []int{5},
			wantFinal:    5,
			wantSubtotal: 5,
		},
		{
			name:         "chain until no match",
			policy:       ir.ExplodePolicy{Op: ir.Eq(6)},
			draws:        []int{6, 6, 2},
			wantFinal:    6,
			wantExploded: []int{6, 2},
			wantSubtotal: 14,
		},
		{
			name:         "once stops after one explosion",
			policy:       ir.ExplodePolicy{Op: ir.Eq(6), Once: true},
			draws:        []int{6, 6},
			wantFinal:    6,
			wantExploded: []int{6},
			wantSubtotal: 12,
		},
		{
			name:         "threshold operator",
			policy:       ir.ExplodePolicy{Op: ir.Gte(5)},
			draws:        []int{5, 6, 1},
			wantFinal:    5,
			wantExploded: []int{6, 1},
			wantSubtotal: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewScriptedSource(tt.draws...)
			r := NewRoller(src)

			out, err := r.Roll(6, nil, &tt.policy)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFinal, out.Final)
			assert.Equal(t, tt.wantExploded, out.Exploded)
			assert.Equal(t, tt.wantSubtotal, out.Subtotal)
			assert.Equal(t, 0, src.Remaining())
		})
	}
}

func TestRoller_RerollThenExplode(t *testing.T) {
	src := testutil.NewScriptedSource(1, 6, 3)
	r := NewRoller(src)

	out, err := r.Roll(6, &ir.RerollPolicy{Op: ir.Eq(1)}, &ir.ExplodePolicy{Op: ir.Eq(6)})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, out.Discarded)
	assert.Equal(t, 6, out.Final)
	assert.Equal(t, []int{3}, out.Exploded)
	assert.Equal(t, 9, out.Subtotal)
}

func TestRoller_SingleFacedDie(t *testing.T) {
	src := testutil.NewScriptedSource(1, 1)
	r := NewRoller(src)

	out, err := r.Roll(1, &ir.RerollPolicy{Op: ir.Eq(1)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Final)
	assert.Equal(t, []int{1}, out.Discarded)
	assert.NoError(t, src.Err())
}

func TestRoller_RollGroup(t *testing.T) {
	src := testutil.NewScriptedSource(2, 5, 3)
	r := NewRoller(src)

	outs, err := r.RollGroup(ir.RollGroupSpec{Group: 2, Sign: -1, Count: 3, Size: 8})
	require.NoError(t, err)
	require.Len(t, outs, 3)

	for i, out := range outs {
		assert.Equal(t, i+1, out.Index, "indices are 1-based")
		assert.Equal(t, 2, out.Group)
		assert.Equal(t, -1, out.Sign)
		assert.Equal(t, 8, out.Size)
	}
	assert.Equal(t, []int{2, 5, 3}, []int{outs[0].Final, outs[1].Final, outs[2].Final})
}

func TestRoller_RollGroup_ZeroDice(t *testing.T) {
	src := testutil.NewScriptedSource()
	r := NewRoller(src)

	outs, err := r.RollGroup(ir.RollGroupSpec{Group: 1, Sign: 1, Count: 0, Size: 6})
	require.NoError(t, err)

	assert.NotNil(t, outs)
	assert.Empty(t, outs)
	assert.NoError(t, src.Err(), "no draws are made")
}

func TestRoller_RollGroups_Flattens(t *testing.T) {
	src := testutil.NewScriptedSource(1, 2, 7)
	r := NewRoller(src)

	outs, err := r.RollGroups([]ir.RollGroupSpec{
		{Group: 1, Sign: 1, Count: 2, Size: 6},
		{Group: 2, Sign: 1, Count: 1, Size: 8},
	})
	require.NoError(t, err)
	require.Len(t, outs, 3)

	assert.Equal(t, 1, outs[0].Group)
	assert.Equal(t, 1, outs[1].Group)
	assert.Equal(t, 2, outs[2].Group)
	assert.Equal(t, 1, outs[2].Index)
}

func TestRoller_MaxChain(t *testing.T) {
	t.Run("reroll", func(t *testing.T) {
		src := testutil.NewScriptedSource(1, 2, 3, 4)
		r := &Roller{Source: src, MaxChain: 3}

		_, err := r.Roll(6, &ir.RerollPolicy{Op: ir.Lte(6), Recursive: true}, nil)
		require.Error(t, err)
		assert.True(t, IsChainExhausted(err))

		var ce *ChainExhaustedError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, StageReroll, ce.Stage)
		assert.Equal(t, 3, ce.Limit)
		assert.Equal(t, 1, ce.Index)
	})

	t.Run("explode", func(t *testing.T) {
		src := testutil.NewScriptedSource(5, 5, 5)
		r := &Roller{Source: src, MaxChain: 2}

		_, err := r.Roll(6, nil, &ir.ExplodePolicy{Op: ir.Gte(1)})
		require.Error(t, err)

		var ce *ChainExhaustedError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, StageExplode, ce.Stage)
		assert.Contains(t, err.Error(), "explode chain exhausted")
	})

	t.Run("within cap", func(t *testing.T) {
		src := testutil.NewScriptedSource(6, 6, 6, 1)
		r := &Roller{Source: src, MaxChain: 3}

		out, err := r.Roll(6, nil, &ir.ExplodePolicy{Op: ir.Eq(6)})
		require.NoError(t, err)
		assert.Equal(t, []int{6, 6, 1}, out.Exploded)
	})
}

func TestRoller_RollGroup_PropagatesChainError(t *testing.T) {
	src := testutil.NewScriptedSource(3, 1, 1)
	r := &Roller{Source: src, MaxChain: 1}

	_, err := r.RollGroup(ir.RollGroupSpec{
		Group: 1, Sign: 1, Count: 2, Size: 6,
		Reroll: &ir.RerollPolicy{Op: ir.Eq(1), Recursive: true},
	})
	require.Error(t, err)

	var ce *ChainExhaustedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Index)
	assert.Equal(t, 1, ce.Group)
}
