package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperator_Evaluate(t *testing.T) {
	tests := []struct {
		op    Operator
		value int
		want  bool
	}{
		{Eq(3), 3, true},
		{Eq(3), 4, false},
		{Gt(3), 4, true},
		{Gt(3), 3, false},
		{Gte(3), 3, true},
		{Gte(3), 2, false},
		{Lt(3), 2, true},
		{Lt(3), 3, false},
		{Lte(3), 3, true},
		{Lte(3), 4, false},
		{Gte(-5), -5, true},
		{Operator{Cmp: "ne", Threshold: 1}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Evaluate(tt.value), "value %d", tt.value)
		})
	}
}

func TestOperator_MatchesEveryFace(t *testing.T) {
	tests := []struct {
		op   Operator
		size int
		want bool
	}{
		{Lte(6), 6, true},
		{Lte(5), 6, false},
		{Lt(7), 6, true},
		{Lt(6), 6, false},
		{Gte(1), 6, true},
		{Gte(2), 6, false},
		{Gt(0), 6, true},
		{Gt(1), 6, false},
		{Eq(1), 1, true},
		{Eq(1), 6, false},
		{Lte(6), 0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.MatchesEveryFace(tt.size), "%s on d%d", tt.op, tt.size)
	}
}

func TestOperator_MatchesEveryFaceAgreesWithEvaluate(t *testing.T) {
	for _, cmp := range []Comparison{Equal, GreaterThan, GreaterOrEqual, LessThan, LessOrEqual} {
		for threshold := -1; threshold <= 8; threshold++ {
			for size := 1; size <= 6; size++ {
				op := Operator{Cmp: cmp, Threshold: threshold}
				all := true
				for face := 1; face <= size; face++ {
					all = all && op.Evaluate(face)
				}
				assert.Equal(t, all, op.MatchesEveryFace(size), "%s on d%d", op, size)
			}
		}
	}
}

func TestComparison_Valid(t *testing.T) {
	assert.True(t, GreaterOrEqual.Valid())
	assert.False(t, Comparison("ne").Valid())
}

func TestOperator_String(t *testing.T) {
	assert.Equal(t, "gte5", Gte(5).String())
	assert.Equal(t, "eq1", Eq(1).String())
}
