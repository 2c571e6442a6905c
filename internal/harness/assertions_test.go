package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dicerules/internal/ir"
)

func floatPtr(v float64) *float64 { return &v }

func sampleAggregate() ir.AggregateResult {
	kept := func(index, final int, isKept bool) ir.ClassifiedOutcome {
		raw := ir.NewRawOutcome(1, 1, index, 6, final, nil, nil)
		return ir.ClassifiedOutcome{KeptOutcome: ir.KeptOutcome{RawOutcome: raw, Kept: isKept}}
	}
	return ir.AggregateResult{
		Rolls:               []ir.ClassifiedOutcome{kept(1, 2, false), kept(2, 5, true), kept(3, 6, true)},
		GroupedSubtotals:    map[int]int{1: 11},
		TotalBeforeModifier: 11,
		InitialModifier:     1,
		FinalModifier:       1,
		Total:               12,
		Doubled:             24,
		Halved:              6,
	}
}

func TestEvaluateExpect_AllMatch(t *testing.T) {
	result := &Result{Pass: true, Aggregate: sampleAggregate()}
	expect := Expect{
		Total:               intPtr(12),
		TotalBeforeModifier: intPtr(11),
		FinalModifier:       intPtr(1),
		Successes:           intPtr(0),
		Doubled:             intPtr(24),
		Halved:              floatPtr(6),
		Kept:                []int{5, 6},
		Dropped:             []int{2},
		Grouped:             map[int]int{1: 11},
	}

	assert.Empty(t, EvaluateExpect(result, expect))
}

func TestEvaluateExpect_EmptyExpectPasses(t *testing.T) {
	result := &Result{Pass: true, Aggregate: sampleAggregate()}
	assert.Empty(t, EvaluateExpect(result, Expect{}))
}

func TestEvaluateExpect_Mismatches(t *testing.T) {
	result := &Result{Pass: true, Aggregate: sampleAggregate()}
	expect := Expect{
		Total:   intPtr(13),
		Halved:  floatPtr(6.5),
		Kept:    []int{6, 5},
		Dropped: []int{},
		Grouped: map[int]int{1: 11, 2: 0},
	}

	errs := EvaluateExpect(result, expect)
	require.Len(t, errs, 5)
	assert.Contains(t, errs[0], "Assertion failed: total")
	assert.Contains(t, errs[1], "Assertion failed: halved")
	assert.Contains(t, errs[2], "Expected: [6 5]")
	assert.Contains(t, errs[2], "Actual: [5 6]")
	assert.Contains(t, errs[3], "Assertion failed: dropped")
	assert.Contains(t, errs[4], "Expected: {1: 11, 2: 0}")
	assert.Contains(t, errs[4], "Actual: {1: 11}")
}

func TestEvaluateExpect_ExpectedError(t *testing.T) {
	failed := &Result{Err: errors.New("boom"), ErrorCode: "DEGENERATE_POLICY"}

	assert.Empty(t, EvaluateExpect(failed, Expect{Error: "DEGENERATE_POLICY", Total: intPtr(99)}))

	errs := EvaluateExpect(failed, Expect{Error: "PARSE_ERROR"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: PARSE_ERROR")
	assert.Contains(t, errs[0], "Actual: DEGENERATE_POLICY (boom)")

	ok := &Result{Aggregate: sampleAggregate()}
	errs = EvaluateExpect(ok, Expect{Error: "PARSE_ERROR"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Actual: no error")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{Field: "total", Expected: "3", Actual: "4"}
	assert.Equal(t, "Assertion failed: total\n  Expected: 3\n  Actual: 4", err.Error())
}
