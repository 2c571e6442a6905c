package roll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dicerules/internal/engine"
	"github.com/roach88/dicerules/internal/ir"
	"github.com/roach88/dicerules/internal/testutil"
)

func TestOptions_Build(t *testing.T) {
	plan, err := Options{
		Expression:      "4d6+1",
		Reroll:          "eq1",
		RerollRecursive: true,
		Explode:         "eq6",
		ExplodeOnce:     true,
		DropLow:         1,
		CountSuccess:    "gte4",
		DeductFailure:   2,
	}.Build()
	require.NoError(t, err)

	require.Len(t, plan.Expression.Groups, 1)
	g := plan.Expression.Groups[0]
	assert.Equal(t, &ir.RerollPolicy{Op: ir.Eq(1), Recursive: true}, g.Reroll)
	assert.Equal(t, &ir.ExplodePolicy{Op: ir.Eq(6), Once: true}, g.Explode)
	assert.Equal(t, 1, plan.Expression.Modifier)

	assert.Equal(t, engine.KeepRule{Keep: false, High: false, Count: 1}, plan.Keep)
	assert.Equal(t, engine.ClassifySuccess, plan.Success.Classification.Kind)
	assert.Equal(t, ir.Gte(4), plan.Success.Classification.Op)
	assert.Equal(t, 2, plan.Success.DeductFailure)
}

func TestOptions_BuildSubtractFailures(t *testing.T) {
	plan, err := Options{Expression: "3d10", SubtractFailures: "lte3"}.Build()
	require.NoError(t, err)

	assert.Equal(t, engine.ClassifyFailure, plan.Success.Classification.Kind)
	assert.Equal(t, ir.Lte(3), plan.Success.Classification.Op)
	assert.True(t, plan.Success.SubtractFailure)
}

func TestOptions_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code engine.ConfigErrorCode
	}{
		{
			name: "reroll threshold above die",
			opts: Options{Expression: "1d20+1d6", Reroll: "eq8"},
			code: engine.ErrCodeThresholdExceedsDie,
		},
		{
			name: "explode threshold above die",
			opts: Options{Expression: "2d4", Explode: "gte5"},
			code: engine.ErrCodeThresholdExceedsDie,
		},
		{
			name: "recursive reroll on every face",
			opts: Options{Expression: "1d6", Reroll: "lte6", RerollRecursive: true},
			code: engine.ErrCodeDegeneratePolicy,
		},
		{
			name: "chained explode on every face",
			opts: Options{Expression: "1d6", Explode: "gte1"},
			code: engine.ErrCodeDegeneratePolicy,
		},
		{
			name: "chained explode on single-faced die",
			opts: Options{Expression: "3d1", Explode: "eq1"},
			code: engine.ErrCodeDegeneratePolicy,
		},
		{
			name: "zero-faced die",
			opts: Options{Expression: "1d0"},
			code: engine.ErrCodeInvalidDieSize,
		},
		{
			name: "success and subtract",
			opts: Options{Expression: "1d6", CountSuccess: "gte5", SubtractFailures: "eq1"},
			code: engine.ErrCodeConflictingClassification,
		},
		{
			name: "success and failure",
			opts: Options{Expression: "1d6", CountSuccess: "gte5", CountFailure: "eq1"},
			code: engine.ErrCodeConflictingClassification,
		},
		{
			name: "two selections",
			opts: Options{Expression: "4d6", KeepHigh: 3, DropLow: 1},
			code: engine.ErrCodeConflictingSelection,
		},
		{
			name: "min and max",
			opts: Options{Expression: "1d20", Min: 5, Max: 15},
			code: engine.ErrCodeConflictingReplacement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Build()
			require.Error(t, err)
			assert.Equal(t, tt.code, engine.ConfigErrorCodeOf(err), err.Error())
		})
	}
}

func TestOptions_BuildAllowsNonLoopingPolicies(t *testing.T) {
	// A one-shot reroll or explosion always terminates.
	_, err := Options{Expression: "1d6", Reroll: "lte6"}.Build()
	assert.NoError(t, err)

	_, err = Options{Expression: "1d6", Explode: "gte1", ExplodeOnce: true}.Build()
	assert.NoError(t, err)
}

func TestOptions_BuildParseErrors(t *testing.T) {
	tests := []Options{
		{Expression: "2x6"},
		{Expression: "1d6", Reroll: "eq"},
		{Expression: "1d6", CountFailure: "below3"},
	}

	for _, opts := range tests {
		_, err := opts.Build()
		assert.True(t, IsParseError(err), "%+v", opts)
	}
}

func TestOptions_Overlay(t *testing.T) {
	preset := Options{Expression: "4d6", DropLow: 1, CountEven: true}
	flags := Options{Expression: "5d6", Max: 5}

	got := preset.Overlay(flags)

	assert.Equal(t, Options{Expression: "5d6", DropLow: 1, CountEven: true, Max: 5}, got)
	assert.Equal(t, preset, preset.Overlay(Options{}))
}

func TestPlan_Evaluate(t *testing.T) {
	plan, err := Options{Expression: "4d6+1", KeepHigh: 3}.Build()
	require.NoError(t, err)

	src := testutil.NewScriptedSource(6, 1, 4, 3)
	result, err := plan.Evaluate(src)
	require.NoError(t, err)
	require.NoError(t, src.Err())

	assert.Equal(t, 13, result.TotalBeforeModifier)
	assert.Equal(t, 14, result.Total)
	assert.Equal(t, []int{1}, result.DroppedValues())
}

func TestPlan_EvaluateWithMaxChain(t *testing.T) {
	plan, err := Options{Expression: "1d6", Explode: "eq6"}.Build()
	require.NoError(t, err)

	src := testutil.NewScriptedSource(6, 6, 6)
	_, err = plan.Evaluate(src, engine.WithMaxChain(1))
	assert.True(t, engine.IsChainExhausted(err))
}

func TestOptions_CanonicalMap(t *testing.T) {
	m := Options{Expression: "4d6", DropLow: 1, CountEven: true}.CanonicalMap()

	assert.Equal(t, map[string]any{
		"expression": "4d6",
		"drop_low":   1,
		"count_even": true,
	}, m)
}
