package engine

import (
	"cmp"
	"slices"

	"github.com/roach88/dicerules/internal/ir"
)

// ClassifyKind selects how kept dice are classified.
type ClassifyKind uint8

const (
	// ClassifyNone leaves every die unclassified.
	ClassifyNone ClassifyKind = iota
	// ClassifySuccess marks a die a success when the operator holds.
	ClassifySuccess
	// ClassifyFailure marks a die a failure when the operator holds.
	ClassifyFailure
)

// String returns the classification kind name.
func (k ClassifyKind) String() string {
	switch k {
	case ClassifySuccess:
		return "success"
	case ClassifyFailure:
		return "failure"
	}
	return "none"
}

// Classification is the active success/failure rule. Op is meaningful only
// when Kind is not ClassifyNone.
type Classification struct {
	Kind ClassifyKind
	Op   ir.Operator
}

// classify returns the success and failure marks for a kept die value.
func (c Classification) classify(value int) (success, failure ir.Mark) {
	switch c.Kind {
	case ClassifySuccess:
		if c.Op.Evaluate(value) {
			return ir.Yes, ir.Unset
		}
		return ir.No, ir.Unset
	case ClassifyFailure:
		if c.Op.Evaluate(value) {
			return ir.Unset, ir.Yes
		}
		return ir.Unset, ir.No
	}
	return ir.Unset, ir.Unset
}

// SuccessOptions is the flag-level description of a success rule.
type SuccessOptions struct {
	CountSuccess    *ir.Operator
	CountFailure    *ir.Operator
	CountEven       bool
	CountOdd        bool
	DeductFailure   int
	SubtractFailure bool
	MarginOfSuccess int
}

// SuccessRule classifies kept dice and folds them into an AggregateResult.
type SuccessRule struct {
	Classification  Classification
	CountEven       bool
	CountOdd        bool
	DeductFailure   int
	SubtractFailure bool
	MarginOfSuccess int
}

// NewSuccessRule validates opts and builds a SuccessRule.
func NewSuccessRule(opts SuccessOptions) (SuccessRule, error) {
	rule := SuccessRule{
		CountEven:       opts.CountEven,
		CountOdd:        opts.CountOdd,
		DeductFailure:   opts.DeductFailure,
		SubtractFailure: opts.SubtractFailure,
		MarginOfSuccess: opts.MarginOfSuccess,
	}

	switch {
	case opts.CountSuccess != nil && opts.CountFailure != nil:
		return SuccessRule{}, NewConfigError(ErrCodeConflictingClassification, "count_failure",
			"count_success and count_failure cannot be used together")
	case opts.CountSuccess != nil:
		rule.Classification = Classification{Kind: ClassifySuccess, Op: *opts.CountSuccess}
	case opts.CountFailure != nil:
		rule.Classification = Classification{Kind: ClassifyFailure, Op: *opts.CountFailure}
	}

	if opts.DeductFailure < 0 {
		return SuccessRule{}, NewConfigError(ErrCodeNegativeValue, "deduct_failure", "deduction must be non-negative")
	}
	if opts.MarginOfSuccess < 0 {
		return SuccessRule{}, NewConfigError(ErrCodeNegativeValue, "margin_of_success", "margin must be non-negative")
	}

	return rule, nil
}

// Process classifies kept dice and aggregates the result.
//
// Only kept dice are classified, counted as even/odd, or charged failure
// deductions. Dropped dice pass through with unset marks. Outcomes are
// emitted sorted by (index, group).
func (s SuccessRule) Process(kept []ir.KeptOutcome, baseModifier int) ir.AggregateResult {
	result := ir.AggregateResult{
		Rolls:           make([]ir.ClassifiedOutcome, 0, len(kept)),
		InitialModifier: baseModifier,
		MarginOfSuccess: s.MarginOfSuccess,
	}

	for _, k := range kept {
		out := ir.ClassifiedOutcome{KeptOutcome: k}
		if k.Kept {
			s.classifyInto(&out, &result)
		}
		result.Rolls = append(result.Rolls, out)
	}

	slices.SortStableFunc(result.Rolls, func(a, b ir.ClassifiedOutcome) int {
		if c := cmp.Compare(a.Index, b.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.Group, b.Group)
	})

	return fold(result)
}

func (s SuccessRule) classifyInto(out *ir.ClassifiedOutcome, result *ir.AggregateResult) {
	out.Success, out.Failure = s.Classification.classify(out.Final)
	switch {
	case out.Success == ir.Yes, out.Failure == ir.No:
		result.Successes++
	case out.Success == ir.No, out.Failure == ir.Yes:
		result.Failures++
	}

	if out.IsFailure() {
		if s.SubtractFailure {
			result.SubtractionsFromFailure += out.Final
			out.Subtracted = true
		}
		if s.DeductFailure > 0 {
			result.DeductionsFromFailure += s.DeductFailure
			out.Deductions = s.DeductFailure
		}
	}

	even := out.Final%2 == 0
	if s.CountEven && even {
		result.Evens++
	}
	if s.CountOdd && !even {
		result.Odds++
	}
}
