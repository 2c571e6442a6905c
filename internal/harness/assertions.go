package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Field    string // expect field name
	Expected string // human-readable expected value
	Actual   string // human-readable actual value
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateExpect checks result against every field set in expect and
// returns one message per mismatch.
//
// When expect.Error is set the roll must have failed with that code and
// no other field is checked. When it is empty the roll must have
// succeeded.
func EvaluateExpect(result *Result, expect Expect) []string {
	if expect.Error != "" {
		if result.ErrorCode != expect.Error {
			actual := "no error"
			if result.Err != nil {
				actual = fmt.Sprintf("%s (%v)", result.ErrorCode, result.Err)
			}
			return []string{(&AssertionError{Field: "error", Expected: expect.Error, Actual: actual}).Error()}
		}
		return nil
	}
	if result.Err != nil {
		return []string{(&AssertionError{
			Field:    "error",
			Expected: "no error",
			Actual:   fmt.Sprintf("%s (%v)", result.ErrorCode, result.Err),
		}).Error()}
	}

	agg := result.Aggregate
	var errs []string
	checkInt := func(field string, want *int, got int) {
		if want != nil && *want != got {
			errs = append(errs, (&AssertionError{
				Field:    field,
				Expected: fmt.Sprint(*want),
				Actual:   fmt.Sprint(got),
			}).Error())
		}
	}
	checkInts := func(field string, want, got []int) {
		if want != nil && !slices.Equal(want, got) {
			errs = append(errs, (&AssertionError{
				Field:    field,
				Expected: fmt.Sprint(want),
				Actual:   fmt.Sprint(got),
			}).Error())
		}
	}

	checkInt("total", expect.Total, agg.Total)
	checkInt("total_before_modifier", expect.TotalBeforeModifier, agg.TotalBeforeModifier)
	checkInt("final_modifier", expect.FinalModifier, agg.FinalModifier)
	checkInt("successes", expect.Successes, agg.Successes)
	checkInt("failures", expect.Failures, agg.Failures)
	checkInt("evens", expect.Evens, agg.Evens)
	checkInt("odds", expect.Odds, agg.Odds)
	checkInt("doubled", expect.Doubled, agg.Doubled)

	if expect.Halved != nil && *expect.Halved != agg.Halved {
		errs = append(errs, (&AssertionError{
			Field:    "halved",
			Expected: fmt.Sprint(*expect.Halved),
			Actual:   fmt.Sprint(agg.Halved),
		}).Error())
	}

	checkInts("kept", expect.Kept, orEmpty(agg.KeptValues()))
	checkInts("dropped", expect.Dropped, orEmpty(agg.DroppedValues()))

	if expect.Grouped != nil && !maps.Equal(expect.Grouped, agg.GroupedSubtotals) {
		errs = append(errs, (&AssertionError{
			Field:    "grouped",
			Expected: formatGrouped(expect.Grouped),
			Actual:   formatGrouped(agg.GroupedSubtotals),
		}).Error())
	}

	return errs
}

func orEmpty(vals []int) []int {
	if vals == nil {
		return []int{}
	}
	return vals
}

// formatGrouped prints a subtotal map with ascending group keys.
func formatGrouped(m map[int]int) string {
	parts := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, fmt.Sprintf("%d: %d", k, m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
