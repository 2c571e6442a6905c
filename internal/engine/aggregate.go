package engine

import "github.com/roach88/dicerules/internal/ir"

// fold fills the grouped subtotals, modifier and totals of r from its
// classified rolls and accumulated deductions.
//
// Only counted dice contribute: kept, and a success, not a failure, or
// unclassified. Each contributes subtotal*sign to its group.
func fold(r ir.AggregateResult) ir.AggregateResult {
	r.GroupedSubtotals = make(map[int]int)
	for _, roll := range r.Rolls {
		if !roll.Counted() {
			continue
		}
		r.GroupedSubtotals[roll.Group] += roll.Subtotal * roll.Sign
	}

	r.TotalBeforeModifier = 0
	for _, subtotal := range r.GroupedSubtotals {
		r.TotalBeforeModifier += subtotal
	}

	r.FinalModifier = r.InitialModifier - r.DeductionsFromFailure - r.SubtractionsFromFailure - r.MarginOfSuccess
	r.Total = r.TotalBeforeModifier + r.FinalModifier
	r.Doubled = r.Total * 2
	r.Halved = float64(r.Total) / 2
	return r
}
