package ir

import "strconv"

// AggregateResult is the terminal value of one evaluation.
//
// FinalModifier == InitialModifier - DeductionsFromFailure -
// SubtractionsFromFailure - MarginOfSuccess, and
// Total == TotalBeforeModifier + FinalModifier.
type AggregateResult struct {
	Rolls                   []ClassifiedOutcome `json:"rolls"`
	DeductionsFromFailure   int                 `json:"deductions_from_failure"`
	SubtractionsFromFailure int                 `json:"subtractions_from_failure"`
	MarginOfSuccess         int                 `json:"margin_of_success"`
	InitialModifier         int                 `json:"initial_modifier"`
	FinalModifier           int                 `json:"final_modifier"`
	GroupedSubtotals        map[int]int         `json:"grouped_subtotals"`
	TotalBeforeModifier     int                 `json:"total_before_modifier"`
	Total                   int                 `json:"total"`
	Doubled                 int                 `json:"doubled"`
	Halved                  float64             `json:"halved"`
	Successes               int                 `json:"successes"`
	Failures                int                 `json:"failures"`
	Evens                   int                 `json:"evens"`
	Odds                    int                 `json:"odds"`
}

// KeptValues returns the final values of kept dice in emitted order.
func (r AggregateResult) KeptValues() []int {
	var out []int
	for _, roll := range r.Rolls {
		if roll.Kept {
			out = append(out, roll.Final)
		}
	}
	return out
}

// DroppedValues returns the final values of dropped dice in emitted order.
func (r AggregateResult) DroppedValues() []int {
	var out []int
	for _, roll := range r.Rolls {
		if !roll.Kept {
			out = append(out, roll.Final)
		}
	}
	return out
}

// CanonicalMap converts the result into the map form accepted by
// MarshalCanonical. Halved is encoded as its shortest decimal string and
// unset marks are omitted.
func (r AggregateResult) CanonicalMap() map[string]any {
	rolls := make([]any, len(r.Rolls))
	for i, roll := range r.Rolls {
		m := map[string]any{
			"group":      roll.Group,
			"sign":       roll.Sign,
			"index":      roll.Index,
			"size":       roll.Size,
			"final":      roll.Final,
			"discarded":  intsToAny(roll.Discarded),
			"exploded":   intsToAny(roll.Exploded),
			"subtotal":   roll.Subtotal,
			"kept":       roll.Kept,
			"subtracted": roll.Subtracted,
			"deductions": roll.Deductions,
		}
		if roll.ReplacedFrom != nil {
			m["replaced_from"] = *roll.ReplacedFrom
		}
		if roll.Success.IsSet() {
			m["success"] = roll.Success == Yes
		}
		if roll.Failure.IsSet() {
			m["failure"] = roll.Failure == Yes
		}
		rolls[i] = m
	}

	grouped := make(map[string]any, len(r.GroupedSubtotals))
	for group, subtotal := range r.GroupedSubtotals {
		grouped[strconv.Itoa(group)] = subtotal
	}

	return map[string]any{
		"rolls":                     rolls,
		"deductions_from_failure":   r.DeductionsFromFailure,
		"subtractions_from_failure": r.SubtractionsFromFailure,
		"margin_of_success":         r.MarginOfSuccess,
		"initial_modifier":          r.InitialModifier,
		"final_modifier":            r.FinalModifier,
		"grouped_subtotals":         grouped,
		"total_before_modifier":     r.TotalBeforeModifier,
		"total":                     r.Total,
		"doubled":                   r.Doubled,
		"halved":                    strconv.FormatFloat(r.Halved, 'f', -1, 64),
		"successes":                 r.Successes,
		"failures":                  r.Failures,
		"evens":                     r.Evens,
		"odds":                      r.Odds,
	}
}

func intsToAny(vals []int) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
