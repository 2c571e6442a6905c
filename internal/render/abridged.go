package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/roach88/dicerules/internal/ir"
)

// Abridged writes one line per dice group listing the dice that count
// toward the total as "value/size", then the modifier and total.
func Abridged(w io.Writer, r ir.AggregateResult) error {
	var b strings.Builder
	for _, group := range groupIDs(r) {
		var dice []string
		for _, roll := range rollsInGroup(r, group) {
			if roll.Counted() {
				dice = append(dice, fmt.Sprintf("%d/%d", roll.Final, roll.Size))
			}
		}
		if len(dice) == 0 {
			continue
		}
		b.WriteString(strings.Join(dice, ", "))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Modifier: %s, Total: %d\n", FormatModifier(r.FinalModifier), r.Total)

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatModifier renders a modifier with an explicit sign, e.g. "+3".
func FormatModifier(m int) string {
	if m >= 0 {
		return fmt.Sprintf("+%d", m)
	}
	return fmt.Sprintf("%d", m)
}

// groupIDs returns the distinct group ids of r's rolls in ascending order.
func groupIDs(r ir.AggregateResult) []int {
	var ids []int
	for _, roll := range r.Rolls {
		if !slices.Contains(ids, roll.Group) {
			ids = append(ids, roll.Group)
		}
	}
	slices.Sort(ids)
	return ids
}

// rollsInGroup returns the rolls of one group in emitted order.
func rollsInGroup(r ir.AggregateResult, group int) []ir.ClassifiedOutcome {
	var out []ir.ClassifiedOutcome
	for _, roll := range r.Rolls {
		if roll.Group == group {
			out = append(out, roll)
		}
	}
	return out
}
