package render

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/roach88/dicerules/internal/ir"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Detailed writes a per-die table for each group, a summary table and,
// when more than one group was rolled, a table of group subtotals.
// Optional columns appear only when some die uses them.
func Detailed(w io.Writer, r ir.AggregateResult) error {
	var b strings.Builder
	for _, group := range groupIDs(r) {
		b.WriteString(diceTable(rollsInGroup(r, group)))
		b.WriteByte('\n')
	}
	b.WriteString(summaryTable(r))
	b.WriteByte('\n')

	if len(r.GroupedSubtotals) > 1 {
		b.WriteString(groupTable(r.GroupedSubtotals))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func diceTable(rolls []ir.ClassifiedOutcome) string {
	var discarded, exploded, replaced, dropped, classified, deducted, subtracted bool
	for _, roll := range rolls {
		discarded = discarded || len(roll.Discarded) > 0
		exploded = exploded || len(roll.Exploded) > 0
		replaced = replaced || roll.ReplacedFrom != nil
		dropped = dropped || !roll.Kept
		classified = classified || roll.Success.IsSet() || roll.Failure.IsSet()
		deducted = deducted || roll.Deductions > 0
		subtracted = subtracted || roll.Subtracted
	}

	headers := []string{"Group", "Die", "Sign", "Roll", "Final"}
	headers = appendIf(headers, discarded, "Rerolled")
	headers = appendIf(headers, exploded, "Exploded")
	headers = appendIf(headers, replaced, "Replaced")
	headers = appendIf(headers, dropped, "Kept")
	headers = appendIf(headers, classified, "Success")
	headers = appendIf(headers, deducted, "Deducted")
	headers = appendIf(headers, subtracted, "Subtracted")
	headers = append(headers, "Subtotal")

	t := newTable().Headers(headers...)
	for _, roll := range rolls {
		row := []string{
			strconv.Itoa(roll.Group),
			"d" + strconv.Itoa(roll.Size),
			signLabel(roll.Sign),
			strconv.Itoa(roll.Index),
			strconv.Itoa(roll.Final),
		}
		row = appendIf(row, discarded, joinInts(roll.Discarded))
		row = appendIf(row, exploded, joinInts(roll.Exploded))
		row = appendIf(row, replaced, replacedLabel(roll.ReplacedFrom))
		row = appendIf(row, dropped, yesNo(roll.Kept))
		row = appendIf(row, classified, successLabel(roll))
		row = appendIf(row, deducted, strconv.Itoa(roll.Deductions))
		row = appendIf(row, subtracted, yesNo(roll.Subtracted))
		row = append(row, strconv.Itoa(roll.Subtotal))
		t.Row(row...)
	}
	return t.String()
}

func summaryTable(r ir.AggregateResult) string {
	headers := []string{"Total Before Modifier", "Total", "Doubled", "Halved"}
	row := []string{
		strconv.Itoa(r.TotalBeforeModifier),
		strconv.Itoa(r.Total),
		strconv.Itoa(r.Doubled),
		strconv.FormatFloat(r.Halved, 'f', -1, 64),
	}

	if r.InitialModifier != r.FinalModifier {
		headers = append(headers, "Initial Modifier", "Final Modifier")
		row = append(row, FormatModifier(r.InitialModifier), FormatModifier(r.FinalModifier))
	} else {
		headers = append(headers, "Modifier")
		row = append(row, FormatModifier(r.FinalModifier))
	}

	optional := []struct {
		label string
		value int
	}{
		{"Deductions From Failure", r.DeductionsFromFailure},
		{"Subtractions From Failure", r.SubtractionsFromFailure},
		{"Margin of Success", r.MarginOfSuccess},
		{"Successes", r.Successes},
		{"Failures", r.Failures},
		{"Evens", r.Evens},
		{"Odds", r.Odds},
	}
	for _, o := range optional {
		if o.value > 0 {
			headers = append(headers, o.label)
			row = append(row, strconv.Itoa(o.value))
		}
	}

	return newTable().Headers(headers...).Row(row...).String()
}

func groupTable(grouped map[int]int) string {
	ids := make([]int, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	headers := make([]string, len(ids))
	row := make([]string, len(ids))
	for i, id := range ids {
		headers[i] = fmt.Sprintf("Group %d", id)
		row[i] = strconv.Itoa(grouped[id])
	}
	return newTable().Headers(headers...).Row(row...).String()
}

func appendIf(s []string, cond bool, v string) []string {
	if cond {
		return append(s, v)
	}
	return s
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func signLabel(sign int) string {
	if sign < 0 {
		return "-"
	}
	return "+"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func replacedLabel(from *int) string {
	if from == nil {
		return ""
	}
	return "from " + strconv.Itoa(*from)
}

// successLabel reports the die's outcome, or "" for an unclassified die.
func successLabel(roll ir.ClassifiedOutcome) string {
	switch {
	case roll.Success == ir.Yes, roll.Failure == ir.No:
		return "yes"
	case roll.IsFailure():
		return "no"
	}
	return ""
}
