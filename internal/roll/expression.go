package roll

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/dicerules/internal/ir"
)

// termPattern matches one dice term ("-2d6", "d20") or constant ("+5").
var termPattern = regexp.MustCompile(`([+-]?)(\d*)d(\d+)|([+-]?)(\d+)`)

// Expression is a tokenized dice expression.
type Expression struct {
	// Groups holds one spec per dice term, numbered from 1 in
	// left-to-right order. Reroll/explode policies are left empty.
	Groups []ir.RollGroupSpec

	// Modifier is the sum of all constant terms.
	Modifier int
}

// ParseExpression tokenizes a dice expression.
//
// Terms are joined by '+' or '-'. A dice term is NdM where N defaults to 1
// and may be 0. Whitespace and case are ignored. Constant terms are summed.
func ParseExpression(input string) (Expression, error) {
	norm := normalize(input)
	if norm == "" {
		return Expression{}, &ParseError{Input: norm, Message: "empty expression"}
	}

	var expr Expression
	pos := 0
	for _, m := range termPattern.FindAllStringSubmatchIndex(norm, -1) {
		if m[0] != pos {
			return Expression{}, &ParseError{Input: norm, Pos: pos, Message: fmt.Sprintf("unexpected %q", norm[pos:m[0]])}
		}
		if pos > 0 && norm[pos] != '+' && norm[pos] != '-' {
			return Expression{}, &ParseError{Input: norm, Pos: pos, Message: "terms must be joined by + or -"}
		}

		term := norm[m[0]:m[1]]
		if m[6] >= 0 {
			spec, err := parseDiceTerm(norm, m)
			if err != nil {
				return Expression{}, err
			}
			spec.Group = len(expr.Groups) + 1
			expr.Groups = append(expr.Groups, spec)
		} else {
			n, err := strconv.Atoi(term)
			if err != nil {
				return Expression{}, &ParseError{Input: norm, Pos: pos, Message: "constant out of range"}
			}
			expr.Modifier += n
		}
		pos = m[1]
	}

	if pos != len(norm) {
		return Expression{}, &ParseError{Input: norm, Pos: pos, Message: fmt.Sprintf("unexpected %q", norm[pos:])}
	}
	return expr, nil
}

// parseDiceTerm builds a spec from the dice submatches of m.
func parseDiceTerm(norm string, m []int) (ir.RollGroupSpec, error) {
	spec := ir.RollGroupSpec{Sign: 1, Count: 1}
	if norm[m[2]:m[3]] == "-" {
		spec.Sign = -1
	}

	if m[4] < m[5] {
		count, err := strconv.Atoi(norm[m[4]:m[5]])
		if err != nil {
			return spec, &ParseError{Input: norm, Pos: m[4], Message: "dice count out of range"}
		}
		spec.Count = count
	}

	size, err := strconv.Atoi(norm[m[6]:m[7]])
	if err != nil {
		return spec, &ParseError{Input: norm, Pos: m[6], Message: "die size out of range"}
	}
	spec.Size = size
	return spec, nil
}

// String renders the expression in normalized form, e.g. "2d20-1d4+3".
func (e Expression) String() string {
	var b strings.Builder
	for i, g := range e.Groups {
		switch {
		case g.Sign < 0:
			b.WriteByte('-')
		case i > 0:
			b.WriteByte('+')
		}
		fmt.Fprintf(&b, "%dd%d", g.Count, g.Size)
	}
	switch {
	case e.Modifier > 0 && b.Len() > 0:
		fmt.Fprintf(&b, "+%d", e.Modifier)
	case e.Modifier != 0 || b.Len() == 0:
		fmt.Fprintf(&b, "%d", e.Modifier)
	}
	return b.String()
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
