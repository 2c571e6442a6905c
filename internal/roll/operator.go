package roll

import (
	"regexp"
	"strconv"

	"github.com/roach88/dicerules/internal/ir"
)

var operatorPattern = regexp.MustCompile(`^(eq|gte|gt|lte|lt)(\d+)$`)

// ParseOperator parses operator text such as "eq1" or "GTE5".
func ParseOperator(input string) (ir.Operator, error) {
	norm := normalize(input)
	m := operatorPattern.FindStringSubmatch(norm)
	if m == nil {
		return ir.Operator{}, &ParseError{
			Input:   norm,
			Message: "expected eq, gt, gte, lt or lte followed by a number, e.g. gte5",
		}
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		return ir.Operator{}, &ParseError{Input: norm, Pos: len(m[1]), Message: "threshold out of range"}
	}
	return ir.Operator{Cmp: ir.Comparison(m[1]), Threshold: n}, nil
}

// parseOptionalOperator returns nil for empty input.
func parseOptionalOperator(input string) (*ir.Operator, error) {
	if input == "" {
		return nil, nil
	}
	op, err := ParseOperator(input)
	if err != nil {
		return nil, err
	}
	return &op, nil
}
