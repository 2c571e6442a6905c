package ir

import "fmt"

// Comparison names one of the five supported comparison predicates.
type Comparison string

const (
	Equal          Comparison = "eq"
	GreaterThan    Comparison = "gt"
	GreaterOrEqual Comparison = "gte"
	LessThan       Comparison = "lt"
	LessOrEqual    Comparison = "lte"
)

// Valid reports whether c is one of the known comparisons.
func (c Comparison) Valid() bool {
	switch c {
	case Equal, GreaterThan, GreaterOrEqual, LessThan, LessOrEqual:
		return true
	}
	return false
}

// Operator compares a die value against a fixed threshold.
// Operators are immutable values and are copied freely.
type Operator struct {
	Cmp       Comparison `json:"cmp"`
	Threshold int        `json:"threshold"`
}

// Eq returns an Equal operator.
func Eq(n int) Operator { return Operator{Cmp: Equal, Threshold: n} }

// Gt returns a GreaterThan operator.
func Gt(n int) Operator { return Operator{Cmp: GreaterThan, Threshold: n} }

// Gte returns a GreaterOrEqual operator.
func Gte(n int) Operator { return Operator{Cmp: GreaterOrEqual, Threshold: n} }

// Lt returns a LessThan operator.
func Lt(n int) Operator { return Operator{Cmp: LessThan, Threshold: n} }

// Lte returns a LessOrEqual operator.
func Lte(n int) Operator { return Operator{Cmp: LessOrEqual, Threshold: n} }

// Evaluate reports whether value satisfies the operator.
// An operator with an unknown comparison never matches.
func (o Operator) Evaluate(value int) bool {
	switch o.Cmp {
	case Equal:
		return value == o.Threshold
	case GreaterThan:
		return value > o.Threshold
	case GreaterOrEqual:
		return value >= o.Threshold
	case LessThan:
		return value < o.Threshold
	case LessOrEqual:
		return value <= o.Threshold
	}
	return false
}

// MatchesEveryFace reports whether the operator holds for every face
// 1..size of a die. A recursive reroll or chained explosion with such an
// operator never terminates.
func (o Operator) MatchesEveryFace(size int) bool {
	if size < 1 {
		return false
	}
	switch o.Cmp {
	case Equal:
		return size == 1 && o.Threshold == 1
	case GreaterThan:
		return o.Threshold < 1
	case GreaterOrEqual:
		return o.Threshold <= 1
	case LessThan:
		return o.Threshold > size
	case LessOrEqual:
		return o.Threshold >= size
	}
	return false
}

// String renders the operator in its flag form, e.g. "gte5".
func (o Operator) String() string {
	return fmt.Sprintf("%s%d", o.Cmp, o.Threshold)
}
