package ir

// Mark is an optional boolean: a die may be unclassified, or marked yes/no.
type Mark uint8

const (
	Unset Mark = iota
	Yes
	No
)

// MarkOf converts a bool into a set Mark.
func MarkOf(b bool) Mark {
	if b {
		return Yes
	}
	return No
}

// IsSet reports whether the mark carries a value.
func (m Mark) IsSet() bool { return m != Unset }

// String returns "", "true" or "false".
func (m Mark) String() string {
	switch m {
	case Yes:
		return "true"
	case No:
		return "false"
	}
	return ""
}

// MarshalJSON encodes Unset as null.
func (m Mark) MarshalJSON() ([]byte, error) {
	if !m.IsSet() {
		return []byte("null"), nil
	}
	return []byte(m.String()), nil
}

// RerollPolicy replaces a die's value with a fresh draw while Op matches.
// A non-recursive policy rerolls at most once.
type RerollPolicy struct {
	Op        Operator `json:"op"`
	Recursive bool     `json:"recursive"`
}

// ExplodePolicy appends bonus draws while Op matches the latest value.
// With Once set at most one bonus draw is made.
type ExplodePolicy struct {
	Op   Operator `json:"op"`
	Once bool     `json:"once"`
}

// RollGroupSpec identifies one dice term of an expression, e.g. "-2d6".
//
// Group ids are positive, unique per term and assigned in left-to-right
// order. Reroll/explode thresholds are validated by the caller.
type RollGroupSpec struct {
	Group   int            `json:"group"`
	Sign    int            `json:"sign"`
	Count   int            `json:"count"`
	Size    int            `json:"size"`
	Reroll  *RerollPolicy  `json:"reroll,omitempty"`
	Explode *ExplodePolicy `json:"explode,omitempty"`
}

// RawOutcome is the result of rolling one die.
//
// Invariant: Subtotal == Final + sum(Exploded).
type RawOutcome struct {
	Group     int   `json:"group"`
	Sign      int   `json:"sign"`
	Index     int   `json:"index"`
	Size      int   `json:"size"`
	Final     int   `json:"final"`
	Discarded []int `json:"discarded,omitempty"`
	Exploded  []int `json:"exploded,omitempty"`
	Subtotal  int   `json:"subtotal"`
}

// NewRawOutcome builds a RawOutcome, deriving the subtotal.
func NewRawOutcome(group, sign, index, size, final int, discarded, exploded []int) RawOutcome {
	subtotal := final
	for _, v := range exploded {
		subtotal += v
	}
	return RawOutcome{
		Group:     group,
		Sign:      sign,
		Index:     index,
		Size:      size,
		Final:     final,
		Discarded: discarded,
		Exploded:  exploded,
		Subtotal:  subtotal,
	}
}

// KeptOutcome is a RawOutcome after keep/drop selection and floor/ceiling
// replacement. ReplacedFrom is non-nil only when a replacement fired, in
// which case Final and Subtotal reflect the replaced value.
type KeptOutcome struct {
	RawOutcome
	Kept         bool `json:"kept"`
	ReplacedFrom *int `json:"replaced_from,omitempty"`
}

// ClassifiedOutcome is a KeptOutcome after success/failure classification.
// Dropped dice are never classified.
type ClassifiedOutcome struct {
	KeptOutcome
	Success    Mark `json:"success"`
	Failure    Mark `json:"failure"`
	Subtracted bool `json:"subtracted"`
	Deductions int  `json:"deductions"`
}

// Counted reports whether the die contributes to the total: it must be kept
// and either succeed, not fail, or be unclassified.
func (c ClassifiedOutcome) Counted() bool {
	if !c.Kept {
		return false
	}
	return c.Success == Yes || c.Failure == No || (!c.Success.IsSet() && !c.Failure.IsSet())
}

// IsFailure reports whether the die was classified as a failure.
func (c ClassifiedOutcome) IsFailure() bool {
	return c.Success == No || c.Failure == Yes
}
