package engine

import (
	"cmp"
	"slices"

	"github.com/roach88/dicerules/internal/ir"
)

// ReplaceMode selects which side of a threshold is clamped.
type ReplaceMode string

const (
	// Floor raises values strictly below the threshold.
	Floor ReplaceMode = "floor"
	// Ceiling lowers values strictly above the threshold.
	Ceiling ReplaceMode = "ceiling"
)

// Replacement clamps die values to Value.
type Replacement struct {
	Mode  ReplaceMode `json:"mode"`
	Value int         `json:"value"`
}

// apply returns the replaced value and whether a substitution occurred.
func (r Replacement) apply(value int) (int, bool) {
	switch r.Mode {
	case Floor:
		if value < r.Value {
			return r.Value, true
		}
	case Ceiling:
		if value > r.Value {
			return r.Value, true
		}
	}
	return value, false
}

// KeepOptions is the flag-level description of a keep rule.
// Zero means "not requested" for every field.
type KeepOptions struct {
	KeepHigh int
	KeepLow  int
	DropHigh int
	DropLow  int
	Floor    int
	Ceiling  int
}

// KeepRule selects which dice count toward the total and clamps values.
//
// keep=true,  high=true  -> keep the highest Count dice
// keep=false, high=true  -> drop the highest Count dice
// keep=true,  high=false -> keep the lowest Count dice
// keep=false, high=false -> drop the lowest Count dice
//
// Count 0 disables selection: every die is kept. The zero KeepRule keeps
// everything and replaces nothing.
type KeepRule struct {
	Keep    bool         `json:"keep"`
	High    bool         `json:"high"`
	Count   int          `json:"count"`
	Replace *Replacement `json:"replace,omitempty"`
}

// NewKeepRule validates opts and builds a KeepRule.
// At most one selection and at most one replacement may be requested.
func NewKeepRule(opts KeepOptions) (KeepRule, error) {
	selections := []struct {
		field      string
		count      int
		keep, high bool
	}{
		{"keep_high", opts.KeepHigh, true, true},
		{"keep_low", opts.KeepLow, true, false},
		{"drop_high", opts.DropHigh, false, true},
		{"drop_low", opts.DropLow, false, false},
	}

	var rule KeepRule
	chosen := ""
	for _, s := range selections {
		if s.count < 0 {
			return KeepRule{}, NewConfigError(ErrCodeNegativeValue, s.field, "count must be non-negative")
		}
		if s.count == 0 {
			continue
		}
		if chosen != "" {
			return KeepRule{}, NewConfigError(ErrCodeConflictingSelection, s.field,
				"only one of keep_high, keep_low, drop_high, drop_low can be used; already have "+chosen)
		}
		chosen = s.field
		rule.Keep, rule.High, rule.Count = s.keep, s.high, s.count
	}

	if opts.Floor < 0 {
		return KeepRule{}, NewConfigError(ErrCodeNegativeValue, "min", "floor must be non-negative")
	}
	if opts.Ceiling < 0 {
		return KeepRule{}, NewConfigError(ErrCodeNegativeValue, "max", "ceiling must be non-negative")
	}
	switch {
	case opts.Floor > 0 && opts.Ceiling > 0:
		return KeepRule{}, NewConfigError(ErrCodeConflictingReplacement, "max", "only one of max or min can be used")
	case opts.Floor > 0:
		rule.Replace = &Replacement{Mode: Floor, Value: opts.Floor}
	case opts.Ceiling > 0:
		rule.Replace = &Replacement{Mode: Ceiling, Value: opts.Ceiling}
	}

	return rule, nil
}

// Process applies the rule to a fully rolled set.
//
// Dice are ranked by final value (descending for high, ascending for low)
// with a stable sort, so equal values keep their input order. The output
// holds one record per input die in ranked order.
func (k KeepRule) Process(raw []ir.RawOutcome) []ir.KeptOutcome {
	ranked := slices.Clone(raw)
	slices.SortStableFunc(ranked, func(a, b ir.RawOutcome) int {
		if k.High {
			return cmp.Compare(b.Final, a.Final)
		}
		return cmp.Compare(a.Final, b.Final)
	})

	out := make([]ir.KeptOutcome, len(ranked))
	for i, roll := range ranked {
		kept := ir.KeptOutcome{RawOutcome: roll, Kept: k.keeps(i)}
		if k.Replace != nil {
			if value, replaced := k.Replace.apply(roll.Final); replaced {
				original := roll.Final
				kept.ReplacedFrom = &original
				kept.Subtotal = roll.Subtotal - original + value
				kept.Final = value
			}
		}
		out[i] = kept
	}
	return out
}

// keeps reports whether the die at ranked position i is kept.
func (k KeepRule) keeps(i int) bool {
	if k.Count == 0 {
		return true
	}
	withinLimit := i < k.Count
	if k.Keep {
		return withinLimit
	}
	return !withinLimit
}
