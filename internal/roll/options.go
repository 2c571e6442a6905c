package roll

import (
	"fmt"

	"github.com/roach88/dicerules/internal/engine"
	"github.com/roach88/dicerules/internal/ir"
)

// Options is the flag-level description of one roll.
//
// The same struct is filled from CLI flags, preset files and harness
// scenarios. Zero values mean "not requested". Operator fields hold text
// such as "gte5".
type Options struct {
	Expression string `yaml:"expression" json:"expression"`

	Reroll          string `yaml:"reroll,omitempty" json:"reroll,omitempty"`
	RerollRecursive bool   `yaml:"reroll_recursive,omitempty" json:"reroll_recursive,omitempty"`
	Explode         string `yaml:"explode,omitempty" json:"explode,omitempty"`
	ExplodeOnce     bool   `yaml:"explode_once,omitempty" json:"explode_once,omitempty"`

	KeepHigh int `yaml:"keep_high,omitempty" json:"keep_high,omitempty"`
	KeepLow  int `yaml:"keep_low,omitempty" json:"keep_low,omitempty"`
	DropHigh int `yaml:"drop_high,omitempty" json:"drop_high,omitempty"`
	DropLow  int `yaml:"drop_low,omitempty" json:"drop_low,omitempty"`
	Min      int `yaml:"min,omitempty" json:"min,omitempty"`
	Max      int `yaml:"max,omitempty" json:"max,omitempty"`

	CountSuccess     string `yaml:"count_success,omitempty" json:"count_success,omitempty"`
	CountFailure     string `yaml:"count_failure,omitempty" json:"count_failure,omitempty"`
	SubtractFailures string `yaml:"subtract_failures,omitempty" json:"subtract_failures,omitempty"`
	CountEven        bool   `yaml:"count_even,omitempty" json:"count_even,omitempty"`
	CountOdd         bool   `yaml:"count_odd,omitempty" json:"count_odd,omitempty"`
	DeductFailure    int    `yaml:"deduct_failure,omitempty" json:"deduct_failure,omitempty"`
	MarginOfSuccess  int    `yaml:"margin_of_success,omitempty" json:"margin_of_success,omitempty"`
}

// Overlay returns o with every non-zero field of top applied over it.
// Used to layer CLI flags over a preset.
func (o Options) Overlay(top Options) Options {
	out := o
	setString(&out.Expression, top.Expression)
	setString(&out.Reroll, top.Reroll)
	setBool(&out.RerollRecursive, top.RerollRecursive)
	setString(&out.Explode, top.Explode)
	setBool(&out.ExplodeOnce, top.ExplodeOnce)
	setInt(&out.KeepHigh, top.KeepHigh)
	setInt(&out.KeepLow, top.KeepLow)
	setInt(&out.DropHigh, top.DropHigh)
	setInt(&out.DropLow, top.DropLow)
	setInt(&out.Min, top.Min)
	setInt(&out.Max, top.Max)
	setString(&out.CountSuccess, top.CountSuccess)
	setString(&out.CountFailure, top.CountFailure)
	setString(&out.SubtractFailures, top.SubtractFailures)
	setBool(&out.CountEven, top.CountEven)
	setBool(&out.CountOdd, top.CountOdd)
	setInt(&out.DeductFailure, top.DeductFailure)
	setInt(&out.MarginOfSuccess, top.MarginOfSuccess)
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setBool(dst *bool, v bool) {
	if v {
		*dst = v
	}
}

// Plan is a validated roll, ready to evaluate.
type Plan struct {
	Expression Expression
	Keep       engine.KeepRule
	Success    engine.SuccessRule
}

// Build validates o and produces a Plan.
//
// Errors are *ParseError for malformed text and *engine.ConfigError for
// rule conflicts, impossible thresholds and policies that never terminate.
func (o Options) Build() (*Plan, error) {
	expr, err := ParseExpression(o.Expression)
	if err != nil {
		return nil, fmt.Errorf("expression: %w", err)
	}

	reroll, err := parseOptionalOperator(o.Reroll)
	if err != nil {
		return nil, fmt.Errorf("reroll: %w", err)
	}
	explode, err := parseOptionalOperator(o.Explode)
	if err != nil {
		return nil, fmt.Errorf("explode: %w", err)
	}

	for i := range expr.Groups {
		g := &expr.Groups[i]
		if g.Size < 1 {
			return nil, engine.NewConfigError(engine.ErrCodeInvalidDieSize, "expression",
				fmt.Sprintf("group %d: die size must be at least 1, got d%d", g.Group, g.Size))
		}
		if reroll != nil {
			g.Reroll = &ir.RerollPolicy{Op: *reroll, Recursive: o.RerollRecursive}
			if err := checkPolicy("reroll", g, *reroll, o.RerollRecursive); err != nil {
				return nil, err
			}
		}
		if explode != nil {
			g.Explode = &ir.ExplodePolicy{Op: *explode, Once: o.ExplodeOnce}
			if err := checkPolicy("explode", g, *explode, !o.ExplodeOnce); err != nil {
				return nil, err
			}
		}
	}

	keep, err := engine.NewKeepRule(engine.KeepOptions{
		KeepHigh: o.KeepHigh,
		KeepLow:  o.KeepLow,
		DropHigh: o.DropHigh,
		DropLow:  o.DropLow,
		Floor:    o.Min,
		Ceiling:  o.Max,
	})
	if err != nil {
		return nil, err
	}

	successOpts, err := o.successOptions()
	if err != nil {
		return nil, err
	}
	success, err := engine.NewSuccessRule(successOpts)
	if err != nil {
		return nil, err
	}

	return &Plan{Expression: expr, Keep: keep, Success: success}, nil
}

// checkPolicy rejects thresholds beyond the die and looping policies that
// match every face.
func checkPolicy(field string, g *ir.RollGroupSpec, op ir.Operator, loops bool) error {
	if op.Threshold > g.Size {
		return engine.NewConfigError(engine.ErrCodeThresholdExceedsDie, field,
			fmt.Sprintf("%s exceeds d%d in group %d", op, g.Size, g.Group))
	}
	if loops && op.MatchesEveryFace(g.Size) {
		return engine.NewConfigError(engine.ErrCodeDegeneratePolicy, field,
			fmt.Sprintf("%s matches every face of d%d in group %d and would never stop", op, g.Size, g.Group))
	}
	return nil
}

// successOptions resolves the three mutually exclusive classification
// options. subtract_failures is a failure operator plus the subtract flag.
func (o Options) successOptions() (engine.SuccessOptions, error) {
	set := 0
	for _, v := range []string{o.CountSuccess, o.CountFailure, o.SubtractFailures} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return engine.SuccessOptions{}, engine.NewConfigError(engine.ErrCodeConflictingClassification, "count_success",
			"only one of count_success, count_failure or subtract_failures can be used")
	}

	opts := engine.SuccessOptions{
		CountEven:       o.CountEven,
		CountOdd:        o.CountOdd,
		DeductFailure:   o.DeductFailure,
		MarginOfSuccess: o.MarginOfSuccess,
	}

	var err error
	switch {
	case o.CountSuccess != "":
		opts.CountSuccess, err = parseOptionalOperator(o.CountSuccess)
		if err != nil {
			return opts, fmt.Errorf("count_success: %w", err)
		}
	case o.CountFailure != "":
		opts.CountFailure, err = parseOptionalOperator(o.CountFailure)
		if err != nil {
			return opts, fmt.Errorf("count_failure: %w", err)
		}
	case o.SubtractFailures != "":
		opts.CountFailure, err = parseOptionalOperator(o.SubtractFailures)
		if err != nil {
			return opts, fmt.Errorf("subtract_failures: %w", err)
		}
		opts.SubtractFailure = true
	}
	return opts, nil
}

// Pipeline wires the plan's rules to src.
func (p *Plan) Pipeline(src engine.Source, opts ...engine.PipelineOption) *engine.Pipeline {
	return engine.NewPipeline(src, p.Keep, p.Success, opts...)
}

// Evaluate runs the plan once against src.
func (p *Plan) Evaluate(src engine.Source, opts ...engine.PipelineOption) (ir.AggregateResult, error) {
	return p.Pipeline(src, opts...).Run(p.Expression.Groups, p.Expression.Modifier)
}

// CanonicalMap returns the non-zero options keyed by their YAML names, in
// the map form accepted by ir.MarshalCanonical.
func (o Options) CanonicalMap() map[string]any {
	m := make(map[string]any)
	putString := func(key, v string) {
		if v != "" {
			m[key] = v
		}
	}
	putInt := func(key string, v int) {
		if v != 0 {
			m[key] = v
		}
	}
	putBool := func(key string, v bool) {
		if v {
			m[key] = v
		}
	}

	putString("expression", o.Expression)
	putString("reroll", o.Reroll)
	putBool("reroll_recursive", o.RerollRecursive)
	putString("explode", o.Explode)
	putBool("explode_once", o.ExplodeOnce)
	putInt("keep_high", o.KeepHigh)
	putInt("keep_low", o.KeepLow)
	putInt("drop_high", o.DropHigh)
	putInt("drop_low", o.DropLow)
	putInt("min", o.Min)
	putInt("max", o.Max)
	putString("count_success", o.CountSuccess)
	putString("count_failure", o.CountFailure)
	putString("subtract_failures", o.SubtractFailures)
	putBool("count_even", o.CountEven)
	putBool("count_odd", o.CountOdd)
	putInt("deduct_failure", o.DeductFailure)
	putInt("margin_of_success", o.MarginOfSuccess)
	return m
}
