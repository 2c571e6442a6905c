package engine

import "github.com/roach88/dicerules/internal/ir"

// Roller produces die outcomes from a Source.
type Roller struct {
	// Source supplies every draw. Required.
	Source Source

	// MaxChain caps the number of reroll draws and the number of explosion
	// draws per die. 0 means unbounded.
	MaxChain int
}

// NewRoller creates an unbounded Roller over src.
func NewRoller(src Source) *Roller {
	return &Roller{Source: src}
}

// RollGroup rolls every die of spec. Indices are 1-based within the group.
// A group of zero dice yields an empty slice.
func (r *Roller) RollGroup(spec ir.RollGroupSpec) ([]ir.RawOutcome, error) {
	outcomes := make([]ir.RawOutcome, 0, max(spec.Count, 0))
	for i := 1; i <= spec.Count; i++ {
		final, discarded, exploded, err := r.roll(spec, i)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, ir.NewRawOutcome(spec.Group, spec.Sign, i, spec.Size, final, discarded, exploded))
	}
	return outcomes, nil
}

// RollGroups rolls each spec in order and returns the flat outcome list.
func (r *Roller) RollGroups(specs []ir.RollGroupSpec) ([]ir.RawOutcome, error) {
	var all []ir.RawOutcome
	for _, spec := range specs {
		outcomes, err := r.RollGroup(spec)
		if err != nil {
			return nil, err
		}
		all = append(all, outcomes...)
	}
	return all, nil
}

// Roll rolls a single die of the given size outside of any group.
// The returned outcome has group 0, sign +1 and index 1.
func (r *Roller) Roll(size int, reroll *ir.RerollPolicy, explode *ir.ExplodePolicy) (ir.RawOutcome, error) {
	spec := ir.RollGroupSpec{Sign: 1, Count: 1, Size: size, Reroll: reroll, Explode: explode}
	final, discarded, exploded, err := r.roll(spec, 1)
	if err != nil {
		return ir.RawOutcome{}, err
	}
	return ir.NewRawOutcome(0, 1, 1, size, final, discarded, exploded), nil
}

func (r *Roller) roll(spec ir.RollGroupSpec, index int) (int, []int, []int, error) {
	value := r.Source.Draw(1, spec.Size)

	var discarded []int
	if p := spec.Reroll; p != nil {
		limiter := newChainLimiter(r.MaxChain)
		for p.Op.Evaluate(value) {
			if err := limiter.check(StageReroll, spec.Group, index); err != nil {
				return 0, nil, nil, err
			}
			discarded = append(discarded, value)
			value = r.Source.Draw(1, spec.Size)
			if !p.Recursive {
				break
			}
		}
	}

	var exploded []int
	if p := spec.Explode; p != nil && p.Op.Evaluate(value) {
		limiter := newChainLimiter(r.MaxChain)
		for {
			if err := limiter.check(StageExplode, spec.Group, index); err != nil {
				return 0, nil, nil, err
			}
			last := r.Source.Draw(1, spec.Size)
			exploded = append(exploded, last)
			if p.Once || !p.Op.Evaluate(last) {
				break
			}
		}
	}

	return value, discarded, exploded, nil
}
