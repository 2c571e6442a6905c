package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/dicerules/internal/ir"
)

// DefaultMaxChain is the reroll/explode cap used by the CLI when neither a
// flag nor the config file sets one.
const DefaultMaxChain = 1000

// Pipeline evaluates one roll: every group through the Roller, then the
// KeepRule, then the SuccessRule.
type Pipeline struct {
	Roller  *Roller
	Keep    KeepRule
	Success SuccessRule

	// Logger receives per-stage debug records. nil discards them.
	Logger *slog.Logger
}

// PipelineOption configures a Pipeline built by NewPipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.Logger = logger
	}
}

// WithMaxChain caps reroll and explode chains per die. 0 means unbounded.
func WithMaxChain(n int) PipelineOption {
	return func(p *Pipeline) {
		p.Roller.MaxChain = n
	}
}

// NewPipeline creates a Pipeline drawing from src.
func NewPipeline(src Source, keep KeepRule, success SuccessRule, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		Roller:  NewRoller(src),
		Keep:    keep,
		Success: success,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run rolls groups in order and folds them with modifier as the base.
//
// The only error is a ChainExhaustedError from a capped Roller.
func (p *Pipeline) Run(groups []ir.RollGroupSpec, modifier int) (ir.AggregateResult, error) {
	log := p.logger()

	raw, err := p.Roller.RollGroups(groups)
	if err != nil {
		log.Warn("roll failed", "error", err)
		return ir.AggregateResult{}, fmt.Errorf("roll dice: %w", err)
	}
	log.Debug("dice rolled", "groups", len(groups), "dice", len(raw))

	kept := p.Keep.Process(raw)
	log.Debug("keep rule applied",
		"keep", p.Keep.Keep,
		"high", p.Keep.High,
		"count", p.Keep.Count,
		"replaced", countReplaced(kept))

	result := p.Success.Process(kept, modifier)
	log.Debug("result aggregated",
		"classification", p.Success.Classification.Kind.String(),
		"successes", result.Successes,
		"failures", result.Failures,
		"total", result.Total)

	return result, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countReplaced(kept []ir.KeptOutcome) int {
	n := 0
	for _, k := range kept {
		if k.ReplacedFrom != nil {
			n++
		}
	}
	return n
}
