package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dicerules/internal/engine"
	"github.com/roach88/dicerules/internal/render"
	"github.com/roach88/dicerules/internal/roll"
)

// RollOptions holds flags for the roll command.
type RollOptions struct {
	*RootOptions
	Rules  RuleFlags
	Seed   int64
	Detail bool

	// RollIDs allows overriding the roll id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RollIDs engine.RollIDGenerator
}

// NewRollCommand creates the roll command.
func NewRollCommand(rootOpts *RootOptions) *cobra.Command {
	return newRollCommand(&RollOptions{RootOptions: rootOpts})
}

func newRollCommand(opts *RollOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roll [expression]",
		Short: "Roll a dice expression",
		Long: `Roll a dice expression such as 4d6, 2d20+5 or 3d6-1d4+2 and apply rules.

Operators are written eq, gt, gte, lt or lte followed by a number:
"--reroll eq1" rerolls ones, "--cs gte5" counts fives and sixes as successes.

Exit codes:
  0 - Roll evaluated
  1 - Reroll/explode chain exceeded --max-chain
  2 - Invalid expression, conflicting rules, or preset error

Examples:
  dicerules roll 4d6 --dl 1
  dicerules roll 2d20+5 --kh 1
  dicerules roll 6d10 --cs gte8 --explode eq10 --detail
  dicerules roll --preset fireball --presets ./presets
  dicerules roll 3d6 --seed 42 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := ""
			if len(args) == 1 {
				expression = args[0]
			}
			return runRoll(opts, expression, cmd)
		},
	}

	opts.Rules.Register(cmd.Flags())
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().BoolVar(&opts.Detail, "detail", false, "show per-die tables")

	return cmd
}

func runRoll(opts *RollOptions, expression string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	plan, exitErr := buildPlan(&opts.Rules, expression, opts.RootOptions)
	if exitErr != nil {
		return formatter.Report(exitErr)
	}

	maxChain := opts.Rules.maxChain(cmd, cfg)
	if maxChain < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeRollConfig,
			fmt.Errorf("--max-chain must be non-negative, got %d", maxChain))
	}

	seed := opts.Seed
	if seed == 0 {
		var err error
		if seed, err = engine.NewSeed(); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeGeneric, err)
		}
	}

	ids := opts.RollIDs
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}
	rollID := ids.Generate()
	log := opts.logger().With("roll_id", rollID, "seed", seed)

	result, err := plan.Evaluate(engine.NewRandSource(seed),
		engine.WithLogger(log),
		engine.WithMaxChain(maxChain),
	)
	if err != nil {
		code, exit := rollErrorCode(err)
		return formatter.Fail(exit, code, err)
	}
	log.Debug("roll evaluated", "expression", plan.Expression.String(), "total", result.Total)

	view, err := render.NewView(rollID, seed, plan.Expression.String(), result)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err)
	}

	if formatter.IsJSON() {
		return formatter.Success(view)
	}

	formatter.VerboseLog("roll %s seed %d digest %s", view.RollID, view.Seed, view.Digest)

	detail := opts.Detail
	if !cmd.Flags().Changed("detail") {
		detail = cfg.Detail
	}
	if detail {
		return render.Detailed(formatter.Writer, result)
	}
	return render.Abridged(formatter.Writer, result)
}

// buildPlan resolves rule flags against presets and validates the result.
func buildPlan(rules *RuleFlags, expression string, opts *RootOptions) (*roll.Plan, *ExitError) {
	options, exitErr := rules.resolve(expression, opts.settings())
	if exitErr != nil {
		return nil, exitErr
	}

	plan, err := options.Build()
	if err != nil {
		code, exit := rollErrorCode(err)
		return nil, WrapExitError(exit, code, err)
	}
	return plan, nil
}
