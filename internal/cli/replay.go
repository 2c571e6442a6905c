package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dicerules/internal/engine"
	"github.com/roach88/dicerules/internal/ir"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Rules  RuleFlags
	Seed   int64
	Digest string
}

// ReplayResult holds the outcome of one replay.
type ReplayResult struct {
	Expression string `json:"expression"`
	Seed       int64  `json:"seed"`
	Expected   string `json:"expected_digest"`
	Actual     string `json:"actual_digest"`
	Total      int    `json:"total"`
	Match      bool   `json:"match"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [expression]",
		Short: "Re-evaluate a roll from its seed and verify its digest",
		Long: `Re-evaluate a roll deterministically and verify the result digest.

Pass the same expression and rule flags as the original roll, together
with the seed and digest it reported (see "roll --format json").

Exit codes:
  0 - Digest matches
  1 - Digest mismatch
  2 - Command error (invalid expression, rules, etc.)

Examples:
  dicerules replay 4d6 --dl 1 --seed 42 --digest 3f2a...
  dicerules replay 2d20 --kh 1 --seed 7 --digest 9b1c... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := ""
			if len(args) == 1 {
				expression = args[0]
			}
			return runReplay(opts, expression, cmd)
		},
	}

	opts.Rules.Register(cmd.Flags())
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed reported by the original roll (required)")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "digest reported by the original roll (required)")
	_ = cmd.MarkFlagRequired("seed")
	_ = cmd.MarkFlagRequired("digest")

	return cmd
}

func runReplay(opts *ReplayOptions, expression string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	plan, exitErr := buildPlan(&opts.Rules, expression, opts.RootOptions)
	if exitErr != nil {
		return formatter.Report(exitErr)
	}

	result, err := plan.Evaluate(engine.NewRandSource(opts.Seed),
		engine.WithLogger(opts.logger().With("seed", opts.Seed)),
		engine.WithMaxChain(opts.Rules.maxChain(cmd, opts.settings())),
	)
	if err != nil {
		code, exit := rollErrorCode(err)
		return formatter.Fail(exit, code, err)
	}

	digest, err := ir.Digest(result)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err)
	}

	replay := ReplayResult{
		Expression: plan.Expression.String(),
		Seed:       opts.Seed,
		Expected:   strings.ToLower(opts.Digest),
		Actual:     digest,
		Total:      result.Total,
	}
	replay.Match = replay.Expected == replay.Actual

	if formatter.IsJSON() {
		var cliErr *CLIError
		if !replay.Match {
			cliErr = &CLIError{Code: ErrCodeDigestMismatch, Message: "digest mismatch"}
		}
		if err := formatter.Envelope(replay, cliErr); err != nil {
			return err
		}
	} else {
		outputReplayText(formatter, replay)
	}

	if !replay.Match {
		// Mismatch = exit code 1
		return NewExitError(ExitFailure, "digest mismatch")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(formatter *OutputFormatter, replay ReplayResult) {
	w := formatter.Writer

	fmt.Fprintf(w, "Replay: %s (seed %d)\n", replay.Expression, replay.Seed)
	if replay.Match {
		fmt.Fprintf(w, "✓ Digest verified: %s\n", replay.Actual)
		fmt.Fprintf(w, "  Total: %d\n", replay.Total)
		return
	}

	fmt.Fprintln(w, "✗ Digest mismatch")
	fmt.Fprintf(w, "  Expected: %s\n", replay.Expected)
	fmt.Fprintf(w, "  Actual:   %s\n", replay.Actual)
}
