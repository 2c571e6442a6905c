package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/dicerules/internal/config"
	"github.com/roach88/dicerules/internal/preset"
	"github.com/roach88/dicerules/internal/roll"
)

// RuleFlags holds the rule flags shared by roll and replay.
type RuleFlags struct {
	roll.Options

	Preset   string // preset name
	Presets  string // preset file or directory, overrides presets_dir
	MaxChain int
}

// Register adds the rule flags to fs.
func (r *RuleFlags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&r.Reroll, "reroll", "r", "", "reroll dice matching OP once (eq1, lt3, gte5, ...)")
	fs.BoolVar(&r.RerollRecursive, "rr", false, "keep rerolling while the die matches the reroll OP")
	fs.StringVarP(&r.Explode, "explode", "x", "", "roll an extra die when a die matches OP")
	fs.BoolVar(&r.ExplodeOnce, "xo", false, "explode at most once per die")

	fs.IntVar(&r.KeepHigh, "kh", 0, "keep the N highest dice")
	fs.IntVar(&r.KeepLow, "kl", 0, "keep the N lowest dice")
	fs.IntVar(&r.DropHigh, "dh", 0, "drop the N highest dice")
	fs.IntVar(&r.DropLow, "dl", 0, "drop the N lowest dice")
	fs.IntVar(&r.Min, "min", 0, "raise dice below N to N")
	fs.IntVar(&r.Max, "max", 0, "lower dice above N to N")

	fs.StringVar(&r.CountSuccess, "cs", "", "count dice matching OP as successes, others as failures")
	fs.StringVar(&r.CountFailure, "cf", "", "count dice matching OP as failures, others as successes")
	fs.StringVar(&r.SubtractFailures, "sf", "", "like --cf, and subtract each failed die from the total")
	fs.BoolVar(&r.CountEven, "even", false, "count even dice")
	fs.BoolVar(&r.CountOdd, "odd", false, "count odd dice")
	fs.IntVar(&r.DeductFailure, "df", 0, "deduct N from the total for each failure")
	fs.IntVar(&r.MarginOfSuccess, "ms", 0, "subtract N from the total")

	fs.StringVar(&r.Preset, "preset", "", "start from the named preset")
	fs.StringVar(&r.Presets, "presets", "", "preset file or directory (default presets_dir from config)")
	fs.IntVar(&r.MaxChain, "max-chain", 0, "cap rerolls and explosions per die (default max_chain from config)")
}

// resolve layers the flags, and the positional expression, over the
// named preset. The returned ExitError carries a CLI error code.
func (r *RuleFlags) resolve(expression string, cfg config.Config) (roll.Options, *ExitError) {
	flags := r.Options
	flags.Expression = expression

	if r.Preset == "" {
		if flags.Expression == "" {
			return flags, WrapExitError(ExitCommandError, ErrCodeRollParse,
				fmt.Errorf("an expression or --preset is required"))
		}
		return flags, nil
	}

	path := r.Presets
	if path == "" {
		path = cfg.PresetsDir
	}
	if path == "" {
		return flags, WrapExitError(ExitCommandError, ErrCodeNotFound,
			fmt.Errorf("--preset %s: no --presets path and no presets_dir in config", r.Preset))
	}

	loaded, errs := preset.Load(path, preset.LoadModeFailFast)
	if len(errs) > 0 {
		return flags, WrapExitError(ExitCommandError, presetErrorCode(errs[0]), errs[0])
	}
	p, ok := loaded.Find(r.Preset)
	if !ok {
		return flags, WrapExitError(ExitCommandError, ErrCodeNotFound,
			fmt.Errorf("preset %q not found in %s", r.Preset, path))
	}
	return p.Options.Overlay(flags), nil
}

// maxChain returns --max-chain when given, otherwise the config value.
func (r *RuleFlags) maxChain(cmd *cobra.Command, cfg config.Config) int {
	if cmd.Flags().Changed("max-chain") {
		return r.MaxChain
	}
	return cfg.MaxChain
}
