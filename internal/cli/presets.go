package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/dicerules/internal/ir"
	"github.com/roach88/dicerules/internal/preset"
)

// PresetsOptions holds flags for the presets command.
type PresetsOptions struct {
	*RootOptions
	Output string // output file path
}

// PresetSummary describes one compiled preset.
type PresetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Expression  string `json:"expression"`
	Source      string `json:"source"`
}

// PresetsResult holds the compiled presets.
type PresetsResult struct {
	Presets []PresetSummary `json:"presets"`
	Output  string          `json:"output,omitempty"`
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PresetsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "presets <presets-path>",
		Short: "Compile presets to canonical JSON",
		Long: `Compile CUE and YAML presets to canonical JSON.

Every preset is built first, so the output only ever holds rolls that
evaluate. The canonical form is stable: the same presets always produce
the same bytes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runPresets(opts *PresetsOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loaded, errs := preset.Load(path, preset.LoadModeFailFast)
	if loaded == nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, errs[0])
	}
	if len(errs) == 0 {
		errs = preset.Validate(loaded.Presets)
	}
	if len(errs) > 0 {
		return formatter.Fail(ExitCommandError, presetErrorCode(errs[0]), errs[0])
	}

	data, err := CanonicalPresets(loaded.Presets)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Errorf("writing output file: %w", err))
		}
	}

	result := PresetsResult{
		Presets: make([]PresetSummary, len(loaded.Presets)),
		Output:  opts.Output,
	}
	for i, p := range loaded.Presets {
		result.Presets[i] = PresetSummary{
			Name:        p.Name,
			Description: p.Description,
			Expression:  p.Options.Expression,
			Source:      p.Source,
		}
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	if opts.Output == "" {
		fmt.Fprintln(formatter.Writer, string(data))
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d preset(s)\n\n", len(result.Presets))
	for _, p := range result.Presets {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", p.Name, p.Expression)
	}
	fmt.Fprintf(formatter.Writer, "\nWrote canonical JSON to %s\n", opts.Output)
	return nil
}

// CanonicalPresets renders presets as one canonical JSON object keyed by
// preset name.
func CanonicalPresets(presets []preset.Preset) ([]byte, error) {
	m := make(map[string]any, len(presets))
	for _, p := range presets {
		m[p.Name] = p.CanonicalMap()
	}
	data, err := ir.MarshalCanonical(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling presets: %w", err)
	}
	return data, nil
}
