package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/dicerules/internal/preset"
)

// ValidationError is one problem found in a preset file.
type ValidationError struct {
	Code    string `json:"code"`
	Preset  string `json:"preset,omitempty"`
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Presets []string          `json:"presets"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <presets-path>",
		Short: "Validate preset files",
		Long: `Load CUE and YAML preset files and build every preset.

Reports every error found, not just the first: unknown fields, duplicate
names, malformed expressions and conflicting rules.

Exit codes:
  0 - All presets valid
  1 - One or more presets invalid
  2 - Command error (path not found, no preset files)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if _, err := os.Stat(path); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("presets path not found: %s", path))
	}

	loaded, loadErrs := preset.Load(path, preset.LoadModeCollectAll)
	if loaded == nil {
		return formatter.Fail(ExitCommandError, ErrCodeNoFiles, loadErrs[0])
	}

	formatter.VerboseLog("Found %d preset file(s) in %s", loaded.FileCount, path)
	for _, name := range loaded.Names() {
		formatter.VerboseLog("Validating preset: %s", name)
	}

	errs := append(loadErrs, preset.Validate(loaded.Presets)...)
	validationErrors := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		validationErrors = append(validationErrors, toValidationError(err))
	}

	result := ValidationResult{
		Valid:   len(validationErrors) == 0,
		Presets: loaded.Names(),
		Errors:  validationErrors,
	}
	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// toValidationError converts a load or build error, keeping CUE positions.
func toValidationError(err error) ValidationError {
	v := ValidationError{Code: presetErrorCode(err), Message: err.Error()}

	var compileErr *preset.CompileError
	if errors.As(err, &compileErr) {
		v.Preset = compileErr.Preset
		v.Field = compileErr.Field
		v.Message = compileErr.Message
		if compileErr.Pos.IsValid() {
			v.Line = compileErr.Pos.Line()
		}
	}
	return v
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ All presets valid (%d)\n", len(result.Presets))
	return nil
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	if formatter.IsJSON() {
		if err := formatter.Envelope(result, &CLIError{Code: errs[0].Code, Message: errs[0].Message}); err != nil {
			return err
		}
		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		where := ""
		if err.Preset != "" {
			where = err.Preset + "." + err.Field + ": "
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s%s\n\n", err.Code, where, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
