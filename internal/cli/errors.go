package cli

import (
	"errors"

	"github.com/roach88/dicerules/internal/engine"
	"github.com/roach88/dicerules/internal/preset"
	"github.com/roach88/dicerules/internal/roll"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No preset or scenario files found
	ErrCodeLoadFailed  = "E004" // Preset or config load failed
	ErrCodeNotFound    = "E005" // Path or preset not found
	ErrCodeBuildFailed = "E006" // Preset compile failed
	ErrCodeWriteFailed = "E007" // File write error

	// Roll errors
	ErrCodeRollConfig     = "E201" // Conflicting or impossible roll options
	ErrCodeRollParse      = "E202" // Malformed expression or operator
	ErrCodeChainExhausted = "E203" // Reroll/explode chain exceeded --max-chain

	// Verification errors
	ErrCodeDigestMismatch = "E_DIGEST_MISMATCH"
	ErrCodeTestFailed     = "E_TEST_FAILED"
)

// rollErrorCode maps an error from building or evaluating a roll to its CLI
// code and exit code. Bad input exits 2; a chain that runs away at roll
// time exits 1.
func rollErrorCode(err error) (string, int) {
	switch {
	case roll.IsParseError(err):
		return ErrCodeRollParse, ExitCommandError
	case engine.IsConfigError(err):
		return ErrCodeRollConfig, ExitCommandError
	case engine.IsChainExhausted(err):
		return ErrCodeChainExhausted, ExitFailure
	}
	return ErrCodeGeneric, ExitFailure
}

// presetErrorCode maps a preset loading error to its CLI code.
func presetErrorCode(err error) string {
	var compileErr *preset.CompileError
	switch {
	case errors.As(err, &compileErr):
		return ErrCodeBuildFailed
	case engine.IsConfigError(err):
		return ErrCodeRollConfig
	case roll.IsParseError(err):
		return ErrCodeRollParse
	}
	return ErrCodeLoadFailed
}
