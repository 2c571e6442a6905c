package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/dicerules/internal/engine"
	"github.com/roach88/dicerules/internal/roll"
	"github.com/roach88/dicerules/internal/testutil"
)

// Error codes reported for roll failures that are not configuration errors.
const (
	CodeParseError     = "PARSE_ERROR"
	CodeChainExhausted = "CHAIN_EXHAUSTED"
	CodeUnknown        = "UNKNOWN"
)

// Harness is the test execution engine.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness that logs pipeline stages to logger.
// A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a test scenario with logging suppressed.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Build the roll plan from the scenario's options
//  2. Evaluate it against the scripted draws
//  3. Check the script was consumed exactly
//  4. Evaluate the expect block against the outcome
//
// The returned error is reserved for harness failures; a roll that fails
// is recorded in the Result and judged against expect.error.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}

	result := NewResult()
	src := testutil.NewScriptedSource(scenario.Draws...)

	maxChain := scenario.MaxChain
	if maxChain == 0 {
		maxChain = engine.DefaultMaxChain
	}

	plan, err := scenario.Roll.Build()
	if err == nil {
		result.Aggregate, err = plan.Evaluate(src,
			engine.WithLogger(h.logger.With("scenario", scenario.Name)),
			engine.WithMaxChain(maxChain),
		)
	}
	if err != nil {
		result.Err = err
		result.ErrorCode = ErrorCode(err)
	}

	if err := src.Err(); err != nil {
		result.AddError(fmt.Sprintf("draws: %v", err))
	}
	if result.Err == nil && src.Remaining() > 0 {
		result.AddError(fmt.Sprintf("draws: %d scripted draws left unused", src.Remaining()))
	}

	for _, msg := range EvaluateExpect(result, scenario.Expect) {
		result.AddError(msg)
	}

	return result, nil
}

// ErrorCode classifies a roll error into the code used by expect.error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if code := engine.ConfigErrorCodeOf(err); code != "" {
		return string(code)
	}
	var parseErr *roll.ParseError
	if errors.As(err, &parseErr) {
		return CodeParseError
	}
	if engine.IsChainExhausted(err) {
		return CodeChainExhausted
	}
	return CodeUnknown
}
