package harness

import "github.com/roach88/dicerules/internal/ir"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Aggregate is the evaluated roll. Zero when the roll failed.
	Aggregate ir.AggregateResult `json:"aggregate"`

	// ErrorCode is the code of the roll error, empty on success.
	ErrorCode string `json:"error_code,omitempty"`

	// Err is the roll error itself, if any.
	Err error `json:"-"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
