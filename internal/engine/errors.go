package engine

import (
	"errors"
	"fmt"
)

// ConfigError represents an invalid rule configuration.
//
// Configuration errors are raised when a rule is constructed and are fatal:
// the caller decides how to present them. Applying a constructed rule never
// fails.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Field names the offending option, when one applies.
	Field string

	// Message is a human-readable description.
	Message string
}

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeConflictingClassification indicates both a success and a
	// failure operator were configured.
	ErrCodeConflictingClassification ConfigErrorCode = "CONFLICTING_CLASSIFICATION"

	// ErrCodeConflictingSelection indicates more than one of keep-high,
	// keep-low, drop-high and drop-low was requested.
	ErrCodeConflictingSelection ConfigErrorCode = "CONFLICTING_SELECTION"

	// ErrCodeConflictingReplacement indicates both floor and ceiling
	// replacement were requested.
	ErrCodeConflictingReplacement ConfigErrorCode = "CONFLICTING_REPLACEMENT"

	// ErrCodeNegativeValue indicates a count or amount below zero.
	ErrCodeNegativeValue ConfigErrorCode = "NEGATIVE_VALUE"

	// ErrCodeInvalidDieSize indicates a die with fewer than one face.
	ErrCodeInvalidDieSize ConfigErrorCode = "INVALID_DIE_SIZE"

	// ErrCodeThresholdExceedsDie indicates a reroll or explode threshold
	// larger than the die it applies to.
	ErrCodeThresholdExceedsDie ConfigErrorCode = "THRESHOLD_EXCEEDS_DIE"

	// ErrCodeDegeneratePolicy indicates a recursive reroll or chained
	// explosion whose operator matches every face, which never terminates.
	ErrCodeDegeneratePolicy ConfigErrorCode = "DEGENERATE_POLICY"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigError creates a ConfigError.
func NewConfigError(code ConfigErrorCode, field, message string) *ConfigError {
	return &ConfigError{Code: code, Field: field, Message: message}
}

// IsConfigError returns true if err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ConfigErrorCodeOf returns the code of a wrapped ConfigError, or "".
func ConfigErrorCodeOf(err error) ConfigErrorCode {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
