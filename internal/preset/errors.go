package preset

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError describes an invalid preset definition.
type CompileError struct {
	// File is the source file, when known.
	File string

	// Preset is the preset name, when the error is inside one.
	Preset string

	// Field is the offending field.
	Field string

	Message string

	// Pos is the CUE source position. Invalid for YAML files.
	Pos token.Pos
}

func (e *CompileError) Error() string {
	where := e.Field
	if e.Preset != "" {
		where = e.Preset + "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), where, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, where, e.Message)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

// formatCUEError extracts position info from CUE errors, falling back to
// pos when the error carries none.
func formatCUEError(err error, preset, field string, pos token.Pos) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	ce := &CompileError{Preset: preset, Field: field, Message: first.Error(), Pos: pos}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
