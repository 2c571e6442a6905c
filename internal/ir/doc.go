// Package ir provides the plain data types that flow through the dice
// evaluation pipeline.
//
// This package contains type definitions and their canonical encoding only.
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Records are produced once per stage and never mutated by a later stage
//   - All JSON tags use snake_case
//   - Canonical JSON forbids floats; fractional values are encoded as strings
package ir
