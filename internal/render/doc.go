// Package render displays an ir.AggregateResult.
//
// Renderers only read result fields; they never compute totals.
//
//   - Abridged: counted dice per group, then modifier and total
//   - Detailed: per-die and summary tables drawn with lipgloss
//   - View: the JSON document written by --format json
package render
