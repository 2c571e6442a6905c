// Package roll is the boundary between user input and the engine.
//
// It tokenizes dice expressions such as "2d20+2d6+5", parses operator text
// such as "gte5", and turns an Options value (shared by CLI flags, presets
// and harness scenarios) into a validated Plan. Every input the engine
// would loop forever on, or that names an impossible threshold, is
// rejected here with an engine.ConfigError.
package roll
