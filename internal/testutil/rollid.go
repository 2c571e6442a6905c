package testutil

// FixedRollID generates the same roll id every time.
//
// Unlike engine.FixedGenerator, which returns ids in sequence, this
// generator never runs out, so golden JSON output stays byte-identical.
type FixedRollID struct {
	id string
}

// NewFixedRollID creates a fixed roll id generator.
// If id is empty, Generate returns "test-roll-default".
func NewFixedRollID(id string) *FixedRollID {
	if id == "" {
		id = "test-roll-default"
	}
	return &FixedRollID{id: id}
}

// Generate returns the fixed roll id.
//
// Implements engine.RollIDGenerator.
func (g *FixedRollID) Generate() string {
	return g.id
}
