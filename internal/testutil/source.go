package testutil

import (
	"fmt"
	"sync"
)

// ScriptedSource replays a fixed sequence of draws.
//
// It satisfies engine.Source. A draw past the end of the script, or a
// scripted value outside the requested range, records an error (see Err)
// and returns lo so the roll can finish and the caller can report it.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type ScriptedSource struct {
	mu    sync.Mutex
	draws []int
	idx   int
	err   error
}

// NewScriptedSource creates a source that returns draws in order.
func NewScriptedSource(draws ...int) *ScriptedSource {
	return &ScriptedSource{draws: draws}
}

// Draw returns the next scripted value.
func (s *ScriptedSource) Draw(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx >= len(s.draws) {
		if s.err == nil {
			s.err = fmt.Errorf("script exhausted after %d draws", len(s.draws))
		}
		return lo
	}
	v := s.draws[s.idx]
	s.idx++
	if v < lo || v > hi {
		if s.err == nil {
			s.err = fmt.Errorf("draw %d: scripted value %d outside [%d, %d]", s.idx, v, lo, hi)
		}
		return lo
	}
	return v
}

// Err returns the first scripting error, or nil.
func (s *ScriptedSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Remaining returns the number of unconsumed draws.
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.draws) - s.idx
}
