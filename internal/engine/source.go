package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source draws uniform random integers.
type Source interface {
	// Draw returns a uniformly random integer in [lo, hi].
	//
	// Precondition: lo <= hi.
	Draw(lo, hi int) int
}

// RandSource is a seeded PCG Source.
// The same seed always produces the same sequence of draws.
//
// Thread-safety: RandSource is NOT safe for concurrent use.
type RandSource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandSource creates a Source seeded with seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{
		seed: seed,
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the source was created with.
func (s *RandSource) Seed() int64 {
	return s.seed
}

// Draw implements Source.
func (s *RandSource) Draw(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// NewSeed generates a non-zero random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		// Mask the sign bit so seeds print as positive flag values.
		seed := int64(binary.LittleEndian.Uint64(b[:]) &^ (1 << 63))
		if seed != 0 {
			return seed, nil
		}
	}
}
