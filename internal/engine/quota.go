package engine

import (
	"errors"
	"fmt"
)

// Chain stages reported by ChainExhaustedError.
const (
	StageReroll  = "reroll"
	StageExplode = "explode"
)

// chainLimiter counts the draws made by one reroll or explode loop and
// enforces an optional maximum.
//
// A limit of 0 means unbounded: the loop runs until the operator stops
// matching, exactly as configured.
type chainLimiter struct {
	limit   int
	current int
}

func newChainLimiter(limit int) *chainLimiter {
	return &chainLimiter{limit: limit}
}

// check increments the counter and validates it against the limit.
func (c *chainLimiter) check(stage string, group, index int) error {
	c.current++
	if c.limit > 0 && c.current > c.limit {
		return &ChainExhaustedError{
			Stage: stage,
			Group: group,
			Index: index,
			Limit: c.limit,
		}
	}
	return nil
}

// ChainExhaustedError is returned when a die's reroll or explode chain
// exceeds the Roller's MaxChain.
type ChainExhaustedError struct {
	Stage string // StageReroll or StageExplode
	Group int
	Index int
	Limit int
}

// Error implements the error interface.
func (e *ChainExhaustedError) Error() string {
	return fmt.Sprintf("%s chain exhausted for die %d of group %d: more than %d draws",
		e.Stage, e.Index, e.Group, e.Limit)
}

// IsChainExhausted returns true if the error is a ChainExhaustedError.
// Uses errors.As to handle wrapped errors.
func IsChainExhausted(err error) bool {
	var ce *ChainExhaustedError
	return errors.As(err, &ce)
}
