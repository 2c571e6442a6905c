// Package engine implements the dice rule-evaluation pipeline.
//
// ARCHITECTURE:
//
// Data flows strictly forward through three stages:
//  1. Roller: per-die generation under reroll/explode policies
//  2. KeepRule: keep/drop selection and floor/ceiling replacement
//  3. SuccessRule: success/failure classification and aggregation
//
// Each stage consumes the previous stage's slice and returns a new one;
// no stage mutates its input. Pipeline wires the three together.
//
// Randomness is an injected Source. Given the same Source state and the
// same rules, evaluation is fully deterministic, which is what replay and
// the conformance harness rely on.
//
// The engine is single-threaded and synchronous. Rule construction is the
// only place configuration errors are raised; once a rule exists, applying
// it cannot fail. The one runtime error is ChainExhaustedError, returned
// only when a Roller is configured with a MaxChain cap.
package engine
