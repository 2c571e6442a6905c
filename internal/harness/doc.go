// Package harness provides conformance testing for roll evaluation.
//
// A scenario pins one roll to a scripted sequence of draws and states what
// the evaluation must produce. Because every draw is scripted, a scenario
// is an executable contract for the whole pipeline: roller, keep rule,
// success rule and aggregation.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: keep-high-two
//	description: "keep the two highest of four d6"
//	roll:
//	  expression: 4d6
//	  keep_high: 2
//	draws: [2, 5, 3, 6]
//	expect:
//	  total: 11
//	  kept: [5, 6]
//	  dropped: [2, 3]
//
// The roll block accepts every roll option by its snake_case name. Every
// expect field is optional; only the fields present are checked. An
// expected error is given as its code (for example THRESHOLD_EXCEEDS_DIE,
// PARSE_ERROR or CHAIN_EXHAUSTED) and the scenario then passes only if the
// roll fails with that code.
//
// # Deterministic Testing
//
// Draws are consumed in order by a testutil.ScriptedSource. Running out of
// draws, a draw outside the die's range, or draws left over after the roll
// all fail the scenario. The same scenario therefore always produces the
// same result, which makes golden snapshot comparison possible:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/keep-high-two.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
