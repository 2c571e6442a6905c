package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dicerules/internal/ir"
)

// Snapshot renders a scenario outcome as canonical JSON.
//
// The snapshot holds the scenario name, its roll options, the scripted
// draws and either the full aggregate result or the error code. It is
// byte-stable across runs, so it can be compared against a golden file.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	draws := make([]any, len(scenario.Draws))
	for i, d := range scenario.Draws {
		draws[i] = d
	}

	snapshot := map[string]any{
		"scenario_name": scenario.Name,
		"roll":          scenario.Roll.CanonicalMap(),
		"draws":         draws,
	}
	if result.Err != nil {
		snapshot["error"] = result.ErrorCode
	} else {
		snapshot["result"] = result.Aggregate.CanonicalMap()
	}

	return ir.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already computed result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
