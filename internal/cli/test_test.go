package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: flat-three
description: one d6 plus two
roll:
  expression: 1d6+2
draws: [1]
expect:
  total: 3
`

const failingScenario = `name: wrong-total
description: expects the wrong total
roll:
  expression: 1d6
draws: [4]
expect:
  total: 5
`

type testEnvelope struct {
	Status string     `json:"status"`
	Data   TestResult `json:"data"`
	Error  *CLIError  `json:"error"`
}

func TestTest_HarnessScenarios(t *testing.T) {
	dir := filepath.Join("..", "harness", "testdata", "scenarios")

	stdout, _, err := execute(t, "--format", "json", "test", dir)
	require.NoError(t, err, stdout)

	var resp testEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Zero(t, resp.Data.Failed)
	assert.Equal(t, resp.Data.Total, resp.Data.Passed)

	golden := map[string]string{}
	for _, s := range resp.Data.Scenarios {
		golden[s.Name] = s.Golden
	}
	assert.Equal(t, "match", golden["keep-high-two"])
	assert.Equal(t, "missing", golden["reroll-once"])
}

func TestTest_TextSummary(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "scenarios/flat-three.yaml", passingScenario)

	stdout, _, err := execute(t, "test", filepath.Join(dir, "scenarios"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ flat-three\n")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, stdout, "✓ All scenarios passed")
}

func TestTest_Failure(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "scenarios/flat-three.yaml", passingScenario)
	writeTestFile(t, dir, "scenarios/wrong-total.yaml", failingScenario)

	stdout, _, err := execute(t, "test", filepath.Join(dir, "scenarios"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ wrong-total")
	assert.Contains(t, stdout, "Assertion failed: total")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTest_FailureJSON(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "scenarios/wrong-total.yaml", failingScenario)

	stdout, _, err := execute(t, "--format", "json", "test", filepath.Join(dir, "scenarios"))
	require.Error(t, err)

	var resp testEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.False(t, resp.Data.Scenarios[0].Pass)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestTest_UpdateThenMatch(t *testing.T) {
	dir := t.TempDir()
	scenarios := filepath.Join(dir, "scenarios")
	writeTestFile(t, dir, "scenarios/flat-three.yaml", passingScenario)

	stdout, _, err := execute(t, "test", scenarios, "--update")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ flat-three (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "flat-three.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"flat-three"`)

	stdout, _, err = execute(t, "--format", "json", "test", scenarios)
	require.NoError(t, err)
	var resp testEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "match", resp.Data.Scenarios[0].Golden)

	// A stale snapshot fails even when the expectations hold.
	require.NoError(t, os.WriteFile(goldenPath, []byte(`{}`), 0644))
	stdout, _, err = execute(t, "test", scenarios)
	require.Error(t, err)
	assert.Contains(t, stdout, "result does not match golden file")
}

func TestTest_GoldenFlag(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "scenarios/flat-three.yaml", passingScenario)
	goldenDir := filepath.Join(dir, "snapshots")

	_, _, err := execute(t, "test", filepath.Join(dir, "scenarios"), "--golden", goldenDir, "--update")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(goldenDir, "flat-three.golden"))
}

func TestTest_Filter(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "scenarios/flat-three.yaml", passingScenario)
	writeTestFile(t, dir, "scenarios/wrong-total.yaml", failingScenario)

	stdout, _, err := execute(t, "test", filepath.Join(dir, "scenarios"), "--filter", "flat-*")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 total")

	_, _, err = execute(t, "test", filepath.Join(dir, "scenarios"), "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_InvalidScenarioFile(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "scenarios/broken.yaml", "name: broken\nbogus: true\n")

	stdout, _, err := execute(t, "test", filepath.Join(dir, "scenarios"))
	require.Error(t, err)
	assert.Contains(t, stdout, "✗ broken.yaml")
	assert.Contains(t, stdout, "failed to load scenario")
}

func TestTest_Empty(t *testing.T) {
	stdout, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", stdout)
}

func TestTest_MissingDir(t *testing.T) {
	stdout, _, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E005]")
}
