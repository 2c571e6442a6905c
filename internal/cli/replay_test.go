package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type replayEnvelope struct {
	Status string       `json:"status"`
	Data   ReplayResult `json:"data"`
	Error  *CLIError    `json:"error"`
}

// rollDigest rolls args in JSON mode and returns the reported digest.
func rollDigest(t *testing.T, args ...string) string {
	t.Helper()
	stdout, _, err := execute(t, append([]string{"--format", "json", "roll"}, args...)...)
	require.NoError(t, err)

	var resp rollEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Regexp(t, hexDigest, resp.Data.Digest)
	return resp.Data.Digest
}

func TestReplay_Match(t *testing.T) {
	digest := rollDigest(t, "4d6", "--dl", "1", "--seed", "7")

	stdout, _, err := execute(t, "replay", "4d6", "--dl", "1", "--seed", "7", "--digest", digest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Replay: 4d6 (seed 7)")
	assert.Contains(t, stdout, "✓ Digest verified: "+digest)
}

func TestReplay_UppercaseDigest(t *testing.T) {
	digest := rollDigest(t, "2d20+5", "--kh", "1", "--seed", "11")

	_, _, err := execute(t, "replay", "2d20+5", "--kh", "1", "--seed", "11", "--digest", strings.ToUpper(digest))
	require.NoError(t, err)
}

func TestReplay_Mismatch(t *testing.T) {
	digest := rollDigest(t, "4d6", "--seed", "7")

	// Same seed, different rules: the result and digest change.
	stdout, _, err := execute(t, "replay", "4d6", "--dl", "1", "--seed", "7", "--digest", digest)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ Digest mismatch")
	assert.Contains(t, stdout, "Expected: "+digest)
}

func TestReplay_JSON(t *testing.T) {
	digest := rollDigest(t, "3d8", "--cs", "gte6", "--seed", "3")

	stdout, _, err := execute(t, "--format", "json", "replay", "3d8", "--cs", "gte6", "--seed", "3", "--digest", digest)
	require.NoError(t, err)

	var resp replayEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Match)
	assert.Equal(t, digest, resp.Data.Actual)
	assert.Equal(t, int64(3), resp.Data.Seed)

	stdout, _, err = execute(t, "--format", "json", "replay", "3d8", "--seed", "4", "--digest", digest)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Match)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDigestMismatch, resp.Error.Code)
}

func TestReplay_RequiredFlags(t *testing.T) {
	_, _, err := execute(t, "replay", "1d6", "--seed", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "digest" not set`)
}

func TestReplay_BadExpression(t *testing.T) {
	stdout, _, err := execute(t, "replay", "d", "--seed", "1", "--digest", "00")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E202]")
}
