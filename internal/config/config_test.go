package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at empty temp dirs.
func isolate(t *testing.T) (xdg, home string) {
	t.Helper()
	xdg, home = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	return xdg, home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Detail)
	assert.Equal(t, 1000, cfg.MaxChain)
	assert.Empty(t, cfg.PresetsDir)
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_XDG(t *testing.T) {
	xdg, home := isolate(t)
	writeConfig(t, filepath.Join(xdg, "dicerules", "config.toml"), `
format = "json"
detail = true
max_chain = 50
presets_dir = "~/dice"
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Detail)
	assert.Equal(t, 50, cfg.MaxChain)
	assert.Equal(t, filepath.Join(home, "dice"), cfg.PresetsDir)
	assert.Equal(t, filepath.Join(xdg, "dicerules", "config.toml"), cfg.Path)
}

func TestLoad_HomeFallback(t *testing.T) {
	_, home := isolate(t)
	writeConfig(t, filepath.Join(home, ".config", "dicerules", "config.toml"), `max_chain = 0`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxChain)
	assert.Equal(t, "text", cfg.Format, "unset keys keep defaults")
}

func TestLoad_ExplicitWins(t *testing.T) {
	xdg, _ := isolate(t)
	writeConfig(t, filepath.Join(xdg, "dicerules", "config.toml"), `format = "json"`)

	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeConfig(t, explicit, `max_chain = 7`)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxChain)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_EnvPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "env.toml")
	writeConfig(t, path, `detail = true`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Detail)
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `format = `, "parse config"},
		{"unknown key", `colour = "red"`, `unknown key "colour"`},
		{"bad format", `format = "xml"`, "format must be text or json"},
		{"negative chain", `max_chain = -1`, "max_chain must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "c.toml")
			writeConfig(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
