// Package config loads the dicerules user configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/roach88/dicerules/internal/engine"
)

// EnvConfigPath names an explicit config file, checked after --config.
const EnvConfigPath = "DICERULES_CONFIG"

// Config holds user defaults for the CLI. Explicit flags always win.
type Config struct {
	// Format is the default output format: "text" or "json".
	Format string `toml:"format"`

	// Detail selects the per-die table view by default.
	Detail bool `toml:"detail"`

	// MaxChain caps reroll/explode chains per die. 0 means unbounded.
	MaxChain int `toml:"max_chain"`

	// PresetsDir is searched for --preset when --presets is not given.
	PresetsDir string `toml:"presets_dir"`

	// Path is the file the config was read from, or "" for defaults.
	Path string `toml:"-"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Format:   "text",
		MaxChain: engine.DefaultMaxChain,
	}
}

// Load reads config from explicit, then $DICERULES_CONFIG, then the XDG
// locations, falling back to defaults when no file exists.
//
// An explicit path that does not exist is an error; missing default
// locations are not.
func Load(explicit string) (Config, error) {
	cfg := DefaultConfig()

	if explicit == "" {
		explicit = os.Getenv(EnvConfigPath)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		return decode(explicit, cfg)
	}

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			return decode(p, cfg)
		}
	}
	return cfg, nil
}

func decode(path string, cfg Config) (Config, error) {
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}

	cfg.Path = path
	cfg.PresetsDir = expandHome(cfg.PresetsDir)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	if c.MaxChain < 0 {
		return fmt.Errorf("max_chain must be non-negative, got %d", c.MaxChain)
	}
	return nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "dicerules", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "dicerules", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
