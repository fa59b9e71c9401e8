package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory as the project root for file
// discovery. This is the testable entry point; Load() calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// LoadFile loads config from an explicit file path, skipping discovery.
// Environment overrides and validation still apply.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	override, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	merge(&cfg, override)

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	// 1. ./packmon.yaml (relative to project dir)
	local := filepath.Join(dir, "packmon.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/packmon/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "packmon", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

// loadFromFile reads and unmarshals a YAML config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge deep-merges override onto base. Scalar fields override when non-zero.
// Slices replace entirely when non-nil. Pointer-to-bool fields override when
// non-nil.
func merge(base *Config, override *Config) {
	// Project
	if override.Project.Name != "" {
		base.Project.Name = override.Project.Name
	}
	if override.Project.Root != "" {
		base.Project.Root = override.Project.Root
	}

	// Packager
	if override.Packager.Command != "" {
		base.Packager.Command = override.Packager.Command
	}
	if override.Packager.Args != nil {
		base.Packager.Args = override.Packager.Args
	}
	if override.Packager.Port != 0 {
		base.Packager.Port = override.Packager.Port
	}
	if override.Packager.ResetCache != nil {
		base.Packager.ResetCache = override.Packager.ResetCache
	}
	if override.Packager.MaxWorkers != 0 {
		base.Packager.MaxWorkers = override.Packager.MaxWorkers
	}

	// Preflight
	if override.Preflight.Skip != nil {
		base.Preflight.Skip = override.Preflight.Skip
	}
	if override.Preflight.MinWatchmanVersion != "" {
		base.Preflight.MinWatchmanVersion = override.Preflight.MinWatchmanVersion
	}
	if override.Preflight.MinInotifyWatches != 0 {
		base.Preflight.MinInotifyWatches = override.Preflight.MinInotifyWatches
	}
	if override.Preflight.MinMaxFiles != 0 {
		base.Preflight.MinMaxFiles = override.Preflight.MinMaxFiles
	}

	// UI
	if override.UI.Color != nil {
		base.UI.Color = override.UI.Color
	}
	if override.UI.ProgressWidth != 0 {
		base.UI.ProgressWidth = override.UI.ProgressWidth
	}

	// Update
	if override.Update.Repo != "" {
		base.Update.Repo = override.Update.Repo
	}
}

// applyEnvOverrides applies PACKMON_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PACKMON_PACKAGER"); v != "" {
		cfg.Packager.Command = v
	}
	if v := os.Getenv("PACKMON_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Packager.Port = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: PACKMON_PORT=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("PACKMON_NO_COLOR"); v != "" {
		cfg.UI.Color = boolPtr(false)
	}
	if v := os.Getenv("PACKMON_SKIP_PREFLIGHT"); v != "" {
		cfg.Preflight.Skip = boolPtr(true)
	}
}
