package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run; errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Packager.Command) == "" {
		errs = append(errs, "packager.command must not be empty")
	}

	if cfg.Packager.Port < 1 || cfg.Packager.Port > 65535 {
		errs = append(errs, fmt.Sprintf("packager.port %d must be between 1 and 65535", cfg.Packager.Port))
	}

	if cfg.Packager.MaxWorkers < 0 {
		errs = append(errs, "packager.max_workers must not be negative")
	}

	if cfg.Preflight.MinWatchmanVersion != "" {
		if _, err := semver.NewVersion(cfg.Preflight.MinWatchmanVersion); err != nil {
			errs = append(errs, fmt.Sprintf("preflight.min_watchman_version %q is not valid semver: %v", cfg.Preflight.MinWatchmanVersion, err))
		}
	}

	if cfg.Preflight.MinInotifyWatches <= 0 {
		errs = append(errs, "preflight.min_inotify_watches must be positive")
	}
	if cfg.Preflight.MinMaxFiles <= 0 {
		errs = append(errs, "preflight.min_max_files must be positive")
	}

	if cfg.UI.ProgressWidth <= 0 {
		errs = append(errs, "ui.progress_width must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
