// Package update checks GitHub Releases for newer packmon builds and can
// replace the running executable in place.
package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"
)

const (
	checkTimeout = 10 * time.Second
	applyTimeout = 2 * time.Minute
)

// Release describes an available newer build.
type Release struct {
	Version string
	URL     string
	Notes   string
}

// Check queries GitHub Releases for a version newer than current. It returns
// nil when current is already the latest, or when current is a development
// build ("dev", empty, or otherwise unparseable).
func Check(ctx context.Context, current, repo string) (*Release, error) {
	cur, err := parseVersion(current)
	if err != nil {
		return nil, nil
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, fmt.Errorf("detect latest release: %w", err)
	}
	if !found {
		return nil, nil
	}

	latestVer, err := semver.NewVersion(latest.Version())
	if err != nil {
		return nil, nil
	}
	if !latestVer.GreaterThan(cur) {
		return nil, nil
	}

	return &Release{
		Version: latest.Version(),
		URL:     latest.URL,
		Notes:   latest.ReleaseNotes,
	}, nil
}

// Apply downloads the latest release binary for repo and replaces the
// current executable with it.
func Apply(ctx context.Context, current, repo string) (*Release, error) {
	if _, err := parseVersion(current); err != nil {
		return nil, fmt.Errorf("cannot update a development build; install packmon from a release first")
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	rel, err := updater.UpdateSelf(ctx, strings.TrimPrefix(current, "v"), selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}

	return &Release{
		Version: rel.Version(),
		URL:     rel.URL,
		Notes:   rel.ReleaseNotes,
	}, nil
}

// Newer reports whether latest is strictly newer than current. Unparseable
// versions sort below any valid version.
func Newer(current, latest string) bool {
	cur, errC := parseVersion(current)
	lat, errL := parseVersion(latest)
	if errL != nil {
		return false
	}
	if errC != nil {
		return true
	}
	return lat.GreaterThan(cur)
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return updater, nil
}

// parseVersion strips a leading "v" and tolerates git-describe suffixes like
// "0.3.0-2-gdeadbee", which semver reads as a prerelease of the base version.
func parseVersion(s string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(s, "v"))
}
