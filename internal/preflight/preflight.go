package preflight

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/halcyonlab/packmon/internal/config"
)

// Error is a failed environment check. Reason says what is wrong,
// Remediation tells the user how to fix it before trying again.
type Error struct {
	Reason      string
	Remediation string
}

func (e *Error) Error() string {
	return e.Reason + "\n\n" + e.Remediation
}

// Run checks the environment before the packager starts. Windows is skipped
// entirely. On other platforms the file-watching setup is verified: with
// watchman installed only its version is checked (warn-only); without it the
// kernel watch/file-descriptor limits must be high enough for the packager's
// built-in watcher, or startup is refused.
func Run(cfg config.PreflightConfig) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if cfg.Skip != nil && *cfg.Skip {
		return nil
	}

	if path, err := exec.LookPath("watchman"); err == nil {
		warnOldWatchman(path, cfg.MinWatchmanVersion)
		return nil
	}

	switch runtime.GOOS {
	case "linux":
		return checkInotifyWatches(cfg.MinInotifyWatches)
	case "darwin":
		return checkMaxFiles(cfg.MinMaxFiles)
	}
	return nil
}

// warnOldWatchman compares the installed watchman version against the
// configured minimum. Old watchman releases drop file events under load,
// which shows up as missed rebuilds. Worth a warning, not a refusal.
func warnOldWatchman(watchmanPath, minVersion string) {
	if minVersion == "" {
		return
	}
	min, err := semver.NewVersion(minVersion)
	if err != nil {
		return
	}
	out, err := exec.Command(watchmanPath, "--version").Output()
	if err != nil {
		return
	}
	installed, err := semver.NewVersion(strings.TrimSpace(string(out)))
	if err != nil {
		// Date-based watchman versions (e.g. 2023.07.10.00) are newer than
		// any semver release we gate on.
		return
	}
	if installed.LessThan(min) {
		log.Printf("warning: watchman %s is older than the recommended %s, consider upgrading", installed, min)
	}
}

func checkInotifyWatches(min int) error {
	data, err := os.ReadFile("/proc/sys/fs/inotify/max_user_watches")
	if err != nil {
		return nil // unreadable sysfs, don't block startup on it
	}
	current, err := parseLimit(string(data))
	if err != nil {
		return nil
	}
	return watchLimitError("fs.inotify.max_user_watches", current, min)
}

func checkMaxFiles(min int) error {
	out, err := exec.Command("sysctl", "-n", "kern.maxfiles").Output()
	if err != nil {
		return nil
	}
	current, err := parseLimit(string(out))
	if err != nil {
		return nil
	}
	return watchLimitError("kern.maxfiles", current, min)
}

// parseLimit parses a kernel limit value as printed by sysctl or sysfs.
func parseLimit(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// watchLimitError builds the refusal for a kernel limit below the minimum,
// or nil when the limit is fine. Returned as error to the caller, which
// prints it and exits non-zero.
func watchLimitError(name string, current, min int) error {
	if current >= min {
		return nil
	}
	return &Error{
		Reason: fmt.Sprintf("%s is %d, below the %d the packager's file watcher needs", name, current, min),
		Remediation: fmt.Sprintf(
			"Install watchman (recommended), or raise the limit:\n"+
				"  sudo sysctl -w %s=%d\n"+
				"and persist it in /etc/sysctl.conf before starting packmon again.",
			name, min*64),
	}
}
