package packager

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const procInfoName = "packager.toml"

// ProcessInfo is the on-disk record of a running packager, written under
// .packmon/ in the project directory when the process starts.
type ProcessInfo struct {
	PID       int       `toml:"pid"`
	Port      int       `toml:"port"`
	StartedAt time.Time `toml:"started_at"`
}

func procInfoPath(dir string) string {
	return filepath.Join(dir, ".packmon", procInfoName)
}

// WriteProcessInfo records the packager process info atomically
// (write-then-rename, matching how session files are persisted).
func WriteProcessInfo(dir string, info ProcessInfo) error {
	target := procInfoPath(dir)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create .packmon dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(info); err != nil {
		return fmt.Errorf("encode process info: %w", err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp process info: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename process info: %w", err)
	}
	return nil
}

// ReadProcessInfo loads the recorded process info for a project directory.
func ReadProcessInfo(dir string) (*ProcessInfo, error) {
	var info ProcessInfo
	if _, err := toml.DecodeFile(procInfoPath(dir), &info); err != nil {
		return nil, fmt.Errorf("read process info: %w", err)
	}
	if info.PID <= 0 {
		return nil, fmt.Errorf("process info has no valid pid")
	}
	return &info, nil
}

// RemoveProcessInfo deletes the on-disk record after a clean shutdown.
// Missing files are not an error.
func RemoveProcessInfo(dir string) error {
	err := os.Remove(procInfoPath(dir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
