package packager

import (
	"context"

	"github.com/halcyonlab/packmon/internal/logstream"
)

// StartOptions control how the packager process is launched.
type StartOptions struct {
	Port       int
	ResetCache bool
	MaxWorkers int
}

// Packager is the control surface of the external bundler process. A concrete
// implementation wraps the real process; tests substitute a double.
type Packager interface {
	// Start launches the packager for the given project directory. It returns
	// once the process is running; log events flow on Updates and DeviceLogs
	// until the process exits.
	Start(ctx context.Context, dir string, opts StartOptions) error

	// Stop asks the running packager to shut down gracefully and waits for it
	// to exit or for ctx to be cancelled. The underlying shutdown cannot be
	// interrupted; an abandoned Stop keeps running to completion with no
	// observable effect.
	Stop(ctx context.Context, dir string) error

	// ReadProcessInfo loads the process info the packager recorded on disk
	// when it started. Used for the forced-kill escalation path.
	ReadProcessInfo(dir string) (*ProcessInfo, error)

	// Updates delivers server/bundler events in ordered batches.
	Updates() <-chan []logstream.Event

	// DeviceLogs delivers device-originated log writes one at a time.
	DeviceLogs() <-chan logstream.Event

	// Done reports process exit: nil for a clean exit, the wait error otherwise.
	Done() <-chan error
}
