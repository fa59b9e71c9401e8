package session

import (
	"fmt"
	"time"

	"github.com/halcyonlab/packmon/internal/ui/styles"
)

// Tracker follows the packager's bundle-build lifecycle and drives the
// session's progress indicator. Percent state lives here, not in the UI, so
// the monotonicity rules are testable without a terminal.
type Tracker struct {
	session *Session

	active    bool
	percent   float64
	startedAt time.Time
}

func newTracker(s *Session) *Tracker {
	return &Tracker{session: s}
}

// Active reports whether a build indicator is currently shown.
func (t *Tracker) Active() bool {
	return t.active
}

// Percent returns the indicator's current position.
func (t *Tracker) Percent() float64 {
	return t.percent
}

// BuildStart allocates a fresh 0–100 indicator, replacing any prior one.
// A pending needs-clear (set by a syntax error in the previous build) clears
// the screen first so stale error output does not sit above fresh results.
func (t *Tracker) BuildStart() {
	if t.session.needsClear {
		t.session.sink.ClearScreen()
		t.session.needsClear = false
	}
	t.active = true
	t.percent = 0
	t.startedAt = time.Now()
	t.session.sink.BuildStarted()
}

// Progress advances the indicator to percent. Ignored when no indicator is
// active or it is already complete; the indicator never moves backward.
func (t *Tracker) Progress(percent float64) {
	if !t.active || t.percent >= 100 {
		return
	}
	delta := percent - t.percent
	if delta <= 0 {
		return
	}
	t.percent += delta
	if t.percent > 100 {
		t.percent = 100
	}
	t.session.sink.BuildProgress(t.percent)
}

// BuildDone closes out the build: an active, incomplete indicator is forced
// to 100% before being cleared, then a success line with the elapsed
// duration, or a failure line, is printed.
func (t *Tracker) BuildDone(buildErr string) {
	if t.active && t.percent < 100 {
		t.percent = 100
		t.session.sink.BuildProgress(100)
	}
	t.active = false
	t.session.sink.BuildFinished()

	if buildErr != "" {
		t.session.print(t.session.styled(styles.Failure, fmt.Sprintf("Failed to build bundle: %s", buildErr)))
		return
	}
	elapsed := time.Since(t.startedAt)
	t.session.print(t.session.styled(styles.Success, fmt.Sprintf("Bundle built in %.1fs.", elapsed.Seconds())))
}

// recoverFromWatchmanRestart force-completes a build whose finish callback
// will never arrive because watchman restarted mid-build.
func (t *Tracker) recoverFromWatchmanRestart() {
	if !t.active {
		return
	}
	if t.percent < 100 {
		t.percent = 100
		t.session.sink.BuildProgress(100)
	}
	t.active = false
	t.session.sink.BuildFinished()
	t.session.print(t.session.styled(styles.Failure, "Bundle build interrupted: watchman restarted."))
}
