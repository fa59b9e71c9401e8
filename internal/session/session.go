package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/halcyonlab/packmon/internal/logstream"
	"github.com/halcyonlab/packmon/internal/ui/styles"
)

// Sink receives everything the session wants on screen: formatted log lines
// and progress-indicator transitions. The terminal UI implements it; tests
// substitute a recorder.
type Sink interface {
	Print(line string)
	BuildStarted()
	BuildProgress(percent float64)
	BuildFinished()
	ClearScreen()
}

const (
	// readySentinel is the exact message the packager logs once its module
	// graph is built. Everything before it is startup noise.
	readySentinel = "Dependency graph loaded."

	// devFlagMarker appears in the app-start message when the bundle was
	// requested with dev mode on.
	devFlagMarker = "__DEV__ === true"

	// appParamsMarker identifies the "application started on a device" message.
	appParamsMarker = "with appParams:"

	// flushHeader introduces the buffered startup output when an error
	// arrives before the packager is ready.
	flushHeader = "The packager emitted the following output before it was ready:"
)

// noisyMessages are packager messages repeated on every boot that carry no
// signal; slightly different causes produce slightly different texts, so
// these are substring matches.
var noisyMessages = []string{
	"Duplicate module name: bser",
	"Duplicate module name: promise",
	"react-native-git-upgrade is deprecated",
	"`watchFolders` option is deprecated",
}

// Session holds the state of one packager supervision run. It groups what
// would otherwise be ambient globals (readiness, the needs-clear flag, the
// pre-ready log buffer, the build tracker) so the dispatcher is testable in
// isolation. A Session is driven from a single goroutine; it does no locking.
type Session struct {
	sink    Sink
	color   bool
	onReady func()

	ready      bool
	needsClear bool
	buffer     strings.Builder

	tracker *Tracker
}

func New(sink Sink, color bool, onReady func()) *Session {
	s := &Session{
		sink:    sink,
		color:   color,
		onReady: onReady,
	}
	s.tracker = newTracker(s)
	return s
}

// Tracker returns the build progress tracker for this session.
func (s *Session) Tracker() *Tracker {
	return s.tracker
}

// Ready reports whether the ready sentinel has been observed.
func (s *Session) Ready() bool {
	return s.ready
}

// NeedsClear reports whether the next build start should clear the screen.
func (s *Session) NeedsClear() bool {
	return s.needsClear
}

// HandleBatch processes one batch of buffered server/bundler events. The
// batch is scanned for a watchman restart first: when one shows up while a
// build indicator is active the normal finish callback never fires (known
// packager limitation), so the tracker is forced closed before dispatch.
func (s *Session) HandleBatch(batch []logstream.Event) {
	if s.tracker.active {
		for _, e := range batch {
			if e.Kind == logstream.KindLog && strings.Contains(e.Message, "Restarted watchman.") {
				s.tracker.recoverFromWatchmanRestart()
				break
			}
		}
	}
	for _, e := range batch {
		s.Handle(e)
	}
}

// Handle routes a single event to the dispatcher or the build tracker.
func (s *Session) Handle(e logstream.Event) {
	switch e.Kind {
	case logstream.KindBuildStart:
		s.tracker.BuildStart()
	case logstream.KindBuildProgress:
		s.tracker.Progress(e.Percent)
	case logstream.KindBuildDone:
		s.tracker.BuildDone(e.BuildErr)
	default:
		s.Dispatch(e)
	}
}

// Dispatch decides the disposition of one log event: suppress, print a
// status line, mark readiness, print colored, or buffer until ready.
func (s *Session) Dispatch(e logstream.Event) {
	msg := e.Message

	for _, noisy := range noisyMessages {
		if strings.Contains(msg, noisy) {
			return
		}
	}

	// App started on a device. Always shown, ready or not.
	if strings.Contains(msg, appParamsMarker) {
		mode := "production"
		if strings.Contains(msg, devFlagMarker) {
			mode = "development"
		}
		device := e.Device
		if device == "" {
			device = "device"
		}
		s.print(s.styled(styles.Device, fmt.Sprintf("Running on %s in %s mode.", device, mode)))
		return
	}

	if msg == readySentinel {
		s.ready = true
		// Fires again if the sentinel recurs; callbacks must tolerate that.
		if s.onReady != nil {
			s.onReady()
		}
		return
	}

	if s.ready {
		line := strings.TrimSpace(msg)
		if s.color {
			line = styles.ForLevel(e.Level).Render(line)
		}
		s.print(line)
		if e.Level >= logstream.LevelError && strings.Contains(msg, "SyntaxError") {
			s.needsClear = true
		}
		return
	}

	// Not ready yet: accumulate informational output so it can be shown as
	// context if startup fails. Warnings are dropped here; they repeat once
	// the packager is up if they matter.
	if e.Level <= logstream.LevelInfo {
		s.buffer.WriteString(msg)
		s.buffer.WriteString("\n")
		return
	}
	if e.Level >= logstream.LevelError {
		s.print(s.styled(styles.Muted, flushHeader))
		if s.buffer.Len() > 0 {
			s.print(s.buffer.String())
		}
		errLine := strings.TrimSpace(msg)
		if s.color {
			errLine = styles.ForLevel(e.Level).Render(errLine)
		}
		s.print(errLine)
		s.buffer.Reset()
	}
}

func (s *Session) print(line string) {
	s.sink.Print(line)
}

func (s *Session) styled(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}
