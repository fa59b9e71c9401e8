package logstream

import "strings"

// Kind identifies what a packager event describes.
type Kind string

const (
	KindLog           Kind = "log"
	KindBuildStart    Kind = "build_started"
	KindBuildProgress Kind = "build_progress"
	KindBuildDone     Kind = "build_done"
)

// Level is a log severity tier. Values are ordered so that tiers can be
// compared directly (LevelWarn < LevelError).
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "info"
	}
}

// ParseLevel maps a packager level string to a Level. Unknown or empty
// strings map to LevelInfo so unexpected events still surface.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Event is a single packager event: either a log line or a bundle-build
// lifecycle notification. Events are transient: produced by the stream,
// consumed once, discarded.
type Event struct {
	Kind    Kind
	Message string
	Level   Level
	Device  string // originating device name, optional
	Tag     string // "device" marks device-originated log writes
	Percent float64
	BuildErr string
}

// IsDeviceLog reports whether the event is a device-originated log write.
func (e Event) IsDeviceLog() bool {
	return e.Kind == KindLog && e.Tag == "device"
}
