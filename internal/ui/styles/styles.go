package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/halcyonlab/packmon/internal/logstream"
)

// Semantic colors as AdaptiveColor{Light, Dark}
var (
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim       = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
)

var (
	// Warning and error log lines render inverted so they stand out in a
	// fast-scrolling stream.
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(StatusWarning)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(StatusError)
	plainStyle = lipgloss.NewStyle()

	Success = lipgloss.NewStyle().Foreground(StatusSuccess)
	Failure = lipgloss.NewStyle().Foreground(StatusError)
	Muted   = lipgloss.NewStyle().Foreground(TextSecondary)
	Device  = lipgloss.NewStyle().Foreground(StatusRunning)
)

// ForLevel returns the style for a log severity tier: info and below render
// plain, warnings highlighted yellow, errors and above highlighted red.
func ForLevel(level logstream.Level) lipgloss.Style {
	switch {
	case level >= logstream.LevelError:
		return errorStyle
	case level == logstream.LevelWarn:
		return warnStyle
	default:
		return plainStyle
	}
}
