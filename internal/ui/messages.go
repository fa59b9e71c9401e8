package ui

// LogLineMsg prints one formatted log line above the progress area.
type LogLineMsg struct {
	Line string
}

// BuildStartMsg shows a fresh progress bar at 0%.
type BuildStartMsg struct{}

// BuildProgressMsg moves the progress bar to the given position (0–100).
type BuildProgressMsg struct {
	Percent float64
}

// BuildDoneMsg hides the progress bar.
type BuildDoneMsg struct{}

// ClearScreenMsg wipes the terminal (after a syntax error, before the next
// build's output).
type ClearScreenMsg struct{}

// ShutdownMsg quits the program; sent by the supervisor when an interrupt
// arrives or the packager exits.
type ShutdownMsg struct{}
