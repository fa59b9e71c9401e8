package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halcyonlab/packmon/internal/ui/styles"
	"github.com/halcyonlab/packmon/internal/ui/text"
)

// App is the inline terminal model: log lines scroll past via tea.Println
// while an active bundle build renders a progress bar as the live view.
type App struct {
	bar      progress.Model
	building bool
	percent  float64
	width    int

	interrupted bool
}

func NewApp(progressWidth int) App {
	if progressWidth <= 0 {
		progressWidth = 40
	}
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(progressWidth),
	)
	return App{bar: bar}
}

// Interrupted reports whether the user asked to quit (ctrl+c) rather than
// the supervisor shutting the program down.
func (a App) Interrupted() bool {
	return a.interrupted
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.interrupted = true
			return a, tea.Quit
		}
		return a, nil

	case LogLineMsg:
		return a, tea.Println(msg.Line)

	case BuildStartMsg:
		a.building = true
		a.percent = 0
		return a, nil

	case BuildProgressMsg:
		a.percent = msg.Percent
		return a, nil

	case BuildDoneMsg:
		a.building = false
		return a, nil

	case ClearScreenMsg:
		return a, tea.ClearScreen

	case ShutdownMsg:
		return a, tea.Quit
	}
	return a, nil
}

func (a App) View() string {
	if !a.building {
		return ""
	}
	line := styles.Muted.Render("Building ") + a.bar.ViewAs(a.percent/100)
	if a.width > 0 {
		line = text.Truncate(line, a.width)
	}
	return line + "\n"
}
