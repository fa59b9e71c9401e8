package ui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

func TestAppStreamsLogLines(t *testing.T) {
	tm := teatest.NewTestModel(t, NewApp(40), teatest.WithInitialTermSize(80, 24))

	tm.Send(LogLineMsg{Line: "transformed 42 files"})
	waitForContains(t, tm, "transformed 42 files")

	tm.Send(ShutdownMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestAppShowsProgressBarDuringBuild(t *testing.T) {
	tm := teatest.NewTestModel(t, NewApp(40), teatest.WithInitialTermSize(80, 24))

	tm.Send(BuildStartMsg{})
	tm.Send(BuildProgressMsg{Percent: 50})
	waitForContains(t, tm, "Building")

	tm.Send(BuildDoneMsg{})
	tm.Send(LogLineMsg{Line: "Bundle built in 1.0s."})
	waitForContains(t, tm, "Bundle built in 1.0s.")

	tm.Send(ShutdownMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestAppFinalModelRecordsInterrupt(t *testing.T) {
	tm := teatest.NewTestModel(t, NewApp(40), teatest.WithInitialTermSize(80, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
	app, ok := final.(App)
	if !ok {
		t.Fatalf("final model is %T, want App", final)
	}
	if !app.Interrupted() {
		t.Error("ctrl+c should mark the final model interrupted")
	}
}
