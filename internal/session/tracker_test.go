package session

import (
	"strings"
	"testing"
	"time"
)

func TestTrackerAdvancesByDelta(t *testing.T) {
	s, sink := newTestSession()
	tr := s.Tracker()

	tr.BuildStart()
	tr.Progress(20)
	tr.Progress(20) // no-op: delta 0
	tr.Progress(60)

	if len(sink.progress) != 2 {
		t.Fatalf("expected 2 progress updates, got %v", sink.progress)
	}
	// Observed advances: +20, +0, +40.
	if sink.progress[0] != 20 || sink.progress[1] != 60 {
		t.Errorf("positions = %v, want [20 60]", sink.progress)
	}
}

func TestTrackerNeverRegresses(t *testing.T) {
	s, sink := newTestSession()
	tr := s.Tracker()

	tr.BuildStart()
	tr.Progress(60)
	tr.Progress(40)
	tr.Progress(10)

	if len(sink.progress) != 1 || sink.progress[0] != 60 {
		t.Errorf("indicator moved backward: %v", sink.progress)
	}
}

func TestTrackerProgressIgnoredWhenInactive(t *testing.T) {
	s, sink := newTestSession()

	s.Tracker().Progress(50)

	if len(sink.progress) != 0 {
		t.Errorf("progress without an active indicator should be ignored, got %v", sink.progress)
	}
}

func TestTrackerProgressIgnoredAfterComplete(t *testing.T) {
	s, sink := newTestSession()
	tr := s.Tracker()

	tr.BuildStart()
	tr.Progress(100)
	tr.Progress(100)

	if len(sink.progress) != 1 {
		t.Errorf("complete indicator should ignore further updates, got %v", sink.progress)
	}
}

func TestTrackerProgressClampedTo100(t *testing.T) {
	s, sink := newTestSession()
	tr := s.Tracker()

	tr.BuildStart()
	tr.Progress(120)

	if sink.progress[len(sink.progress)-1] != 100 {
		t.Errorf("position should clamp at 100, got %v", sink.progress)
	}
}

func TestTrackerBuildStartReplacesPrior(t *testing.T) {
	s, sink := newTestSession()
	tr := s.Tracker()

	tr.BuildStart()
	tr.Progress(80)
	tr.BuildStart()

	if tr.Percent() != 0 {
		t.Errorf("fresh indicator should start at 0, got %.0f", tr.Percent())
	}
	if sink.started != 2 {
		t.Errorf("started = %d, want 2", sink.started)
	}
}

func TestTrackerBuildDoneSuccess(t *testing.T) {
	s, sink := newTestSession()
	tr := s.Tracker()

	tr.BuildStart()
	tr.startedAt = time.Now().Add(-2 * time.Second)
	tr.Progress(40)
	tr.BuildDone("")

	if tr.Active() {
		t.Error("indicator should be cleared after finish")
	}
	if sink.progress[len(sink.progress)-1] != 100 {
		t.Errorf("incomplete indicator should be forced to 100, got %v", sink.progress)
	}
	last := sink.lines[len(sink.lines)-1]
	if !strings.Contains(last, "Bundle built in") {
		t.Errorf("expected success line with duration, got %q", last)
	}
	if !strings.Contains(last, "s.") {
		t.Errorf("expected elapsed seconds in %q", last)
	}
}

func TestTrackerBuildDoneFailure(t *testing.T) {
	s, sink := newTestSession()
	tr := s.Tracker()

	tr.BuildStart()
	tr.BuildDone("SyntaxError: unexpected token")

	last := sink.lines[len(sink.lines)-1]
	if !strings.Contains(last, "Failed to build bundle") {
		t.Errorf("expected failure line, got %q", last)
	}
	if strings.Contains(last, "built in") {
		t.Errorf("failure line must not show a duration: %q", last)
	}
}

func TestTrackerBuildStartClearsScreenWhenNeeded(t *testing.T) {
	s, sink := newTestSession()
	s.needsClear = true

	s.Tracker().BuildStart()

	if sink.cleared != 1 {
		t.Errorf("cleared = %d, want 1", sink.cleared)
	}
	if s.NeedsClear() {
		t.Error("needsClear should reset after the clear")
	}

	s.Tracker().BuildStart()
	if sink.cleared != 1 {
		t.Error("clear should fire only once per syntax error")
	}
}
