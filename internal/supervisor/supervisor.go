package supervisor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halcyonlab/packmon/internal/config"
	"github.com/halcyonlab/packmon/internal/packager"
	"github.com/halcyonlab/packmon/internal/preflight"
	"github.com/halcyonlab/packmon/internal/session"
	"github.com/halcyonlab/packmon/internal/ui"
	"github.com/halcyonlab/packmon/internal/ui/styles"
)

// stopTimeout bounds the graceful-stop attempt before escalating to a kill.
const stopTimeout = 1 * time.Second

// killProcess is swapped out by tests so the forced-kill path can be
// exercised without harming a real process.
var killProcess = func(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Kill()
}

// Supervisor owns one packager run end to end: preflight, process start,
// log streaming into the terminal, and shutdown on interrupt.
type Supervisor struct {
	cfg *config.Config
	pkg packager.Packager

	mu      sync.Mutex
	exited  bool
	exitErr error
}

func New(cfg *config.Config, pkg packager.Packager) *Supervisor {
	return &Supervisor{cfg: cfg, pkg: pkg}
}

// Run blocks until shutdown and returns the process exit code: 0 for a
// graceful stop or clean packager exit, 1 for preflight failure, start
// failure, packager crash, or a failed forced kill.
func (s *Supervisor) Run(ctx context.Context) int {
	if err := preflight.Run(s.cfg.Preflight); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	dir, err := filepath.Abs(s.cfg.Project.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve project root: %v\n", err)
		return 1
	}

	opts := packager.StartOptions{
		Port:       s.cfg.Packager.Port,
		MaxWorkers: s.cfg.Packager.MaxWorkers,
	}
	if s.cfg.Packager.ResetCache != nil {
		opts.ResetCache = *s.cfg.Packager.ResetCache
	}

	if err := s.pkg.Start(ctx, dir, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		return 1
	}

	fmt.Printf("Starting packager on port %d...\n", opts.Port)

	color := s.cfg.UI.Color == nil || *s.cfg.UI.Color
	var programOpts []tea.ProgramOption
	if !stdinIsTerminal() {
		programOpts = append(programOpts, tea.WithInput(nil))
	}
	p := tea.NewProgram(ui.NewApp(s.cfg.UI.ProgressWidth), programOpts...)

	sink := ui.NewProgramSink(p)
	sess := session.New(sink, color, func() {
		ready := fmt.Sprintf("Packager ready. Bundles are served from http://localhost:%d.", opts.Port)
		if color {
			ready = styles.Success.Render(ready)
		}
		sink.Print(ready)
	})

	go s.pump(sess)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	notifyStdinClose(sigCh)

	go func() {
		select {
		case <-sigCh:
		case err := <-s.pkg.Done():
			s.mu.Lock()
			s.exited = true
			s.exitErr = err
			s.mu.Unlock()
		case <-ctx.Done():
		}
		p.Send(ui.ShutdownMsg{})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
		return 1
	}

	s.mu.Lock()
	exited, exitErr := s.exited, s.exitErr
	s.mu.Unlock()

	if exited {
		if exitErr != nil {
			fmt.Fprintf(os.Stderr, "packager exited: %v\n", exitErr)
			return 1
		}
		return 0
	}

	return s.Shutdown(dir)
}

// pump feeds both event sources into the session serially. The two streams
// have no ordering guarantee relative to each other; each is ordered within
// itself.
func (s *Supervisor) pump(sess *session.Session) {
	updates := s.pkg.Updates()
	deviceLogs := s.pkg.DeviceLogs()
	for updates != nil || deviceLogs != nil {
		select {
		case batch, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			sess.HandleBatch(batch)
		case e, ok := <-deviceLogs:
			if !ok {
				deviceLogs = nil
				continue
			}
			sess.Handle(e)
		}
	}
}

// Shutdown attempts a graceful stop, racing it against stopTimeout. The
// stop call cannot be interrupted: when the timer wins, the stop goroutine
// is abandoned (it keeps running, its eventual completion has no observable
// effect) and the recorded PID is killed outright.
func (s *Supervisor) Shutdown(dir string) int {
	fmt.Println("Stopping packager...")

	stopDone := make(chan error, 1)
	go func() {
		stopDone <- s.pkg.Stop(context.Background(), dir)
	}()

	select {
	case err := <-stopDone:
		if err == nil {
			fmt.Println("Packager stopped.")
			return 0
		}
		fmt.Fprintf(os.Stderr, "graceful stop failed: %v\n", err)
	case <-time.After(stopTimeout):
	}

	info, err := s.pkg.ReadProcessInfo(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not find packager process to kill: %v\n", err)
		return 1
	}
	if err := killProcess(info.PID); err != nil {
		fmt.Fprintf(os.Stderr, "could not kill packager process %d: %v\n", info.PID, err)
		return 1
	}
	_ = packager.RemoveProcessInfo(dir)
	fmt.Println("Packager stopped.")
	return 0
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// notifyStdinClose re-emits an interrupt when stdin closes in a
// non-interactive Windows session, where console interrupt events never
// reach the handler.
func notifyStdinClose(sigCh chan<- os.Signal) {
	if runtime.GOOS != "windows" || stdinIsTerminal() {
		return
	}
	go func() {
		_, _ = io.Copy(io.Discard, os.Stdin)
		sigCh <- os.Interrupt
	}()
}
