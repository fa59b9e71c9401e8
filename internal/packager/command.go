package packager

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/halcyonlab/packmon/internal/config"
	"github.com/halcyonlab/packmon/internal/logstream"
)

// CommandPackager runs the real packager as a child process and exposes its
// reporter stream through the Packager interface.
type CommandPackager struct {
	command  string
	baseArgs []string

	mu      sync.Mutex
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	batcher *logstream.Batcher
	done    chan error
	exited  chan struct{}
	exitErr error
}

func NewCommandPackager(cfg config.PackagerConfig) *CommandPackager {
	return &CommandPackager{
		command:  cfg.Command,
		baseArgs: cfg.Args,
		done:     make(chan error, 1),
		exited:   make(chan struct{}),
	}
}

func (p *CommandPackager) buildArgs(opts StartOptions) []string {
	args := append([]string{}, p.baseArgs...)
	if opts.Port > 0 {
		args = append(args, "--port", strconv.Itoa(opts.Port))
	}
	if opts.ResetCache {
		args = append(args, "--reset-cache")
	}
	if opts.MaxWorkers > 0 {
		args = append(args, "--max-workers", strconv.Itoa(opts.MaxWorkers))
	}
	return args
}

func (p *CommandPackager) Start(ctx context.Context, dir string, opts StartOptions) error {
	p.mu.Lock()
	if p.cmd != nil {
		p.mu.Unlock()
		return fmt.Errorf("packager already started")
	}
	p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, p.command, p.buildArgs(opts)...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start packager: %w", err)
	}

	if err := WriteProcessInfo(dir, ProcessInfo{
		PID:       cmd.Process.Pid,
		Port:      opts.Port,
		StartedAt: time.Now(),
	}); err != nil {
		log.Printf("warning: record packager process info: %v", err)
	}

	events := make(chan logstream.Event, 256)
	var wg sync.WaitGroup

	parser := logstream.NewParser(stdout, 256)
	go parser.Parse(runCtx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for e := range parser.Events() {
			select {
			case <-runCtx.Done():
				return
			case events <- e:
			}
		}
	}()

	// Anything the packager prints to stderr is surfaced as a plain server
	// log event so it reaches the terminal through the same dispatch path.
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			e := logstream.Event{
				Kind:    logstream.KindLog,
				Level:   logstream.LevelInfo,
				Message: scanner.Text(),
			}
			select {
			case <-runCtx.Done():
				return
			case events <- e:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(events)
	}()

	batcher := logstream.NewBatcher(events)
	go batcher.Run(context.Background())

	p.mu.Lock()
	p.cmd = cmd
	p.cancel = cancel
	p.batcher = batcher
	p.mu.Unlock()

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()
		close(p.exited)
		p.done <- err
	}()

	return nil
}

func (p *CommandPackager) Stop(ctx context.Context, dir string) error {
	p.mu.Lock()
	cmd := p.cmd
	p.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return fmt.Errorf("packager not running")
	}

	// SIGTERM first; the process exits on its own schedule. If ctx expires
	// before then, the caller escalates; this shutdown keeps going.
	_ = cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-p.exited:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := RemoveProcessInfo(dir); err != nil {
		log.Printf("warning: remove packager process info: %v", err)
	}
	return nil
}

func (p *CommandPackager) ReadProcessInfo(dir string) (*ProcessInfo, error) {
	return ReadProcessInfo(dir)
}

func (p *CommandPackager) Updates() <-chan []logstream.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.batcher == nil {
		return nil
	}
	return p.batcher.Updates()
}

func (p *CommandPackager) DeviceLogs() <-chan logstream.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.batcher == nil {
		return nil
	}
	return p.batcher.DeviceLogs()
}

func (p *CommandPackager) Done() <-chan error {
	return p.done
}

// PID returns the child process id, or 0 if not started.
func (p *CommandPackager) PID() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}
