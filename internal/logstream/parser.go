package logstream

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// JSON structure of the packager's reporter output (one object per line).
type reporterLine struct {
	Type    string  `json:"type"`
	Level   string  `json:"level,omitempty"`
	Message string  `json:"message,omitempty"`
	Tag     string  `json:"tag,omitempty"`
	Device  string  `json:"deviceName,omitempty"`
	Percent float64 `json:"percent,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Parser converts the packager's JSON-lines reporter stream into Events.
type Parser struct {
	reader io.Reader
	events chan Event
	done   chan error
}

func NewParser(r io.Reader, bufSize int) *Parser {
	if bufSize <= 0 {
		bufSize = 256
	}
	return &Parser{
		reader: r,
		events: make(chan Event, bufSize),
		done:   make(chan error, 1),
	}
}

// Parse reads the stream until EOF or ctx cancellation, sending one Event
// per reporter line. Lines that are not valid reporter JSON are surfaced as
// plain info log events so nothing the packager prints is lost.
func (p *Parser) Parse(ctx context.Context) {
	defer close(p.events)

	scanner := bufio.NewScanner(p.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			p.done <- ctx.Err()
			return
		default:
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var msg reporterLine
		if err := json.Unmarshal([]byte(line), &msg); err != nil || msg.Type == "" {
			p.send(ctx, Event{Kind: KindLog, Level: LevelInfo, Message: line})
			continue
		}

		switch msg.Type {
		case "log":
			p.send(ctx, Event{
				Kind:    KindLog,
				Level:   ParseLevel(msg.Level),
				Message: msg.Message,
				Tag:     msg.Tag,
				Device:  msg.Device,
			})
		case "bundle_build_started":
			p.send(ctx, Event{Kind: KindBuildStart})
		case "bundle_transfer_progress":
			p.send(ctx, Event{Kind: KindBuildProgress, Percent: msg.Percent})
		case "bundle_build_done":
			p.send(ctx, Event{Kind: KindBuildDone})
		case "bundle_build_failed":
			errText := msg.Error
			if errText == "" {
				errText = "bundle build failed"
			}
			p.send(ctx, Event{Kind: KindBuildDone, BuildErr: errText})
		default:
			p.send(ctx, Event{Kind: KindLog, Level: ParseLevel(msg.Level), Message: line})
		}
	}

	p.done <- scanner.Err()
}

func (p *Parser) send(ctx context.Context, event Event) {
	select {
	case <-ctx.Done():
	case p.events <- event:
	}
}

func (p *Parser) Events() <-chan Event {
	return p.events
}

func (p *Parser) Done() <-chan error {
	return p.done
}
