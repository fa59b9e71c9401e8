package logstream

import (
	"context"
	"time"
)

const (
	defaultFlushEvery = 100 * time.Millisecond
	defaultBatchCap   = 64
)

// Batcher splits a parsed event stream into the two subscription surfaces
// the terminal consumes: server/bundler events grouped into ordered batches,
// and device log writes delivered individually as they arrive. Ordering
// within each surface is preserved; interleaving between the two is not
// guaranteed and callers must not rely on it.
type Batcher struct {
	in         <-chan Event
	updates    chan []Event
	deviceLogs chan Event
	flushEvery time.Duration
	batchCap   int
}

func NewBatcher(in <-chan Event) *Batcher {
	return &Batcher{
		in:         in,
		updates:    make(chan []Event, 16),
		deviceLogs: make(chan Event, 64),
		flushEvery: defaultFlushEvery,
		batchCap:   defaultBatchCap,
	}
}

// Run pumps events until the input channel closes or ctx is cancelled.
// Both output channels are closed on return.
func (b *Batcher) Run(ctx context.Context) {
	defer close(b.updates)
	defer close(b.deviceLogs)

	ticker := time.NewTicker(b.flushEvery)
	defer ticker.Stop()

	var pending []Event
	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := pending
		pending = nil
		select {
		case <-ctx.Done():
		case b.updates <- batch:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			flush()
		case event, ok := <-b.in:
			if !ok {
				flush()
				return
			}
			if event.IsDeviceLog() {
				select {
				case <-ctx.Done():
					return
				case b.deviceLogs <- event:
				}
				continue
			}
			pending = append(pending, event)
			if len(pending) >= b.batchCap {
				flush()
			}
		}
	}
}

// Updates delivers batched server/bundler events in arrival order.
func (b *Batcher) Updates() <-chan []Event {
	return b.updates
}

// DeviceLogs delivers device-tagged log writes one at a time.
func (b *Batcher) DeviceLogs() <-chan Event {
	return b.deviceLogs
}
