package app

import (
	"context"
	"sync"
	"time"
)

// writer runs queued writes one at a time, in the order they were queued.
// The queue is unbounded so enqueue never blocks the caller.
type writer struct {
	timeout time.Duration

	mu     sync.Mutex
	queue  []func(ctx context.Context)
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func newWriter(timeout time.Duration) *writer {
	w := &writer{
		timeout: timeout,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue appends a write. Returns false if the writer is closed.
func (w *writer) enqueue(write func(ctx context.Context)) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	w.queue = append(w.queue, write)

	// Signal under mu so close cannot close wake between append and send
	select {
	case w.wake <- struct{}{}:
	default:
	}
	w.mu.Unlock()

	return true
}

// flush waits until every write queued before the call has run.
func (w *writer) flush(ctx context.Context) error {
	reached := make(chan struct{})
	if !w.enqueue(func(context.Context) { close(reached) }) {
		// Closed writers have already drained
		select {
		case <-w.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting writes and waits for the queue to drain.
func (w *writer) close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.wake)
	}
	w.mu.Unlock()

	<-w.done
}

func (w *writer) run() {
	defer close(w.done)

	for {
		_, open := <-w.wake

		for {
			w.mu.Lock()
			if len(w.queue) == 0 {
				w.mu.Unlock()
				break
			}
			write := w.queue[0]
			w.queue[0] = nil
			w.queue = w.queue[1:]
			w.mu.Unlock()

			w.runOne(write)
		}

		if !open {
			return
		}
	}
}

func (w *writer) runOne(write func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	write(ctx)
}
