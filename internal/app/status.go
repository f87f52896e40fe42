package app

import (
	"errors"
	"log"
	"time"
)

// ErrStoreClosed is reported when a mutation happens after Close.
var ErrStoreClosed = errors.New("store is closed")

// WriteStatus describes one failed persistence attempt.
type WriteStatus struct {
	Op   string // Gateway operation: "get", "set", "delete", "publish" or "enqueue"
	Key  string // Entity key or write name
	Err  error
	AtMs int64 // Unix timestamp in milliseconds of the failure
}

// StatusFeed is a lossy broadcast of persistence failures.
// Report never blocks: if the buffer is full the status is dropped.
type StatusFeed struct {
	ch chan WriteStatus
}

// NewStatusFeed creates a feed with the given buffer size (16 if size < 1).
func NewStatusFeed(size int) *StatusFeed {
	if size < 1 {
		size = 16
	}
	return &StatusFeed{ch: make(chan WriteStatus, size)}
}

// Report records a failure. Its signature matches kv.ErrorHook.
func (f *StatusFeed) Report(op, key string, err error) {
	status := WriteStatus{Op: op, Key: key, Err: err, AtMs: time.Now().UnixMilli()}
	select {
	case f.ch <- status:
	default:
		log.Printf("[Store] Status feed full, dropping %s %s failure", op, key)
	}
}

// C returns the channel on which failures are delivered.
func (f *StatusFeed) C() <-chan WriteStatus {
	return f.ch
}
