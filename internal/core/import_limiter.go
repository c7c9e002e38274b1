package core

// import_limiter.go bounds how many imports run at once.
//
// Each import holds one slot of a buffered channel for its whole run. When
// every slot is taken a caller queues for up to maxWait and then fails with
// ErrTooManyImports. WaitForDrain lets shutdown finish in-flight imports.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyImports is returned when no import slot frees up in time.
var ErrTooManyImports = errors.New("too many concurrent imports")

const (
	DefaultMaxConcurrentImports = 4
	DefaultImportQueueWait      = 30 * time.Second
)

// drainPollInterval is how often WaitForDrain checks the active count.
const drainPollInterval = 50 * time.Millisecond

// ImportLimiter is a counting semaphore over import calls.
type ImportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewImportLimiter allows maxConcurrent imports; others queue for maxWait.
// Non-positive arguments fall back to the defaults.
func NewImportLimiter(maxConcurrent int, maxWait time.Duration) *ImportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = DefaultImportQueueWait
	}
	return &ImportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. Every successful Acquire needs one Release.
func (l *ImportLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyImports
	}
}

// Release frees a slot taken by Acquire.
func (l *ImportLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of imports holding a slot.
func (l *ImportLimiter) Active() int {
	return int(l.active.Load())
}

// Capacity returns the maximum number of concurrent imports.
func (l *ImportLimiter) Capacity() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no import holds a slot or ctx is done.
func (l *ImportLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
