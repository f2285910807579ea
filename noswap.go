package memlock

import (
	"time"

	"github.com/hupe1980/memlock/internal/pagelock"
)

// NoSwap is an allocator adapter that keeps every buffer it hands out locked
// into physical memory until the buffer is deallocated. Buffers from
// different NoSwap instances may share pages; the process-wide page tracker
// guarantees each page is locked exactly once and unlocked only when the
// last buffer touching it is released.
type NoSwap struct {
	tracker    *pagelock.Tracker
	upstream   Allocator
	serialized bool
	logger     *Logger
	metrics    MetricsCollector
}

// NewNoSwap creates a no-swap adapter that is safe for concurrent use: all
// tracker updates are serialized, with the internal mutex held across the
// pin/unpin syscalls.
func NewNoSwap(opts ...Option) *NoSwap {
	return newNoSwap(true, opts)
}

// NewUnserializedNoSwap creates a no-swap adapter without any internal
// locking. It is only suitable for single-goroutine use; concurrent callers
// (of this or any other unserialized adapter sharing its tracker) race on
// the page reference counts.
func NewUnserializedNoSwap(opts ...Option) *NoSwap {
	return newNoSwap(false, opts)
}

func newNoSwap(serialized bool, opts []Option) *NoSwap {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &NoSwap{
		tracker:    o.resolveTracker(),
		upstream:   o.upstream,
		serialized: serialized,
		logger:     o.logger,
		metrics:    o.metrics,
	}
}

// Allocate obtains a buffer from the upstream allocator and locks the pages
// it occupies. If locking fails the upstream buffer is deallocated before
// the error is returned, so a failed call leaves nothing behind: no pinned
// pages, no tracked state, no leaked memory.
func (a *NoSwap) Allocate(size int) ([]byte, error) {
	start := time.Now()

	buf, err := a.upstream.Allocate(size)
	if err != nil {
		a.metrics.RecordAllocate(size, time.Since(start), err)
		a.logger.LogAllocate(size, err)
		return nil, err
	}

	if len(buf) > 0 {
		if err := a.track(buf); err != nil {
			err = translateError(err)
			// Do not leak the upstream buffer on a failed lock.
			_ = a.upstream.Deallocate(buf)
			a.metrics.RecordAllocate(size, time.Since(start), err)
			a.logger.LogAllocate(size, err)
			return nil, err
		}
	}

	a.metrics.RecordAllocate(size, time.Since(start), nil)
	a.logger.LogAllocate(size, nil)
	return buf, nil
}

// Deallocate unlocks the pages occupied by buf (reference counts permitting)
// and returns it to the upstream allocator.
//
// If unlocking fails the upstream deallocation is skipped and an UnlockError
// is returned; see UnlockError for why this is a fatal-path condition.
func (a *NoSwap) Deallocate(buf []byte) error {
	start := time.Now()

	if len(buf) == 0 {
		return nil
	}

	if err := a.untrack(buf); err != nil {
		err = translateError(err)
		a.metrics.RecordDeallocate(len(buf), time.Since(start), err)
		a.logger.LogDeallocate(len(buf), err)
		return err
	}

	err := a.upstream.Deallocate(buf)
	a.metrics.RecordDeallocate(len(buf), time.Since(start), err)
	a.logger.LogDeallocate(len(buf), err)
	return err
}

func (a *NoSwap) track(buf []byte) error {
	if a.serialized {
		return a.tracker.SerializedAdd(baseAddr(buf), uintptr(len(buf)))
	}
	return a.tracker.Add(baseAddr(buf), uintptr(len(buf)))
}

func (a *NoSwap) untrack(buf []byte) error {
	if a.serialized {
		return a.tracker.SerializedRemove(baseAddr(buf), uintptr(len(buf)))
	}
	return a.tracker.Remove(baseAddr(buf), uintptr(len(buf)))
}
