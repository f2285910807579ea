package memlock

import (
	"github.com/hupe1980/memlock/internal/pagelock"
	"github.com/hupe1980/memlock/internal/resource"
)

type options struct {
	upstream    Allocator
	tracker     *pagelock.Tracker
	logger      *Logger
	metrics     MetricsCollector
	lockedLimit int64
}

func defaultOptions() *options {
	return &options{
		upstream: HeapAllocator{},
		logger:   NoopLogger(),
		metrics:  NoopMetricsCollector{},
	}
}

// resolveTracker picks the page tracker for an adapter. Adapters share the
// process-wide tracker unless a budget (or an explicit tracker) demands a
// private one.
func (o *options) resolveTracker() *pagelock.Tracker {
	if o.tracker != nil {
		return o.tracker
	}

	if o.lockedLimit > 0 {
		rc := resource.NewController(resource.Config{LockedLimitBytes: o.lockedLimit})
		return pagelock.New(pagelock.WithBudget(rc))
	}

	return pagelock.Shared()
}

// Option configures allocator adapter construction.
type Option func(*options)

// WithUpstream sets the upstream allocator the adapter delegates the actual
// memory management to. Defaults to HeapAllocator.
func WithUpstream(a Allocator) Option {
	return func(o *options) {
		if a == nil {
			a = HeapAllocator{}
		}
		o.upstream = a
	}
}

// WithLogger sets the logger for allocation events.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector for allocation events.
// If nil is passed, metrics collection is disabled.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithLockedLimit caps the total bytes of pinned memory for this adapter.
//
// Operating systems bound how much memory a process may lock
// (RLIMIT_MEMLOCK on Unix); a limit makes allocations fail fast with a
// LockError at a self-imposed budget instead of at an OS-chosen point.
//
// An adapter with a limit keeps private page state rather than sharing the
// process-wide tracker, so its buffers must not overlap pages with buffers
// from other adapters.
func WithLockedLimit(bytes int64) Option {
	return func(o *options) {
		o.lockedLimit = bytes
	}
}

// withTracker injects a private page tracker. Test seam.
func withTracker(t *pagelock.Tracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}
