package pagelock

import (
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/memlock/internal/resource"
)

// Tracker maintains per-page reference counts for all live allocations made
// through the no-swap allocators. See the package documentation for the
// locking model.
type Tracker struct {
	pager    Pager
	budget   *resource.Controller
	pageSize uintptr

	mu       sync.Mutex
	pageRefs map[uintptr]uint32

	stats atomicStats
}

// Stats is a snapshot of tracker counters.
type Stats struct {
	LockedPages   uint64 // pages currently pinned
	TrackedBytes  uint64 // bytes covered by pinned pages (LockedPages * page size)
	PinCalls      uint64 // cumulative successful pin syscalls
	UnpinCalls    uint64 // cumulative successful unpin syscalls
	PinFailures   uint64 // cumulative failed pin syscalls
	UnpinFailures uint64 // cumulative failed unpin syscalls
}

type atomicStats struct {
	LockedPages   atomic.Uint64
	PinCalls      atomic.Uint64
	UnpinCalls    atomic.Uint64
	PinFailures   atomic.Uint64
	UnpinFailures atomic.Uint64
}

// Option is a configuration option for Tracker.
type Option func(*Tracker)

// WithPager sets the OS pager. Used by tests to inject fakes.
func WithPager(p Pager) Option {
	return func(t *Tracker) {
		t.pager = p
	}
}

// WithBudget caps the total pinned bytes via a resource controller.
func WithBudget(c *resource.Controller) Option {
	return func(t *Tracker) {
		t.budget = c
	}
}

var (
	sharedOnce sync.Once
	shared     *Tracker
)

// Shared returns the process-wide tracker, creating it on first call.
//
// Every allocator in the process must consult the same reference counts, so
// adapters default to this instance. The tracker lives for the remainder of
// the process; it is reachable from every allocator that uses it, so it can
// never be collected out from under one.
func Shared() *Tracker {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

// New creates a tracker with its own page state. Production callers should
// normally use Shared; private trackers exist for tests and for budgeted
// setups that deliberately opt out of the process-wide state.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		pager:    NewSystemPager(),
		pageRefs: make(map[uintptr]uint32),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.pageSize = uintptr(t.pager.PageSize())

	return t
}

// PageSize returns the OS page size the tracker operates at.
func (t *Tracker) PageSize() uintptr { return t.pageSize }

// pageOf returns the base address of the page containing addr.
// Page sizes are powers of two on every supported platform.
func (t *Tracker) pageOf(addr uintptr) uintptr {
	return addr &^ (t.pageSize - 1)
}

// Add records a new allocation covering [addr, addr+length).
//
// Every page intersecting the range has its reference count incremented;
// pages seen for the first time are pinned. Add is all-or-nothing: if pinning
// a page fails, the effect of the walk so far is undone and a *LockError is
// returned, so a failed allocation leaves no trace in the tracker.
//
// Add performs no locking; callers guarantee single-goroutine access.
// Concurrent callers must use SerializedAdd.
func (t *Tracker) Add(addr, length uintptr) error {
	if length == 0 {
		return nil
	}

	start := t.pageOf(addr)

	for page := start; page < addr+length; page += t.pageSize {
		if refs, ok := t.pageRefs[page]; ok {
			t.pageRefs[page] = refs + 1
			continue
		}

		if err := t.pinPage(page); err != nil {
			t.unwind(start, page)
			return err
		}
	}

	return nil
}

// Remove records the release of an allocation covering [addr, addr+length).
//
// Reference counts are decremented; pages reaching zero are unpinned and
// forgotten. A page absent from the tracker yields ErrUntracked. If an unpin
// syscall fails the page entry is kept (with count 1) and a *UnlockError is
// returned; callers should treat that as fatal since munlock has no defined
// retry semantics.
//
// Remove performs no locking; callers guarantee single-goroutine access.
// Concurrent callers must use SerializedRemove.
func (t *Tracker) Remove(addr, length uintptr) error {
	if length == 0 {
		return nil
	}

	for page := t.pageOf(addr); page < addr+length; page += t.pageSize {
		refs, ok := t.pageRefs[page]
		if !ok {
			return ErrUntracked
		}

		refs--
		if refs > 0 {
			t.pageRefs[page] = refs
			continue
		}

		if err := t.pager.Unpin(page, t.pageSize); err != nil {
			t.stats.UnpinFailures.Add(1)
			return &UnlockError{Page: page, cause: err}
		}

		delete(t.pageRefs, page)
		t.stats.UnpinCalls.Add(1)
		t.stats.LockedPages.Add(^uint64(0))
		t.budget.ReleaseLocked(int64(t.pageSize))
	}

	return nil
}

// SerializedAdd is Add with the tracker mutex held for the whole page walk,
// including the pin syscalls.
func (t *Tracker) SerializedAdd(addr, length uintptr) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Add(addr, length)
}

// SerializedRemove is Remove with the tracker mutex held for the whole page
// walk, including the unpin syscalls.
func (t *Tracker) SerializedRemove(addr, length uintptr) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Remove(addr, length)
}

// pinPage reserves budget, pins page and commits the map entry. The entry is
// only written after the pin syscall succeeds, so a failure never leaves a
// phantom record for a page that is not actually locked.
func (t *Tracker) pinPage(page uintptr) error {
	if err := t.budget.AcquireLocked(int64(t.pageSize)); err != nil {
		return &LockError{Page: page, cause: err}
	}

	if err := t.pager.Pin(page, t.pageSize); err != nil {
		t.budget.ReleaseLocked(int64(t.pageSize))
		t.stats.PinFailures.Add(1)
		return &LockError{Page: page, cause: err}
	}

	t.pageRefs[page] = 1
	t.stats.PinCalls.Add(1)
	t.stats.LockedPages.Add(1)

	return nil
}

// unwind reverts the reference counts taken by a partially completed Add walk
// over [start, end). Unpin failures during unwind are recorded in the stats
// but otherwise ignored; the map stays consistent either way.
func (t *Tracker) unwind(start, end uintptr) {
	for page := start; page < end; page += t.pageSize {
		refs := t.pageRefs[page]

		if refs > 1 {
			t.pageRefs[page] = refs - 1
			continue
		}

		if err := t.pager.Unpin(page, t.pageSize); err != nil {
			t.stats.UnpinFailures.Add(1)
		} else {
			t.stats.UnpinCalls.Add(1)
		}

		delete(t.pageRefs, page)
		t.stats.LockedPages.Add(^uint64(0))
		t.budget.ReleaseLocked(int64(t.pageSize))
	}
}

// Stats returns a snapshot of the tracker counters.
func (t *Tracker) Stats() Stats {
	locked := t.stats.LockedPages.Load()
	return Stats{
		LockedPages:   locked,
		TrackedBytes:  locked * uint64(t.pageSize),
		PinCalls:      t.stats.PinCalls.Load(),
		UnpinCalls:    t.stats.UnpinCalls.Load(),
		PinFailures:   t.stats.PinFailures.Load(),
		UnpinFailures: t.stats.UnpinFailures.Load(),
	}
}

// LockedPages returns a snapshot of the base addresses of every page
// currently pinned. Intended for diagnostics; the snapshot is stale the
// moment it is returned.
func (t *Tracker) LockedPages() *roaring64.Bitmap {
	t.mu.Lock()
	defer t.mu.Unlock()

	bm := roaring64.New()
	for page := range t.pageRefs {
		bm.Add(uint64(page))
	}

	return bm
}
