// Package pagelock tracks which OS memory pages are pinned into physical
// memory and keeps a per-page reference count so that pages shared by
// overlapping allocations are locked exactly once and unlocked only when the
// last allocation touching them is released.
//
// # Overview
//
// Pinning operates at page granularity while allocations are byte ranges, so
// the same page is frequently touched by more than one allocation. The
// Tracker maps every live allocation onto the pages it intersects:
//
//   - On the first reference to a page (0 -> 1) the page is pinned via the
//     OS (mlock on Unix, VirtualLock on Windows).
//   - Further references only increment the count.
//   - When the count returns to zero the page is unpinned and forgotten.
//
// # Serialization
//
// Add and Remove perform no internal locking; they exist for callers that
// guarantee single-goroutine access. SerializedAdd and SerializedRemove wrap
// the same walk in a mutex that is held across the OS syscalls, so a
// concurrent caller can never observe a page counted but not yet pinned.
//
// # Process-wide state
//
// Allocators constructed anywhere in the process must agree on page
// reference counts, so Shared returns a lazily-created singleton. Custom
// trackers (with an injected Pager or a locked-memory budget) can be built
// with New.
package pagelock
