package pagelock

// Test-only access to tracker internals. These helpers exist so tests can
// reset state without issuing unpin syscalls and can observe the mutex from
// inside a fake pager; they are compiled into test binaries only.

// clearPages forgets every page intersecting [addr, addr+length) without
// unpinning. Lets tests start from a known-empty state.
func (t *Tracker) clearPages(addr, length uintptr) {
	for page := t.pageOf(addr); page < addr+length; page += t.pageSize {
		if _, ok := t.pageRefs[page]; ok {
			delete(t.pageRefs, page)
			t.stats.LockedPages.Add(^uint64(0))
		}
	}
}

// lockHeld reports whether the tracker mutex is currently held.
func (t *Tracker) lockHeld() bool {
	if t.mu.TryLock() {
		t.mu.Unlock()
		return false
	}
	return true
}

// refCount returns the current reference count for the page containing addr.
func (t *Tracker) refCount(addr uintptr) uint32 {
	return t.pageRefs[t.pageOf(addr)]
}
