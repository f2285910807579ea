package memlock

import (
	"sync"

	"github.com/hupe1980/memlock/internal/mmap"
)

// MappedAllocator serves allocations from anonymous memory mappings outside
// the Go heap. Mapped buffers are page-aligned, never moved by the garbage
// collector, and returned to the OS on deallocation, which makes this the
// preferred upstream for long-lived or large secrets.
//
// Each allocation costs at least one page; for many small short-lived
// buffers the default HeapAllocator is the better upstream.
type MappedAllocator struct {
	mu       sync.Mutex
	mappings map[uintptr]*mmap.Mapping
}

// NewMappedAllocator creates an empty MappedAllocator.
func NewMappedAllocator() *MappedAllocator {
	return &MappedAllocator{
		mappings: make(map[uintptr]*mmap.Mapping),
	}
}

// Allocate implements Allocator.
func (a *MappedAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return nil, nil
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, err
	}

	buf := m.Bytes()

	a.mu.Lock()
	a.mappings[baseAddr(buf)] = m
	a.mu.Unlock()

	return buf, nil
}

// Deallocate implements Allocator, unmapping the buffer's backing mapping.
// Deallocating a buffer that did not come from this allocator returns
// ErrUntrackedDeallocation.
func (a *MappedAllocator) Deallocate(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	a.mu.Lock()
	m, ok := a.mappings[baseAddr(buf)]
	if ok {
		delete(a.mappings, baseAddr(buf))
	}
	a.mu.Unlock()

	if !ok {
		return ErrUntrackedDeallocation
	}

	return m.Close()
}

// Len returns the number of live mappings. Diagnostics only.
func (a *MappedAllocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.mappings)
}
