package memlock

import "unsafe"

// Allocator is the allocation contract shared by the adapters and their
// upstream allocators. An adapter wraps an upstream Allocator and forwards
// the actual memory management to it; the adapter only adds behavior
// (locking, wiping) around the calls.
//
// Implementations must return a buffer of exactly the requested size from
// Allocate and must accept any buffer previously returned by their own
// Allocate in Deallocate. Adapters sharing the same upstream are
// interchangeable: all of them consult the same process-wide page tracker.
type Allocator interface {
	// Allocate returns a buffer of exactly size bytes.
	Allocate(size int) ([]byte, error)

	// Deallocate releases a buffer previously obtained from Allocate.
	Deallocate(buf []byte) error
}

// HeapAllocator allocates from the ordinary Go heap. It is the default
// upstream: buffers are not page-aligned, which exercises the tracker's
// handling of unaligned and page-straddling ranges.
type HeapAllocator struct{}

// Allocate implements Allocator.
func (HeapAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return nil, nil
	}
	return make([]byte, size), nil
}

// Deallocate implements Allocator. The garbage collector reclaims heap
// buffers once unreferenced, so this is a no-op.
func (HeapAllocator) Deallocate(buf []byte) error { return nil }

// baseAddr returns the address of the first byte of buf.
func baseAddr(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
}
