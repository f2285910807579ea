package memlock

import "sync"

// Buffer is a fixed-size container for a single secret. Its backing memory
// is pinned in RAM for the Buffer's whole lifetime and wiped to zero when it
// is destroyed.
//
// Buffer is the convenience surface over the secure allocator composition;
// programs with richer needs can use NewSecure directly.
type Buffer struct {
	mu    sync.Mutex
	alloc Allocator
	data  []byte
}

// NewBuffer allocates a pinned, wipe-on-destroy buffer of size bytes.
// The memory starts zeroed (heap and mapped upstreams both guarantee this).
func NewBuffer(size int, opts ...Option) (*Buffer, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	alloc := NewSecure(opts...)

	data, err := alloc.Allocate(size)
	if err != nil {
		return nil, err
	}

	return &Buffer{alloc: alloc, data: data}, nil
}

// NewBufferFromBytes allocates a Buffer holding a copy of src, then wipes
// src. The caller's slice is useless afterwards; the only remaining copy of
// the secret lives in pinned memory.
func NewBufferFromBytes(src []byte, opts ...Option) (*Buffer, error) {
	b, err := NewBuffer(len(src), opts...)
	if err != nil {
		return nil, err
	}

	copy(b.data, src)
	Wipe(src)

	return b, nil
}

// Bytes returns the backing slice for reading and writing.
// Returns nil after Destroy. The slice must not be retained past Destroy.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len returns the buffer size in bytes, or 0 after Destroy.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// String returns a copy of the contents as a string.
//
// Warning: the returned string is ordinary Go memory - it is neither pinned
// nor wipeable. Use it only where an API leaves no choice.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}

// Wipe overwrites the contents with zeros. The buffer stays alive and
// pinned.
func (b *Buffer) Wipe() {
	b.mu.Lock()
	defer b.mu.Unlock()
	Wipe(b.data)
}

// Destroy wipes the contents, unlocks the pages and releases the memory.
// It is idempotent; only the first call does work.
func (b *Buffer) Destroy() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return nil
	}

	data := b.data
	b.data = nil

	return b.alloc.Deallocate(data)
}
