package memlock

// ZeroOnRelease is an allocator adapter that overwrites buffers with zeros
// on deallocation, before the upstream allocator gets them back. Allocation
// is a pure passthrough.
type ZeroOnRelease struct {
	upstream Allocator
}

// NewZeroOnRelease creates a zero-on-release adapter over upstream.
// If upstream is nil, HeapAllocator is used.
func NewZeroOnRelease(upstream Allocator) *ZeroOnRelease {
	if upstream == nil {
		upstream = HeapAllocator{}
	}
	return &ZeroOnRelease{upstream: upstream}
}

// Allocate implements Allocator.
func (a *ZeroOnRelease) Allocate(size int) ([]byte, error) {
	return a.upstream.Allocate(size)
}

// Deallocate wipes buf and delegates to the upstream allocator. The wipe
// happens first, so when the upstream is a NoSwap adapter the memory is
// still pinned while it is being overwritten.
func (a *ZeroOnRelease) Deallocate(buf []byte) error {
	Wipe(buf)
	return a.upstream.Deallocate(buf)
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
