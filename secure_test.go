package memlock

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureWipesBeforeRelease(t *testing.T) {
	tracker, _ := testTracker()
	upstream := &recordingAllocator{}
	a := NewSecure(withTracker(tracker), WithUpstream(upstream))

	buf, err := a.Allocate(128)
	require.NoError(t, err)

	copy(buf, "p@ssw0rd")
	require.False(t, allZero(buf))

	// Keep an independent view of the backing array.
	backing := buf[:len(buf):len(buf)]

	require.NoError(t, a.Deallocate(buf))

	// Scenario: after release, every byte previously in backing storage
	// reads as zero, and the wipe happened before the memory went upstream.
	assert.True(t, allZero(backing))
	require.Len(t, upstream.wipedAtReturn, 1)
	assert.True(t, upstream.wipedAtReturn[0])
	assert.Equal(t, uint64(0), tracker.Stats().LockedPages)
}

func TestSecureWipesBeforeUnlock(t *testing.T) {
	tracker, fp := testTracker()
	a := NewSecure(withTracker(tracker))

	buf, err := a.Allocate(32)
	require.NoError(t, err)
	copy(buf, "ephemeral key material")

	base := baseAddr(buf)
	length := uintptr(len(buf))

	// Probe from inside the unpin syscall: by the time any page of the
	// buffer is unlocked, its bytes must already be zero.
	wipedBeforeUnpin := true
	fp.onUnpin = func(addr, l uintptr) {
		for i := uintptr(0); i < length; i++ {
			p := (*byte)(unsafe.Pointer(base + i))
			if *p != 0 {
				wipedBeforeUnpin = false
				return
			}
		}
	}

	require.NoError(t, a.Deallocate(buf))
	assert.True(t, wipedBeforeUnpin, "memory must be wiped before it is unlocked")
}

func TestUnserializedSecure(t *testing.T) {
	tracker, fp := testTracker()
	a := NewUnserializedSecure(withTracker(tracker))

	buf, err := a.Allocate(100)
	require.NoError(t, err)
	buf[0] = 0xFF

	require.NoError(t, a.Deallocate(buf))

	pins, unpins := fp.counts()
	assert.Equal(t, pins, unpins)
}

func TestSecureWithMappedUpstream(t *testing.T) {
	tracker, fp := testTracker()
	upstream := NewMappedAllocator()
	a := NewSecure(withTracker(tracker), WithUpstream(upstream))

	buf, err := a.Allocate(4 * fp.pageSize)
	require.NoError(t, err)
	require.Len(t, buf, 4*fp.pageSize)

	// Mapped buffers are page-aligned, so the pin count is exact.
	pins, _ := fp.counts()
	assert.Equal(t, 4, pins)

	copy(buf, "big secret blob")
	require.NoError(t, a.Deallocate(buf))

	assert.Equal(t, 0, upstream.Len())
	assert.Equal(t, uint64(0), tracker.Stats().LockedPages)
}
