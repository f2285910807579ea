package memlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	Wipe(b)
	assert.True(t, allZero(b))

	Wipe(nil) // must not panic
}

func TestZeroOnReleaseWipesBeforeUpstream(t *testing.T) {
	upstream := &recordingAllocator{}
	a := NewZeroOnRelease(upstream)

	buf, err := a.Allocate(64)
	require.NoError(t, err)

	copy(buf, "super secret value")
	require.False(t, allZero(buf))

	require.NoError(t, a.Deallocate(buf))

	// The upstream saw the buffer already zeroed.
	require.Len(t, upstream.wipedAtReturn, 1)
	assert.True(t, upstream.wipedAtReturn[0])
	assert.True(t, allZero(buf))
}

func TestZeroOnReleaseNilUpstream(t *testing.T) {
	a := NewZeroOnRelease(nil)

	buf, err := a.Allocate(8)
	require.NoError(t, err)
	require.NoError(t, a.Deallocate(buf))
}
