//go:build !windows

package pagelock

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func osPin(addr, length uintptr) error {
	// The page base may precede the allocation that referenced it, so the
	// range is reconstructed from the raw address rather than a caller slice.
	return unix.Mlock(unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)) //nolint:govet // addr originates from live memory
}

func osUnpin(addr, length uintptr) error {
	return unix.Munlock(unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)) //nolint:govet // addr originates from live memory
}
