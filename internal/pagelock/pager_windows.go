//go:build windows

package pagelock

import "golang.org/x/sys/windows"

func osPin(addr, length uintptr) error {
	return windows.VirtualLock(addr, length)
}

func osUnpin(addr, length uintptr) error {
	return windows.VirtualUnlock(addr, length)
}
