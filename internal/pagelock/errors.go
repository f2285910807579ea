package pagelock

import (
	"errors"
	"fmt"
)

// ErrUntracked is returned when a deallocation covers a page the tracker
// never saw allocated. This always indicates a programming error (a foreign
// pointer, a double free, or a length mismatch) and is never retried.
var ErrUntracked = errors.New("pagelock: releasing memory that was never tracked")

// LockError indicates the OS refused to pin a page.
//
// The underlying OS error (e.g. syscall.Errno) can be accessed via
// errors.Unwrap / errors.As.
type LockError struct {
	Page  uintptr
	cause error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("pagelock: pinning page 0x%x: %v", e.Page, e.cause)
}

func (e *LockError) Unwrap() error { return e.cause }

// UnlockError indicates the OS refused to unpin a page.
//
// The underlying OS error (e.g. syscall.Errno) can be accessed via
// errors.Unwrap / errors.As.
type UnlockError struct {
	Page  uintptr
	cause error
}

func (e *UnlockError) Error() string {
	return fmt.Sprintf("pagelock: unpinning page 0x%x: %v", e.Page, e.cause)
}

func (e *UnlockError) Unwrap() error { return e.cause }
