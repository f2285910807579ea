package memlock

import (
	"errors"
	"fmt"

	"github.com/hupe1980/memlock/internal/pagelock"
)

var (
	// ErrInvalidSize is returned when a negative allocation size is requested.
	ErrInvalidSize = errors.New("invalid allocation size")

	// ErrUntrackedDeallocation is returned when a buffer is deallocated that
	// was never allocated through the adapter (or was already deallocated).
	// This indicates a programming error and is never retried.
	ErrUntrackedDeallocation = errors.New("deallocating memory that was never tracked")

	// ErrBufferDestroyed is returned when a destroyed Buffer is used.
	ErrBufferDestroyed = errors.New("buffer already destroyed")
)

// LockError indicates the OS refused to pin a page into physical memory.
// Typical causes are RLIMIT_MEMLOCK exhaustion or missing privileges.
//
// The underlying OS error (e.g. syscall.Errno) can be accessed via
// errors.Unwrap / errors.As. The allocation that triggered the failure was
// rolled back; no memory is leaked and no pages stay pinned on its behalf.
type LockError struct {
	Page  uintptr
	cause error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("locking page 0x%x: %v", e.Page, e.cause)
}

func (e *LockError) Unwrap() error { return e.cause }

// UnlockError indicates the OS refused to unpin a page during deallocation.
//
// The upstream deallocation is skipped when this is returned, because
// retrying munlock has no defined semantics. Callers should treat this as a
// fatal condition for the process.
type UnlockError struct {
	Page  uintptr
	cause error
}

func (e *UnlockError) Error() string {
	return fmt.Sprintf("unlocking page 0x%x: %v", e.Page, e.cause)
}

func (e *UnlockError) Unwrap() error { return e.cause }

// translateError normalizes internal tracker errors into the public taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var le *pagelock.LockError
	if errors.As(err, &le) {
		return &LockError{Page: le.Page, cause: err}
	}

	var ue *pagelock.UnlockError
	if errors.As(err, &ue) {
		return &UnlockError{Page: ue.Page, cause: err}
	}

	if errors.Is(err, pagelock.ErrUntracked) {
		return fmt.Errorf("%w: %w", ErrUntrackedDeallocation, err)
	}

	return err
}
