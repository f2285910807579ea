// Package resource enforces a budget on the total amount of pinned memory.
//
// Operating systems bound how much memory a process may lock (RLIMIT_MEMLOCK
// on Unix, the working-set quota on Windows), and exceeding the bound makes
// the pin syscall fail with EPERM/ENOMEM at an unpredictable call site. The
// Controller lets an application fail fast at a self-imposed limit instead:
//
//	rc := resource.NewController(resource.Config{
//	    LockedLimitBytes: 256 * 1024,
//	})
//
//	// Non-blocking acquire (returns error immediately if limit exceeded)
//	if err := rc.AcquireLocked(pageSize); err != nil {
//	    // ErrLockedMemoryLimit - caller surfaces the failed allocation
//	}
//	defer rc.ReleaseLocked(pageSize)
//
// Acquisition is non-blocking by design: a lock failure is environmental and
// not expected to succeed on retry, so callers surface it immediately.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops. This
// allows optional budgeting without nil checks everywhere.
package resource
