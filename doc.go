// Package memlock provides allocator adapters that pin sensitive data in
// physical memory so it can never be swapped to disk, and optionally wipe it
// to zero the moment it is released.
//
// Two adapters compose to provide the guarantees:
//
//   - NoSwap wraps an upstream allocator and keeps every page its buffers
//     touch locked into RAM (mlock on Unix, VirtualLock on Windows), with
//     process-wide per-page reference counting so overlapping buffers lock a
//     page exactly once.
//   - ZeroOnRelease wraps any allocator and overwrites buffers with zeros on
//     deallocation.
//
// The secure composition layers the two so memory is wiped before it is
// unlocked:
//
//	alloc := memlock.NewSecure()
//
//	buf, err := alloc.Allocate(64)
//	if err != nil { ... }
//	copy(buf, password)
//	// ... use the secret; it cannot reach swap ...
//	_ = alloc.Deallocate(buf) // wiped, then unlocked, then released
//
// For the common "hold one secret" case, Buffer bundles allocation and
// cleanup:
//
//	b, err := memlock.NewBuffer(64)
//	if err != nil { ... }
//	defer b.Destroy()
//	copy(b.Bytes(), password)
//
// # Serialization
//
// The default adapters are safe for concurrent use: the shared page tracker
// serializes its reference-count updates with the pin/unpin syscalls. The
// Unserialized variants skip that locking for single-goroutine programs.
//
// # Threat Model
//
// memlock prevents secrets from reaching swap space on disk. It does not
// defend against an attacker who can already read the process memory, and it
// cannot retroactively scrub copies the application itself made into
// unmanaged memory (for example by converting a secret to a string).
package memlock
