// Package mmap provides anonymous memory mappings outside the Go heap.
//
// # Overview
//
// Secrets kept on the ordinary Go heap are visible to the garbage collector,
// which may copy slice headers and interior data during collection cycles,
// leaving stray copies behind. An anonymous mapping is obtained directly from
// the OS, never moves, and is returned page-by-page on Close, which makes it
// a better backing store for pinned, wiped memory.
//
// # Usage
//
//	m, err := mmap.MapAnon(size)
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must
// ensure no goroutine touches Bytes() after Close() returns.
package mmap
